package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yatube-dev/yatube/internal/middleware"
)

func (h *Handler) GroupPosts(w http.ResponseWriter, r *http.Request) {
	feed, err := h.feed.Group(chi.URLParam(r, "slug"), pageParam(r))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderTemplate(w, r, "group_list.html", feed)
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	feed, err := h.feed.Profile(chi.URLParam(r, "username"), viewerId(r), pageParam(r))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderTemplate(w, r, "profile.html", feed)
}

// FollowIndex lists posts of the authors the current user follows.
func (h *Handler) FollowIndex(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	page, err := h.feed.Following(user.Id, pageParam(r))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderTemplate(w, r, "follow.html", struct{ Page any }{page})
}

// ProfileFollow and ProfileUnfollow always land on the target's profile.
func (h *Handler) ProfileFollow(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	target, err := h.follow.Follow(user.Id, chi.URLParam(r, "username"))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, profileURL(target.Username), http.StatusFound)
}

func (h *Handler) ProfileUnfollow(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	target, err := h.follow.Unfollow(user.Id, chi.URLParam(r, "username"))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, profileURL(target.Username), http.StatusFound)
}
