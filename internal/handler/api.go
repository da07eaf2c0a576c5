package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yatube-dev/yatube/internal/domain"
	"github.com/yatube-dev/yatube/internal/errors"
	"github.com/yatube-dev/yatube/internal/logger"
)

type groupJSON struct {
	Id          domain.GroupId   `json:"id"`
	Title       string           `json:"title"`
	Slug        domain.GroupSlug `json:"slug"`
	Description string           `json:"description"`
}

type postJSON struct {
	Id      domain.PostId   `json:"id"`
	Text    string          `json:"text"`
	PubDate time.Time       `json:"pub_date"`
	Author  domain.Username `json:"author"`
	Group   *string         `json:"group"`
	Image   *string         `json:"image"`
}

type commentJSON struct {
	Id      domain.CommentId `json:"id"`
	Author  *domain.Username `json:"author"`
	Text    string           `json:"text"`
	Created time.Time        `json:"created"`
}

type pageJSON struct {
	Count    int        `json:"count"`
	NumPages int        `json:"num_pages"`
	Number   int        `json:"number"`
	PerPage  int        `json:"per_page"`
	Results  []postJSON `json:"results"`
}

func toGroupJSON(g domain.Group) groupJSON {
	return groupJSON{Id: g.Id, Title: g.Title, Slug: g.Slug, Description: g.Description}
}

func toPostJSON(p domain.Post) postJSON {
	out := postJSON{Id: p.Id, Text: p.Text, PubDate: p.PubDate, Author: p.Author.Username}
	if p.Group != nil {
		out.Group = &p.Group.Slug
	}
	if p.HasImage() {
		url := mediaURL(p.Image)
		out.Image = &url
	}
	return out
}

func toPageJSON(page domain.PostPage) pageJSON {
	results := make([]postJSON, len(page.Items))
	for i, p := range page.Items {
		results[i] = toPostJSON(p)
	}
	return pageJSON{
		Count:    page.Count,
		NumPages: page.NumPages,
		Number:   page.Number,
		PerPage:  page.PerPage,
		Results:  results,
	}
}

func (h *Handler) APIPosts(w http.ResponseWriter, r *http.Request) {
	page, err := h.feed.Index(pageParam(r))
	if err != nil {
		writeErrorJSON(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPageJSON(page))
}

func (h *Handler) APIGroup(w http.ResponseWriter, r *http.Request) {
	feed, err := h.feed.Group(chi.URLParam(r, "slug"), pageParam(r))
	if err != nil {
		writeErrorJSON(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Group groupJSON `json:"group"`
		Posts pageJSON  `json:"posts"`
	}{toGroupJSON(feed.Group), toPageJSON(feed.Page)})
}

func (h *Handler) APIPost(w http.ResponseWriter, r *http.Request) {
	id, err := parseIdParam(r, "id", "post")
	if err != nil {
		writeErrorJSON(w, r, err)
		return
	}
	detail, err := h.feed.PostDetail(id, nil)
	if err != nil {
		writeErrorJSON(w, r, err)
		return
	}
	comments := make([]commentJSON, len(detail.Comments))
	for i, c := range detail.Comments {
		comments[i] = commentJSON{Id: c.Id, Text: c.Text, Created: c.Created}
		if c.Author != nil {
			comments[i].Author = &c.Author.Username
		}
	}
	writeJSON(w, http.StatusOK, struct {
		postJSON
		Comments []commentJSON `json:"comments"`
	}{toPostJSON(detail.Post), comments})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Log.Error("failed to encode response", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeErrorJSON(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.StatusCode(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		logger.Log.Error("api request failed", "path", r.URL.Path, "error", err)
		msg = "Internal error"
	}
	writeJSON(w, code, map[string]string{"error": msg})
}
