package handler

import (
	"net/http"
	"strings"

	"github.com/yatube-dev/yatube/internal/domain"
	"github.com/yatube-dev/yatube/internal/errors"
	"github.com/yatube-dev/yatube/internal/middleware"
	"github.com/yatube-dev/yatube/internal/validation"
)

// AddComment appends a comment and returns to the post. Invalid text is
// reported through a flash message on the post page.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	id, err := parseIdParam(r, "id", "post")
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	form := validation.CreateCommentForm{Text: strings.TrimSpace(r.FormValue("text"))}
	if err := h.validate.CreateComment(form); err != nil {
		if errors.IsValidation(err) {
			h.redirectWithFlash(w, r, postURL(id), flashCookieError, commentErrorMessage(err))
			return
		}
		h.renderError(w, r, err)
		return
	}

	_, err = h.comment.Create(domain.CommentCreationData{PostId: id, AuthorId: user.Id, Text: form.Text})
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, postURL(id), http.StatusFound)
}

func commentErrorMessage(err error) string {
	errs := map[string]string{}
	if fieldErrors(err, errs) == nil {
		if msg, ok := errs["text"]; ok {
			return "Comment: " + msg
		}
	}
	return "The comment could not be saved."
}
