package handler

import (
	"net/http"

	"github.com/yatube-dev/yatube/internal/errors"
	"github.com/yatube-dev/yatube/internal/logger"
)

// renderError maps a service error onto one of the error pages.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	switch code := errors.StatusCode(err); code {
	case http.StatusNotFound:
		h.NotFound(w, r)
	case http.StatusInternalServerError:
		logger.Log.Error("request failed", "path", r.URL.Path, "error", err)
		h.renderTemplateStatus(w, r, code, "500.html", nil)
	default:
		http.Error(w, err.Error(), code)
	}
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderTemplateStatus(w, r, http.StatusNotFound, "404.html", struct{ Path string }{r.URL.Path})
}

// CSRFFailure renders the 403 page for a rejected form submission.
func (h *Handler) CSRFFailure(w http.ResponseWriter, r *http.Request) {
	h.renderTemplateStatus(w, r, http.StatusForbidden, "403csrf.html", nil)
}
