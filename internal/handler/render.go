package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/yatube-dev/yatube/internal/domain"
	"github.com/yatube-dev/yatube/internal/logger"
	"github.com/yatube-dev/yatube/internal/middleware"
)

// CommonTemplateData holds fields that are common to all page templates.
type CommonTemplateData struct {
	User      *domain.User
	CSRFToken string
	Error     string
	Success   string
	Path      string
}

// TemplateData wraps page-specific data with common template data.
// Templates access page data via .Data and common data via .Common.
type TemplateData struct {
	Data   any
	Common CommonTemplateData
}

func (h *Handler) initCommonTemplateData(w http.ResponseWriter, r *http.Request) CommonTemplateData {
	return CommonTemplateData{
		User:      middleware.GetUserFromContext(r),
		CSRFToken: middleware.GetCSRFTokenFromContext(r),
		Error:     h.popFlash(w, r, flashCookieError),
		Success:   h.popFlash(w, r, flashCookieSuccess),
		Path:      r.URL.Path,
	}
}

func (h *Handler) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	h.renderTemplateStatus(w, r, http.StatusOK, name, data)
}

func (h *Handler) renderTemplateStatus(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	tmpl, ok := h.Templates[name]
	if !ok {
		logger.Log.Error("template not found", "template", name)
		http.Error(w, fmt.Sprintf("Template %s not found", name), http.StatusInternalServerError)
		return
	}

	wrapped := TemplateData{
		Data:   data,
		Common: h.initCommonTemplateData(w, r),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, wrapped); err != nil {
		logger.Log.Error("error executing template", "template", name, "error", err)
		http.Error(w, "Internal Server Error rendering template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderFragment executes a single named block of a page template. The
// result does not depend on the requesting user and can be cached.
func (h *Handler) renderFragment(page, block string, data any) ([]byte, error) {
	tmpl, ok := h.Templates[page]
	if !ok {
		return nil, fmt.Errorf("template %s not found", page)
	}
	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, block, data); err != nil {
		return nil, fmt.Errorf("can't render %s/%s: %w", page, block, err)
	}
	return buf.Bytes(), nil
}
