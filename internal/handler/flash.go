package handler

import (
	"encoding/base64"
	"net/http"
)

const (
	flashCookieError   = "flash_error"
	flashCookieSuccess = "flash_success"
)

// flash messages are base64 encoded so any text survives the cookie value rules
func (h *Handler) setFlash(w http.ResponseWriter, name, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    base64.StdEncoding.EncodeToString([]byte(message)),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, url, name, message string) {
	h.setFlash(w, name, message)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// popFlash reads a flash message and expires the cookie.
func (h *Handler) popFlash(w http.ResponseWriter, r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil || cookie.Value == "" {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	decoded, err := base64.StdEncoding.DecodeString(cookie.Value)
	if err != nil {
		return ""
	}
	return string(decoded)
}
