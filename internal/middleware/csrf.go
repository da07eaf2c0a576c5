package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/yatube-dev/yatube/internal/csrf"
	"github.com/yatube-dev/yatube/internal/logger"
)

const (
	csrfCookieName = "csrf_token"
	CSRFFormField  = "csrf_token"
)

type csrfContextKey string

const (
	csrfTokenContextKey    csrfContextKey = "csrf_token"
	bodyTooLargeContextKey csrfContextKey = "body_too_large"
)

// maxFormMemory bounds the memory used when the CSRF check has to parse a
// multipart body; handlers apply their own stricter limits first.
const maxFormMemory = 32 << 20

type CSRFConfig struct {
	SecureCookies bool
}

// GenerateCSRFToken makes sure the client has a token cookie and exposes the
// token to templates through the request context.
func GenerateCSRFToken(config CSRFConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if cookie, err := r.Cookie(csrfCookieName); err == nil && cookie.Value != "" {
				token = cookie.Value
			} else {
				token, err = csrf.GenerateToken()
				if err != nil {
					logger.Log.Error("failed to generate CSRF token", "error", err)
					http.Error(w, "Internal server error", http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     csrfCookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					Secure:   config.SecureCookies,
					SameSite: http.SameSiteLaxMode,
					MaxAge:   86400 * 365,
				})
			}

			ctx := context.WithValue(r.Context(), csrfTokenContextKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ValidateCSRFToken checks unsafe methods and hands failures to onFailure.
// A multipart body over the request size limit cannot be read, so its token is
// never checked: the request goes on to next marked with BodyTooLarge, and
// next must not change state for it.
func ValidateCSRFToken(onFailure http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost && r.Method != http.MethodPut &&
				r.Method != http.MethodPatch && r.Method != http.MethodDelete {
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(csrfCookieName)
			if err != nil {
				logger.Log.Warn("CSRF token cookie missing", "path", r.URL.Path)
				onFailure.ServeHTTP(w, r)
				return
			}

			if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
				if r.MultipartForm == nil {
					if err := r.ParseMultipartForm(maxFormMemory); err != nil {
						var tooLarge *http.MaxBytesError
						if errors.As(err, &tooLarge) {
							// the body is gone; handlers see empty form values
							// and report the size to the user
							logger.Log.Info("request body too large", "path", r.URL.Path, "limit", tooLarge.Limit)
							next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), bodyTooLargeContextKey, true)))
							return
						}
						logger.Log.Warn("failed to parse multipart form", "path", r.URL.Path, "error", err)
						onFailure.ServeHTTP(w, r)
						return
					}
				}
			} else if r.Form == nil {
				if err := r.ParseForm(); err != nil {
					logger.Log.Warn("failed to parse form", "path", r.URL.Path, "error", err)
					onFailure.ServeHTTP(w, r)
					return
				}
			}

			if !csrf.ValidateToken(cookie.Value, r.FormValue(CSRFFormField)) {
				logger.Log.Warn("CSRF token validation failed", "path", r.URL.Path)
				onFailure.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// BodyTooLarge reports whether the request body was rejected for its size
// before the CSRF token could be read.
func BodyTooLarge(r *http.Request) bool {
	tooLarge, _ := r.Context().Value(bodyTooLargeContextKey).(bool)
	return tooLarge
}

func GetCSRFTokenFromContext(r *http.Request) string {
	token, _ := r.Context().Value(csrfTokenContextKey).(string)
	return token
}
