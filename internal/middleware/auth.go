package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yatube-dev/yatube/internal/domain"
	jwt_internal "github.com/yatube-dev/yatube/internal/jwt"
	"github.com/yatube-dev/yatube/internal/logger"
)

const (
	AccessTokenCookie = "accessToken"
	LoginPath         = "/auth/login/"
)

// Key to store the user in the request context
type key int

const UserClaimsKey key = 0

type TokenDecoder interface {
	DecodeToken(jwtStr string) (*jwt.Token, error)
}

type Auth struct {
	jwt           TokenDecoder
	secureCookies bool
}

func NewAuth(jwt TokenDecoder, secureCookies bool) *Auth {
	return &Auth{jwt: jwt, secureCookies: secureCookies}
}

// OptionalAuth puts the user into the context when the request carries a valid
// token and lets anonymous requests through untouched.
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user, err := a.extractUser(r); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), UserClaimsKey, user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// NeedAuth redirects anonymous requests to the login page with a "next"
// parameter pointing back to the requested URL.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user := GetUserFromContext(r); user != nil {
				next.ServeHTTP(w, r)
				return
			}
			user, err := a.extractUser(r)
			if err != nil {
				if err != errNoToken {
					a.ClearSession(w)
				}
				http.Redirect(w, r, LoginURL(r.URL.RequestURI()), http.StatusFound)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), UserClaimsKey, user)))
		})
	}
}

// SetSession stores the token in an HttpOnly cookie.
func (a *Auth) SetSession(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   a.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *Auth) ClearSession(w http.ResponseWriter) {
	a.SetSession(w, "", -1)
}

func (a *Auth) extractUser(r *http.Request) (*domain.User, error) {
	var tokenString string
	if accessCookie, err := r.Cookie(AccessTokenCookie); err == nil {
		tokenString = accessCookie.Value
	} else if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		tokenString = token
	}
	if tokenString == "" {
		return nil, errNoToken
	}

	token, err := a.jwt.DecodeToken(tokenString)
	if err != nil {
		return nil, err
	}
	user, ok := jwt_internal.UserFromToken(token)
	if !ok {
		logger.Log.Warn("invalid jwt claims", "path", r.URL.Path)
		return nil, errInvalidClaims
	}
	return user, nil
}

var (
	errNoToken       = errors.New("no token")
	errInvalidClaims = errors.New("invalid claims")
)

// GetUserFromContext returns the authenticated user or nil.
func GetUserFromContext(r *http.Request) *domain.User {
	user, _ := r.Context().Value(UserClaimsKey).(*domain.User)
	return user
}

// LoginURL builds the login redirect target for next.
func LoginURL(next string) string {
	return LoginPath + "?next=" + url.QueryEscape(next)
}

// SafeNext returns next when it is a local absolute path, fallback otherwise.
func SafeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" {
		return fallback
	}
	return next
}
