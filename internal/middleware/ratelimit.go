package middleware

import (
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/yatube-dev/yatube/internal/logger"
	"github.com/yatube-dev/yatube/internal/middleware/ratelimiter"
)

func RateLimit(rl *ratelimiter.UserRateLimiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := getIdentity(r)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if !rl.Allow(identity) {
				logger.Log.Warn("rate limit exceeded", "identity", identity, "path", r.URL.Path)
				http.Error(w, "Rate limit exceeded, try again later", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// UserOrIP keys authenticated requests by user id and the rest by address.
func UserOrIP(r *http.Request) (string, error) {
	if id, err := GetUserIDFromContext(r); err == nil {
		return id, nil
	}
	return GetIP(r)
}

// Possible if user was authorized with previous middleware
func GetUserIDFromContext(r *http.Request) (string, error) {
	user := GetUserFromContext(r)
	if user == nil {
		return "", errors.New("can't get user id")
	}
	return fmt.Sprintf("user_%d", user.Id), nil
}

// GetIP extracts the client IP from RemoteAddr.
// X-Real-IP and X-Forwarded-For are not trusted.
func GetIP(r *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("invalid IP address: %s", ip)
	}
	return ip, nil
}
