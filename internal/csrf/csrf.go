package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
)

const TokenLength = 32 // bytes

// GenerateToken creates a random url-safe token.
func GenerateToken() (string, error) {
	b := make([]byte, TokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// ValidateToken compares the cookie token with the submitted form token.
func ValidateToken(cookieToken, formToken string) bool {
	if cookieToken == "" || formToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookieToken), []byte(formToken)) == 1
}
