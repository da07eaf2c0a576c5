package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yatube-dev/yatube/internal/domain"
	"github.com/yatube-dev/yatube/internal/errors"
	"github.com/yatube-dev/yatube/internal/middleware"
)

func TestSignup(t *testing.T) {
	env := newTestEnv(t)
	var got domain.SignupData
	env.auth.MockSignup = func(data domain.SignupData) (domain.UserId, error) {
		if data.Username == "taken" {
			return 0, errors.ErrUserExists
		}
		got = data
		return 5, nil
	}
	valid := url.Values{
		"first_name": {"Anna"},
		"last_name":  {"K"},
		"username":   {"anna"},
		"password1":  {"s3cret-pass"},
		"password2":  {"s3cret-pass"},
	}

	t.Run("form", func(t *testing.T) {
		rr := env.do(t, nil, httptest.NewRequest(http.MethodGet, "/auth/signup/", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `name="password2"`)
	})

	t.Run("success redirects to login", func(t *testing.T) {
		rr := env.do(t, nil, formRequest(http.MethodPost, "/auth/signup/", valid))
		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, middleware.LoginPath, rr.Header().Get("Location"))
		assert.Equal(t, "anna", got.Username)
		assert.Equal(t, "Anna", got.FirstName)
		assert.Equal(t, "s3cret-pass", got.Password)
	})

	t.Run("password mismatch", func(t *testing.T) {
		form := url.Values{}
		for k, v := range valid {
			form[k] = v
		}
		form.Set("password2", "other-pass")
		rr := env.do(t, nil, formRequest(http.MethodPost, "/auth/signup/", form))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotContains(t, rr.Body.String(), "s3cret-pass")
		assert.Contains(t, rr.Body.String(), `value="anna"`)
	})

	t.Run("username taken", func(t *testing.T) {
		form := url.Values{}
		for k, v := range valid {
			form[k] = v
		}
		form.Set("username", "taken")
		rr := env.do(t, nil, formRequest(http.MethodPost, "/auth/signup/", form))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "A user with that username already exists.")
	})
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.auth.MockLogin = func(creds domain.Credentials) (string, error) {
		if creds.Username == "anna" && creds.Password == "right" {
			return "jwt-token", nil
		}
		return "", errors.ErrBadCreds
	}

	t.Run("form keeps next", func(t *testing.T) {
		rr := env.do(t, nil, httptest.NewRequest(http.MethodGet, "/auth/login/?next=%2Ffollow%2F", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `name="next" value="/follow/"`)
	})

	tests := []struct {
		name     string
		next     string
		location string
	}{
		{"no next", "", "/"},
		{"local next", "/follow/", "/follow/"},
		{"external next", "https://evil.example/", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(t, nil, formRequest(http.MethodPost, "/auth/login/", url.Values{
				"username": {"anna"}, "password": {"right"}, "next": {tt.next},
			}))
			assert.Equal(t, http.StatusSeeOther, rr.Code)
			assert.Equal(t, tt.location, rr.Header().Get("Location"))

			cookies := rr.Result().Cookies()
			require.Len(t, cookies, 1)
			assert.Equal(t, middleware.AccessTokenCookie, cookies[0].Name)
			assert.Equal(t, "jwt-token", cookies[0].Value)
			assert.Equal(t, 3600, cookies[0].MaxAge)
		})
	}

	t.Run("bad credentials", func(t *testing.T) {
		rr := env.do(t, nil, formRequest(http.MethodPost, "/auth/login/", url.Values{
			"username": {"anna"}, "password": {"wrong"},
		}))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Please enter a correct username and password.")
		assert.Empty(t, rr.Result().Cookies())
	})

	t.Run("missing fields", func(t *testing.T) {
		rr := env.do(t, nil, formRequest(http.MethodPost, "/auth/login/", url.Values{}))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "This field is required.")
	})
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	rr := env.do(t, testReader, httptest.NewRequest(http.MethodPost, "/auth/logout/", nil))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.AccessTokenCookie, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}
