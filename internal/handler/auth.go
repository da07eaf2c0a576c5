package handler

import (
	stderrors "errors"
	"net/http"

	"github.com/yatube-dev/yatube/internal/domain"
	"github.com/yatube-dev/yatube/internal/errors"
	"github.com/yatube-dev/yatube/internal/middleware"
	"github.com/yatube-dev/yatube/internal/validation"
)

type signupData struct {
	Form           validation.SignupForm
	Errors         map[string]string
	PasswordMinLen int
}

type loginData struct {
	Username string
	Next     string
	Errors   map[string]string
}

func (h *Handler) SignupGet(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "signup.html", signupData{Errors: map[string]string{}, PasswordMinLen: h.cfg.PasswordMinLen})
}

func (h *Handler) SignupPost(w http.ResponseWriter, r *http.Request) {
	form := validation.SignupForm{
		FirstName:       r.FormValue("first_name"),
		LastName:        r.FormValue("last_name"),
		Username:        r.FormValue("username"),
		Password:        r.FormValue("password1"),
		PasswordConfirm: r.FormValue("password2"),
	}
	data := signupData{Form: form, Errors: map[string]string{}, PasswordMinLen: h.cfg.PasswordMinLen}
	// never echo passwords back
	data.Form.Password, data.Form.PasswordConfirm = "", ""

	if err := fieldErrors(h.validate.Signup(form), data.Errors); err != nil {
		h.renderError(w, r, err)
		return
	}
	if len(data.Errors) > 0 {
		h.renderTemplate(w, r, "signup.html", data)
		return
	}

	_, err := h.auth.Signup(domain.SignupData{
		Credentials: domain.Credentials{Username: form.Username, Password: form.Password},
		FirstName:   form.FirstName,
		LastName:    form.LastName,
	})
	if stderrors.Is(err, errors.ErrUserExists) {
		data.Errors["username"] = "A user with that username already exists."
		h.renderTemplate(w, r, "signup.html", data)
		return
	}
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.redirectWithFlash(w, r, middleware.LoginPath, flashCookieSuccess, "Account created. You can now log in.")
}

func (h *Handler) LoginGet(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "login.html", loginData{
		Next:   middleware.SafeNext(r.URL.Query().Get("next"), ""),
		Errors: map[string]string{},
	})
}

func (h *Handler) LoginPost(w http.ResponseWriter, r *http.Request) {
	form := validation.LoginForm{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}
	data := loginData{
		Username: form.Username,
		Next:     middleware.SafeNext(r.FormValue("next"), ""),
		Errors:   map[string]string{},
	}

	if err := fieldErrors(h.validate.Login(form), data.Errors); err != nil {
		h.renderError(w, r, err)
		return
	}
	if len(data.Errors) > 0 {
		h.renderTemplate(w, r, "login.html", data)
		return
	}

	token, err := h.auth.Login(domain.Credentials{Username: form.Username, Password: form.Password})
	if stderrors.Is(err, errors.ErrBadCreds) {
		data.Errors["__all__"] = "Please enter a correct username and password. Note that both fields may be case-sensitive."
		h.renderTemplate(w, r, "login.html", data)
		return
	}
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.sessions.SetSession(w, token, int(h.cfg.JwtTTL.Seconds()))
	http.Redirect(w, r, middleware.SafeNext(data.Next, "/"), http.StatusSeeOther)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	// the CSRF token of an oversized body was never checked
	if middleware.BodyTooLarge(r) {
		h.CSRFFailure(w, r)
		return
	}
	h.sessions.ClearSession(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
