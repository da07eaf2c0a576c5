// Package validation checks submitted forms and uploaded images.
//
// Failures are reported as *errors.ValidationError keyed by the form field
// name, ready to be shown next to the offending input.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	internal_errors "github.com/yatube-dev/yatube/internal/errors"
)

const invalidChoice = "Select a valid choice."

var (
	usernameRe = regexp.MustCompile(`^[\p{L}\p{N}@.+\-_]+$`)
	slugRe     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

type Limits struct {
	PostTextMaxLen        int
	CommentTextMaxLen     int
	PasswordMinLen        int
	MaxImageSize          int64
	AllowedImageMimeTypes []string
}

type Validator struct {
	validate     *validator.Validate
	limits       Limits
	allowedMimes map[string]bool
}

func New(limits Limits) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	// only fails on a programming error
	if err := v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRe.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	allowed := make(map[string]bool, len(limits.AllowedImageMimeTypes))
	for _, m := range limits.AllowedImageMimeTypes {
		allowed[m] = true
	}
	return &Validator{validate: v, limits: limits, allowedMimes: allowed}
}

func (v *Validator) CreatePost(f CreatePostForm) error {
	return v.post(f.PostForm)
}

func (v *Validator) EditPost(f EditPostForm) error {
	return v.post(f.PostForm)
}

// Text is checked with surrounding whitespace removed, so blank text counts
// as missing. Callers store the trimmed value.
func (v *Validator) post(f PostForm) error {
	f.Text = strings.TrimSpace(f.Text)
	verr := v.structErrors(f)
	v.maxLen(verr, "text", f.Text, v.limits.PostTextMaxLen)
	if _, failed := verr.Fields["group"]; !failed && f.Group != "" && f.GroupId() == nil {
		verr.Fields["group"] = invalidChoice
	}
	return verr.orNil()
}

func (v *Validator) CreateComment(f CreateCommentForm) error {
	f.Text = strings.TrimSpace(f.Text)
	verr := v.structErrors(f)
	v.maxLen(verr, "text", f.Text, v.limits.CommentTextMaxLen)
	return verr.orNil()
}

func (v *Validator) Signup(f SignupForm) error {
	verr := v.structErrors(f)
	if _, failed := verr.Fields["password1"]; !failed && len([]rune(f.Password)) < v.limits.PasswordMinLen {
		verr.Fields["password1"] = fmt.Sprintf("This password is too short. It must contain at least %d characters.", v.limits.PasswordMinLen)
	}
	return verr.orNil()
}

func (v *Validator) Login(f LoginForm) error {
	return v.structErrors(f).orNil()
}

func (v *Validator) Group(f GroupForm) error {
	return v.structErrors(f).orNil()
}

type fieldErrors struct {
	*internal_errors.ValidationError
}

func (e fieldErrors) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e.ValidationError
}

func (v *Validator) structErrors(form any) fieldErrors {
	out := fieldErrors{&internal_errors.ValidationError{Fields: map[string]string{}}}
	err := v.validate.Struct(form)
	if err == nil {
		return out
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out.Fields["__all__"] = err.Error()
		return out
	}
	for _, fe := range verrs {
		if _, seen := out.Fields[fe.Field()]; !seen {
			out.Fields[fe.Field()] = message(fe)
		}
	}
	return out
}

func (v *Validator) maxLen(out fieldErrors, field, value string, limit int) {
	if _, failed := out.Fields[field]; failed || limit <= 0 {
		return
	}
	if err := v.validate.Var(value, fmt.Sprintf("max=%d", limit)); err != nil {
		out.Fields[field] = fmt.Sprintf("Ensure this value has at most %d characters.", limit)
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "number":
		return invalidChoice
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	case "slug":
		return "Enter a valid slug consisting of letters, numbers, underscores or hyphens."
	case "eqfield":
		return "The two password fields didn't match."
	}
	return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
}
