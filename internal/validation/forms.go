package validation

import "strconv"

// PostForm carries the fields shared by the create and edit post forms.
// Group is the raw select value; empty means no group.
type PostForm struct {
	Text  string `form:"text" validate:"required"`
	Group string `form:"group" validate:"omitempty,number"`
}

// GroupId returns the selected group, or nil when none was chosen or the
// value is not a valid id.
func (f PostForm) GroupId() *int64 {
	if f.Group == "" {
		return nil
	}
	id, err := strconv.ParseInt(f.Group, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

type CreatePostForm struct {
	PostForm
}

type EditPostForm struct {
	PostForm
}

type CreateCommentForm struct {
	Text string `form:"text" validate:"required"`
}

type SignupForm struct {
	FirstName       string `form:"first_name" validate:"max=150"`
	LastName        string `form:"last_name" validate:"max=150"`
	Username        string `form:"username" validate:"required,max=150,username"`
	Password        string `form:"password1" validate:"required"`
	PasswordConfirm string `form:"password2" validate:"required,eqfield=Password"`
}

type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type GroupForm struct {
	Title       string `form:"title" validate:"required,max=200"`
	Slug        string `form:"slug" validate:"required,max=50,slug"`
	Description string `form:"description" validate:"required"`
}
