package handler

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/yatube-dev/yatube/internal/domain"
	"github.com/yatube-dev/yatube/internal/errors"
	"github.com/yatube-dev/yatube/internal/logger"
	"github.com/yatube-dev/yatube/internal/middleware"
	"github.com/yatube-dev/yatube/internal/validation"
)

const (
	invalidGroupChoice = "Select a valid choice. That choice is not one of the available choices."
	uploadTooLarge     = "The upload is too large."
)

type postDetailData struct {
	domain.PostDetail
	Form   validation.CreateCommentForm
	Errors map[string]string
}

type postFormData struct {
	Form         validation.PostForm
	Errors       map[string]string
	Groups       []domain.Group
	IsEdit       bool
	PostId       domain.PostId
	CurrentImage string
	Accept       string
}

func (h *Handler) PostDetail(w http.ResponseWriter, r *http.Request) {
	id, err := parseIdParam(r, "id", "post")
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	detail, err := h.feed.PostDetail(id, viewerId(r))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderTemplate(w, r, "post_detail.html", postDetailData{PostDetail: detail, Errors: map[string]string{}})
}

func (h *Handler) PostCreateGet(w http.ResponseWriter, r *http.Request) {
	h.renderPostForm(w, r, postFormData{Errors: map[string]string{}})
}

func (h *Handler) PostCreatePost(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	errs := map[string]string{}

	form, image, err := h.parsePostForm(w, r, errs)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	if image != nil {
		defer image.File.Close()
	}
	if middleware.BodyTooLarge(r) {
		h.renderPostForm(w, r, postFormData{Form: form, Errors: errs})
		return
	}
	if err := fieldErrors(h.validate.CreatePost(validation.CreatePostForm{PostForm: form}), errs); err != nil {
		h.renderError(w, r, err)
		return
	}
	if len(errs) > 0 {
		h.renderPostForm(w, r, postFormData{Form: form, Errors: errs})
		return
	}

	_, err = h.post.Create(domain.PostCreationData{
		Text:     form.Text,
		GroupId:  form.GroupId(),
		AuthorId: user.Id,
	}, pendingImage(image))
	if err != nil {
		if errors.IsNotFound(err) && form.GroupId() != nil {
			errs["group"] = invalidGroupChoice
			h.renderPostForm(w, r, postFormData{Form: form, Errors: errs})
			return
		}
		h.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, profileURL(user.Username), http.StatusFound)
}

func (h *Handler) PostEditGet(w http.ResponseWriter, r *http.Request) {
	post, ok := h.editablePost(w, r)
	if !ok {
		return
	}
	h.renderPostForm(w, r, postFormData{
		Form:         postFormFrom(post),
		Errors:       map[string]string{},
		IsEdit:       true,
		PostId:       post.Id,
		CurrentImage: post.Image,
	})
}

func (h *Handler) PostEditPost(w http.ResponseWriter, r *http.Request) {
	post, ok := h.editablePost(w, r)
	if !ok {
		return
	}
	user := middleware.GetUserFromContext(r)
	errs := map[string]string{}

	form, image, err := h.parsePostForm(w, r, errs)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	if image != nil {
		defer image.File.Close()
	}
	if middleware.BodyTooLarge(r) {
		h.renderPostForm(w, r, postFormData{Form: postFormFrom(post), Errors: errs, IsEdit: true, PostId: post.Id, CurrentImage: post.Image})
		return
	}
	if err := fieldErrors(h.validate.EditPost(validation.EditPostForm{PostForm: form}), errs); err != nil {
		h.renderError(w, r, err)
		return
	}
	data := postFormData{Form: form, Errors: errs, IsEdit: true, PostId: post.Id, CurrentImage: post.Image}
	if len(errs) > 0 {
		h.renderPostForm(w, r, data)
		return
	}

	err = h.post.Update(user.Id, domain.PostUpdateData{
		Id:      post.Id,
		Text:    form.Text,
		GroupId: form.GroupId(),
	}, pendingImage(image))
	switch {
	case err == nil:
	case stderrors.Is(err, errors.ErrNotAuthor):
		http.Redirect(w, r, postURL(post.Id), http.StatusFound)
		return
	case errors.IsNotFound(err) && form.GroupId() != nil:
		errs["group"] = invalidGroupChoice
		h.renderPostForm(w, r, data)
		return
	default:
		h.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, postURL(post.Id), http.StatusFound)
}

// editablePost loads the post from the URL for its author. Anyone else is
// sent to the post page; the second result is false when a response was
// already written.
func (h *Handler) editablePost(w http.ResponseWriter, r *http.Request) (domain.Post, bool) {
	user := middleware.GetUserFromContext(r)
	id, err := parseIdParam(r, "id", "post")
	if err != nil {
		h.renderError(w, r, err)
		return domain.Post{}, false
	}
	post, err := h.post.Edit(user.Id, id)
	if stderrors.Is(err, errors.ErrNotAuthor) {
		http.Redirect(w, r, postURL(id), http.StatusFound)
		return domain.Post{}, false
	}
	if err != nil {
		h.renderError(w, r, err)
		return domain.Post{}, false
	}
	return post, true
}

// parsePostForm reads the text fields and the optional image. Problems with
// the upload are put into errs; only unexpected failures are returned.
func (h *Handler) parsePostForm(w http.ResponseWriter, r *http.Request, errs map[string]string) (validation.PostForm, *validation.Image, error) {
	if middleware.BodyTooLarge(r) {
		errs["image"] = uploadTooLarge
		return validation.PostForm{}, nil, nil
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := h.validate.ParseMultipart(w, r); err != nil {
			errs["image"] = uploadTooLarge
			return validation.PostForm{}, nil, nil
		}
	} else if err := r.ParseForm(); err != nil {
		return validation.PostForm{}, nil, errors.NewValidationError("text", "Malformed form.")
	}

	form := validation.PostForm{
		Text:  strings.TrimSpace(r.FormValue("text")),
		Group: r.FormValue("group"),
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File["image"]) == 0 {
		return form, nil, nil
	}

	image, err := h.validate.Image(r.MultipartForm.File["image"][0])
	if err := fieldErrors(err, errs); err != nil {
		logger.Log.Error("failed to read upload", "path", r.URL.Path, "error", err)
		return form, nil, err
	}
	return form, image, nil
}

func (h *Handler) renderPostForm(w http.ResponseWriter, r *http.Request, data postFormData) {
	groups, err := h.group.List()
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	data.Groups = groups
	data.Accept = strings.Join(h.cfg.AllowedImageMimeTypes, ",")
	h.renderTemplate(w, r, "create_post.html", data)
}

func postFormFrom(post domain.Post) validation.PostForm {
	form := validation.PostForm{Text: post.Text}
	if post.Group != nil {
		form.Group = formatId(post.Group.Id)
	}
	return form
}

func pendingImage(image *validation.Image) *domain.PendingImage {
	if image == nil {
		return nil
	}
	return &domain.PendingImage{Data: image.File, Extension: image.Extension}
}
