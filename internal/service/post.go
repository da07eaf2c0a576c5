package service

import (
	"github.com/yatube-dev/yatube/internal/domain"
	"github.com/yatube-dev/yatube/internal/errors"
	"github.com/yatube-dev/yatube/internal/logger"
)

type PostService interface {
	Create(data domain.PostCreationData, image *domain.PendingImage) (domain.PostId, error)
	Get(id domain.PostId) (domain.Post, error)
	// Edit loads the post for its author; anyone else gets ErrNotAuthor.
	Edit(actor domain.UserId, id domain.PostId) (domain.Post, error)
	Update(actor domain.UserId, data domain.PostUpdateData, image *domain.PendingImage) error
}

type Post struct {
	storage PostStorage
	media   MediaStorage
}

type PostStorage interface {
	CreatePost(data domain.PostCreationData) (domain.PostId, error)
	Post(id domain.PostId) (domain.Post, error)
	UpdatePost(data domain.PostUpdateData) error
}

func NewPost(storage PostStorage, media MediaStorage) PostService {
	return &Post{storage: storage, media: media}
}

func (p *Post) Create(data domain.PostCreationData, image *domain.PendingImage) (domain.PostId, error) {
	if image != nil {
		path, err := p.media.SaveImage(image.Data, image.Extension)
		if err != nil {
			return 0, err
		}
		data.Image = path
	}

	id, err := p.storage.CreatePost(data)
	if err != nil {
		p.discard(data.Image)
		return 0, err
	}
	return id, nil
}

func (p *Post) Get(id domain.PostId) (domain.Post, error) {
	return p.storage.Post(id)
}

func (p *Post) Edit(actor domain.UserId, id domain.PostId) (domain.Post, error) {
	post, err := p.storage.Post(id)
	if err != nil {
		return domain.Post{}, err
	}
	if post.Author.Id != actor {
		return post, errors.ErrNotAuthor
	}
	return post, nil
}

// Update rewrites text and group of the actor's own post. A new image replaces
// the stored one and the old file is removed.
func (p *Post) Update(actor domain.UserId, data domain.PostUpdateData, image *domain.PendingImage) error {
	current, err := p.Edit(actor, data.Id)
	if err != nil {
		return err
	}

	if image != nil {
		path, err := p.media.SaveImage(image.Data, image.Extension)
		if err != nil {
			return err
		}
		data.Image = &path
	}

	if err := p.storage.UpdatePost(data); err != nil {
		if data.Image != nil {
			p.discard(*data.Image)
		}
		return err
	}

	if data.Image != nil && current.Image != "" && current.Image != *data.Image {
		p.discard(current.Image)
	}
	return nil
}

func (p *Post) discard(path string) {
	if path == "" {
		return
	}
	if err := p.media.DeleteFile(path); err != nil {
		logger.Log.Warn("failed to delete image", "path", path, "error", err)
	}
}
