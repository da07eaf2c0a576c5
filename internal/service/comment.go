package service

import (
	"github.com/yatube-dev/yatube/internal/domain"
)

type CommentService interface {
	Create(data domain.CommentCreationData) (domain.CommentId, error)
}

type Comment struct {
	storage CommentStorage
}

type CommentStorage interface {
	CreateComment(data domain.CommentCreationData) (domain.CommentId, error)
}

func NewComment(storage CommentStorage) CommentService {
	return &Comment{storage}
}

// Create appends a comment. A missing post surfaces as NotFound from storage.
func (c *Comment) Create(data domain.CommentCreationData) (domain.CommentId, error) {
	return c.storage.CreateComment(data)
}
