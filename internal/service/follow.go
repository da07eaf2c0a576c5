package service

import (
	stderrors "errors"

	"github.com/yatube-dev/yatube/internal/domain"
	"github.com/yatube-dev/yatube/internal/errors"
)

type FollowService interface {
	// Follow and Unfollow return the resolved target so the caller can
	// redirect to its profile whatever the outcome.
	Follow(user domain.UserId, target domain.Username) (domain.User, error)
	Unfollow(user domain.UserId, target domain.Username) (domain.User, error)
}

type Follow struct {
	storage FollowStorage
}

type FollowStorage interface {
	User(username domain.Username) (domain.User, error)
	Follow(userId, authorId domain.UserId) error
	Unfollow(userId, authorId domain.UserId) error
}

func NewFollow(storage FollowStorage) FollowService {
	return &Follow{storage}
}

// Follow is idempotent. Following yourself is a no-op.
func (f *Follow) Follow(user domain.UserId, target domain.Username) (domain.User, error) {
	author, err := f.storage.User(target)
	if err != nil {
		return domain.User{}, err
	}
	if err := f.storage.Follow(user, author.Id); err != nil && !stderrors.Is(err, errors.ErrSelfFollow) {
		return author, err
	}
	return author, nil
}

// Unfollow is idempotent: a missing edge is not an error.
func (f *Follow) Unfollow(user domain.UserId, target domain.Username) (domain.User, error) {
	author, err := f.storage.User(target)
	if err != nil {
		return domain.User{}, err
	}
	if author.Id == user {
		return author, nil
	}
	if err := f.storage.Unfollow(user, author.Id); err != nil {
		return author, err
	}
	return author, nil
}
