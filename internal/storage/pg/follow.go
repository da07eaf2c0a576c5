package pg

import (
	"context"
	"fmt"

	"github.com/yatube-dev/yatube/internal/domain"
	internal_errors "github.com/yatube-dev/yatube/internal/errors"
)

// Follow creates the user -> author edge. An existing edge is left as is and a
// self edge is rejected with ErrSelfFollow.
func (s *Storage) Follow(userId, authorId domain.UserId) error {
	if userId == authorId {
		return internal_errors.ErrSelfFollow
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO follows(user_id, author_id) VALUES($1, $2)
		ON CONFLICT ON CONSTRAINT follows_unique DO NOTHING`,
		userId, authorId)
	if err != nil {
		switch {
		case isPgError(err, checkViolation):
			return internal_errors.ErrSelfFollow
		case isPgError(err, foreignKeyViolation):
			return referenceError(err)
		}
		return fmt.Errorf("failed to insert follow: %w", err)
	}
	return nil
}

// Unfollow deletes the edge if present. A missing edge is not an error.
func (s *Storage) Unfollow(userId, authorId domain.UserId) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM follows WHERE user_id = $1 AND author_id = $2", userId, authorId); err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}
	return nil
}

func (s *Storage) IsFollowing(userId, authorId domain.UserId) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()

	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM follows WHERE user_id = $1 AND author_id = $2)",
		userId, authorId,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query follow: %w", err)
	}
	return exists, nil
}

func (s *Storage) CountFollows(userId, authorId domain.UserId) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()

	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT count(*) FROM follows WHERE user_id = $1 AND author_id = $2",
		userId, authorId,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count follows: %w", err)
	}
	return n, nil
}
