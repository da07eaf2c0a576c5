package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yatube-dev/yatube/internal/domain"
	internal_errors "github.com/yatube-dev/yatube/internal/errors"
)

// =========================================================================
// Public Methods (satisfy service.UserStorage)
// =========================================================================

func (s *Storage) SaveUser(user domain.User) (domain.UserId, error) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	return s.saveUser(ctx, s.db, user)
}

func (s *Storage) User(username domain.Username) (domain.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()

	return s.user(ctx, s.db, "username", username)
}

func (s *Storage) UserById(id domain.UserId) (domain.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()

	return s.user(ctx, s.db, "id", id)
}

// =========================================================================
// Internal Methods
// =========================================================================

func (s *Storage) saveUser(ctx context.Context, q Querier, user domain.User) (domain.UserId, error) {
	var id domain.UserId
	err := q.QueryRowContext(ctx, `
		INSERT INTO users(username, first_name, last_name, password_hash)
		VALUES($1, $2, $3, $4)
		RETURNING id`,
		user.Username, user.FirstName, user.LastName, user.PassHash,
	).Scan(&id)
	if err != nil {
		if isPgError(err, uniqueViolation) {
			return 0, internal_errors.ErrUserExists
		}
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

// column is never user input
func (s *Storage) user(ctx context.Context, q Querier, column string, value any) (domain.User, error) {
	var user domain.User
	err := q.QueryRowContext(ctx,
		"SELECT id, username, first_name, last_name, password_hash, created_at FROM users WHERE "+column+" = $1",
		value,
	).Scan(&user.Id, &user.Username, &user.FirstName, &user.LastName, &user.PassHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NotFound("user")
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}
