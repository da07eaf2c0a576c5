package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/yatube-dev/yatube/internal/domain"
	internal_errors "github.com/yatube-dev/yatube/internal/errors"
)

func (s *Storage) CreateGroup(data domain.GroupCreationData) (domain.GroupId, error) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	var id domain.GroupId
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO groups(title, slug, description) VALUES($1, $2, $3) RETURNING id",
		data.Title, data.Slug, data.Description,
	).Scan(&id)
	if err != nil {
		if isPgError(err, uniqueViolation) {
			return 0, &internal_errors.ErrorWithStatusCode{Message: "group with this slug already exists", StatusCode: http.StatusConflict}
		}
		return 0, fmt.Errorf("failed to insert group: %w", err)
	}
	return id, nil
}

func (s *Storage) Group(slug domain.GroupSlug) (domain.Group, error) {
	ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()

	var g domain.Group
	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, slug, description FROM groups WHERE slug = $1", slug,
	).Scan(&g.Id, &g.Title, &g.Slug, &g.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Group{}, internal_errors.NotFound("group")
		}
		return domain.Group{}, fmt.Errorf("failed to query group: %w", err)
	}
	return g, nil
}

// Groups lists every group ordered by title, for the post form select.
func (s *Storage) Groups() ([]domain.Group, error) {
	ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, "SELECT id, title, slug, description FROM groups ORDER BY title, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	groups := []domain.Group{}
	for rows.Next() {
		var g domain.Group
		if err := rows.Scan(&g.Id, &g.Title, &g.Slug, &g.Description); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating groups: %w", err)
	}
	return groups, nil
}
