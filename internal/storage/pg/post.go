package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/yatube-dev/yatube/internal/domain"
	internal_errors "github.com/yatube-dev/yatube/internal/errors"
)

const selectPosts = `
	SELECT
		p.id, p.text, p.pub_date, p.image,
		u.id, u.username, u.first_name, u.last_name,
		g.id, g.title, g.slug, g.description
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN groups g ON g.id = p.group_id`

// =========================================================================
// Public Methods (satisfy service.PostStorage and service.FeedStorage)
// =========================================================================

func (s *Storage) CreatePost(data domain.PostCreationData) (domain.PostId, error) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	var id domain.PostId
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO posts(text, author_id, group_id, image) VALUES($1, $2, $3, $4) RETURNING id",
		data.Text, data.AuthorId, nullGroupId(data.GroupId), data.Image,
	).Scan(&id)
	if err != nil {
		if isPgError(err, foreignKeyViolation) {
			return 0, referenceError(err)
		}
		return 0, fmt.Errorf("failed to insert post: %w", err)
	}
	return id, nil
}

func (s *Storage) Post(id domain.PostId) (domain.Post, error) {
	ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()

	return s.post(ctx, s.db, id)
}

// UpdatePost changes text and group. The image is replaced only when data.Image
// is set. pub_date and author are never touched.
func (s *Storage) UpdatePost(data domain.PostUpdateData) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		query := "UPDATE posts SET text = $1, group_id = $2 WHERE id = $3"
		args := []any{data.Text, nullGroupId(data.GroupId), data.Id}
		if data.Image != nil {
			query = "UPDATE posts SET text = $1, group_id = $2, image = $4 WHERE id = $3"
			args = append(args, *data.Image)
		}
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			if isPgError(err, foreignKeyViolation) {
				return referenceError(err)
			}
			return fmt.Errorf("failed to update post: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check affected rows for post update: %w", err)
		}
		if n == 0 {
			return internal_errors.NotFound("post")
		}
		return nil
	})
}

// CountPosts returns the size of the listing selected by filter.
func (s *Storage) CountPosts(filter domain.FeedFilter) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()

	where, args := buildFilter(filter)
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT count(*) FROM posts p"+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

// ListPosts returns one window of the listing, newest first.
func (s *Storage) ListPosts(filter domain.FeedFilter, limit, offset int) ([]domain.Post, error) {
	ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()

	where, args := buildFilter(filter)
	n := len(args)
	query := fmt.Sprintf("%s%s ORDER BY p.pub_date DESC, p.id DESC LIMIT $%d OFFSET $%d", selectPosts, where, n+1, n+2)
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}
	return posts, nil
}

// =========================================================================
// Internal Methods
// =========================================================================

func (s *Storage) post(ctx context.Context, q Querier, id domain.PostId) (domain.Post, error) {
	p, err := scanPost(q.QueryRowContext(ctx, selectPosts+" WHERE p.id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Post{}, internal_errors.NotFound("post")
		}
		return domain.Post{}, err
	}
	return p, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (domain.Post, error) {
	var (
		p         domain.Post
		groupId   sql.NullInt64
		groupName sql.NullString
		groupSlug sql.NullString
		groupDesc sql.NullString
	)
	err := row.Scan(
		&p.Id, &p.Text, &p.PubDate, &p.Image,
		&p.Author.Id, &p.Author.Username, &p.Author.FirstName, &p.Author.LastName,
		&groupId, &groupName, &groupSlug, &groupDesc,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Post{}, err
		}
		return domain.Post{}, fmt.Errorf("failed to scan post: %w", err)
	}
	if groupId.Valid {
		p.Group = &domain.Group{
			Id:          groupId.Int64,
			Title:       groupName.String,
			Slug:        groupSlug.String,
			Description: groupDesc.String,
		}
	}
	return p, nil
}

func buildFilter(f domain.FeedFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.GroupId != nil {
		args = append(args, *f.GroupId)
		conds = append(conds, fmt.Sprintf("p.group_id = $%d", len(args)))
	}
	if f.AuthorId != nil {
		args = append(args, *f.AuthorId)
		conds = append(conds, fmt.Sprintf("p.author_id = $%d", len(args)))
	}
	if f.FollowerId != nil {
		args = append(args, *f.FollowerId)
		conds = append(conds, fmt.Sprintf("p.author_id IN (SELECT author_id FROM follows WHERE user_id = $%d)", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func nullGroupId(id *domain.GroupId) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

// referenceError names the missing row behind a foreign key violation using the
// default constraint names, e.g. posts_group_id_fkey.
func referenceError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch {
	case strings.Contains(pqErr.Constraint, "group_id"):
		return internal_errors.NotFound("group")
	case strings.Contains(pqErr.Constraint, "post_id"):
		return internal_errors.NotFound("post")
	default:
		return internal_errors.NotFound("user")
	}
}
