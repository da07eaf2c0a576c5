package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yatube-dev/yatube/internal/domain"
)

func (s *Storage) CreateComment(data domain.CommentCreationData) (domain.CommentId, error) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	var id domain.CommentId
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO comments(post_id, author_id, text) VALUES($1, $2, $3) RETURNING id",
		data.PostId, data.AuthorId, data.Text,
	).Scan(&id)
	if err != nil {
		if isPgError(err, foreignKeyViolation) {
			return 0, referenceError(err)
		}
		return 0, fmt.Errorf("failed to insert comment: %w", err)
	}
	return id, nil
}

// Comments returns the comments of a post, newest first.
func (s *Storage) Comments(postId domain.PostId) ([]domain.Comment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.post_id, c.text, c.created,
		       u.id, u.username, u.first_name, u.last_name
		FROM comments c
		LEFT JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created DESC, c.id DESC`, postId)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		var (
			c         domain.Comment
			authorId  sql.NullInt64
			username  sql.NullString
			firstName sql.NullString
			lastName  sql.NullString
		)
		if err := rows.Scan(&c.Id, &c.PostId, &c.Text, &c.Created, &authorId, &username, &firstName, &lastName); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		if authorId.Valid {
			c.Author = &domain.User{
				Id:        authorId.Int64,
				Username:  username.String,
				FirstName: firstName.String,
				LastName:  lastName.String,
			}
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}
	return comments, nil
}
