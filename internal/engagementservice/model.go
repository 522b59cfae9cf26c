package engagementservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/quillfeed/quillfeed/internal/common"
)

var (
	ErrAlreadyLiked = errors.New("blog already liked")
)

func newEngagementModel(db *sql.DB) *EngagementModel {
	return &EngagementModel{db: db}
}

func uniqueViolation(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23505" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

func (m *EngagementModel) blogExists(ctx context.Context, blogID int) (bool, error) {
	var exists bool
	err := m.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM blogs WHERE id = $1)`, blogID).Scan(&exists)
	return exists, err
}

// insertLike writes the like and reads the fresh count in one transaction. The
// unique (user_id, blog_id) index is what closes the race between concurrent
// likes for the same pair: both inserts reach the database, exactly one wins,
// the loser surfaces as ErrAlreadyLiked. There is no read-then-write check to
// race past.
func (m *EngagementModel) insertLike(ctx context.Context, userID, blogID int) (int, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO likes (user_id, blog_id)
		VALUES ($1, $2)`

	_, err = tx.ExecContext(ctx, query, userID, blogID)
	if err != nil {
		switch {
		case uniqueViolation(err, "likes_user_id_blog_id_key"):
			return 0, ErrAlreadyLiked
		default:
			return 0, err
		}
	}

	var count int
	err = tx.QueryRowContext(ctx, `SELECT count(*) FROM likes WHERE blog_id = $1`, blogID).Scan(&count)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return count, nil
}

func (m *EngagementModel) deleteLike(ctx context.Context, userID, blogID int) (int, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	query := `
		DELETE FROM likes
		WHERE user_id = $1 AND blog_id = $2`

	res, err := tx.ExecContext(ctx, query, userID, blogID)
	if err != nil {
		return 0, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	if rows == 0 {
		return 0, common.ErrRecordNotFound
	}

	var count int
	err = tx.QueryRowContext(ctx, `SELECT count(*) FROM likes WHERE blog_id = $1`, blogID).Scan(&count)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return count, nil
}

func (m *EngagementModel) likeExists(ctx context.Context, userID, blogID int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM likes
			WHERE user_id = $1 AND blog_id = $2
		)`

	var exists bool
	err := m.db.QueryRowContext(ctx, query, userID, blogID).Scan(&exists)
	return exists, err
}

func (m *EngagementModel) insertComment(ctx context.Context, comment *Comment) error {
	query := `
		INSERT INTO comments (blog_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := m.db.QueryRowContext(ctx, query, comment.BlogID, comment.UserID, comment.Content).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		switch {
		case errors.As(err, &pqErr) && pqErr.Code == "23503" && pqErr.Constraint == "comments_blog_id_fkey":
			return common.ErrRecordNotFound
		default:
			return err
		}
	}

	return nil
}

func (m *EngagementModel) getCommentByID(ctx context.Context, id int) (*Comment, error) {
	query := `
		SELECT c.id, c.blog_id, c.user_id, c.content, c.created_at, u.id, u.name, u.email
		FROM comments c
		JOIN users u ON c.user_id = u.id
		WHERE c.id = $1`

	var comment Comment
	err := m.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID, &comment.BlogID, &comment.UserID, &comment.Content, &comment.CreatedAt,
		&comment.User.ID, &comment.User.Name, &comment.User.Email,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &comment, nil
}

// getCommentsByBlogID reads one newest-first page and the total inside a
// single transaction so the metadata matches the page.
func (m *EngagementModel) getCommentsByBlogID(ctx context.Context, blogID, limit, offset int) ([]Comment, int, error) {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback()

	query := `
		SELECT c.id, c.blog_id, c.user_id, c.content, c.created_at, u.id, u.name, u.email
		FROM comments c
		JOIN users u ON c.user_id = u.id
		WHERE c.blog_id = $1
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT $2 OFFSET $3`

	rows, err := tx.QueryContext(ctx, query, blogID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		var comment Comment
		err := rows.Scan(
			&comment.ID, &comment.BlogID, &comment.UserID, &comment.Content, &comment.CreatedAt,
			&comment.User.ID, &comment.User.Name, &comment.User.Email,
		)
		if err != nil {
			return nil, 0, err
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	err = tx.QueryRowContext(ctx, `SELECT count(*) FROM comments WHERE blog_id = $1`, blogID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}
