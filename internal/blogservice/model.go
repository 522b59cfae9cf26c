package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/quillfeed/quillfeed/internal/common"
)

var (
	ErrUserForeignKey = errors.New("user_id does not exist")
)

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

// ForeignKeyError is a helper function to check if the error is a foreign key constraint error.
func ForeignKeyError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23503" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

const blogColumns = `
	b.id, b.title, b.content, b.slug, b.is_published, b.user_id, b.created_at, b.updated_at, b.version,
	u.id, u.name, u.email,
	(SELECT count(*) FROM likes l WHERE l.blog_id = b.id),
	(SELECT count(*) FROM comments c WHERE c.blog_id = b.id)`

func scanBlog(row interface{ Scan(...any) error }, blog *Blog) error {
	return row.Scan(
		&blog.ID, &blog.Title, &blog.Content, &blog.Slug, &blog.IsPublished, &blog.UserID,
		&blog.CreatedAt, &blog.UpdatedAt, &blog.Version,
		&blog.User.ID, &blog.User.Name, &blog.User.Email,
		&blog.LikeCount, &blog.CommentCount,
	)
}

func (m *BlogModel) insert(ctx context.Context, blog *Blog) error {
	query := `
		INSERT INTO blogs (title, content, slug, is_published, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at, version`

	args := []any{blog.Title, blog.Content, blog.Slug, blog.IsPublished, blog.UserID}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&blog.ID, &blog.CreatedAt, &blog.UpdatedAt, &blog.Version)
	if err != nil {
		switch {
		case ForeignKeyError(err, "blogs_user_id_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	return nil
}

// getBlogByID joins the users table for the author's display info and pulls
// the engagement counts in the same query.
func (m *BlogModel) getBlogByID(ctx context.Context, id int) (*Blog, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		WHERE b.id = $1`, blogColumns)

	var blog Blog
	err := scanBlog(m.db.QueryRowContext(ctx, query, id), &blog)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &blog, nil
}

func (m *BlogModel) updateBlog(ctx context.Context, blog *Blog) error {
	query := `
		UPDATE blogs
		SET title = $1, content = $2, slug = $3, is_published = $4, updated_at = now(), version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING updated_at, version`

	args := []any{blog.Title, blog.Content, blog.Slug, blog.IsPublished, blog.ID, blog.Version}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&blog.UpdatedAt, &blog.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return common.ErrEditConflict
		default:
			return err
		}
	}

	return nil
}

// deleteBlog removes the row; likes and comments go with it via the cascading
// foreign keys. Ownership has already been established by the service layer.
func (m *BlogModel) deleteBlog(ctx context.Context, blogID int) error {
	query := `
		DELETE FROM blogs
		WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, blogID)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return common.ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}

func (m *BlogModel) getBlogsByUserID(ctx context.Context, userID int) ([]Blog, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC, b.id DESC`, blogColumns)

	rows, err := m.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []Blog{}
	for rows.Next() {
		var blog Blog
		if err := scanBlog(rows, &blog); err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

// getPublishedBlogs returns one page of the public feed together with the
// total number of published blogs, both read inside a single transaction so
// the pagination metadata matches the page.
func (m *BlogModel) getPublishedBlogs(ctx context.Context, limit, offset int) ([]Blog, int, error) {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`
		SELECT %s
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		WHERE b.is_published
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $1 OFFSET $2`, blogColumns)

	rows, err := tx.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	blogs := []Blog{}
	for rows.Next() {
		var blog Blog
		if err := scanBlog(rows, &blog); err != nil {
			return nil, 0, err
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	err = tx.QueryRowContext(ctx, `SELECT count(*) FROM blogs WHERE is_published`).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, err
	}

	return blogs, total, nil
}

// getPublishedBySlug deliberately filters on is_published in the query itself:
// an unpublished blog produces the same no-rows result as a missing one.
func (m *BlogModel) getPublishedBySlug(ctx context.Context, slug string) (*Blog, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		WHERE b.slug = $1 AND b.is_published`, blogColumns)

	var blog Blog
	err := scanBlog(m.db.QueryRowContext(ctx, query, slug), &blog)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &blog, nil
}

func (m *BlogModel) slugTaken(ctx context.Context, slug string, excludeID int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM blogs
			WHERE slug = $1 AND id != $2
		)`

	var taken bool
	err := m.db.QueryRowContext(ctx, query, slug, excludeID).Scan(&taken)
	if err != nil {
		return false, err
	}

	return taken, nil
}
