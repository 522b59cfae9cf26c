package blogservice

import (
	"database/sql"
	"time"

	"github.com/quillfeed/quillfeed/internal/userservice"
)

type Blog struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	// Content is stored in Markdown format.
	Content     string           `json:"content"`
	Slug        string           `json:"slug"`
	IsPublished bool             `json:"is_published"`
	User        userservice.User `json:"user"`
	UserID      int              `json:"user_id"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Version     int              `json:"-"`

	LikeCount    int `json:"like_count"`
	CommentCount int `json:"comment_count"`
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m *BlogModel
}
