package engagementservice

import (
	"database/sql"
	"time"

	"github.com/quillfeed/quillfeed/internal/userservice"
)

type Comment struct {
	ID        int              `json:"id"`
	BlogID    int              `json:"blog_id"`
	UserID    int              `json:"user_id"`
	Content   string           `json:"content"`
	User      userservice.User `json:"user"`
	CreatedAt time.Time        `json:"created_at"`
}

// LikeResult reports the caller's like state together with the blog's fresh
// total, read in the same transaction as the write.
type LikeResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

type EngagementModel struct {
	db *sql.DB
}

type EngagementService struct {
	m *EngagementModel
}
