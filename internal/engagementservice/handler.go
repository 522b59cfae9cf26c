package engagementservice

import (
	"context"
	"database/sql"

	"github.com/quillfeed/quillfeed/internal/common"
)

func NewEngagementService(db *sql.DB) *EngagementService {
	return &EngagementService{m: newEngagementModel(db)}
}

// LikeBlog records a like for the (user, blog) pair. The blog must exist; a
// duplicate like fails with ErrAlreadyLiked even under concurrent
// double-submission, because the store's unique constraint is the arbiter.
func (s *EngagementService) LikeBlog(ctx context.Context, userID, blogID int) (*LikeResult, error) {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	validateInt(v, blogID, "blog_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	exists, err := s.m.blogExists(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, common.ErrRecordNotFound
	}

	count, err := s.m.insertLike(ctx, userID, blogID)
	if err != nil {
		return nil, err
	}

	return &LikeResult{Liked: true, LikeCount: count}, nil
}

// UnlikeBlog removes the caller's like. A pair that was never liked (or whose
// blog is gone, taking the like with it) fails with not-found.
func (s *EngagementService) UnlikeBlog(ctx context.Context, userID, blogID int) (*LikeResult, error) {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	validateInt(v, blogID, "blog_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	count, err := s.m.deleteLike(ctx, userID, blogID)
	if err != nil {
		return nil, err
	}

	return &LikeResult{Liked: false, LikeCount: count}, nil
}

// HasLiked is a pure lookup with no side effects.
func (s *EngagementService) HasLiked(ctx context.Context, userID, blogID int) (bool, error) {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	validateInt(v, blogID, "blog_id")
	if !v.Valid() {
		return false, v.ValidationError()
	}

	return s.m.likeExists(ctx, userID, blogID)
}

// AddComment appends a comment to a blog. Publish state is deliberately not
// checked: commenting on drafts is permitted, matching the platform's
// observed behavior.
func (s *EngagementService) AddComment(ctx context.Context, userID, blogID int, content string) (*Comment, error) {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	validateInt(v, blogID, "blog_id")
	validateCommentContent(v, content)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	exists, err := s.m.blogExists(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, common.ErrRecordNotFound
	}

	comment := &Comment{
		BlogID:  blogID,
		UserID:  userID,
		Content: content,
	}

	if err := s.m.insertComment(ctx, comment); err != nil {
		return nil, err
	}

	return s.m.getCommentByID(ctx, comment.ID)
}

// ListComments returns one newest-first page of a blog's comments. Page floors
// at 1 and the page size is clamped into [1, 50] with a default of 20; out of
// range values are corrected silently.
func (s *EngagementService) ListComments(ctx context.Context, blogID, page, pageSize int) ([]Comment, common.Metadata, error) {
	v := common.NewValidator()
	validateInt(v, blogID, "blog_id")
	if !v.Valid() {
		return nil, common.Metadata{}, v.ValidationError()
	}

	page = common.ClampPage(page)
	pageSize = common.ClampLimit(pageSize, common.DefaultCommentPageSize)
	offset := (page - 1) * pageSize

	comments, total, err := s.m.getCommentsByBlogID(ctx, blogID, pageSize, offset)
	if err != nil {
		return nil, common.Metadata{}, err
	}

	return comments, common.NewMetadata(total, page, pageSize), nil
}
