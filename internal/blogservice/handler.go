package blogservice

import (
	"context"
	"database/sql"

	"github.com/quillfeed/quillfeed/internal/common"
)

func NewBlogService(db *sql.DB) *BlogService {
	return &BlogService{m: newBlogModel(db)}
}

type CreateBlogRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	IsPublished bool   `json:"is_published"`
	UserID      int    `json:"user_id"`
}

// UpdateBlogRequest is a partial patch: nil fields keep their prior value.
type UpdateBlogRequest struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	IsPublished *bool   `json:"is_published"`
}

// CreateBlog creates a blog post for its owner, allocating a unique slug from
// the title. New posts are drafts unless the request says otherwise.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (*Blog, error) {
	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateContent(v, req.Content)
	validateInt(v, req.UserID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	slug, err := s.allocateSlug(ctx, req.Title, 0)
	if err != nil {
		return nil, err
	}

	blog := &Blog{
		Title:       req.Title,
		Content:     sanitizeMarkdown(req.Content),
		Slug:        slug,
		IsPublished: req.IsPublished,
		UserID:      req.UserID,
	}

	if err := s.m.insert(ctx, blog); err != nil {
		return nil, err
	}

	return s.m.getBlogByID(ctx, blog.ID)
}

// GetBlogByID returns a blog post by its ID regardless of ownership or
// publish state.
func (s *BlogService) GetBlogByID(ctx context.Context, id int) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBlogByID(ctx, id)
}

// GetBlogByOwner returns a blog post only to its owner. Existence is checked
// before ownership so probing a nonexistent id yields not-found, never
// forbidden.
func (s *BlogService) GetBlogByOwner(ctx context.Context, id, ownerID int) (*Blog, error) {
	blog, err := s.GetBlogByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if blog.UserID != ownerID {
		return nil, common.ErrForbidden
	}

	return blog, nil
}

// UpdateBlog applies a partial patch to an owned blog post. A title change
// reallocates the slug, excluding the post itself from the uniqueness check.
func (s *BlogService) UpdateBlog(ctx context.Context, id, ownerID int, req *UpdateBlogRequest) (*Blog, error) {
	blog, err := s.GetBlogByOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	v := common.NewValidator()
	if req.Title != nil {
		validateTitle(v, *req.Title)
	}
	if req.Content != nil {
		validateContent(v, *req.Content)
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if req.Title != nil {
		blog.Title = *req.Title

		slug, err := s.allocateSlug(ctx, blog.Title, blog.ID)
		if err != nil {
			return nil, err
		}
		blog.Slug = slug
	}

	if req.Content != nil {
		blog.Content = sanitizeMarkdown(*req.Content)
	}

	if req.IsPublished != nil {
		blog.IsPublished = *req.IsPublished
	}

	if err := s.m.updateBlog(ctx, blog); err != nil {
		return nil, err
	}

	return blog, nil
}

// DeleteBlog deletes an owned blog post together with its likes and comments.
func (s *BlogService) DeleteBlog(ctx context.Context, id, ownerID int) error {
	if _, err := s.GetBlogByOwner(ctx, id, ownerID); err != nil {
		return err
	}

	return s.m.deleteBlog(ctx, id)
}

// ListBlogsByOwner returns all of a user's blog posts newest-first, drafts
// included.
func (s *BlogService) ListBlogsByOwner(ctx context.Context, ownerID int) ([]Blog, error) {
	v := common.NewValidator()
	validateInt(v, ownerID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBlogsByUserID(ctx, ownerID)
}

// PublicFeed returns one newest-first page of published blog posts with
// author info and engagement counts. Page floors at 1 and limit is clamped
// into [1, 50] with a default of 10.
func (s *BlogService) PublicFeed(ctx context.Context, page, limit int) ([]Blog, common.Metadata, error) {
	page = common.ClampPage(page)
	limit = common.ClampLimit(limit, common.DefaultFeedPageSize)
	offset := (page - 1) * limit

	blogs, total, err := s.m.getPublishedBlogs(ctx, limit, offset)
	if err != nil {
		return nil, common.Metadata{}, err
	}

	return blogs, common.NewMetadata(total, page, limit), nil
}

// GetPublishedBySlug resolves a slug for anonymous readers. Unpublished posts
// are indistinguishable from missing ones.
func (s *BlogService) GetPublishedBySlug(ctx context.Context, slug string) (*Blog, error) {
	v := common.NewValidator()
	v.Check(slug != "", "slug", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getPublishedBySlug(ctx, slug)
}
