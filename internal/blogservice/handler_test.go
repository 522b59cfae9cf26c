package blogservice

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/quillfeed/quillfeed/internal/common"
	"github.com/stretchr/testify/assert"
)

func setupTestUser(db *sql.DB, email, name string) (int, error) {
	query := `
		INSERT INTO users (email, name, password)
		VALUES ($1, $2, $3)
		RETURNING id`

	var id int
	err := db.QueryRow(query, email, name, []byte("x")).Scan(&id)
	return id, err
}

func setupTestEnvironment(t *testing.T) (*BlogService, *sql.DB, int) {
	db := common.TestDB("file://../../migrations", t)

	userID, err := setupTestUser(db, "author@example.com", "Author")
	assert.NoError(t, err)

	return NewBlogService(db), db, userID
}

func createTestBlog(db *sql.DB, userID int, title, slug string, published bool, createdAt time.Time) (int, error) {
	query := `
		INSERT INTO blogs (title, content, slug, is_published, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	var id int
	err := db.QueryRow(query, title, "Some content.", slug, published, userID, createdAt).Scan(&id)
	return id, err
}

func TestCreateBlog(t *testing.T) {
	s, db, userID := setupTestEnvironment(t)

	testCases := []struct {
		name        string
		req         *CreateBlogRequest
		expectedErr error
	}{
		{
			name:        "valid draft",
			req:         &CreateBlogRequest{Title: "Hello World", Content: "First post.", UserID: userID},
			expectedErr: nil,
		},
		{
			name:        "valid published",
			req:         &CreateBlogRequest{Title: "Second Post", Content: "More content.", IsPublished: true, UserID: userID},
			expectedErr: nil,
		},
		{
			name:        "empty title",
			req:         &CreateBlogRequest{Title: "", Content: "Content.", UserID: userID},
			expectedErr: common.ValidationError{Errors: map[string]string{"title": "must be provided"}},
		},
		{
			name:        "blank content",
			req:         &CreateBlogRequest{Title: "A Title", Content: "   ", UserID: userID},
			expectedErr: common.ValidationError{Errors: map[string]string{"content": "must be provided"}},
		},
		{
			name:        "unknown user",
			req:         &CreateBlogRequest{Title: "A Title", Content: "Content.", UserID: 9999},
			expectedErr: ErrUserForeignKey,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()

			blog, err := s.CreateBlog(ctx, tc.req)
			assert.Equal(t, tc.expectedErr, err)

			if err == nil {
				assert.NotZero(t, blog.ID)
				assert.Equal(t, tc.req.IsPublished, blog.IsPublished)
				assert.Equal(t, "Author", blog.User.Name)
				assert.Zero(t, blog.LikeCount)
			}
		})
	}

	var slug string
	err := db.QueryRow("SELECT slug FROM blogs WHERE title = 'Hello World'").Scan(&slug)
	assert.NoError(t, err)
	assert.Equal(t, "hello-world", slug)
}

func TestCreateBlogSlugCollision(t *testing.T) {
	s, _, userID := setupTestEnvironment(t)
	ctx := context.Background()

	first, err := s.CreateBlog(ctx, &CreateBlogRequest{Title: "My Post", Content: "a", UserID: userID})
	assert.NoError(t, err)
	assert.Equal(t, "my-post", first.Slug)

	second, err := s.CreateBlog(ctx, &CreateBlogRequest{Title: "My Post", Content: "b", UserID: userID})
	assert.NoError(t, err)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.True(t, strings.HasPrefix(second.Slug, "my-post-"))
}

func TestGetBlogByOwner(t *testing.T) {
	s, db, ownerID := setupTestEnvironment(t)

	otherID, err := setupTestUser(db, "other@example.com", "Other")
	assert.NoError(t, err)

	blogID, err := createTestBlog(db, ownerID, "Owned Post", "owned-post", false, time.Now())
	assert.NoError(t, err)

	testCases := []struct {
		name        string
		blogID      int
		callerID    int
		expectedErr error
	}{
		{name: "owner reads own draft", blogID: blogID, callerID: ownerID, expectedErr: nil},
		{name: "non-owner gets forbidden", blogID: blogID, callerID: otherID, expectedErr: common.ErrForbidden},
		{name: "missing blog is not found for owner", blogID: 9999, callerID: ownerID, expectedErr: common.ErrRecordNotFound},
		{name: "missing blog is not found for non-owner", blogID: 9999, callerID: otherID, expectedErr: common.ErrRecordNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			blog, err := s.GetBlogByOwner(context.Background(), tc.blogID, tc.callerID)
			assert.Equal(t, tc.expectedErr, err)

			if err == nil {
				assert.Equal(t, tc.blogID, blog.ID)
			}
		})
	}
}

func TestUpdateBlog(t *testing.T) {
	s, db, ownerID := setupTestEnvironment(t)
	ctx := context.Background()

	otherID, err := setupTestUser(db, "other@example.com", "Other")
	assert.NoError(t, err)

	newTitle := "Renamed Post"
	newContent := "Rewritten content."
	published := true

	t.Run("partial patch keeps untouched fields", func(t *testing.T) {
		blog, err := s.CreateBlog(ctx, &CreateBlogRequest{Title: "Original Title", Content: "Original content.", UserID: ownerID})
		assert.NoError(t, err)

		updated, err := s.UpdateBlog(ctx, blog.ID, ownerID, &UpdateBlogRequest{Content: &newContent})
		assert.NoError(t, err)
		assert.Equal(t, "Original Title", updated.Title)
		assert.Equal(t, "original-title", updated.Slug)
		assert.Equal(t, newContent, updated.Content)
		assert.False(t, updated.IsPublished)
	})

	t.Run("title change reallocates slug", func(t *testing.T) {
		blog, err := s.CreateBlog(ctx, &CreateBlogRequest{Title: "Sluggish Post", Content: "c", UserID: ownerID})
		assert.NoError(t, err)

		updated, err := s.UpdateBlog(ctx, blog.ID, ownerID, &UpdateBlogRequest{Title: &newTitle})
		assert.NoError(t, err)
		assert.Equal(t, "renamed-post", updated.Slug)
	})

	t.Run("unchanged title keeps slug candidacy against itself", func(t *testing.T) {
		blog, err := s.CreateBlog(ctx, &CreateBlogRequest{Title: "Stable Title", Content: "c", UserID: ownerID})
		assert.NoError(t, err)

		title := "Stable Title"
		updated, err := s.UpdateBlog(ctx, blog.ID, ownerID, &UpdateBlogRequest{Title: &title})
		assert.NoError(t, err)
		assert.Equal(t, "stable-title", updated.Slug)
	})

	t.Run("publish toggle both directions", func(t *testing.T) {
		blog, err := s.CreateBlog(ctx, &CreateBlogRequest{Title: "Toggle Post", Content: "c", UserID: ownerID})
		assert.NoError(t, err)

		updated, err := s.UpdateBlog(ctx, blog.ID, ownerID, &UpdateBlogRequest{IsPublished: &published})
		assert.NoError(t, err)
		assert.True(t, updated.IsPublished)

		unpublished := false
		updated, err = s.UpdateBlog(ctx, blog.ID, ownerID, &UpdateBlogRequest{IsPublished: &unpublished})
		assert.NoError(t, err)
		assert.False(t, updated.IsPublished)
	})

	t.Run("non-owner cannot update", func(t *testing.T) {
		blog, err := s.CreateBlog(ctx, &CreateBlogRequest{Title: "Protected Post", Content: "c", UserID: ownerID})
		assert.NoError(t, err)

		_, err = s.UpdateBlog(ctx, blog.ID, otherID, &UpdateBlogRequest{Title: &newTitle})
		assert.ErrorIs(t, err, common.ErrForbidden)
	})

	t.Run("missing blog is not found", func(t *testing.T) {
		_, err := s.UpdateBlog(ctx, 9999, ownerID, &UpdateBlogRequest{Title: &newTitle})
		assert.ErrorIs(t, err, common.ErrRecordNotFound)
	})
}

func TestDeleteBlogCascades(t *testing.T) {
	s, db, ownerID := setupTestEnvironment(t)
	ctx := context.Background()

	otherID, err := setupTestUser(db, "other@example.com", "Other")
	assert.NoError(t, err)

	blogID, err := createTestBlog(db, ownerID, "Doomed Post", "doomed-post", true, time.Now())
	assert.NoError(t, err)

	_, err = db.Exec("INSERT INTO likes (user_id, blog_id) VALUES ($1, $2)", otherID, blogID)
	assert.NoError(t, err)
	_, err = db.Exec("INSERT INTO comments (blog_id, user_id, content) VALUES ($1, $2, 'nice')", blogID, otherID)
	assert.NoError(t, err)

	err = s.DeleteBlog(ctx, blogID, otherID)
	assert.ErrorIs(t, err, common.ErrForbidden)

	err = s.DeleteBlog(ctx, blogID, ownerID)
	assert.NoError(t, err)

	var likes, comments int
	assert.NoError(t, db.QueryRow("SELECT count(*) FROM likes").Scan(&likes))
	assert.NoError(t, db.QueryRow("SELECT count(*) FROM comments").Scan(&comments))
	assert.Zero(t, likes)
	assert.Zero(t, comments)

	err = s.DeleteBlog(ctx, blogID, ownerID)
	assert.ErrorIs(t, err, common.ErrRecordNotFound)
}

func TestListBlogsByOwner(t *testing.T) {
	s, db, ownerID := setupTestEnvironment(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	_, err := createTestBlog(db, ownerID, "Oldest", "oldest", true, base)
	assert.NoError(t, err)
	_, err = createTestBlog(db, ownerID, "Middle Draft", "middle-draft", false, base.Add(time.Minute))
	assert.NoError(t, err)
	_, err = createTestBlog(db, ownerID, "Newest", "newest", true, base.Add(2*time.Minute))
	assert.NoError(t, err)

	blogs, err := s.ListBlogsByOwner(ctx, ownerID)
	assert.NoError(t, err)
	assert.Len(t, blogs, 3)
	assert.Equal(t, "Newest", blogs[0].Title)
	assert.Equal(t, "Middle Draft", blogs[1].Title)
	assert.Equal(t, "Oldest", blogs[2].Title)

	emptyID, err := setupTestUser(db, "fresh@example.com", "Fresh")
	assert.NoError(t, err)

	blogs, err = s.ListBlogsByOwner(ctx, emptyID)
	assert.NoError(t, err)
	assert.Empty(t, blogs)
}

func TestPublicFeed(t *testing.T) {
	s, db, ownerID := setupTestEnvironment(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, title := range []string{"One", "Two", "Three", "Four", "Five"} {
		_, err := createTestBlog(db, ownerID, title, normalizeSlug(title), true, base.Add(time.Duration(i)*time.Minute))
		assert.NoError(t, err)
	}
	_, err := createTestBlog(db, ownerID, "Hidden Draft", "hidden-draft", false, base.Add(time.Hour))
	assert.NoError(t, err)

	t.Run("drafts excluded and newest first", func(t *testing.T) {
		blogs, meta, err := s.PublicFeed(ctx, 1, 10)
		assert.NoError(t, err)
		assert.Len(t, blogs, 5)
		assert.Equal(t, "Five", blogs[0].Title)
		assert.Equal(t, 5, meta.Total)
		assert.Equal(t, 1, meta.TotalPages)
	})

	t.Run("second page", func(t *testing.T) {
		blogs, meta, err := s.PublicFeed(ctx, 2, 2)
		assert.NoError(t, err)
		assert.Len(t, blogs, 2)
		assert.Equal(t, "Three", blogs[0].Title)
		assert.Equal(t, 3, meta.TotalPages)
	})

	t.Run("limit clamped to default when unset", func(t *testing.T) {
		_, meta, err := s.PublicFeed(ctx, 0, 0)
		assert.NoError(t, err)
		assert.Equal(t, 1, meta.Page)
		assert.Equal(t, common.DefaultFeedPageSize, meta.Limit)
	})

	t.Run("limit clamped to maximum", func(t *testing.T) {
		_, meta, err := s.PublicFeed(ctx, 1, 999)
		assert.NoError(t, err)
		assert.Equal(t, common.MaxPageSize, meta.Limit)
	})

	t.Run("page past the end is empty with intact metadata", func(t *testing.T) {
		blogs, meta, err := s.PublicFeed(ctx, 99, 10)
		assert.NoError(t, err)
		assert.Empty(t, blogs)
		assert.Equal(t, 5, meta.Total)
	})
}

func TestGetPublishedBySlug(t *testing.T) {
	s, db, ownerID := setupTestEnvironment(t)
	ctx := context.Background()

	_, err := createTestBlog(db, ownerID, "Public Post", "public-post", true, time.Now())
	assert.NoError(t, err)
	_, err = createTestBlog(db, ownerID, "Secret Draft", "secret-draft", false, time.Now())
	assert.NoError(t, err)

	blog, err := s.GetPublishedBySlug(ctx, "public-post")
	assert.NoError(t, err)
	assert.Equal(t, "Public Post", blog.Title)
	assert.Equal(t, "Author", blog.User.Name)

	// an unpublished slug and an unknown slug fail identically
	_, errDraft := s.GetPublishedBySlug(ctx, "secret-draft")
	_, errUnknown := s.GetPublishedBySlug(ctx, "no-such-slug")
	assert.ErrorIs(t, errDraft, common.ErrRecordNotFound)
	assert.Equal(t, errDraft, errUnknown)
}

func TestPublicFeedScenario(t *testing.T) {
	s, _, ownerID := setupTestEnvironment(t)
	ctx := context.Background()

	blog, err := s.CreateBlog(ctx, &CreateBlogRequest{Title: "Hello World", Content: "First post.", UserID: ownerID})
	assert.NoError(t, err)

	// draft: visible to the owner, absent from the public surfaces
	owned, err := s.ListBlogsByOwner(ctx, ownerID)
	assert.NoError(t, err)
	assert.Len(t, owned, 1)

	feed, _, err := s.PublicFeed(ctx, 1, 10)
	assert.NoError(t, err)
	assert.Empty(t, feed)

	_, err = s.GetPublishedBySlug(ctx, "hello-world")
	assert.ErrorIs(t, err, common.ErrRecordNotFound)

	// publish, then everything public lights up
	published := true
	_, err = s.UpdateBlog(ctx, blog.ID, ownerID, &UpdateBlogRequest{IsPublished: &published})
	assert.NoError(t, err)

	feed, meta, err := s.PublicFeed(ctx, 1, 10)
	assert.NoError(t, err)
	assert.Len(t, feed, 1)
	assert.Equal(t, 1, meta.Total)

	got, err := s.GetPublishedBySlug(ctx, "hello-world")
	assert.NoError(t, err)
	assert.Equal(t, blog.ID, got.ID)
}
