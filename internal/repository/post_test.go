package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, repo UserRepository, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "Author", Email: email, Password: "hash"}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestPostRepository_CreateAndGetByID(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	ctx := context.Background()

	author := seedUser(t, users, "author@example.com")

	post := &models.Post{
		Title:      "First Light",
		Content:    "Morning pages.",
		CoverImage: "https://img.example.com/1.jpg",
		Category:   "journal",
		UserID:     author.ID,
	}
	require.NoError(t, posts.Create(ctx, post))
	require.NotZero(t, post.ID)

	got, err := posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "First Light", got.Title)
	assert.Equal(t, author.ID, got.User.ID)
	assert.Equal(t, "Author", got.User.Name)
	assert.Equal(t, 0, got.CommentsCount)
	assert.Equal(t, 0, got.UpvotesCount)
}

func TestPostRepository_GetByID_Missing(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostRepository(db)

	_, err := posts.GetByID(context.Background(), 999)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)
}

func TestPostRepository_List_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	ctx := context.Background()

	author := seedUser(t, users, "lister@example.com")
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		post := &models.Post{
			Title:      fmt.Sprintf("Post %d", i),
			Content:    "body",
			CoverImage: "https://img",
			Category:   "news",
			UserID:     author.ID,
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, posts.Create(ctx, post))
	}

	got, err := posts.List(ctx, 20, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Post 2", got[0].Title)
	assert.Equal(t, "Post 1", got[1].Title)
	assert.Equal(t, "Post 0", got[2].Title)
	assert.Equal(t, "Author", got[0].User.Name)
}

func TestPostRepository_List_CachesPerPageSize(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	db := newTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	ctx := context.Background()

	author := seedUser(t, users, "pager@example.com")
	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, posts.Create(ctx, &models.Post{
			Title:      fmt.Sprintf("Page item %d", i),
			Content:    "body",
			CoverImage: "https://img",
			Category:   "news",
			UserID:     author.ID,
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
		}))
	}

	full, err := posts.List(ctx, 20, 0)
	require.NoError(t, err)
	require.Len(t, full, 5)

	// A smaller page must not be served from the larger page's cache entry.
	two, err := posts.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, two, 2)
	assert.Equal(t, "Page item 4", two[0].Title)

	// And the small page must not pin the listing for full-size readers.
	fullAgain, err := posts.List(ctx, 20, 0)
	require.NoError(t, err)
	assert.Len(t, fullAgain, 5)

	assert.True(t, mr.Exists(cache.PostsListKey(20)))
	assert.True(t, mr.Exists(cache.PostsListKey(2)))

	// A new post drops every page size at once.
	require.NoError(t, posts.Create(ctx, &models.Post{
		Title:      "Fresh",
		Content:    "body",
		CoverImage: "https://img",
		Category:   "news",
		UserID:     author.ID,
	}))
	assert.False(t, mr.Exists(cache.PostsListKey(20)))
	assert.False(t, mr.Exists(cache.PostsListKey(2)))
}

func TestPostRepository_GetByID_RedisDownServesFromDB(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	db := newTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	ctx := context.Background()

	author := seedUser(t, users, "resilient@example.com")
	post := &models.Post{
		Title:      "Still here",
		Content:    "body",
		CoverImage: "https://img",
		Category:   "news",
		UserID:     author.ID,
	}
	require.NoError(t, posts.Create(ctx, post))

	mr.Close()

	got, err := posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Still here", got.Title)
}

func TestPostRepository_Search_Fallback(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	ctx := context.Background()

	author := seedUser(t, users, "searcher@example.com")

	for i := 0; i < 12; i++ {
		require.NoError(t, posts.Create(ctx, &models.Post{
			Title:      fmt.Sprintf("Gardening tips %d", i),
			Content:    "body",
			CoverImage: "https://img",
			Category:   "hobby",
			UserID:     author.ID,
		}))
	}
	require.NoError(t, posts.Create(ctx, &models.Post{
		Title:      "Completely unrelated",
		Content:    "body",
		CoverImage: "https://img",
		Category:   "misc",
		UserID:     author.ID,
	}))

	got, err := posts.Search(ctx, "Gardening")
	require.NoError(t, err)
	assert.Len(t, got, SearchLimit)
	for _, p := range got {
		assert.Contains(t, p.Title, "Gardening")
	}

	none, err := posts.Search(ctx, "submarine")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPostRepository_Upvote_Idempotent(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	ctx := context.Background()

	author := seedUser(t, users, "voter@example.com")
	post := &models.Post{
		Title:      "Voteworthy",
		Content:    "body",
		CoverImage: "https://img",
		Category:   "news",
		UserID:     author.ID,
	}
	require.NoError(t, posts.Create(ctx, post))

	require.NoError(t, posts.Upvote(ctx, author.ID, post.ID))
	require.NoError(t, posts.Upvote(ctx, author.ID, post.ID))

	got, err := posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.UpvotesCount)

	voted, err := posts.HasUpvoted(ctx, author.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, voted)

	require.NoError(t, posts.RemoveUpvote(ctx, author.ID, post.ID))

	voted, err = posts.HasUpvoted(ctx, author.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, voted)
}

func TestPostRepository_Upvote_MissingPost(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostRepository(db)

	err := posts.Upvote(context.Background(), 1, 777)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)
}
