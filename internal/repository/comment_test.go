package repository

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_Create_MissingPost(t *testing.T) {
	db := newTestDB(t)
	comments := NewCommentRepository(db)

	err := comments.Create(context.Background(), &models.Comment{
		Content:    "hello?",
		UserID:     1,
		AuthorName: "Ada",
		PostID:     404,
	})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)

	var count int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCommentRepository_CreateAndList(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	author := seedUser(t, users, "commenter@example.com")
	post := &models.Post{
		Title:      "Open thread",
		Content:    "body",
		CoverImage: "https://img",
		Category:   "community",
		UserID:     author.ID,
	}
	require.NoError(t, posts.Create(ctx, post))

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	first := &models.Comment{Content: "first", UserID: author.ID, AuthorName: "Author", PostID: post.ID, CreatedAt: base}
	second := &models.Comment{Content: "second", UserID: author.ID, AuthorName: "Author", PostID: post.ID, CreatedAt: base.Add(time.Minute)}
	require.NoError(t, comments.Create(ctx, first))
	require.NoError(t, comments.Create(ctx, second))

	got, err := comments.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "second", got[0].Content)
	assert.Equal(t, "first", got[1].Content)
	assert.Equal(t, "Author", got[0].AuthorName)

	withComments, err := posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, withComments.CommentsCount)
	assert.Len(t, withComments.Comments, 2)
}
