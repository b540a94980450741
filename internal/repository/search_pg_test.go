package repository

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The PostgreSQL branch ranks title matches with the full-text index. sqlmock
// pins the generated SQL since the SQLite tests never exercise it.
func TestPostRepository_Search_Postgres(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	postRows := sqlmock.NewRows([]string{
		"id", "title", "content", "cover_image", "category", "user_id",
		"created_at", "comments_count", "upvotes_count", "rank",
	}).AddRow(
		3, "Gardening in March", "body", "https://img", "hobby", uint(7),
		time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC), 2, 5, 0.42,
	)

	mock.ExpectQuery(`ts_rank\(to_tsvector\('english', title\), plainto_tsquery\('english', \$1\)\) AS rank`).
		WithArgs("gardening", "gardening", SearchLimit).
		WillReturnRows(postRows)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id" = \$1`).
		WithArgs(uint(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).
			AddRow(7, "Author", "author@example.com"))

	got, err := repo.Search(ctx, "gardening")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Gardening in March", got[0].Title)
	assert.Equal(t, 2, got[0].CommentsCount)
	assert.Equal(t, 5, got[0].UpvotesCount)
	assert.Equal(t, "Author", got[0].User.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Search_Postgres_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`plainto_tsquery`).
		WillReturnError(assert.AnError)

	_, err := repo.Search(context.Background(), "gardening")
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 500, appErr.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
