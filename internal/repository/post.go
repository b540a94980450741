package repository

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

// SearchLimit caps how many posts a search returns.
const SearchLimit = 10

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, limit, offset int) ([]*models.Post, error)
	Search(ctx context.Context, query string) ([]*models.Post, error)
	Upvote(ctx context.Context, userID, postID uint) error
	RemoveUpvote(ctx context.Context, userID, postID uint) error
	HasUpvoted(ctx context.Context, userID, postID uint) (bool, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("create", "posts")()

	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePostsList(ctx)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	key := cache.PostKey(id)

	err := cache.Aside(ctx, key, &post, cache.PostTTL, func() error {
		return r.applyPostCounts(readDB(r.db).WithContext(ctx)).
			Preload("User").
			Preload("Comments", func(db *gorm.DB) *gorm.DB {
				return db.Order("created_at DESC")
			}).
			First(&post, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post not found")
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	var posts []*models.Post

	fetch := func() error {
		return r.applyPostCounts(readDB(r.db).WithContext(ctx)).
			Preload("User").
			Order("created_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&posts).Error
	}

	// Only the first page is hot enough to cache; offsets bypass Redis.
	// The key carries the page size so different limits never alias.
	var err error
	if offset == 0 {
		err = cache.Aside(ctx, cache.PostsListKey(limit), &posts, cache.PostsListTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Search matches the query against post titles, most relevant first. On
// PostgreSQL it uses the full-text index; other dialects match substrings.
func (r *postRepository) Search(ctx context.Context, query string) ([]*models.Post, error) {
	var posts []*models.Post

	db := readDB(r.db).WithContext(ctx).Preload("User")

	var err error
	if r.db.Dialector.Name() == "postgres" {
		err = db.
			Select(postCountsSelect+", ts_rank(to_tsvector('english', title), plainto_tsquery('english', ?)) AS rank", query).
			Where("to_tsvector('english', title) @@ plainto_tsquery('english', ?)", query).
			Order("rank DESC").
			Limit(SearchLimit).
			Find(&posts).Error
	} else {
		err = db.
			Select(postCountsSelect).
			Where("title LIKE ?", "%"+query+"%").
			Order("created_at DESC").
			Limit(SearchLimit).
			Find(&posts).Error
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// postCountsSelect fetches comment and upvote counts in the same query as the posts.
const postCountsSelect = "posts.*, " +
	"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comments_count, " +
	"(SELECT COUNT(*) FROM upvotes WHERE upvotes.post_id = posts.id) AS upvotes_count"

func (r *postRepository) applyPostCounts(db *gorm.DB) *gorm.DB {
	return db.Select(postCountsSelect)
}

func (r *postRepository) Upvote(ctx context.Context, userID, postID uint) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return models.NewInternalError(err)
	}
	if count == 0 {
		return models.NewNotFoundError("Post not found")
	}

	// ON CONFLICT DO NOTHING makes concurrent double-taps converge on one row.
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO upvotes (user_id, post_id, created_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (user_id, post_id) DO NOTHING`,
		userID, postID,
	)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}

func (r *postRepository) RemoveUpvote(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Upvote{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}

func (r *postRepository) HasUpvoted(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	err := readDB(r.db).WithContext(ctx).
		Model(&models.Upvote{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
