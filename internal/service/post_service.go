package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// PostService handles blog post creation, listing, lookup, search and votes.
type PostService struct {
	postRepo repository.PostRepository
}

// CreatePostInput carries a validated post payload plus the author identity
// taken from the session.
type CreatePostInput struct {
	UserID     uint
	Title      string
	Content    string
	CoverImage string
	Category   string
}

// NewPostService creates a new PostService.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// CreatePost stores a new post and returns it with the author preloaded.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	post := &models.Post{
		Title:      in.Title,
		Content:    in.Content,
		CoverImage: in.CoverImage,
		Category:   in.Category,
		UserID:     in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// ListPosts returns posts newest first.
func (s *PostService) ListPosts(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.List(ctx, limit, offset)
}

// GetPost returns one post with its author and comments.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// SearchPosts matches the query against titles, most relevant first. An
// empty result is an ordinary success.
func (s *PostService) SearchPosts(ctx context.Context, query string) ([]*models.Post, error) {
	if strings.TrimSpace(query) == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.postRepo.Search(ctx, strings.TrimSpace(query))
}

// HasUpvoted reports whether the user already upvoted the post.
func (s *PostService) HasUpvoted(ctx context.Context, userID, postID uint) (bool, error) {
	return s.postRepo.HasUpvoted(ctx, userID, postID)
}

// UpvotePost records the user's upvote and returns the refreshed post.
// Voting twice converges on a single row.
func (s *PostService) UpvotePost(ctx context.Context, userID, postID uint) (*models.Post, error) {
	if err := s.postRepo.Upvote(ctx, userID, postID); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID)
}

// RemoveUpvote withdraws the user's upvote and returns the refreshed post.
func (s *PostService) RemoveUpvote(ctx context.Context, userID, postID uint) (*models.Post, error) {
	if err := s.postRepo.RemoveUpvote(ctx, userID, postID); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID)
}
