package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// CommentService handles comment creation and listing. Comments are
// append-only, so there is no update or delete path.
type CommentService struct {
	commentRepo repository.CommentRepository
}

// AddCommentInput carries a validated comment payload plus the author
// identity taken from the session.
type AddCommentInput struct {
	PostID     uint
	UserID     uint
	AuthorName string
	Content    string
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo}
}

// AddComment attaches a comment to an existing post. The author name is
// written alongside the comment so listings never join on users.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	comment := &models.Comment{
		Content:    in.Content,
		UserID:     in.UserID,
		AuthorName: in.AuthorName,
		PostID:     in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns a post's comments, newest first.
func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID)
}
