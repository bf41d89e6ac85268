package service

import (
	"context"
	"strings"

	"yatube/internal/models"
	"yatube/internal/repository"
)

// CommentService provides commenting logic.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// NewCommentService returns a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// AddComment attaches a comment to the post. The post must exist and the
// text must be non-empty.
func (s *CommentService) AddComment(ctx context.Context, postID, userID uint, text string) (*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, models.NewValidationError("Comment text is required")
	}

	comment := &models.Comment{Text: text, PostID: postID, UserID: userID}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// ListComments returns the post's comments, oldest first.
func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID)
}
