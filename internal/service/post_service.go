package service

import (
	"context"
	"strings"

	"yatube/internal/models"
	"yatube/internal/repository"
)

// PostForm carries user input for creating or editing a post.
type PostForm struct {
	Text    string
	GroupID *uint
	Image   string
}

// FieldErrors maps form field names to validation messages.
type FieldErrors map[string]string

// PostService provides post creation and editing logic.
type PostService struct {
	postRepo  repository.PostRepository
	groupRepo repository.GroupRepository
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, groupRepo repository.GroupRepository) *PostService {
	return &PostService{
		postRepo:  postRepo,
		groupRepo: groupRepo,
	}
}

// Validate checks the form and returns per-field messages. An empty map
// means the form is valid.
func (s *PostService) Validate(ctx context.Context, form *PostForm) (FieldErrors, error) {
	errs := FieldErrors{}

	if strings.TrimSpace(form.Text) == "" {
		errs["text"] = "Text is required"
	}

	if form.GroupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *form.GroupID); err != nil {
			if models.IsNotFound(err) {
				errs["group"] = "Select a valid group"
			} else {
				return nil, err
			}
		}
	}

	return errs, nil
}

// Create stores a new post for the author. The form must already be valid.
func (s *PostService) Create(ctx context.Context, userID uint, form *PostForm) (*models.Post, error) {
	post := &models.Post{
		Text:    form.Text,
		Image:   form.Image,
		UserID:  userID,
		GroupID: form.GroupID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// GetPost returns a single post with its author and group loaded.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// Edit applies the form to an existing post. Only the author may edit;
// anyone else gets an unauthorized error. The publication date never
// changes.
func (s *PostService) Edit(ctx context.Context, postID, userID uint, form *PostForm) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.UserID != userID {
		return nil, models.NewUnauthorizedError("Only the author can edit this post")
	}

	post.Text = form.Text
	post.GroupID = form.GroupID
	if form.Image != "" {
		post.Image = form.Image
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, postID)
}
