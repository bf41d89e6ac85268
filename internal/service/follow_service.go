package service

import (
	"context"

	"yatube/internal/models"
	"yatube/internal/repository"
)

// FollowService manages subscriptions between readers and authors.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// resolveAuthor looks up the target of a follow operation by username.
func (s *FollowService) resolveAuthor(ctx context.Context, username string) (*models.User, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, models.NewNotFoundError("User", username)
	}
	return author, nil
}

// Follow subscribes userID to the author named by username. Following
// yourself or someone you already follow silently does nothing. Returns
// the author either way.
func (s *FollowService) Follow(ctx context.Context, userID uint, username string) (*models.User, error) {
	author, err := s.resolveAuthor(ctx, username)
	if err != nil {
		return nil, err
	}

	if author.ID == userID {
		return author, nil
	}

	follow := &models.Follow{UserID: userID, AuthorID: author.ID}
	if err := s.followRepo.Create(ctx, follow); err != nil {
		return nil, err
	}

	return author, nil
}

// Unfollow removes the subscription to the author named by username.
// Unfollowing someone you never followed is a no-op.
func (s *FollowService) Unfollow(ctx context.Context, userID uint, username string) (*models.User, error) {
	author, err := s.resolveAuthor(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := s.followRepo.Delete(ctx, userID, author.ID); err != nil {
		return nil, err
	}

	return author, nil
}
