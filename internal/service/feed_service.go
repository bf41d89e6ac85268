package service

import (
	"context"

	"yatube/internal/models"
	"yatube/internal/pagination"
	"yatube/internal/repository"
)

// FeedService assembles the paginated post feeds.
type FeedService struct {
	postRepo   repository.PostRepository
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

// NewFeedService returns a new FeedService.
func NewFeedService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
) *FeedService {
	return &FeedService{
		postRepo:   postRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// ProfileFeed bundles an author's page of posts with the viewer's
// relationship to them.
type ProfileFeed struct {
	Author      *models.User
	Page        *pagination.Page[models.Post]
	IsFollowing bool
}

// paginate counts, clamps the requested page and fetches one window.
func paginate(
	ctx context.Context,
	pageParam string,
	count func(context.Context) (int64, error),
	list func(ctx context.Context, limit, offset int) ([]models.Post, error),
) (*pagination.Page[models.Post], error) {
	total, err := count(ctx)
	if err != nil {
		return nil, err
	}

	totalPages := pagination.TotalPages(total, pagination.PageSize)
	number := pagination.Resolve(pageParam, totalPages)
	limit, offset := pagination.Window(number, pagination.PageSize)

	posts, err := list(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	page := pagination.New(posts, number, totalPages, total)
	return &page, nil
}

// GlobalFeed returns one page of all posts, newest first.
func (s *FeedService) GlobalFeed(ctx context.Context, pageParam string) (*pagination.Page[models.Post], error) {
	return paginate(ctx, pageParam, s.postRepo.CountAll, s.postRepo.ListAll)
}

// GroupFeed returns a group looked up by slug together with one page of
// its posts.
func (s *FeedService) GroupFeed(ctx context.Context, slug, pageParam string) (*models.Group, *pagination.Page[models.Post], error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	page, err := paginate(ctx, pageParam,
		func(ctx context.Context) (int64, error) {
			return s.postRepo.CountByGroup(ctx, group.ID)
		},
		func(ctx context.Context, limit, offset int) ([]models.Post, error) {
			return s.postRepo.ListByGroup(ctx, group.ID, limit, offset)
		},
	)
	if err != nil {
		return nil, nil, err
	}

	return group, page, nil
}

// Profile returns an author's profile feed. viewerID is zero for guests,
// in which case IsFollowing is always false.
func (s *FeedService) Profile(ctx context.Context, username, pageParam string, viewerID uint) (*ProfileFeed, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, models.NewNotFoundError("User", username)
	}

	page, err := paginate(ctx, pageParam,
		func(ctx context.Context) (int64, error) {
			return s.postRepo.CountByAuthor(ctx, author.ID)
		},
		func(ctx context.Context, limit, offset int) ([]models.Post, error) {
			return s.postRepo.ListByAuthor(ctx, author.ID, limit, offset)
		},
	)
	if err != nil {
		return nil, err
	}

	following := false
	if viewerID != 0 && viewerID != author.ID {
		following, err = s.followRepo.Exists(ctx, viewerID, author.ID)
		if err != nil {
			return nil, err
		}
	}

	return &ProfileFeed{Author: author, Page: page, IsFollowing: following}, nil
}

// FollowingFeed returns one page of posts by authors the user follows.
func (s *FeedService) FollowingFeed(ctx context.Context, userID uint, pageParam string) (*pagination.Page[models.Post], error) {
	return paginate(ctx, pageParam,
		func(ctx context.Context) (int64, error) {
			return s.postRepo.CountFollowing(ctx, userID)
		},
		func(ctx context.Context, limit, offset int) ([]models.Post, error) {
			return s.postRepo.ListFollowing(ctx, userID, limit, offset)
		},
	)
}
