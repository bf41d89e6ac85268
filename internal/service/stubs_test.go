package service

import (
	"context"

	"yatube/internal/models"
)

type postRepoStub struct {
	createFn         func(context.Context, *models.Post) error
	getByIDFn        func(context.Context, uint) (*models.Post, error)
	updateFn         func(context.Context, *models.Post) error
	deleteFn         func(context.Context, uint) error
	countAllFn       func(context.Context) (int64, error)
	listAllFn        func(context.Context, int, int) ([]models.Post, error)
	countByGroupFn   func(context.Context, uint) (int64, error)
	listByGroupFn    func(context.Context, uint, int, int) ([]models.Post, error)
	countByAuthorFn  func(context.Context, uint) (int64, error)
	listByAuthorFn   func(context.Context, uint, int, int) ([]models.Post, error)
	countFollowingFn func(context.Context, uint) (int64, error)
	listFollowingFn  func(context.Context, uint, int, int) ([]models.Post, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) CountAll(ctx context.Context) (int64, error) {
	return s.countAllFn(ctx)
}
func (s *postRepoStub) ListAll(ctx context.Context, limit, offset int) ([]models.Post, error) {
	return s.listAllFn(ctx, limit, offset)
}
func (s *postRepoStub) CountByGroup(ctx context.Context, groupID uint) (int64, error) {
	return s.countByGroupFn(ctx, groupID)
}
func (s *postRepoStub) ListByGroup(ctx context.Context, groupID uint, limit, offset int) ([]models.Post, error) {
	return s.listByGroupFn(ctx, groupID, limit, offset)
}
func (s *postRepoStub) CountByAuthor(ctx context.Context, userID uint) (int64, error) {
	return s.countByAuthorFn(ctx, userID)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error) {
	return s.listByAuthorFn(ctx, userID, limit, offset)
}
func (s *postRepoStub) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	return s.countFollowingFn(ctx, userID)
}
func (s *postRepoStub) ListFollowing(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error) {
	return s.listFollowingFn(ctx, userID, limit, offset)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:         func(context.Context, *models.Post) error { return nil },
		getByIDFn:        func(context.Context, uint) (*models.Post, error) { return &models.Post{}, nil },
		updateFn:         func(context.Context, *models.Post) error { return nil },
		deleteFn:         func(context.Context, uint) error { return nil },
		countAllFn:       func(context.Context) (int64, error) { return 0, nil },
		listAllFn:        func(context.Context, int, int) ([]models.Post, error) { return nil, nil },
		countByGroupFn:   func(context.Context, uint) (int64, error) { return 0, nil },
		listByGroupFn:    func(context.Context, uint, int, int) ([]models.Post, error) { return nil, nil },
		countByAuthorFn:  func(context.Context, uint) (int64, error) { return 0, nil },
		listByAuthorFn:   func(context.Context, uint, int, int) ([]models.Post, error) { return nil, nil },
		countFollowingFn: func(context.Context, uint) (int64, error) { return 0, nil },
		listFollowingFn:  func(context.Context, uint, int, int) ([]models.Post, error) { return nil, nil },
	}
}

type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return &models.User{}, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		deleteFn:        func(context.Context, uint) error { return nil },
	}
}

type groupRepoStub struct {
	getByIDFn   func(context.Context, uint) (*models.Group, error)
	getBySlugFn func(context.Context, string) (*models.Group, error)
	createFn    func(context.Context, *models.Group) error
	deleteFn    func(context.Context, uint) error
}

func (s *groupRepoStub) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	return s.getByIDFn(ctx, id)
}
func (s *groupRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *groupRepoStub) Create(ctx context.Context, group *models.Group) error {
	return s.createFn(ctx, group)
}
func (s *groupRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopGroupRepo() *groupRepoStub {
	return &groupRepoStub{
		getByIDFn:   func(context.Context, uint) (*models.Group, error) { return &models.Group{}, nil },
		getBySlugFn: func(context.Context, string) (*models.Group, error) { return &models.Group{}, nil },
		createFn:    func(context.Context, *models.Group) error { return nil },
		deleteFn:    func(context.Context, uint) error { return nil },
	}
}

type followRepoStub struct {
	createFn func(context.Context, *models.Follow) error
	deleteFn func(context.Context, uint, uint) error
	existsFn func(context.Context, uint, uint) (bool, error)
	countFn  func(context.Context) (int64, error)
}

func (s *followRepoStub) Create(ctx context.Context, follow *models.Follow) error {
	return s.createFn(ctx, follow)
}
func (s *followRepoStub) Delete(ctx context.Context, userID, authorID uint) error {
	return s.deleteFn(ctx, userID, authorID)
}
func (s *followRepoStub) Exists(ctx context.Context, userID, authorID uint) (bool, error) {
	return s.existsFn(ctx, userID, authorID)
}
func (s *followRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn: func(context.Context, *models.Follow) error { return nil },
		deleteFn: func(context.Context, uint, uint) error { return nil },
		existsFn: func(context.Context, uint, uint) (bool, error) { return false, nil },
		countFn:  func(context.Context) (int64, error) { return 0, nil },
	}
}

type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	listByPostFn func(context.Context, uint) ([]models.Comment, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(context.Context, *models.Comment) error { return nil },
		listByPostFn: func(context.Context, uint) ([]models.Comment, error) { return nil, nil },
	}
}
