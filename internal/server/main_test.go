package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"yatube/internal/config"
	"yatube/internal/database"
	"yatube/internal/models"
	"yatube/internal/repository"
	"yatube/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(database.PersistentModels()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

// newTestServer wires a Server against in-memory sqlite with the full route
// table and no metrics middleware.
func newTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()
	db := setupHandlerTestDB(t)

	cfg := &config.Config{
		Port:      "0",
		JWTSecret: "handler-test-secret",
		MediaRoot: t.TempDir(),
		Env:       "test",
	}

	s := &Server{
		config:      cfg,
		db:          db,
		userRepo:    repository.NewUserRepository(db),
		groupRepo:   repository.NewGroupRepository(db),
		postRepo:    repository.NewPostRepository(db),
		commentRepo: repository.NewCommentRepository(db),
		followRepo:  repository.NewFollowRepository(db),
	}
	s.feedService = service.NewFeedService(s.postRepo, s.groupRepo, s.userRepo, s.followRepo)
	s.followService = service.NewFollowService(s.followRepo, s.userRepo)
	s.postService = service.NewPostService(s.postRepo, s.groupRepo)
	s.commentService = service.NewCommentService(s.commentRepo, s.postRepo)

	app := fiber.New()
	s.SetupRoutes(app)

	return s, app, db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Password: "pw"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func createGroup(t *testing.T, db *gorm.DB, slug string) *models.Group {
	t.Helper()
	group := &models.Group{Title: "Group " + slug, Slug: slug, Description: "about " + slug}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("create group %s: %v", slug, err)
	}
	return group
}

func createPost(t *testing.T, db *gorm.DB, userID uint, text string, groupID *uint, at time.Time) *models.Post {
	t.Helper()
	post := &models.Post{Text: text, UserID: userID, GroupID: groupID, CreatedAt: at}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}

// authCookieFor issues a session cookie for the user.
func authCookieFor(t *testing.T, s *Server, user *models.User) *http.Cookie {
	t.Helper()
	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return &http.Cookie{Name: authCookie, Value: token}
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func getRequest(t *testing.T, app *fiber.App, path string, cookie *http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return doRequest(t, app, req)
}

func postRequest(t *testing.T, app *fiber.App, path string, cookie *http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return doRequest(t, app, req)
}
