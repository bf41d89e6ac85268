// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"yatube/internal/models"
	"yatube/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Password: string(hashedPassword),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateGroup constructs and persists a sample group.
func (f *Factory) CreateGroup(overrides ...func(*models.Group)) (*models.Group, error) {
	title := gofakeit.BookTitle()
	slug := slugify(title)
	if len(slug) > 40 {
		slug = strings.Trim(slug[:40], "-")
	}
	if len(slug) < 3 {
		slug = "group"
	}
	group := &models.Group{
		Title:       title,
		Slug:        slug + fmt.Sprintf("-%d", gofakeit.Number(100, 999)),
		Description: gofakeit.Sentence(12),
	}

	for _, override := range overrides {
		override(group)
	}

	if err := validation.ValidateGroupSlug(group.Slug); err != nil {
		return nil, fmt.Errorf("generated slug %q: %w", group.Slug, err)
	}

	if err := f.db.Create(group).Error; err != nil {
		return nil, err
	}
	return group, nil
}

// CreatePost constructs and persists a sample post for the given user, with
// its publication date spread over the last ninety days.
func (f *Factory) CreatePost(user *models.User, group *models.Group, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		Text:   gofakeit.Paragraph(1, 3, 8, "\n"),
		UserID: user.ID,
	}
	if group != nil {
		post.GroupID = &group.ID
	}

	daysBack := f.rand.Intn(90)
	minsBack := f.rand.Intn(24 * 60)
	post.CreatedAt = time.Now().
		Add(-time.Duration(daysBack) * 24 * time.Hour).
		Add(-time.Duration(minsBack) * time.Minute)

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment constructs and persists a sample comment.
func (f *Factory) CreateComment(post *models.Post, user *models.User) (*models.Comment, error) {
	comment := &models.Comment{
		Text:   gofakeit.Sentence(10),
		PostID: post.ID,
		UserID: user.ID,
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

func slugify(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	lastDash := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
