package seed

import (
	"fmt"
	"log"

	"yatube/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seeder populates the database with a realistic social graph of users,
// groups, posts, comments and follows.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes every seeded row, children first.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, model := range []interface{}{
		&models.Comment{},
		&models.Follow{},
		&models.Post{},
		&models.Group{},
		&models.User{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	return nil
}

// Seed creates the requested number of users and posts, files roughly half
// the posts under groups, sprinkles comments, and builds a random follow
// graph. All seeded users share the password "password123".
func (s *Seeder) Seed(numUsers, numPosts int) error {
	log.Printf("Seeding %d users and %d posts...", numUsers, numPosts)

	var groups []*models.Group
	for i := 0; i < 5; i++ {
		group, err := s.factory.CreateGroup()
		if err != nil {
			return fmt.Errorf("seed group: %w", err)
		}
		groups = append(groups, group)
	}

	var users []*models.User
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}
	if len(users) == 0 {
		return nil
	}

	var posts []*models.Post
	for i := 0; i < numPosts; i++ {
		author := users[s.factory.rand.Intn(len(users))]
		var group *models.Group
		if s.factory.rand.Intn(2) == 0 {
			group = groups[s.factory.rand.Intn(len(groups))]
		}
		post, err := s.factory.CreatePost(author, group)
		if err != nil {
			return fmt.Errorf("seed post: %w", err)
		}
		posts = append(posts, post)
	}

	for _, post := range posts {
		for i := 0; i < s.factory.rand.Intn(4); i++ {
			commenter := users[s.factory.rand.Intn(len(users))]
			if _, err := s.factory.CreateComment(post, commenter); err != nil {
				return fmt.Errorf("seed comment: %w", err)
			}
		}
	}

	follows := 0
	for _, reader := range users {
		for i := 0; i < s.factory.rand.Intn(6); i++ {
			author := users[s.factory.rand.Intn(len(users))]
			if author.ID == reader.ID {
				continue
			}
			follow := &models.Follow{UserID: reader.ID, AuthorID: author.ID}
			err := s.db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "author_id"}},
				DoNothing: true,
			}).Create(follow).Error
			if err != nil {
				return fmt.Errorf("seed follow: %w", err)
			}
			follows++
		}
	}

	log.Printf("Seeded %d groups, %d users, %d posts, %d follows",
		len(groups), len(users), len(posts), follows)
	return nil
}
