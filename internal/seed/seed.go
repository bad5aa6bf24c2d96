// Package seed populates the database with fake marketplace data for
// development environments.
package seed

import (
	"fmt"
	"log"
	"math/rand"

	"marketplus/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder creates fake data against a database handle.
type Seeder struct {
	db *gorm.DB
}

func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run seeds users, posts, comments and the matching notifications.
func (s *Seeder) Run(opts Options) error {
	log.Printf("Seeding %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}
	}

	users, err := s.SeedUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	posts, err := s.SeedPosts(users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	comments, err := s.SeedComments(users, posts)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("created %d comments", comments)

	return nil
}

// ClearAll wipes all seeded tables, children first.
func (s *Seeder) ClearAll() error {
	tables := []any{
		&models.Notification{},
		&models.Comment{},
		&models.Post{},
		&models.UserProfileImage{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Where("1 = 1").Delete(table).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedUsers creates n accounts. Every account gets the password "password123".
func (s *Seeder) SeedUsers(n int) ([]*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user := &models.User{
			Name:           gofakeit.Name(),
			Email:          fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Password:       string(hashed),
			Bio:            gofakeit.Sentence(8),
			City:           gofakeit.City(),
			Contact:        gofakeit.Phone(),
			TermsOfService: true,
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// SeedPosts spreads n listing posts across the users.
func (s *Seeder) SeedPosts(users []*models.User, n int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to attach posts to")
	}

	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		owner := users[rand.Intn(len(users))]
		description := fmt.Sprintf("%s %s for sale. %s",
			gofakeit.AdjectiveDescriptive(), gofakeit.ProductName(), gofakeit.Sentence(6))
		if len(description) > 255 {
			description = description[:255]
		}

		post := &models.Post{
			Description: description,
			UserID:      owner.ID,
		}
		if err := s.db.Create(post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// SeedComments adds up to three comments per post. Comments from someone other
// than the post owner also get the notification row the API would create.
func (s *Seeder) SeedComments(users []*models.User, posts []*models.Post) (int, error) {
	created := 0
	for _, post := range posts {
		for i := 0; i < rand.Intn(4); i++ {
			commenter := users[rand.Intn(len(users))]
			text := gofakeit.Sentence(10)
			if len(text) > 255 {
				text = text[:255]
			}

			comment := &models.Comment{
				Text:   text,
				PostID: post.ID,
				UserID: commenter.ID,
			}
			if err := s.db.Create(comment).Error; err != nil {
				return created, err
			}
			created++

			if commenter.ID != post.UserID {
				notification := &models.Notification{
					Message:   fmt.Sprintf("%s commented on your post", commenter.Name),
					UserID:    post.UserID,
					SenderID:  commenter.ID,
					PostID:    post.ID,
					CommentID: comment.ID,
				}
				if err := s.db.Create(notification).Error; err != nil {
					return created, err
				}
			}
		}
	}
	return created, nil
}
