// Package seed provides database seeding utilities for development.
package seed

import (
	"fmt"
	"log"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Run populates the database with fake users, posts and comments. The first
// seeded user is the administrator and authors every post.
func Run(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 5
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 8
	}

	if opts.ShouldClean {
		log.Println("Cleaning existing data...")
		if err := db.Exec("DELETE FROM comments").Error; err != nil {
			return err
		}
		if err := db.Exec("DELETE FROM posts").Error; err != nil {
			return err
		}
		if err := db.Exec("DELETE FROM users").Error; err != nil {
			return err
		}
	}

	digest, err := bcrypt.GenerateFromPassword([]byte("seed-password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := make([]models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user := models.User{
			Name:     gofakeit.Username(),
			Email:    gofakeit.Email(),
			Password: string(digest),
			IsAdmin:  i == 0,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("seed user %d: %w", i, err)
		}
		users = append(users, user)
	}
	admin := users[0]

	for i := 0; i < opts.NumPosts; i++ {
		post := models.Post{
			Title:    fmt.Sprintf("%s #%d", gofakeit.BookTitle(), i+1),
			Subtitle: gofakeit.Sentence(6),
			Body:     "<p>" + gofakeit.Paragraph(3, 4, 12, "</p><p>") + "</p>",
			ImageURL: fmt.Sprintf("https://picsum.photos/seed/%d/800/400", i+1),
			Date:     time.Now().AddDate(0, 0, -i).Format(models.PostDateLayout),
			AuthorID: admin.ID,
		}
		if err := db.Create(&post).Error; err != nil {
			return fmt.Errorf("seed post %d: %w", i, err)
		}

		numComments := gofakeit.Number(0, 4)
		for j := 0; j < numComments; j++ {
			comment := models.Comment{
				Text:     gofakeit.Sentence(10),
				AuthorID: users[gofakeit.Number(0, len(users)-1)].ID,
				PostID:   post.ID,
			}
			if err := db.Create(&comment).Error; err != nil {
				return fmt.Errorf("seed comment %d/%d: %w", i, j, err)
			}
		}
	}

	log.Printf("Seeded %d users and %d posts", opts.NumUsers, opts.NumPosts)
	return nil
}
