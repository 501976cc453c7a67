package service

import (
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testRepos struct {
	db      *gorm.DB
	user    repository.UserRepository
	post    repository.PostRepository
	comment repository.CommentRepository
}

func setupTestRepos(t *testing.T) testRepos {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return testRepos{
		db:      db,
		user:    repository.NewUserRepository(db),
		post:    repository.NewPostRepository(db),
		comment: repository.NewCommentRepository(db),
	}
}
