package service

import (
	"context"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// PostService handles post CRUD. Authorization (admin gate) happens at the
// HTTP layer; this service assumes the caller is allowed to mutate.
type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

// PostInput carries validated post form fields.
type PostInput struct {
	Title    string
	Subtitle string
	Body     string
	ImageURL string
	AuthorID uint
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository) *PostService {
	return &PostService{postRepo: postRepo, commentRepo: commentRepo}
}

// List returns all posts in insertion order.
func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	return s.postRepo.List(ctx)
}

// Get returns a post by ID with its author.
func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// Create inserts a new post stamped with today's date and the given author.
func (s *PostService) Create(ctx context.Context, in PostInput) (*models.Post, error) {
	existing, err := s.postRepo.GetByTitle(ctx, in.Title)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("A post with this title already exists")
	}

	post := &models.Post{
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Body:     in.Body,
		ImageURL: in.ImageURL,
		Date:     time.Now().Format(models.PostDateLayout),
		AuthorID: in.AuthorID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// Update rewrites a post's fields. The author is reassigned to in.AuthorID,
// the editing principal, matching the long-standing edit behavior.
func (s *PostService) Update(ctx context.Context, id uint, in PostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != post.Title {
		existing, err := s.postRepo.GetByTitle(ctx, in.Title)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, models.NewValidationError("A post with this title already exists")
		}
	}

	post.Title = in.Title
	post.Subtitle = in.Subtitle
	post.Body = in.Body
	post.ImageURL = in.ImageURL
	post.AuthorID = in.AuthorID
	post.Author = models.User{}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// Delete removes a post and its comments. Comments go first; there is no
// cascading constraint in the schema.
func (s *PostService) Delete(ctx context.Context, id uint) error {
	if _, err := s.postRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.commentRepo.DeleteByPost(ctx, id); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, id)
}
