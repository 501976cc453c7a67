// Package service implements the application's business rules on top of the
// repository layer.
package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Sentinel errors the HTTP layer maps onto flash messages. Login failures are
// deliberately indistinguishable between unknown email and wrong password.
var (
	ErrEmailTaken         = models.NewValidationError("You have already signed up with this email, log in instead.")
	ErrNameTaken          = models.NewValidationError("That name is already taken.")
	ErrInvalidCredentials = models.NewUnauthorizedError("The email or password you entered is incorrect.")
)

// AuthService handles registration, login and password hashing.
type AuthService struct {
	userRepo repository.UserRepository
}

// RegisterInput carries validated registration form fields.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// NewAuthService returns a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// HashPassword produces a salted bcrypt digest. The raw password is never
// stored or logged.
func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword reports whether attempt matches the stored digest.
func CheckPassword(digest, attempt string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(attempt)) == nil
}

// Register creates a new account. The first account ever registered becomes
// the administrator. Duplicate email and duplicate name are distinct
// rejections because the UI routes them differently.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	existing, err = s.userRepo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrNameTaken
	}

	digest, err := HashPassword(in.Password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: digest,
		IsAdmin:  count == 0,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !CheckPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
