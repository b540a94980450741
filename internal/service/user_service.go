// Package service implements the business logic between the HTTP handlers
// and the repositories.
package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles account registration, credential checks and the
// premium upgrade.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates a new account. Duplicate emails fail before any write so
// repeated submissions leave exactly one user row behind.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("User already exists!")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials and returns the matching user. An
// unknown email and a wrong password report distinct messages.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User not found! Please register first.")
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); cmpErr != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials!")
	}
	return user, nil
}

// UpgradeToPremium flips the premium flag and returns the updated user so
// the caller can reissue the session with fresh claims.
func (s *UserService) UpgradeToPremium(ctx context.Context, userID uint) (*models.User, error) {
	if err := s.userRepo.SetPremium(ctx, userID, true); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User not found")
	}
	return user, nil
}
