// Package service holds the business rules between HTTP handlers and repositories.
package service

import (
	"context"
	"strings"

	"learnhub/internal/models"
	"learnhub/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles user registration and lookup.
type UserService struct {
	userRepo repository.UserRepository
	hashCost int
}

// CreateUserInput carries the fields accepted by CreateUser.
type CreateUserInput struct {
	Username string
	Password string
	Email    string
	AboutMe  *string
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo, hashCost: bcrypt.DefaultCost}
}

// CreateUser stores a new user with a bcrypt-hashed password.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" || email == "" || in.Password == "" {
		return nil, models.NewValidationError("username, password and email are required")
	}

	hashedPassword, err := HashPassword(in.Password, s.hashCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: username,
		Password: hashedPassword,
		Email:    email,
		AboutMe:  in.AboutMe,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser loads a user by id.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
