package repository

import (
	"context"

	"learnhub/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return create(r.db.WithContext(ctx), user)
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return findByID[models.User](r.db.WithContext(ctx), "User", id)
}
