package repository

import (
	"context"
	"errors"

	"learnhub/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	GetByIDWithSkills(ctx context.Context, id uint) (*models.Category, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository returns a new CategoryRepository implementation.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	return create(r.db.WithContext(ctx), category)
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	return findByID[models.Category](r.db.WithContext(ctx), "Category", id)
}

// GetByIDWithSkills loads the category together with its skills ordered by ID.
func (r *categoryRepository) GetByIDWithSkills(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).
		Preload("Skills", func(db *gorm.DB) *gorm.DB {
			return db.Order("skill_id ASC")
		}).
		First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Category", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &category, nil
}
