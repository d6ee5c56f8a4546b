package repository

import (
	"context"
	"errors"

	"learnhub/internal/models"

	"gorm.io/gorm"
)

// SkillRepository defines persistence operations for skills.
type SkillRepository interface {
	Create(ctx context.Context, skill *models.Skill) error
	GetByID(ctx context.Context, id uint) (*models.Skill, error)
	GetInCategory(ctx context.Context, categoryID, skillID uint) (*models.Skill, error)
}

type skillRepository struct {
	db *gorm.DB
}

// NewSkillRepository returns a new SkillRepository implementation.
func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &skillRepository{db: db}
}

func (r *skillRepository) Create(ctx context.Context, skill *models.Skill) error {
	return create(r.db.WithContext(ctx), skill)
}

func (r *skillRepository) GetByID(ctx context.Context, id uint) (*models.Skill, error) {
	return findByID[models.Skill](r.db.WithContext(ctx), "Skill", id)
}

// GetInCategory returns the skill only when it belongs to the given category.
func (r *skillRepository) GetInCategory(ctx context.Context, categoryID, skillID uint) (*models.Skill, error) {
	var skill models.Skill
	if err := r.db.WithContext(ctx).
		Where("skill_id = ? AND category_id = ?", skillID, categoryID).
		First(&skill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Skill", skillID)
		}
		return nil, models.NewInternalError(err)
	}
	return &skill, nil
}
