package service

import (
	"context"
	"fmt"
	"strings"

	"learnhub/internal/models"
	"learnhub/internal/repository"
)

// CategoryService manages skill categories.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// CreateCategoryInput carries the fields accepted by CreateCategory.
type CreateCategoryInput struct {
	CategoryName string
	Description  *string
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategory stores a new category.
func (s *CategoryService) CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(in.CategoryName)
	if name == "" {
		return nil, models.NewValidationError("category_name is required")
	}

	category := &models.Category{CategoryName: name, Description: in.Description}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetCategory returns the category and the distinct names of its skills.
func (s *CategoryService) GetCategory(ctx context.Context, id uint) (*models.Category, []string, error) {
	category, err := s.categoryRepo.GetByIDWithSkills(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return category, category.UniqueSkillNames(), nil
}

// SkillService manages skills within their categories.
type SkillService struct {
	categoryRepo repository.CategoryRepository
	skillRepo    repository.SkillRepository
}

// CreateSkillInput carries the fields accepted by CreateSkill.
type CreateSkillInput struct {
	SkillName   string
	Description *string
}

// NewSkillService creates a new skill service.
func NewSkillService(categoryRepo repository.CategoryRepository, skillRepo repository.SkillRepository) *SkillService {
	return &SkillService{categoryRepo: categoryRepo, skillRepo: skillRepo}
}

// CreateSkill adds a skill to an existing category. The category always comes
// from categoryID, never from the payload.
func (s *SkillService) CreateSkill(ctx context.Context, categoryID uint, in CreateSkillInput) (*models.Skill, error) {
	name := strings.TrimSpace(in.SkillName)
	if name == "" {
		return nil, models.NewValidationError("skill_name is required")
	}

	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		return nil, err
	}

	skill := &models.Skill{
		SkillName:   name,
		Description: in.Description,
		CategoryID:  categoryID,
	}
	if err := s.skillRepo.Create(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

// GetSkill returns the skill only if it belongs to categoryID.
func (s *SkillService) GetSkill(ctx context.Context, categoryID, skillID uint) (*models.Skill, error) {
	skill, err := s.skillRepo.GetInCategory(ctx, categoryID, skillID)
	if err != nil {
		if models.HasCode(err, models.CodeNotFound) {
			return nil, skillNotInCategory(categoryID, skillID)
		}
		return nil, err
	}
	return skill, nil
}

func skillNotInCategory(categoryID, skillID uint) *models.AppError {
	return &models.AppError{
		Code:    models.CodeNotFound,
		Message: fmt.Sprintf("Skill with ID %d not found in category %d", skillID, categoryID),
	}
}
