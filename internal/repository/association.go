package repository

import (
	"context"

	"learnhub/internal/models"

	"gorm.io/gorm"
)

// AssociationRepository stores the teach and learn relationships between users and skills.
type AssociationRepository interface {
	CreateLearn(ctx context.Context, assoc *models.UserLearnSkill) error
	CreateTeach(ctx context.Context, assoc *models.UserTeachSkill) error
	LearnExists(ctx context.Context, userID, skillID uint) (bool, error)
	TeachExists(ctx context.Context, userID, skillID uint) (bool, error)
	ListLearners(ctx context.Context, skillID uint) ([]models.Learner, error)
	ListTeachers(ctx context.Context, skillID uint) ([]models.Teacher, error)
	ListLearningSkills(ctx context.Context, userID uint) ([]models.LearningSkill, error)
	ListTeachingSkills(ctx context.Context, userID uint) ([]models.TeachingSkill, error)
}

type associationRepository struct {
	db *gorm.DB
}

// NewAssociationRepository returns a new AssociationRepository implementation.
func NewAssociationRepository(db *gorm.DB) AssociationRepository {
	return &associationRepository{db: db}
}

func (r *associationRepository) CreateLearn(ctx context.Context, assoc *models.UserLearnSkill) error {
	if err := create(r.db.WithContext(ctx), assoc); err != nil {
		if models.HasCode(err, models.CodeConflict) {
			return models.NewConflictError("User already learning this skill")
		}
		return err
	}
	return nil
}

func (r *associationRepository) CreateTeach(ctx context.Context, assoc *models.UserTeachSkill) error {
	if err := create(r.db.WithContext(ctx), assoc); err != nil {
		if models.HasCode(err, models.CodeConflict) {
			return models.NewConflictError("User already teaching this skill")
		}
		return err
	}
	return nil
}

func (r *associationRepository) LearnExists(ctx context.Context, userID, skillID uint) (bool, error) {
	return r.exists(ctx, &models.UserLearnSkill{}, userID, skillID)
}

func (r *associationRepository) TeachExists(ctx context.Context, userID, skillID uint) (bool, error) {
	return r.exists(ctx, &models.UserTeachSkill{}, userID, skillID)
}

func (r *associationRepository) exists(ctx context.Context, model interface{}, userID, skillID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(model).
		Where("user_id = ? AND skill_id = ?", userID, skillID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *associationRepository) ListLearners(ctx context.Context, skillID uint) ([]models.Learner, error) {
	var rows []models.UserLearnSkill
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("skill_id = ?", skillID).
		Order("user_id ASC").
		Find(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	learners := make([]models.Learner, 0, len(rows))
	for _, row := range rows {
		if row.User == nil {
			continue
		}
		learners = append(learners, models.Learner{
			User:            row.User.Public(),
			ProficiencyGoal: row.ProficiencyGoal,
			Priority:        row.Priority,
		})
	}
	return learners, nil
}

func (r *associationRepository) ListTeachers(ctx context.Context, skillID uint) ([]models.Teacher, error) {
	var rows []models.UserTeachSkill
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("skill_id = ?", skillID).
		Order("user_id ASC").
		Find(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	teachers := make([]models.Teacher, 0, len(rows))
	for _, row := range rows {
		if row.User == nil {
			continue
		}
		teachers = append(teachers, models.Teacher{
			User:            row.User.Public(),
			ExperienceLevel: row.ExperienceLevel,
			YearsExperience: row.YearsExperience,
		})
	}
	return teachers, nil
}

func (r *associationRepository) ListLearningSkills(ctx context.Context, userID uint) ([]models.LearningSkill, error) {
	var rows []models.UserLearnSkill
	if err := r.db.WithContext(ctx).
		Preload("Skill").
		Where("user_id = ?", userID).
		Order("skill_id ASC").
		Find(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	skills := make([]models.LearningSkill, 0, len(rows))
	for _, row := range rows {
		if row.Skill == nil {
			continue
		}
		skills = append(skills, models.LearningSkill{
			Skill:           *row.Skill,
			ProficiencyGoal: row.ProficiencyGoal,
			Priority:        row.Priority,
		})
	}
	return skills, nil
}

func (r *associationRepository) ListTeachingSkills(ctx context.Context, userID uint) ([]models.TeachingSkill, error) {
	var rows []models.UserTeachSkill
	if err := r.db.WithContext(ctx).
		Preload("Skill").
		Where("user_id = ?", userID).
		Order("skill_id ASC").
		Find(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	skills := make([]models.TeachingSkill, 0, len(rows))
	for _, row := range rows {
		if row.Skill == nil {
			continue
		}
		skills = append(skills, models.TeachingSkill{
			Skill:           *row.Skill,
			ExperienceLevel: row.ExperienceLevel,
			YearsExperience: row.YearsExperience,
		})
	}
	return skills, nil
}
