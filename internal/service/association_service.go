package service

import (
	"context"
	"log/slog"

	"learnhub/internal/middleware"
	"learnhub/internal/models"
	"learnhub/internal/repository"
)

// EventPublisher announces newly stored associations. Implementations must be
// safe to call when no broker is configured.
type EventPublisher interface {
	PublishLearnSkillAdded(ctx context.Context, assoc *models.UserLearnSkill) error
	PublishTeachSkillAdded(ctx context.Context, assoc *models.UserTeachSkill) error
}

// AssociationService links users to the skills they learn or teach.
type AssociationService struct {
	userRepo  repository.UserRepository
	skillRepo repository.SkillRepository
	assocRepo repository.AssociationRepository
	events    EventPublisher
}

// AddLearnSkillInput carries the fields accepted by AddLearnSkill.
type AddLearnSkillInput struct {
	SkillID         uint
	ProficiencyGoal *string
	Priority        *int
}

// AddTeachSkillInput carries the fields accepted by AddTeachSkill.
type AddTeachSkillInput struct {
	SkillID         uint
	ExperienceLevel *string
	YearsExperience *int
}

// SkillLearners is a skill together with everyone learning it.
type SkillLearners struct {
	Skill    *models.Skill
	Learners []models.Learner
}

// SkillTeachers is a skill together with everyone teaching it.
type SkillTeachers struct {
	Skill    *models.Skill
	Teachers []models.Teacher
}

// NewAssociationService creates a new association service.
func NewAssociationService(
	userRepo repository.UserRepository,
	skillRepo repository.SkillRepository,
	assocRepo repository.AssociationRepository,
	events EventPublisher,
) *AssociationService {
	return &AssociationService{
		userRepo:  userRepo,
		skillRepo: skillRepo,
		assocRepo: assocRepo,
		events:    events,
	}
}

// AddLearnSkill records that userID wants to learn in.SkillID.
func (s *AssociationService) AddLearnSkill(ctx context.Context, userID uint, in AddLearnSkillInput) error {
	if err := s.checkEndpoints(ctx, userID, in.SkillID); err != nil {
		return err
	}

	exists, err := s.assocRepo.LearnExists(ctx, userID, in.SkillID)
	if err != nil {
		return err
	}
	if exists {
		return models.NewConflictError("User already learning this skill")
	}

	assoc := &models.UserLearnSkill{
		UserID:          userID,
		SkillID:         in.SkillID,
		ProficiencyGoal: in.ProficiencyGoal,
		Priority:        in.Priority,
	}
	if err := s.assocRepo.CreateLearn(ctx, assoc); err != nil {
		return err
	}
	middleware.AssociationsCreated.WithLabelValues("learn").Inc()

	if s.events != nil {
		if err := s.events.PublishLearnSkillAdded(ctx, assoc); err != nil {
			middleware.Logger.WarnContext(ctx, "failed to publish learn event",
				slog.Uint64("user_id", uint64(userID)),
				slog.Uint64("skill_id", uint64(in.SkillID)),
				slog.String("error", err.Error()),
			)
		}
	}
	return nil
}

// AddTeachSkill records that userID can teach in.SkillID.
func (s *AssociationService) AddTeachSkill(ctx context.Context, userID uint, in AddTeachSkillInput) error {
	if err := s.checkEndpoints(ctx, userID, in.SkillID); err != nil {
		return err
	}

	exists, err := s.assocRepo.TeachExists(ctx, userID, in.SkillID)
	if err != nil {
		return err
	}
	if exists {
		return models.NewConflictError("User already teaching this skill")
	}

	assoc := &models.UserTeachSkill{
		UserID:          userID,
		SkillID:         in.SkillID,
		ExperienceLevel: in.ExperienceLevel,
		YearsExperience: in.YearsExperience,
	}
	if err := s.assocRepo.CreateTeach(ctx, assoc); err != nil {
		return err
	}
	middleware.AssociationsCreated.WithLabelValues("teach").Inc()

	if s.events != nil {
		if err := s.events.PublishTeachSkillAdded(ctx, assoc); err != nil {
			middleware.Logger.WarnContext(ctx, "failed to publish teach event",
				slog.Uint64("user_id", uint64(userID)),
				slog.Uint64("skill_id", uint64(in.SkillID)),
				slog.String("error", err.Error()),
			)
		}
	}
	return nil
}

func (s *AssociationService) checkEndpoints(ctx context.Context, userID, skillID uint) error {
	if skillID == 0 {
		return models.NewValidationError("skill_id is required")
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.skillRepo.GetByID(ctx, skillID); err != nil {
		return err
	}
	return nil
}

// GetSkillLearners lists the learners of a skill in categoryID.
func (s *AssociationService) GetSkillLearners(ctx context.Context, categoryID, skillID uint) (*SkillLearners, error) {
	skill, err := s.skillInCategory(ctx, categoryID, skillID)
	if err != nil {
		return nil, err
	}
	learners, err := s.assocRepo.ListLearners(ctx, skillID)
	if err != nil {
		return nil, err
	}
	if learners == nil {
		learners = []models.Learner{}
	}
	return &SkillLearners{Skill: skill, Learners: learners}, nil
}

// GetSkillTeachers lists the teachers of a skill in categoryID.
func (s *AssociationService) GetSkillTeachers(ctx context.Context, categoryID, skillID uint) (*SkillTeachers, error) {
	skill, err := s.skillInCategory(ctx, categoryID, skillID)
	if err != nil {
		return nil, err
	}
	teachers, err := s.assocRepo.ListTeachers(ctx, skillID)
	if err != nil {
		return nil, err
	}
	if teachers == nil {
		teachers = []models.Teacher{}
	}
	return &SkillTeachers{Skill: skill, Teachers: teachers}, nil
}

func (s *AssociationService) skillInCategory(ctx context.Context, categoryID, skillID uint) (*models.Skill, error) {
	skill, err := s.skillRepo.GetInCategory(ctx, categoryID, skillID)
	if err != nil {
		if models.HasCode(err, models.CodeNotFound) {
			return nil, skillNotInCategory(categoryID, skillID)
		}
		return nil, err
	}
	return skill, nil
}

// GetUserLearningSkills lists the skills userID is learning.
func (s *AssociationService) GetUserLearningSkills(ctx context.Context, userID uint) ([]models.LearningSkill, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	skills, err := s.assocRepo.ListLearningSkills(ctx, userID)
	if err != nil {
		return nil, err
	}
	if skills == nil {
		skills = []models.LearningSkill{}
	}
	return skills, nil
}

// GetUserTeachingSkills lists the skills userID teaches.
func (s *AssociationService) GetUserTeachingSkills(ctx context.Context, userID uint) ([]models.TeachingSkill, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	skills, err := s.assocRepo.ListTeachingSkills(ctx, userID)
	if err != nil {
		return nil, err
	}
	if skills == nil {
		skills = []models.TeachingSkill{}
	}
	return skills, nil
}
