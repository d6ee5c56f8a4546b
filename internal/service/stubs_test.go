package service

import (
	"context"
	"errors"
	"testing"

	"learnhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userRepoStub struct {
	createFn  func(context.Context, *models.User) error
	getByIDFn func(context.Context, uint) (*models.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn: func(_ context.Context, u *models.User) error {
			u.UserID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{UserID: id, Username: "ana"}, nil
		},
	}
}

type categoryRepoStub struct {
	createFn            func(context.Context, *models.Category) error
	getByIDFn           func(context.Context, uint) (*models.Category, error)
	getByIDWithSkillsFn func(context.Context, uint) (*models.Category, error)
}

func (s *categoryRepoStub) Create(ctx context.Context, category *models.Category) error {
	return s.createFn(ctx, category)
}
func (s *categoryRepoStub) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	return s.getByIDFn(ctx, id)
}
func (s *categoryRepoStub) GetByIDWithSkills(ctx context.Context, id uint) (*models.Category, error) {
	return s.getByIDWithSkillsFn(ctx, id)
}

type skillRepoStub struct {
	createFn        func(context.Context, *models.Skill) error
	getByIDFn       func(context.Context, uint) (*models.Skill, error)
	getInCategoryFn func(context.Context, uint, uint) (*models.Skill, error)
}

func (s *skillRepoStub) Create(ctx context.Context, skill *models.Skill) error {
	return s.createFn(ctx, skill)
}
func (s *skillRepoStub) GetByID(ctx context.Context, id uint) (*models.Skill, error) {
	return s.getByIDFn(ctx, id)
}
func (s *skillRepoStub) GetInCategory(ctx context.Context, categoryID, skillID uint) (*models.Skill, error) {
	return s.getInCategoryFn(ctx, categoryID, skillID)
}

func noopSkillRepo() *skillRepoStub {
	return &skillRepoStub{
		createFn: func(_ context.Context, _ *models.Skill) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Skill, error) {
			return &models.Skill{SkillID: id, SkillName: "Guitar", CategoryID: 1}, nil
		},
		getInCategoryFn: func(_ context.Context, categoryID, skillID uint) (*models.Skill, error) {
			return &models.Skill{SkillID: skillID, SkillName: "Guitar", CategoryID: categoryID}, nil
		},
	}
}

type assocRepoStub struct {
	createLearnFn        func(context.Context, *models.UserLearnSkill) error
	createTeachFn        func(context.Context, *models.UserTeachSkill) error
	learnExistsFn        func(context.Context, uint, uint) (bool, error)
	teachExistsFn        func(context.Context, uint, uint) (bool, error)
	listLearnersFn       func(context.Context, uint) ([]models.Learner, error)
	listTeachersFn       func(context.Context, uint) ([]models.Teacher, error)
	listLearningSkillsFn func(context.Context, uint) ([]models.LearningSkill, error)
	listTeachingSkillsFn func(context.Context, uint) ([]models.TeachingSkill, error)
}

func (s *assocRepoStub) CreateLearn(ctx context.Context, a *models.UserLearnSkill) error {
	return s.createLearnFn(ctx, a)
}
func (s *assocRepoStub) CreateTeach(ctx context.Context, a *models.UserTeachSkill) error {
	return s.createTeachFn(ctx, a)
}
func (s *assocRepoStub) LearnExists(ctx context.Context, userID, skillID uint) (bool, error) {
	return s.learnExistsFn(ctx, userID, skillID)
}
func (s *assocRepoStub) TeachExists(ctx context.Context, userID, skillID uint) (bool, error) {
	return s.teachExistsFn(ctx, userID, skillID)
}
func (s *assocRepoStub) ListLearners(ctx context.Context, skillID uint) ([]models.Learner, error) {
	return s.listLearnersFn(ctx, skillID)
}
func (s *assocRepoStub) ListTeachers(ctx context.Context, skillID uint) ([]models.Teacher, error) {
	return s.listTeachersFn(ctx, skillID)
}
func (s *assocRepoStub) ListLearningSkills(ctx context.Context, userID uint) ([]models.LearningSkill, error) {
	return s.listLearningSkillsFn(ctx, userID)
}
func (s *assocRepoStub) ListTeachingSkills(ctx context.Context, userID uint) ([]models.TeachingSkill, error) {
	return s.listTeachingSkillsFn(ctx, userID)
}

func noopAssocRepo() *assocRepoStub {
	return &assocRepoStub{
		createLearnFn: func(context.Context, *models.UserLearnSkill) error { return nil },
		createTeachFn: func(context.Context, *models.UserTeachSkill) error { return nil },
		learnExistsFn: func(context.Context, uint, uint) (bool, error) { return false, nil },
		teachExistsFn: func(context.Context, uint, uint) (bool, error) { return false, nil },
		listLearnersFn: func(context.Context, uint) ([]models.Learner, error) {
			return nil, nil
		},
		listTeachersFn: func(context.Context, uint) ([]models.Teacher, error) {
			return nil, nil
		},
		listLearningSkillsFn: func(context.Context, uint) ([]models.LearningSkill, error) {
			return nil, nil
		},
		listTeachingSkillsFn: func(context.Context, uint) ([]models.TeachingSkill, error) {
			return nil, nil
		},
	}
}

type eventRecorder struct {
	learn []*models.UserLearnSkill
	teach []*models.UserTeachSkill
	err   error
}

func (r *eventRecorder) PublishLearnSkillAdded(_ context.Context, a *models.UserLearnSkill) error {
	r.learn = append(r.learn, a)
	return r.err
}
func (r *eventRecorder) PublishTeachSkillAdded(_ context.Context, a *models.UserTeachSkill) error {
	r.teach = append(r.teach, a)
	return r.err
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}
