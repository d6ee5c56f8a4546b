// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"strings"

	"learnhub/internal/models"
	"learnhub/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the clear-text password of every seeded user.
const DefaultPassword = "password123"

// Options tune the factory.
type Options struct {
	// SkipBcrypt uses the minimum bcrypt cost, for tests.
	SkipBcrypt bool
	// RandSeed makes the generated data reproducible when non-zero.
	RandSeed int64
}

var levels = []string{models.LevelBeginner, models.LevelIntermediate, models.LevelAdvanced}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db       *gorm.DB
	faker    *gofakeit.Faker
	password string
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) (*Factory, error) {
	cost := bcrypt.DefaultCost
	if opts.SkipBcrypt {
		cost = bcrypt.MinCost
	}
	hashed, err := service.HashPassword(DefaultPassword, cost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}
	return &Factory{
		db:       db,
		faker:    gofakeit.New(opts.RandSeed),
		password: hashed,
	}, nil
}

// CreateUser persists a sample user. Overrides may modify it before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	bio := f.faker.Sentence(10)
	user := &models.User{
		Username: fmt.Sprintf("%s%d", f.faker.Username(), f.faker.Number(100, 999)),
		Email:    f.faker.Email(),
		Password: f.password,
		AboutMe:  &bio,
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateCategory persists a category named name, or a generated name when empty.
func (f *Factory) CreateCategory(name string) (*models.Category, error) {
	if name == "" {
		noun := f.faker.Noun()
		name = strings.ToUpper(noun[:1]) + noun[1:]
	}
	description := f.faker.Sentence(8)
	category := &models.Category{CategoryName: name, Description: &description}
	if err := f.db.Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// CreateSkill persists a skill in category, generating a name when empty.
func (f *Factory) CreateSkill(category *models.Category, name string) (*models.Skill, error) {
	if name == "" {
		name = f.faker.Hobby()
	}
	description := f.faker.Sentence(6)
	skill := &models.Skill{SkillName: name, Description: &description, CategoryID: category.CategoryID}
	if err := f.db.Create(skill).Error; err != nil {
		return nil, err
	}
	return skill, nil
}

// CreateLearn records that user wants to learn skill.
func (f *Factory) CreateLearn(user *models.User, skill *models.Skill) (*models.UserLearnSkill, error) {
	goal := f.faker.RandomString(levels)
	priority := f.faker.Number(1, 5)
	assoc := &models.UserLearnSkill{
		UserID:          user.UserID,
		SkillID:         skill.SkillID,
		ProficiencyGoal: &goal,
		Priority:        &priority,
	}
	if err := f.db.Create(assoc).Error; err != nil {
		return nil, err
	}
	return assoc, nil
}

// CreateTeach records that user can teach skill.
func (f *Factory) CreateTeach(user *models.User, skill *models.Skill) (*models.UserTeachSkill, error) {
	level := f.faker.RandomString(levels)
	years := f.faker.Number(1, 20)
	assoc := &models.UserTeachSkill{
		UserID:          user.UserID,
		SkillID:         skill.SkillID,
		ExperienceLevel: &level,
		YearsExperience: &years,
	}
	if err := f.db.Create(assoc).Error; err != nil {
		return nil, err
	}
	return assoc, nil
}
