package seed

import (
	"context"
	"fmt"
	"log/slog"

	"learnhub/internal/middleware"
	"learnhub/internal/models"

	"gorm.io/gorm"
)

// catalog gives the first categories realistic skill names.
var catalog = []struct {
	Name   string
	Skills []string
}{
	{"Music", []string{"Guitar", "Piano", "Singing", "Drums", "Music Theory"}},
	{"Programming", []string{"Go", "Python", "SQL", "JavaScript", "Rust"}},
	{"Languages", []string{"Spanish", "French", "Japanese", "German", "Mandarin"}},
	{"Cooking", []string{"Baking", "Knife Skills", "Fermentation", "Pastry", "Grilling"}},
	{"Sports", []string{"Tennis", "Climbing", "Swimming", "Yoga", "Running"}},
	{"Art", []string{"Drawing", "Watercolor", "Photography", "Pottery", "Calligraphy"}},
}

// Plan describes how much data to generate.
type Plan struct {
	Users             int
	Categories        int
	SkillsPerCategory int
	LearnPerUser      int
	TeachPerUser      int
}

// Summary reports what was created.
type Summary struct {
	Users      int
	Categories int
	Skills     int
	Learn      int
	Teach      int
}

// Seeder fills a database according to a Plan.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, opts Options) (*Seeder, error) {
	factory, err := NewFactory(db, opts)
	if err != nil {
		return nil, err
	}
	return &Seeder{db: db, factory: factory}, nil
}

// ClearAll removes every row, children first.
func (s *Seeder) ClearAll(ctx context.Context) error {
	db := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, model := range []interface{}{
		&models.UserLearnSkill{},
		&models.UserTeachSkill{},
		&models.Skill{},
		&models.Category{},
		&models.User{},
	} {
		if err := db.Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	middleware.Logger.InfoContext(ctx, "Database cleared")
	return nil
}

// Seed creates users, categories, skills and associations. Each user learns
// and teaches distinct skills, so the association keys never collide.
func (s *Seeder) Seed(ctx context.Context, plan Plan) (*Summary, error) {
	f := s.factory
	summary := &Summary{}

	var skills []*models.Skill
	for i := 0; i < plan.Categories; i++ {
		name := ""
		var names []string
		if i < len(catalog) {
			name = catalog[i].Name
			names = catalog[i].Skills
		}
		category, err := f.CreateCategory(name)
		if err != nil {
			return summary, fmt.Errorf("create category: %w", err)
		}
		summary.Categories++

		for j := 0; j < plan.SkillsPerCategory; j++ {
			skillName := ""
			if j < len(names) {
				skillName = names[j]
			}
			skill, err := f.CreateSkill(category, skillName)
			if err != nil {
				return summary, fmt.Errorf("create skill: %w", err)
			}
			skills = append(skills, skill)
			summary.Skills++
		}
	}

	for i := 0; i < plan.Users; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return summary, fmt.Errorf("create user: %w", err)
		}
		summary.Users++

		if len(skills) == 0 {
			continue
		}
		picks := sequence(len(skills))
		f.faker.ShuffleInts(picks)
		learn := min(plan.LearnPerUser, len(picks))
		for _, idx := range picks[:learn] {
			if _, err := f.CreateLearn(user, skills[idx]); err != nil {
				return summary, fmt.Errorf("create learn association: %w", err)
			}
			summary.Learn++
		}
		teach := min(plan.TeachPerUser, len(picks)-learn)
		for _, idx := range picks[learn : learn+teach] {
			if _, err := f.CreateTeach(user, skills[idx]); err != nil {
				return summary, fmt.Errorf("create teach association: %w", err)
			}
			summary.Teach++
		}
	}

	middleware.Logger.InfoContext(ctx, "Seeding complete",
		slog.Int("users", summary.Users),
		slog.Int("categories", summary.Categories),
		slog.Int("skills", summary.Skills),
		slog.Int("learn", summary.Learn),
		slog.Int("teach", summary.Teach),
	)
	return summary, nil
}

func sequence(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
