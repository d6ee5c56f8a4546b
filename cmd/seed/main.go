// Command seed fills a development database with fake data.
package main

import (
	"context"
	"flag"
	"log"

	"learnhub/internal/config"
	"learnhub/internal/database"
	"learnhub/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numCategories := flag.Int("categories", 6, "Number of categories to create")
	numSkills := flag.Int("skills", 5, "Number of skills per category")
	learnPerUser := flag.Int("learn", 3, "Learn associations per user")
	teachPerUser := flag.Int("teach", 2, "Teach associations per user")
	shouldClean := flag.Bool("clean", false, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	ctx := context.Background()
	if err := database.ApplySchema(ctx, db); err != nil {
		log.Fatalf("Schema apply failed: %v", err)
	}

	s, err := seed.NewSeeder(db, seed.Options{})
	if err != nil {
		log.Fatalf("Failed to create seeder: %v", err)
	}

	if *shouldClean {
		if err := s.ClearAll(ctx); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	summary, err := s.Seed(ctx, seed.Plan{
		Users:             *numUsers,
		Categories:        *numCategories,
		SkillsPerCategory: *numSkills,
		LearnPerUser:      *learnPerUser,
		TeachPerUser:      *teachPerUser,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Created %d users, %d categories, %d skills, %d learn and %d teach associations",
		summary.Users, summary.Categories, summary.Skills, summary.Learn, summary.Teach)
	log.Printf("All seeded users have the password: %s", seed.DefaultPassword)
}
