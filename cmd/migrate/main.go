// Command migrate runs schema operations for the backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"learnhub/internal/config"
	"learnhub/internal/database"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate <up|status>")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = database.Close(db) }()

	ctx := context.Background()
	switch strings.ToLower(strings.TrimSpace(flag.Arg(0))) {
	case "up":
		if err := database.ApplySchema(ctx, db); err != nil {
			return fmt.Errorf("schema apply failed: %w", err)
		}
		log.Println("schema applied")
	case "status":
		for _, line := range schemaStatus(db) {
			log.Println(line)
		}
	default:
		return usage()
	}
	return nil
}

func schemaStatus(db *gorm.DB) []string {
	lines := make([]string, 0, len(database.PersistentModels()))
	for _, model := range database.PersistentModels() {
		table := model.(schema.Tabler).TableName()
		state := "missing"
		if db.Migrator().HasTable(model) {
			state = "present"
		}
		lines = append(lines, fmt.Sprintf("%-20s %s", table, state))
	}
	return lines
}
