package database

import (
	"context"
	"fmt"

	"learnhub/internal/middleware"
	"learnhub/internal/models"

	"gorm.io/gorm"
)

// PersistentModels returns the authoritative set of schema-managed GORM models,
// parents before children.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Category{},
		&models.Skill{},
		&models.UserTeachSkill{},
		&models.UserLearnSkill{},
	}
}

// ApplySchema creates missing tables, columns, indexes and foreign keys.
// Running it against an initialized database is a no-op for existing tables.
func ApplySchema(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(PersistentModels()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	middleware.Logger.InfoContext(ctx, "Database schema ensured")
	return nil
}
