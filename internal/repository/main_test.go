package repository

import (
	"context"
	"testing"

	"learnhub/internal/database"
	"learnhub/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.ApplySchema(context.Background(), db))
	return db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return gormDB, mock
}

type fixture struct {
	user     *models.User
	category *models.Category
	skill    *models.Skill
}

func seedFixture(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	user := &models.User{Username: "ana", Password: "hash", Email: "ana@example.com"}
	require.NoError(t, db.Create(user).Error)
	category := &models.Category{CategoryName: "Music"}
	require.NoError(t, db.Create(category).Error)
	skill := &models.Skill{SkillName: "Guitar", CategoryID: category.CategoryID}
	require.NoError(t, db.Create(skill).Error)
	return fixture{user: user, category: category, skill: skill}
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
