package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"learnhub/internal/config"
	"learnhub/internal/database"
	"learnhub/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type generatorStub struct {
	reply string
	err   error
}

func (g generatorStub) GenerateText(context.Context, string) (string, error) {
	return g.reply, g.err
}

func testConfig() *config.Config {
	return &config.Config{
		Port:                     "0",
		Env:                      "test",
		AllowedOrigins:           "*",
		DBMaxOpenConns:           1,
		DBMaxIdleConns:           1,
		DBConnMaxLifetimeMinutes: 5,
		ChatTimeoutSeconds:       30,
		GeminiAPIURL:             config.DefaultGeminiAPIURL,
	}
}

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

func newTestServer(t *testing.T, rdb *redis.Client, gen service.TextGenerator) (*Server, *fiber.App) {
	t.Helper()
	s, err := NewServerWithDeps(testConfig(), setupTestDB(t), rdb, gen)
	require.NoError(t, err)
	return s, s.App()
}

// doJSON sends body (if any) as JSON and decodes the JSON response into a map.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func createUser(t *testing.T, app *fiber.App, username string) uint {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/users/", map[string]any{
		"username": username,
		"password": "pw-" + username,
		"email":    username + "@example.com",
	})
	require.Equal(t, http.StatusCreated, status)
	return uint(body["user_id"].(float64))
}

func createCategory(t *testing.T, app *fiber.App, name string) uint {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/categories/", map[string]any{"category_name": name})
	require.Equal(t, http.StatusCreated, status)
	return uint(body["category_id"].(float64))
}

func createSkill(t *testing.T, app *fiber.App, categoryID uint, name string) uint {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, pathf("/category/%d/skills", categoryID), map[string]any{"skill_name": name})
	require.Equal(t, http.StatusCreated, status)
	return uint(body["skill_id"].(float64))
}
