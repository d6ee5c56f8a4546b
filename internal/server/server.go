// Package server contains the HTTP handlers for the skill-matching API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"learnhub/internal/config"
	"learnhub/internal/database"
	"learnhub/internal/llm"
	"learnhub/internal/middleware"
	"learnhub/internal/models"
	"learnhub/internal/notifications"
	"learnhub/internal/repository"
	"learnhub/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config             *config.Config
	db                 *gorm.DB
	redis              *redis.Client
	app                *fiber.App
	promMiddleware     *fiberprometheus.FiberPrometheus
	notifier           *notifications.Notifier
	userService        *service.UserService
	categoryService    *service.CategoryService
	skillService       *service.SkillService
	associationService *service.AssociationService
	chatService        *service.ChatService
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// When generator is nil a Gemini client is built from cfg.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, generator service.TextGenerator) (*Server, error) {
	if generator == nil {
		client, err := llm.New(llm.Config{
			APIKey:      cfg.GeminiAPIKey,
			Endpoint:    cfg.GeminiAPIURL,
			Timeout:     time.Duration(cfg.ChatTimeoutSeconds) * time.Second,
			TokenSource: llm.StaticToken(cfg.GeminiAccessToken),
		})
		if err != nil {
			return nil, fmt.Errorf("chat client: %w", err)
		}
		generator = client
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	skillRepo := repository.NewSkillRepository(db)
	assocRepo := repository.NewAssociationRepository(db)
	notifier := notifications.NewNotifier(redisClient)

	return &Server{
		config:             cfg,
		db:                 db,
		redis:              redisClient,
		promMiddleware:     middleware.InitMetrics("learnhub-api"),
		notifier:           notifier,
		userService:        service.NewUserService(userRepo),
		categoryService:    service.NewCategoryService(categoryRepo),
		skillService:       service.NewSkillService(categoryRepo, skillRepo),
		associationService: service.NewAssociationService(userRepo, skillRepo, assocRepo, notifier),
		chatService:        service.NewChatService(generator),
	}, nil
}

// App builds the Fiber application on first use.
func (s *Server) App() *fiber.App {
	if s.app != nil {
		return s.app
	}

	app := fiber.New(fiber.Config{
		AppName:      "LearnHub API",
		ErrorHandler: errorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.app = app
	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(models.ErrorResponse{Error: fiberErr.Message})
	}
	middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", slog.String("error", err.Error()))
	return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	app.Use(middleware.TracingMiddleware())

	// Copies request/trace IDs into the user context, so it must follow both.
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: origins != "*",
		MaxAge:           86400,
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/", s.Root)

	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	users := app.Group("/users")
	users.Post("/", s.CreateUser)
	// Define specific /:id/:resource routes BEFORE generic /:id route
	users.Post("/:id/learn-skill", s.AddLearnSkill)
	users.Post("/:id/teach-skill", s.AddTeachSkill)
	users.Get("/:id/learning-skills", s.GetUserLearningSkills)
	users.Get("/:id/teaching-skills", s.GetUserTeachingSkills)
	users.Get("/:id", s.GetUser)

	app.Post("/categories", s.CreateCategory)

	category := app.Group("/category")
	category.Post("/:id/skills", s.CreateSkill)
	category.Get("/:categoryId/skills/:skillId/learners", s.GetSkillLearners)
	category.Get("/:categoryId/skills/:skillId/teachers", s.GetSkillTeachers)
	category.Get("/:categoryId/skills/:skillId", s.GetSkill)
	category.Get("/:id", s.GetCategory)

	app.Post("/chat", s.Chat)
}

// Root handles GET /
func (s *Server) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"Hello": "World"})
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis is optional: an
// unconfigured client is reported as disabled without failing readiness.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := database.Ping(ctx, s.db); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.notifier.Ping(ctx); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start builds the app and listens on the configured port.
func (s *Server) Start() error {
	app := s.App()
	middleware.Logger.Info("Server starting", slog.String("port", s.config.Port))
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server and releases its connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if err := database.Close(s.db); err != nil {
		middleware.Logger.Error("error closing sql DB", slog.String("error", err.Error()))
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", err.Error()))
		}
	}

	return nil
}
