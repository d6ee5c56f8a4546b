// Package repository implements the data access layer for the application.
package repository

import (
	"errors"
	"strings"

	"learnhub/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}

// findByID loads a single row by primary key, mapping a missing row to NotFound.
func findByID[T any](db *gorm.DB, resource string, id uint) (*T, error) {
	var entity T
	if err := db.First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError(resource, id)
		}
		return nil, models.NewInternalError(err)
	}
	return &entity, nil
}

func create[T any](db *gorm.DB, entity *T) error {
	if err := db.Create(entity).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Record already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}
