package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alfredoptarigan/story-bias/internal/models"
)

type sessionStorage struct {
	db *gorm.DB
}

// NewSessionStorage returns a fiber.Storage backed by the sessions table so
// session cookies stay valid across restarts and instances.
func NewSessionStorage(db *gorm.DB) fiber.Storage {
	return &sessionStorage{db: db}
}

// Get implements fiber.Storage. Missing or expired keys return nil, nil.
func (s *sessionStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}

	var sess models.Session
	err := s.db.Where("id = ?", key).First(&sess).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	if !sess.ExpiresAt.IsZero() && !sess.ExpiresAt.After(utcNow()) {
		return nil, nil
	}

	return sess.Data, nil
}

// Set implements fiber.Storage.
func (s *sessionStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}

	sess := models.Session{ID: key, Data: val}
	if exp > 0 {
		sess.ExpiresAt = utcNow().Add(exp)
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "expires_at"}),
	}).Create(&sess).Error
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Delete implements fiber.Storage.
func (s *sessionStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	if err := s.db.Where("id = ?", key).Delete(&models.Session{}).Error; err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Reset implements fiber.Storage.
func (s *sessionStorage) Reset() error {
	if err := s.db.Where("1 = 1").Delete(&models.Session{}).Error; err != nil {
		return fmt.Errorf("failed to reset sessions: %w", err)
	}
	return nil
}

// Close implements fiber.Storage. The connection is owned by the caller
// that opened it, so there is nothing to release here.
func (s *sessionStorage) Close() error {
	return nil
}
