package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alfredoptarigan/story-bias/internal/models"
)

// FlashRepository keeps at most one one-shot message per session.
// Pop reads and clears the slot in a single step.
type FlashRepository interface {
	Put(ctx context.Context, sessionID string, msg *models.Message) error
	Pop(ctx context.Context, sessionID string) (*models.Message, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

type flashRepository struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

func NewFlashRepository(db *gorm.DB, ttl time.Duration) FlashRepository {
	return &flashRepository{db: db, ttl: ttl, now: utcNow}
}

// utcNow keeps stored expiry instants independent of the host time zone.
func utcNow() time.Time {
	return time.Now().UTC()
}

// Put implements FlashRepository. An unread message is replaced.
func (r *flashRepository) Put(ctx context.Context, sessionID string, msg *models.Message) error {
	now := r.now()
	rec := models.FlashMessage{
		SessionID: sessionID,
		Kind:      msg.Kind,
		Text:      msg.Text,
		ExpiresAt: now.Add(r.ttl),
		CreatedAt: now,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			UpdateAll: true,
		}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to store flash message: %w", err)
	}
	return nil
}

// Pop implements FlashRepository. DELETE ... RETURNING makes the read and
// the clear one statement, so two concurrent requests cannot both see it.
func (r *flashRepository) Pop(ctx context.Context, sessionID string) (*models.Message, error) {
	var rec models.FlashMessage
	result := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("session_id = ?", sessionID).
		Delete(&rec)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to pop flash message: %w", result.Error)
	}

	if result.RowsAffected == 0 || !rec.ExpiresAt.After(r.now()) {
		return nil, nil
	}

	return rec.Message(), nil
}

// DeleteExpired implements FlashRepository.
func (r *flashRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", r.now()).
		Delete(&models.FlashMessage{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired flash messages: %w", result.Error)
	}
	return result.RowsAffected, nil
}

type memoryFlash struct {
	msg       models.Message
	expiresAt time.Time
}

type memoryFlashRepository struct {
	mu    sync.Mutex
	slots map[string]memoryFlash
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryFlashRepository returns a process-local FlashRepository used when
// no database is configured.
func NewMemoryFlashRepository(ttl time.Duration) FlashRepository {
	return &memoryFlashRepository{
		slots: make(map[string]memoryFlash),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Put implements FlashRepository.
func (r *memoryFlashRepository) Put(_ context.Context, sessionID string, msg *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.slots[sessionID] = memoryFlash{
		msg:       *msg,
		expiresAt: r.now().Add(r.ttl),
	}
	return nil
}

// Pop implements FlashRepository.
func (r *memoryFlashRepository) Pop(_ context.Context, sessionID string) (*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slots[sessionID]
	if !ok {
		return nil, nil
	}
	delete(r.slots, sessionID)

	if !slot.expiresAt.After(r.now()) {
		return nil, nil
	}

	msg := slot.msg
	return &msg, nil
}

// DeleteExpired implements FlashRepository.
func (r *memoryFlashRepository) DeleteExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	now := r.now()
	for id, slot := range r.slots {
		if !slot.expiresAt.After(now) {
			delete(r.slots, id)
			removed++
		}
	}
	return removed, nil
}
