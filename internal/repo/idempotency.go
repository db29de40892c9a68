package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-qa-backend/internal/domain"
)

// ErrDuplicate indicates that an idempotency record already exists for the
// given (client, route, key) tuple.
var ErrDuplicate = errors.New("duplicate")

// IdempotencyKey identifies one client's retry slot on one route.
type IdempotencyKey struct {
	Client string
	Route  string
	Key    string
}

// Blank reports whether any component is empty, in which case the request is
// not replayable.
func (k IdempotencyKey) Blank() bool {
	return strings.TrimSpace(k.Client) == "" || strings.TrimSpace(k.Route) == "" || strings.TrimSpace(k.Key) == ""
}

// GetIdempotency returns a non-expired record or ErrNotFound.
func GetIdempotency(ctx context.Context, db *gorm.DB, k IdempotencyKey, now time.Time) (*domain.Idempotency, error) {
	if k.Blank() {
		return nil, ErrNotFound
	}
	var rec domain.Idempotency
	err := db.WithContext(ctx).
		Where("client = ? AND route = ? AND key = ? AND expires_at > ?", k.Client, k.Route, k.Key, now).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// CreateIdempotency inserts a record and returns ErrDuplicate on unique
// violation. An expired record for the same tuple is replaced.
func CreateIdempotency(ctx context.Context, db *gorm.DB, k IdempotencyKey, resourceID string, status int, ttl time.Duration) (*domain.Idempotency, error) {
	now := time.Now().UTC()
	rec := &domain.Idempotency{
		ID:         uuid.NewString(),
		Client:     k.Client,
		Route:      k.Route,
		Key:        k.Key,
		ResourceID: resourceID,
		Status:     status,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client = ? AND route = ? AND key = ? AND expires_at <= ?", k.Client, k.Route, k.Key, now).
			Delete(&domain.Idempotency{}).Error; err != nil {
			return err
		}
		return tx.Create(rec).Error
	})
	if err != nil {
		// glebarez/sqlite often returns plain-text errors for UNIQUE violations.
		low := strings.ToLower(err.Error())
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(low, "unique constraint failed") ||
			strings.Contains(low, "constraint failed: unique") {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return rec, nil
}
