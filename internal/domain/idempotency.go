package domain

import "time"

// Idempotency remembers the outcome of a create request, keyed by
// (client, route, key). A retry carrying the same Idempotency-Key is answered
// from this record instead of inserting a second resource.
//
// ResourceID is the id of the question or answer the first request created.
type Idempotency struct {
	ID         string    `gorm:"type:TEXT NOT NULL;primaryKey"`
	Client     string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_client_route_key,priority:1"`
	Route      string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_client_route_key,priority:2"`
	Key        string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_client_route_key,priority:3"`
	ResourceID string    `gorm:"type:TEXT NOT NULL"`
	Status     int       `gorm:"type:INTEGER NOT NULL"`
	CreatedAt  time.Time `gorm:"type:DATETIME NOT NULL;autoCreateTime"`
	ExpiresAt  time.Time `gorm:"type:DATETIME NOT NULL;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }

// Expired reports whether the record is no longer replayable at now.
func (r Idempotency) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}
