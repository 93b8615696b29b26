// Package audit records every content mutation for operator review.
package audit

import (
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Action names for audit events.
const (
	ActionCreate       = "create"
	ActionUpdate       = "update"
	ActionDelete       = "delete"
	ActionImageAttach  = "image_attach"
	ActionImageDetach  = "image_detach"
	ActionImageReorder = "image_reorder"
)

// Event is one recorded content mutation.
type Event struct {
	ID         uint      `gorm:"column:id;primaryKey"`
	Actor      string    `gorm:"column:actor;not null"`
	Action     string    `gorm:"column:action;not null"`
	EntityKind string    `gorm:"column:entity_kind;not null;index"`
	EntityID   uint      `gorm:"column:entity_id;not null"`
	Detail     string    `gorm:"column:detail"`
	OccurredAt time.Time `gorm:"column:occurred_at;autoCreateTime"`
}

func (Event) TableName() string {
	return "audit_events"
}

// Recorder persists audit events and mirrors them to the log.
// A nil Recorder is a no-op, so callers never need to guard.
type Recorder struct {
	db     *gorm.DB
	logger zerolog.Logger
}

func NewRecorder(db *gorm.DB, logger zerolog.Logger) *Recorder {
	return &Recorder{db: db, logger: logger}
}

// Record writes the event. Audit failures are logged, never surfaced: a
// mutation must not fail because its audit row could not be written.
func (r *Recorder) Record(event Event) {
	if r == nil {
		return
	}
	r.logger.Info().
		Str("actor", event.Actor).
		Str("action", event.Action).
		Str("entity_kind", event.EntityKind).
		Uint("entity_id", event.EntityID).
		Msg("audit")

	if r.db == nil {
		return
	}
	if err := r.db.Create(&event).Error; err != nil {
		r.logger.Warn().Err(err).Msg("failed to persist audit event")
	}
}

// Recent returns the latest events for an entity kind, newest first.
func (r *Recorder) Recent(entityKind string, limit int) ([]Event, error) {
	if r == nil || r.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}
	var events []Event
	q := r.db.Order("occurred_at DESC, id DESC").Limit(limit)
	if entityKind != "" {
		q = q.Where("entity_kind = ?", entityKind)
	}
	if err := q.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
