package audit

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-panel/internal/models"
)

func metadataJSON(metadata any) string {
	if metadata == nil {
		return ""
	}
	b, err := json.Marshal(metadata)
	if err != nil {
		return ""
	}
	return string(b)
}

// GormSink stores events in the audit_logs table.
type GormSink struct {
	db *gorm.DB
}

func NewGormSink(db *gorm.DB) *GormSink {
	return &GormSink{db: db}
}

func (s *GormSink) Write(ctx context.Context, ev Event) error {
	log := models.AuditLog{
		Actor:    ev.Actor,
		Role:     ev.Role,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metadataJSON(ev.Metadata),
	}

	return s.db.WithContext(ctx).Create(&log).Error
}

// LogSink writes events as structured log lines.
type LogSink struct {
	logger zerolog.Logger
}

func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Write(_ context.Context, ev Event) error {
	e := s.logger.Info().
		Str("audit_action", ev.Action).
		Str("actor", ev.Actor).
		Str("role", ev.Role).
		Str("entity", ev.Entity)
	if ev.EntityID != nil {
		e = e.Int64("entity_id", *ev.EntityID)
	}
	if meta := metadataJSON(ev.Metadata); meta != "" {
		e = e.RawJSON("metadata", []byte(meta))
	}
	e.Msg("audit")
	return nil
}
