package audit

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-panel/internal/models"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// Filter narrows an audit log listing. Empty fields match everything; From
// and To are inclusive YYYY-MM-DD dates.
type Filter struct {
	Action string
	Entity string
	Actor  string
	From   string
	To     string
	Page   int
	Limit  int
}

// Normalize clamps paging to sane values.
func (f Filter) Normalize() Filter {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > maxPageSize {
		f.Limit = defaultPageSize
	}
	return f
}

// List returns one page of stored events, newest first, with the total
// count of matching rows.
func (s *GormSink) List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error) {
	f = f.Normalize()

	q := s.db.WithContext(ctx).Model(&models.AuditLog{})
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.Actor != "" {
		q = q.Where("actor = ?", f.Actor)
	}
	if from, err := time.Parse("2006-01-02", f.From); err == nil {
		q = q.Where("created_at >= ?", from)
	}
	if to, err := time.Parse("2006-01-02", f.To); err == nil {
		q = q.Where("created_at < ?", to.Add(24*time.Hour))
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	err := q.Order("created_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
