// Package archive persists an audit trail of orchestrated loads to Postgres.
// Optional: the loader works without it.
package archive

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LoadEventModel struct {
	ID          string            `gorm:"primaryKey;column:id"`
	SessionID   string            `gorm:"column:session_id;index"`
	DatasetID   string            `gorm:"column:dataset_id"`
	SubjectID   string            `gorm:"column:subject_id"`
	RecordCount int               `gorm:"column:record_count"`
	Slots       datatypes.JSONMap `gorm:"column:slots"`
	CreatedAt   time.Time         `gorm:"column:created_at"`
}

func (LoadEventModel) TableName() string {
	return "load_events"
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&LoadEventModel{})
}

func (r *Repository) Save(ctx context.Context, event *LoadEventModel) error {
	event.CreatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *Repository) RecentForSession(ctx context.Context, sessionID string, limit int) ([]LoadEventModel, error) {
	if limit <= 0 {
		limit = 50
	}
	var events []LoadEventModel
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}
