package model

import (
	"time"

	"github.com/google/uuid"
)

// Draft is the single autosave slot per user: an unvalidated in-progress
// payload that is not yet a Report. Superseded and cleared the moment a Report
// is created or updated from it.
type Draft struct {
	UserID    uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	Payload   ReportData `gorm:"type:jsonb;serializer:json" json:"payload"`
	SavedAt   time.Time  `gorm:"not null" json:"saved_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
