package models

import (
	"time"

	"github.com/google/uuid"
)

// TrainingDay is one calendar date of training for a user. It is created
// lazily on first access for a given user+date and never deleted.
type TrainingDay struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_training_days_user_date" json:"user_id"`
	Date      time.Time `gorm:"not null;uniqueIndex:idx_training_days_user_date" json:"date"`
	IsGameDay bool      `gorm:"default:false" json:"is_game_day"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Planned []PlannedActivity `gorm:"foreignKey:TrainingDayID" json:"planned,omitempty"`
	Actual  []ActualActivity  `gorm:"foreignKey:TrainingDayID" json:"actual,omitempty"`
}
