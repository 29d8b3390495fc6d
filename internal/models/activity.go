package models

import (
	"time"

	"github.com/google/uuid"
)

// ActivityType tags planned and actual activity records. Planned
// activities only use the first three; the fixed types (coach sessions,
// varsity) exist as one-per-day toggles on the actual side.
type ActivityType string

const (
	ActivityShooting     ActivityType = "shooting"
	ActivityPickup       ActivityType = "pickup"
	ActivityCustom       ActivityType = "custom"
	ActivityCoachSkills  ActivityType = "coach_skills"
	ActivityCoachWeights ActivityType = "coach_weights"
	ActivityVarsity      ActivityType = "varsity"
)

func (t ActivityType) ValidPlanned() bool {
	switch t {
	case ActivityShooting, ActivityPickup, ActivityCustom:
		return true
	}
	return false
}

func (t ActivityType) ValidActual() bool {
	switch t {
	case ActivityShooting, ActivityPickup, ActivityCustom,
		ActivityCoachSkills, ActivityCoachWeights, ActivityVarsity:
		return true
	}
	return false
}

func (t ActivityType) Fixed() bool {
	switch t {
	case ActivityCoachSkills, ActivityCoachWeights, ActivityVarsity:
		return true
	}
	return false
}

type PlannedActivity struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	TrainingDayID uuid.UUID    `gorm:"type:uuid;not null;index" json:"training_day_id"`
	Type          ActivityType `gorm:"size:20;not null" json:"type"`
	Time          string       `gorm:"size:5;not null" json:"time"`
	Location      *string      `gorm:"size:255" json:"location,omitempty"`
	Name          *string      `gorm:"size:100" json:"name,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

type ActualActivity struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	TrainingDayID uuid.UUID    `gorm:"type:uuid;not null;index" json:"training_day_id"`
	Type          ActivityType `gorm:"size:20;not null" json:"type"`
	CompletedAt   *string      `gorm:"size:5" json:"completed_at,omitempty"`
	ShootingMakes int          `gorm:"default:0" json:"shooting_makes"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
