package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string            `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password  string            `gorm:"not null" json:"-"`
	Name      string            `gorm:"size:100" json:"name"`
	Settings  datatypes.JSONMap `gorm:"type:jsonb;default:'{}'" json:"settings"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	DeletedAt gorm.DeletedAt    `gorm:"index" json:"-"`
}
