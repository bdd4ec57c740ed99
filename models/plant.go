package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Plant is a tracked plant. The watering interval is in whole days and must
// be at least 1.
type Plant struct {
	ID               string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	Name             string    `gorm:"not null" json:"name"`
	ImageURL         string    `json:"image_url"`
	WateringInterval int       `gorm:"not null" json:"watering_interval"` // days
	UserID           uint      `gorm:"index;not null" json:"user_id"`

	WateringEvents []WateringEvent `gorm:"constraint:OnDelete:CASCADE" json:"watering_events"`
}

func (p *Plant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
