package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WateringEvent records that a plant was watered. Events are append-only:
// nothing in the service mutates or deletes one except a cascade when its
// plant is removed.
type WateringEvent struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	PlantID     string    `gorm:"type:uuid;index;not null" json:"plant_id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	WateredAt   time.Time `gorm:"index;not null" json:"watered_at"`
	WaterAmount *float64  `json:"water_amount,omitempty"` // cups
}

func (e *WateringEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
