package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mpefaur/plant-vs-water/models"

	"gorm.io/gorm"
)

type WateringService struct {
	db  *gorm.DB
	hub *RealtimeHub
}

// NewWateringService builds a watering log over db. hub may be nil when no
// realtime feed is wired (tests).
func NewWateringService(db *gorm.DB, hub *RealtimeHub) *WateringService {
	return &WateringService{db: db, hub: hub}
}

// Record appends a watering event for the plant. The timestamp defaults to
// the time of recording; amount is optional but must be positive when given.
func (s *WateringService) Record(ctx context.Context, plantID string, userID uint, amount *float64, at *time.Time) (*models.WateringEvent, error) {
	if amount != nil && *amount <= 0 {
		return nil, fmt.Errorf("%w: water_amount must be positive", ErrValidation)
	}

	var plant models.Plant
	err := s.db.WithContext(ctx).First(&plant, "id = ?", plantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: plant %s", ErrNotFound, plantID)
		}
		return nil, err
	}

	wateredAt := time.Now()
	if at != nil {
		wateredAt = *at
	}

	event := models.WateringEvent{
		PlantID:     plantID,
		UserID:      userID,
		WateredAt:   wateredAt,
		WaterAmount: amount,
	}
	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.Publish(userID, WateringNotice{
			PlantID:   event.PlantID,
			WateredAt: event.WateredAt,
		})
	}
	return &event, nil
}

// History lists a plant's watering events newest-first.
func (s *WateringService) History(ctx context.Context, plantID string) ([]models.WateringEvent, error) {
	var events []models.WateringEvent
	err := s.db.WithContext(ctx).
		Where("plant_id = ?", plantID).
		Order("watered_at DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
