package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mpefaur/plant-vs-water/models"

	"gorm.io/gorm"
)

type PlantService struct {
	db *gorm.DB
}

func NewPlantService(db *gorm.DB) *PlantService {
	return &PlantService{db: db}
}

// Create validates and inserts a new plant owned by userID. Nothing is
// written when validation fails.
func (s *PlantService) Create(ctx context.Context, userID uint, name, imageURL string, intervalDays int) (*models.Plant, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if imageURL == "" {
		return nil, fmt.Errorf("%w: image_url is required", ErrValidation)
	}
	if intervalDays < 1 {
		return nil, fmt.Errorf("%w: watering_interval must be at least 1 day", ErrValidation)
	}
	if userID == 0 {
		return nil, fmt.Errorf("%w: owner is required", ErrValidation)
	}

	plant := models.Plant{
		Name:             strings.TrimSpace(name),
		ImageURL:         imageURL,
		WateringInterval: intervalDays,
		UserID:           userID,
	}
	if err := s.db.WithContext(ctx).Create(&plant).Error; err != nil {
		return nil, err
	}
	return &plant, nil
}

// Get fetches a plant with its watering events preloaded newest-first.
func (s *PlantService) Get(ctx context.Context, plantID string) (*models.Plant, error) {
	var plant models.Plant
	err := s.db.WithContext(ctx).
		Preload("WateringEvents", func(db *gorm.DB) *gorm.DB {
			return db.Order("watered_at DESC")
		}).
		First(&plant, "id = ?", plantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: plant %s", ErrNotFound, plantID)
		}
		return nil, err
	}
	return &plant, nil
}

// List returns all of a user's plants with their watering events.
func (s *PlantService) List(ctx context.Context, userID uint) ([]models.Plant, error) {
	var plants []models.Plant
	err := s.db.WithContext(ctx).
		Preload("WateringEvents", func(db *gorm.DB) *gorm.DB {
			return db.Order("watered_at DESC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&plants).Error
	if err != nil {
		return nil, err
	}
	return plants, nil
}

// Update changes a plant's name and watering interval. A missing plant is an
// error, not a no-op.
func (s *PlantService) Update(ctx context.Context, plantID, name string, intervalDays int) (*models.Plant, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if intervalDays < 1 {
		return nil, fmt.Errorf("%w: watering_interval must be at least 1 day", ErrValidation)
	}

	if _, err := s.Get(ctx, plantID); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).
		Model(&models.Plant{}).
		Where("id = ?", plantID).
		Updates(map[string]interface{}{
			"name":              strings.TrimSpace(name),
			"watering_interval": intervalDays,
		}).Error
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, plantID)
}

// Delete removes a plant and its watering events. Events cascade in the same
// call so the policy holds regardless of FK enforcement.
func (s *PlantService) Delete(ctx context.Context, plantID string) error {
	var plant models.Plant
	err := s.db.WithContext(ctx).First(&plant, "id = ?", plantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: plant %s", ErrNotFound, plantID)
		}
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plant_id = ?", plantID).Delete(&models.WateringEvent{}).Error; err != nil {
			return err
		}
		return tx.Delete(&plant).Error
	})
}

// RequireOwner fetches a plant and verifies it belongs to userID.
func (s *PlantService) RequireOwner(ctx context.Context, plantID string, userID uint) (*models.Plant, error) {
	plant, err := s.Get(ctx, plantID)
	if err != nil {
		return nil, err
	}
	if plant.UserID != userID {
		return nil, fmt.Errorf("%w: plant %s is not owned by user %d", ErrForbidden, plantID, userID)
	}
	return plant, nil
}
