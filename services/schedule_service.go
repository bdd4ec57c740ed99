package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/mpefaur/plant-vs-water/models"
)

// WateringStatus is the derived watering state of a plant. It is computed on
// read and never stored. Days/Hours/Minutes hold the magnitude of the time
// to (or past) the next watering; the sign lives in NeedsWater.
type WateringStatus struct {
	NeverWatered bool `json:"never_watered"`
	NeedsWater   bool `json:"needs_water"`
	Days         int  `json:"days"`
	Hours        int  `json:"hours"`
	Minutes      int  `json:"minutes"`

	LastWateredAt  *time.Time `json:"last_watered_at,omitempty"`
	NextWateringAt *time.Time `json:"next_watering_at,omitempty"`
}

// ComputeWateringStatus derives a plant's watering status from its interval
// and event history at the given instant. Events may arrive in any order;
// equal timestamps keep their slice order. A plant with no events needs
// water by convention.
func ComputeWateringStatus(intervalDays int, events []models.WateringEvent, now time.Time) (WateringStatus, error) {
	if intervalDays < 1 {
		return WateringStatus{}, fmt.Errorf("%w: watering interval must be at least 1 day", ErrValidation)
	}

	if len(events) == 0 {
		return WateringStatus{NeverWatered: true, NeedsWater: true}, nil
	}

	sorted := make([]models.WateringEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].WateredAt.After(sorted[j].WateredAt)
	})

	lastWatered := sorted[0].WateredAt
	nextWatering := lastWatered.Add(time.Duration(intervalDays) * 24 * time.Hour)
	delta := nextWatering.Sub(now)

	needsWater := delta <= 0
	ms := delta.Milliseconds()
	if ms < 0 {
		ms = -ms
	}

	const (
		msPerMinute = 60 * 1000
		msPerHour   = 60 * msPerMinute
		msPerDay    = 24 * msPerHour
	)

	return WateringStatus{
		NeedsWater:     needsWater,
		Days:           int(ms / msPerDay),
		Hours:          int(ms % msPerDay / msPerHour),
		Minutes:        int(ms % msPerHour / msPerMinute),
		LastWateredAt:  &lastWatered,
		NextWateringAt: &nextWatering,
	}, nil
}
