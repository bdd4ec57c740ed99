package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/mpefaur/plant-vs-water/config"
	"github.com/mpefaur/plant-vs-water/models"
	"github.com/mpefaur/plant-vs-water/services"

	"github.com/gin-gonic/gin"
)

// errStatus maps service failures to HTTP status codes.
func errStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// PlantResponse is a plant together with its derived watering status. The
// status is recomputed on every read and never persisted.
type PlantResponse struct {
	models.Plant
	WateringStatus services.WateringStatus `json:"watering_status"`
}

func plantWithStatus(plant *models.Plant, now time.Time) (PlantResponse, error) {
	status, err := services.ComputeWateringStatus(plant.WateringInterval, plant.WateringEvents, now)
	if err != nil {
		return PlantResponse{}, err
	}
	return PlantResponse{Plant: *plant, WateringStatus: status}, nil
}

type CreatePlantInput struct {
	Name             string `json:"name" binding:"required"`
	ImageURL         string `json:"image_url" binding:"required"`
	WateringInterval int    `json:"watering_interval" binding:"required"`
}

// CreatePlant registers a plant owned by the authenticated user. Ownership
// comes from the verified token only, never from the request body.
func CreatePlant(c *gin.Context) {
	var input CreatePlantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := c.GetUint("userID")

	svc := services.NewPlantService(config.DB)
	plant, err := svc.Create(c.Request.Context(), userID, input.Name, input.ImageURL, input.WateringInterval)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, plant)
}

func ListPlants(c *gin.Context) {
	userID := c.GetUint("userID")

	svc := services.NewPlantService(config.DB)
	plants, err := svc.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	out := make([]PlantResponse, 0, len(plants))
	for i := range plants {
		resp, err := plantWithStatus(&plants[i], now)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out = append(out, resp)
	}
	c.JSON(http.StatusOK, out)
}

func GetPlant(c *gin.Context) {
	userID := c.GetUint("userID")

	svc := services.NewPlantService(config.DB)
	plant, err := svc.RequireOwner(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}

	resp, err := plantWithStatus(plant, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

type UpdatePlantInput struct {
	Name             string `json:"name" binding:"required"`
	WateringInterval int    `json:"watering_interval" binding:"required"`
}

func UpdatePlant(c *gin.Context) {
	var input UpdatePlantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := c.GetUint("userID")

	svc := services.NewPlantService(config.DB)
	if _, err := svc.RequireOwner(c.Request.Context(), c.Param("id"), userID); err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}

	plant, err := svc.Update(c.Request.Context(), c.Param("id"), input.Name, input.WateringInterval)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plant)
}

func DeletePlant(c *gin.Context) {
	userID := c.GetUint("userID")

	svc := services.NewPlantService(config.DB)
	if _, err := svc.RequireOwner(c.Request.Context(), c.Param("id"), userID); err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}

	if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
