package controllers

import (
	"net/http"
	"time"

	"github.com/mpefaur/plant-vs-water/config"
	"github.com/mpefaur/plant-vs-water/services"

	"github.com/gin-gonic/gin"
)

type WaterPlantInput struct {
	WaterAmount *float64   `json:"water_amount"`
	WateredAt   *time.Time `json:"watered_at"`
}

// WaterPlant appends a watering event for the plant. The body is optional;
// the timestamp defaults to now.
func WaterPlant(c *gin.Context) {
	var input WaterPlantInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	userID := c.GetUint("userID")

	plantSvc := services.NewPlantService(config.DB)
	if _, err := plantSvc.RequireOwner(c.Request.Context(), c.Param("id"), userID); err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}

	svc := services.NewWateringService(config.DB, realtimeHub)
	event, err := svc.Record(c.Request.Context(), c.Param("id"), userID, input.WaterAmount, input.WateredAt)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, event)
}

func GetWateringHistory(c *gin.Context) {
	userID := c.GetUint("userID")

	plantSvc := services.NewPlantService(config.DB)
	if _, err := plantSvc.RequireOwner(c.Request.Context(), c.Param("id"), userID); err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}

	svc := services.NewWateringService(config.DB, realtimeHub)
	events, err := svc.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, events)
}
