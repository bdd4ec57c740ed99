package controllers

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/mpefaur/plant-vs-water/config"
	"github.com/mpefaur/plant-vs-water/services"
	"github.com/mpefaur/plant-vs-water/utils"

	"github.com/gin-gonic/gin"
)

// PlantQRCode renders a scannable PNG linking to the plant's detail page.
// Size is in pixels via the optional ?size= query param.
func PlantQRCode(c *gin.Context) {
	userID := c.GetUint("userID")

	svc := services.NewPlantService(config.DB)
	plant, err := svc.RequireOwner(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error()})
		return
	}

	size, _ := strconv.Atoi(c.Query("size"))
	link := fmt.Sprintf("%s/plants/%s", os.Getenv("APP_BASE_URL"), plant.ID)

	png, err := utils.EncodeQRPNG(link, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
