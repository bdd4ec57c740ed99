package controllers

import (
	"fmt"
	"net/http"

	"github.com/mpefaur/plant-vs-water/utils"

	"github.com/gin-gonic/gin"
)

type UploadImageRequest struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// UploadPlantImage stores a data-URL encoded photo and returns its public
// URL, which the client then sends back as image_url on plant creation.
func UploadPlantImage(c *gin.Context) {
	var req UploadImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	userID := c.GetUint("userID")
	url, err := utils.UploadBase64ImageToS3(c.Request.Context(), req.ImageBase64, fmt.Sprintf("user-%d", userID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
