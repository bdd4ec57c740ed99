package routes

import (
	"net/http"

	"github.com/mpefaur/plant-vs-water/controllers"
	"github.com/mpefaur/plant-vs-water/middlewares"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()
	r.Use(middlewares.MetricsMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	// Protected API routes
	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())
	{
		api.POST("/plants", controllers.CreatePlant)
		api.GET("/plants", controllers.ListPlants)
		api.GET("/plants/:id", controllers.GetPlant)
		api.PUT("/plants/:id", controllers.UpdatePlant)
		api.DELETE("/plants/:id", controllers.DeletePlant)

		api.POST("/plants/:id/waterings", controllers.WaterPlant)
		api.GET("/plants/:id/waterings", controllers.GetWateringHistory)
		api.GET("/plants/:id/qrcode", controllers.PlantQRCode)

		api.POST("/uploads/plant-image", controllers.UploadPlantImage)
		api.GET("/ws", controllers.WateringsWS)
	}

	return r
}
