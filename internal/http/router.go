package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type HealthFunc func(ctx context.Context) error

func NewRouter(handler *Handler, authMiddleware, writerMiddleware gin.HandlerFunc, health HealthFunc, env string) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"*"},
		ExposeHeaders:   []string{"Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		if health != nil {
			if err := health(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	protected := router.Group("/api/v1")
	protected.Use(authMiddleware)
	{
		protected.GET("/vehicles", handler.listVehicles)
		protected.GET("/vehicles/search", handler.searchVehicles)
		protected.GET("/vehicles/plate/:plate", handler.getVehicleByPlate)
		protected.GET("/vehicles/status/:status", handler.listVehiclesByStatus)
		protected.GET("/vehicles/type/:type", handler.listVehiclesByType)
		protected.GET("/vehicles/driver/:driverId", handler.listVehiclesByDriver)
		protected.GET("/vehicles/:id", handler.getVehicle)
		protected.GET("/vehicles/:id/assignments", handler.vehicleAssignments)

		protected.GET("/drivers", handler.listDrivers)
		protected.GET("/drivers/license/:number", handler.getDriverByLicense)
		protected.GET("/drivers/status/:status", handler.listDriversByStatus)
		protected.GET("/drivers/:id", handler.getDriver)

		mutating := protected.Group("")
		mutating.Use(writerMiddleware)
		{
			mutating.POST("/vehicles", handler.createVehicle)
			mutating.PUT("/vehicles/:id", handler.updateVehicle)
			mutating.DELETE("/vehicles/:id", handler.deleteVehicle)
			mutating.POST("/vehicles/:id/driver/:driverId", handler.assignDriver)
			mutating.DELETE("/vehicles/:id/driver", handler.removeDriver)
			mutating.PATCH("/vehicles/:id/mileage", handler.updateVehicleMileage)
			mutating.PATCH("/vehicles/:id/status", handler.updateVehicleStatus)

			mutating.POST("/drivers", handler.createDriver)
			mutating.PUT("/drivers/:id", handler.updateDriver)
			mutating.DELETE("/drivers/:id", handler.deleteDriver)
			mutating.PATCH("/drivers/:id/status", handler.updateDriverStatus)
		}
	}

	return router
}
