package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	api := router.Group("/api")
	{
		api.GET("/properties", handler.GetProperties)
		api.GET("/stats", handler.GetStats)
		api.GET("/cities", handler.GetCityStats)
		api.GET("/types", handler.GetTypeStats)
		api.GET("/ages", handler.GetAgeStats)
		api.GET("/locations", handler.GetLocationStats)
		api.GET("/distances", handler.GetDistanceStats)
		api.GET("/report", handler.GetReport)
		api.POST("/generate", handler.Generate)
	}
}
