package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/gustavosampaioo/statusrotas/internal/controllers"
	"github.com/gustavosampaioo/statusrotas/internal/middleware"
)

func StatsRoutes(r *gin.Engine) {
	stats := r.Group("/stats")
	stats.Use(middleware.RequireAuth())
	{
		stats.GET("/overview", controllers.StatsOverview)
		stats.GET("/routes-per-pop", controllers.RoutesPerPop)
		stats.GET("/status-breakdown", controllers.StatusBreakdown)
	}
}
