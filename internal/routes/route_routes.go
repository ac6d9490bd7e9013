package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/gustavosampaioo/statusrotas/internal/controllers"
	"github.com/gustavosampaioo/statusrotas/internal/middleware"
)

func RouteRoutes(r *gin.Engine) {
	routes := r.Group("/routes")
	routes.Use(middleware.RequireAuth())
	{
		routes.POST("", controllers.CreateRoute)
		routes.GET("/:id", controllers.GetRoute)
		routes.PUT("/:id/status", controllers.UpdateRouteStatus)
	}
}
