package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/gustavosampaioo/statusrotas/internal/controllers"
	"github.com/gustavosampaioo/statusrotas/internal/middleware"
)

func PopRoutes(r *gin.Engine) {
	pops := r.Group("/pops")
	pops.Use(middleware.RequireAuth())
	{
		pops.GET("", controllers.ListPops)
		pops.GET("/:id", controllers.GetPop)
		pops.GET("/:id/cities", controllers.ListCitiesByPop)
		pops.GET("/:id/routes", controllers.ListRoutesByPop)
	}

	cities := r.Group("/cities")
	cities.Use(middleware.RequireAuth())
	{
		cities.GET("/:id/routes", controllers.ListRoutesByCity)
	}
}
