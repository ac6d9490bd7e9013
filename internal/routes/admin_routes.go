package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/gustavosampaioo/statusrotas/internal/controllers"
	"github.com/gustavosampaioo/statusrotas/internal/middleware"
)

func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.POST("/pops", controllers.CreatePop)
		admin.DELETE("/pops/:id", controllers.DeletePop)
		admin.POST("/cities", controllers.CreateCity)
		admin.DELETE("/cities/:id", controllers.DeleteCity)
		admin.DELETE("/routes/:id", controllers.DeleteRoute)

		admin.POST("/users", controllers.RegisterUser)
		admin.DELETE("/users/:id", controllers.DeactivateUser)
		admin.GET("/users", controllers.ListUsers)
	}
}
