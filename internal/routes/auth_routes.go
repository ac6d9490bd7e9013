package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/gustavosampaioo/statusrotas/internal/controllers"
)

func AuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", controllers.LoginUser)
	}
}
