package routes

import (
	"github.com/gin-gonic/gin"

	ginlog "github.com/gin-contrib/logger"

	"github.com/gustavosampaioo/statusrotas/internal/config"
	"github.com/gustavosampaioo/statusrotas/internal/controllers"
)

// SetupRouter wires the controllers to their services and registers
// every route group.
func SetupRouter(cfg config.Config) *gin.Engine {
	controllers.Setup(config.GetDB(), cfg.Mode, cfg.BootstrapAdminUser)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())

	AuthRoutes(r)
	PopRoutes(r)
	RouteRoutes(r)
	StatsRoutes(r)
	AdminRoutes(r)

	return r
}
