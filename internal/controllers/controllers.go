// Package controllers translates HTTP requests into service calls and
// typed domain errors into HTTP statuses. No business rules live here.
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/gustavosampaioo/statusrotas/internal/core"
	"github.com/gustavosampaioo/statusrotas/internal/models"
	"github.com/gustavosampaioo/statusrotas/internal/services"
)

var (
	authSvc   *services.AuthService
	entitySvc *services.EntityService
	statusSvc *services.StatusService
	statsSvc  *services.StatsService
)

// Setup wires the controllers to their services. Called once at boot.
func Setup(db *gorm.DB, mode core.SchemaMode, bootstrapAdminUser string) {
	authSvc = services.NewAuthService(db, bootstrapAdminUser)
	entitySvc = services.NewEntityService(db, mode)
	statusSvc = services.NewStatusService(db, mode)
	statsSvc = services.NewStatsService(db, mode)
}

// actingUser resolves the authenticated user from the JWT claims set by
// the middleware. Every service mutation receives this record
// explicitly; controllers never pass session state downward.
func actingUser(c *gin.Context) (*models.User, bool) {
	idIfc, exists := c.Get("user_id")
	if !exists {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return nil, false
	}
	idFloat, ok := idIfc.(float64)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
		return nil, false
	}
	user, err := authSvc.GetUser(uint(idFloat))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authorized"})
		return nil, false
	}
	if !user.Active {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authorized"})
		return nil, false
	}
	return user, true
}

// respondError maps the core error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var (
		validationErr  *core.ValidationError
		notFoundErr    *core.NotFoundError
		duplicateErr   *core.DuplicateError
		dependentsErr  *core.HasDependentsError
		forbiddenErr   *core.ForbiddenError
		statusErr      *core.InvalidStatusError
		weakPassErr    *core.WeakPasswordError
		credentialsErr *core.InvalidCredentialsError
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &statusErr), errors.As(err, &weakPassErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &credentialsErr):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.As(err, &forbiddenErr):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &duplicateErr):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &dependentsErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":      err.Error(),
			"dependents": dependentsErr.Dependents,
		})
	default:
		logrus.WithError(err).Error("unhandled service error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
