package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gustavosampaioo/statusrotas/internal/middleware"
	"github.com/gustavosampaioo/statusrotas/internal/models"
	"github.com/gustavosampaioo/statusrotas/internal/services"
)

// LoginUser authenticates a username/password pair and issues a
// session token.
func LoginUser(c *gin.Context) {
	var body struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := authSvc.Authenticate(body.Username, body.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Role)
	if err != nil {
		logrus.WithError(err).Error("LoginUser: could not generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  userResponse(user),
	})
}

type registerInput struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	FullName   string `json:"full_name"`
	EmployeeID string `json:"employee_id" binding:"required"`
	Role       string `json:"role"`
}

// RegisterUser creates a new account. Admin group.
func RegisterUser(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}

	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("RegisterUser: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := authSvc.Register(actor, services.RegisterInput{
		Username:   input.Username,
		Password:   input.Password,
		FullName:   input.FullName,
		EmployeeID: input.EmployeeID,
		Role:       input.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": userResponse(user)})
}

// DeactivateUser soft-deletes an account. Admin group.
func DeactivateUser(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := authSvc.Deactivate(actor, uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deactivated"})
}

// ListUsers returns every account, active or not. Admin group.
func ListUsers(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}

	users, err := authSvc.ListUsers(actor)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(users))
	for i := range users {
		out = append(out, userResponse(&users[i]))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func userResponse(user *models.User) gin.H {
	return gin.H{
		"ID":          user.ID,
		"CreatedAt":   user.CreatedAt,
		"username":    user.Username,
		"full_name":   user.FullName,
		"employee_id": user.EmployeeID,
		"role":        user.Role,
		"active":      user.Active,
	}
}
