package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CreatePop registers a new POP. Admin group.
func CreatePop(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}

	var input struct {
		Name     string `json:"name" binding:"required"`
		Location string `json:"location"`
		Capacity int    `json:"capacity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CreatePop: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pop, err := entitySvc.CreatePop(actor, input.Name, input.Location, input.Capacity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"pop": pop})
}

// GetPop retrieves a POP by ID.
func GetPop(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pop ID"})
		return
	}

	pop, err := entitySvc.GetPop(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pop": pop})
}

// ListPops lists all POPs with their route counts.
func ListPops(c *gin.Context) {
	pops, err := entitySvc.ListPops()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": pops})
}

// DeletePop removes a POP and cascades over its cities and routes.
// Admin group.
func DeletePop(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pop ID"})
		return
	}

	if err := entitySvc.DeletePop(actor, uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pop deleted"})
}
