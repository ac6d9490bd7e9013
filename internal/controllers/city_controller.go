package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CreateCity registers a new City under a POP. Admin group.
func CreateCity(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}

	var input struct {
		Name  string `json:"name" binding:"required"`
		PopID uint   `json:"pop_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CreateCity: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	city, err := entitySvc.CreateCity(actor, input.Name, input.PopID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"city": city})
}

// ListCitiesByPop lists the cities under a POP.
func ListCitiesByPop(c *gin.Context) {
	popID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pop ID"})
		return
	}

	cities, err := entitySvc.ListCitiesByPop(uint(popID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": cities})
}

// DeleteCity removes a City without routes. Blocked with the dependent
// count when routes still reference it. Admin group.
func DeleteCity(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid city ID"})
		return
	}

	if err := entitySvc.DeleteCity(actor, uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "City deleted"})
}
