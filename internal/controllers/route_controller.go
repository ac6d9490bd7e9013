package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gustavosampaioo/statusrotas/internal/core"
	"github.com/gustavosampaioo/statusrotas/internal/models"
	"github.com/gustavosampaioo/statusrotas/internal/services"
)

// RouteResponse is the API shape of a route. Geometry is rendered as a
// GeoJSON string; only the configured schema mode's status fields are
// populated. FeedEditable tells the client whether to offer the feed
// widget.
type RouteResponse struct {
	ID        uint      `json:"ID"`
	CreatedAt time.Time `json:"CreatedAt"`
	UpdatedAt time.Time `json:"UpdatedAt"`
	Name      string    `json:"name"`
	PopID     uint      `json:"pop_id"`
	CityID    *uint     `json:"city_id,omitempty"`

	Status core.RouteStatus `json:"status,omitempty"`
	Notes  string           `json:"notes,omitempty"`

	LaunchStatus core.TrackStatus `json:"launch_status,omitempty"`
	FusionStatus core.TrackStatus `json:"fusion_status,omitempty"`
	FeedStatus   core.FeedStatus  `json:"feed_status,omitempty"`
	LaunchNotes  string           `json:"launch_notes,omitempty"`
	FusionNotes  string           `json:"fusion_notes,omitempty"`
	FeedEditable bool             `json:"feed_editable"`

	UpdatedByID uint   `json:"updated_by_id"`
	Geometry    string `json:"geometry,omitempty"`
}

// toRouteResponse converts a models.Route to a RouteResponse.
func toRouteResponse(route *models.Route) RouteResponse {
	jsonGeom, err := services.GeometryGeoJSON(route)
	if err != nil {
		logrus.WithError(err).WithField("route_id", route.ID).Warn("could not render route geometry")
	}
	resp := RouteResponse{
		ID:          route.ID,
		CreatedAt:   route.CreatedAt,
		UpdatedAt:   route.UpdatedAt,
		Name:        route.Name,
		PopID:       route.PopID,
		CityID:      route.CityID,
		UpdatedByID: route.UpdatedByID,
		Geometry:    jsonGeom,
	}
	switch statusSvc.Mode() {
	case core.ModeSingle:
		resp.Status = route.Status
		resp.Notes = route.Notes
	case core.ModeDual:
		resp.LaunchStatus = route.LaunchStatus
		resp.FusionStatus = route.FusionStatus
		resp.LaunchNotes = route.LaunchNotes
		resp.FusionNotes = route.FusionNotes
		resp.FeedEditable = services.FeedEditable(route)
		if resp.FeedEditable {
			resp.FeedStatus = route.FeedStatus
		}
	}
	return resp
}

// CreateRoute registers a new route. Open to any authenticated user.
func CreateRoute(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}

	var input struct {
		Name     string `json:"name" binding:"required"`
		PopID    uint   `json:"pop_id" binding:"required"`
		CityID   *uint  `json:"city_id"`
		Geometry string `json:"geometry"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CreateRoute: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	route, err := entitySvc.CreateRoute(actor, services.CreateRouteInput{
		Name:     input.Name,
		PopID:    input.PopID,
		CityID:   input.CityID,
		Geometry: input.Geometry,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"route": toRouteResponse(route)})
}

// GetRoute returns a single route.
func GetRoute(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	route, err := entitySvc.GetRoute(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": toRouteResponse(route)})
}

// ListRoutesByPop returns a POP's routes in stable creation order.
func ListRoutesByPop(c *gin.Context) {
	popID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pop ID"})
		return
	}

	routes, err := entitySvc.ListRoutesByPop(uint(popID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": routeResponses(routes)})
}

// ListRoutesByCity returns a City's routes in stable creation order.
func ListRoutesByCity(c *gin.Context) {
	cityID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid city ID"})
		return
	}

	routes, err := entitySvc.ListRoutesByCity(uint(cityID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": routeResponses(routes)})
}

func routeResponses(routes []models.Route) []RouteResponse {
	out := make([]RouteResponse, 0, len(routes))
	for i := range routes {
		out = append(out, toRouteResponse(&routes[i]))
	}
	return out
}

type statusUpdateInput struct {
	// Single-status shape
	Status string `json:"status"`
	Notes  string `json:"notes"`

	// Dual-track shape
	LaunchStatus string  `json:"launch_status"`
	FusionStatus string  `json:"fusion_status"`
	LaunchNotes  string  `json:"launch_notes"`
	FusionNotes  string  `json:"fusion_notes"`
	FeedStatus   *string `json:"feed_status"`
}

// UpdateRouteStatus applies a status proposal to a route using the
// deployment's schema mode. Open to any authenticated user; the update
// stamps the acting user and the refreshed timestamp atomically.
func UpdateRouteStatus(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	var input statusUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("UpdateRouteStatus: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var route *models.Route
	switch statusSvc.Mode() {
	case core.ModeSingle:
		route, err = statusSvc.UpdateStatus(actor, uint(id), core.RouteStatus(input.Status), input.Notes)
	case core.ModeDual:
		update := services.TrackUpdate{
			Launch:      core.TrackStatus(input.LaunchStatus),
			Fusion:      core.TrackStatus(input.FusionStatus),
			LaunchNotes: input.LaunchNotes,
			FusionNotes: input.FusionNotes,
		}
		if input.FeedStatus != nil {
			feed := core.FeedStatus(*input.FeedStatus)
			update.Feed = &feed
		}
		route, err = statusSvc.UpdateTracks(actor, uint(id), update)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": toRouteResponse(route)})
}

// DeleteRoute hard-deletes a route. Admin group.
func DeleteRoute(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	if err := entitySvc.DeleteRoute(actor, uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Route deleted successfully"})
}
