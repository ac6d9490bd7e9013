package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatsOverview mirrors the statistics screen: totals, busiest POP and
// the average route count, all recomputed from current state.
func StatsOverview(c *gin.Context) {
	pops, err := statsSvc.CountPops()
	if err != nil {
		respondError(c, err)
		return
	}
	cities, err := statsSvc.CountCities()
	if err != nil {
		respondError(c, err)
		return
	}
	routes, err := statsSvc.CountRoutes()
	if err != nil {
		respondError(c, err)
		return
	}
	top, err := statsSvc.PopWithMostRoutes()
	if err != nil {
		respondError(c, err)
		return
	}
	avg, err := statsSvc.AvgRoutesPerPop()
	if err != nil {
		respondError(c, err)
		return
	}

	out := gin.H{
		"total_pops":         pops,
		"total_cities":       cities,
		"total_routes":       routes,
		"avg_routes_per_pop": avg,
	}
	if top != nil {
		out["pop_with_most_routes"] = top
	} else {
		out["pop_with_most_routes"] = nil
	}
	c.JSON(http.StatusOK, out)
}

// RoutesPerPop returns the POP-name-to-route-count mapping used by the
// bar chart. Empty object when no POPs exist.
func RoutesPerPop(c *gin.Context) {
	perPop, err := statsSvc.RoutesPerPop()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes_per_pop": perPop})
}

// StatusBreakdown returns per-status route counts for the deployment's
// schema mode.
func StatusBreakdown(c *gin.Context) {
	breakdown, err := statsSvc.StatusBreakdown()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status_breakdown": breakdown})
}
