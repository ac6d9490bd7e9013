package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavosampaioo/statusrotas/internal/core"
)

func TestCountsStartAtZero(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db, core.ModeDual)

	pops, err := svc.CountPops()
	require.NoError(t, err)
	cities, err := svc.CountCities()
	require.NoError(t, err)
	routes, err := svc.CountRoutes()
	require.NoError(t, err)

	assert.Zero(t, pops)
	assert.Zero(t, cities)
	assert.Zero(t, routes)
}

func TestRoutesPerPopEmptyWithoutPops(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db, core.ModeDual)

	perPop, err := svc.RoutesPerPop()
	require.NoError(t, err)
	assert.NotNil(t, perPop, "empty mapping, not an error")
	assert.Empty(t, perPop)
}

func TestRoutesPerPop(t *testing.T) {
	db := newTestDB(t)
	admin := seedAdmin(t, db)
	entities := NewEntityService(db, core.ModeDual)
	svc := NewStatsService(db, core.ModeDual)

	central, err := entities.CreatePop(admin, "Central", "", 100)
	require.NoError(t, err)
	north, err := entities.CreatePop(admin, "North", "", 50)
	require.NoError(t, err)
	_, err = entities.CreatePop(admin, "Idle", "", 10)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := entities.CreateRoute(admin, CreateRouteInput{Name: "C", PopID: central.ID})
		require.NoError(t, err)
	}
	_, err = entities.CreateRoute(admin, CreateRouteInput{Name: "N", PopID: north.ID})
	require.NoError(t, err)

	perPop, err := svc.RoutesPerPop()
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"Central": 3, "North": 1, "Idle": 0}, perPop)
}

func TestPopWithMostRoutes(t *testing.T) {
	db := newTestDB(t)
	admin := seedAdmin(t, db)
	entities := NewEntityService(db, core.ModeDual)
	svc := NewStatsService(db, core.ModeDual)

	// No routes anywhere: the maximum is not applicable, not an error.
	top, err := svc.PopWithMostRoutes()
	require.NoError(t, err)
	assert.Nil(t, top)

	// Pops alone do not change that.
	central, err := entities.CreatePop(admin, "Central", "", 100)
	require.NoError(t, err)
	top, err = svc.PopWithMostRoutes()
	require.NoError(t, err)
	assert.Nil(t, top)

	_, err = entities.CreateRoute(admin, CreateRouteInput{Name: "C-1", PopID: central.ID})
	require.NoError(t, err)
	top, err = svc.PopWithMostRoutes()
	require.NoError(t, err)
	require.NotNil(t, top)
	assert.Equal(t, "Central", top.Name)
	assert.Equal(t, int64(1), top.Routes)
}

func TestAvgRoutesPerPop(t *testing.T) {
	db := newTestDB(t)
	admin := seedAdmin(t, db)
	entities := NewEntityService(db, core.ModeDual)
	svc := NewStatsService(db, core.ModeDual)

	avg, err := svc.AvgRoutesPerPop()
	require.NoError(t, err)
	assert.Zero(t, avg, "no pops means zero, not a division error")

	central, err := entities.CreatePop(admin, "Central", "", 100)
	require.NoError(t, err)
	_, err = entities.CreatePop(admin, "North", "", 50)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := entities.CreateRoute(admin, CreateRouteInput{Name: "C", PopID: central.ID})
		require.NoError(t, err)
	}

	avg, err = svc.AvgRoutesPerPop()
	require.NoError(t, err)
	assert.InDelta(t, 1.5, avg, 0.001)
}

func TestStatusBreakdownSingle(t *testing.T) {
	db := newTestDB(t)
	admin := seedAdmin(t, db)
	entities := NewEntityService(db, core.ModeSingle)
	statuses := NewStatusService(db, core.ModeSingle)
	svc := NewStatsService(db, core.ModeSingle)

	pop, err := entities.CreatePop(admin, "Central", "", 100)
	require.NoError(t, err)
	var ids []uint
	for i := 0; i < 3; i++ {
		r, err := entities.CreateRoute(admin, CreateRouteInput{Name: "R", PopID: pop.ID})
		require.NoError(t, err)
		ids = append(ids, r.ID)
	}
	_, err = statuses.UpdateStatus(admin, ids[0], core.StatusFusionDone, "")
	require.NoError(t, err)

	breakdown, err := svc.StatusBreakdown()
	require.NoError(t, err)
	require.NotNil(t, breakdown.Single)
	assert.Nil(t, breakdown.Launch)
	assert.Equal(t, int64(2), breakdown.Single[core.StatusLaunchPending])
	assert.Equal(t, int64(1), breakdown.Single[core.StatusFusionDone])
	assert.Equal(t, int64(0), breakdown.Single[core.StatusLaunchDone])
	assert.Equal(t, int64(0), breakdown.Single[core.StatusFusionPending])
}

func TestStatusBreakdownDual(t *testing.T) {
	db := newTestDB(t)
	admin := seedAdmin(t, db)
	entities := NewEntityService(db, core.ModeDual)
	statuses := NewStatusService(db, core.ModeDual)
	svc := NewStatsService(db, core.ModeDual)

	pop, err := entities.CreatePop(admin, "Central", "", 100)
	require.NoError(t, err)
	first, err := entities.CreateRoute(admin, CreateRouteInput{Name: "R1", PopID: pop.ID})
	require.NoError(t, err)
	_, err = entities.CreateRoute(admin, CreateRouteInput{Name: "R2", PopID: pop.ID})
	require.NoError(t, err)

	_, err = statuses.UpdateTracks(admin, first.ID, TrackUpdate{
		Launch: core.TrackDone,
		Fusion: core.TrackInProgress,
	})
	require.NoError(t, err)

	breakdown, err := svc.StatusBreakdown()
	require.NoError(t, err)
	assert.Nil(t, breakdown.Single)
	assert.Equal(t, int64(1), breakdown.Launch[core.TrackDone])
	assert.Equal(t, int64(1), breakdown.Launch[core.TrackPending])
	assert.Equal(t, int64(1), breakdown.Fusion[core.TrackInProgress])
	assert.Equal(t, int64(1), breakdown.Fusion[core.TrackPending])
	assert.Equal(t, int64(0), breakdown.Fusion[core.TrackDone])
}
