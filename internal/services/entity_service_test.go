package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavosampaioo/statusrotas/internal/core"
	"github.com/gustavosampaioo/statusrotas/internal/models"
)

func TestCreatePopValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewEntityService(db, core.ModeDual)
	admin := seedAdmin(t, db)

	var validation *core.ValidationError

	_, err := svc.CreatePop(admin, "  ", "", 10)
	require.Error(t, err)
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "name", validation.Field)

	_, err = svc.CreatePop(admin, "Central", "", 0)
	require.Error(t, err)
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "capacity", validation.Field)
}

func TestCreatePopRequiresAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewEntityService(db, core.ModeDual)
	plain := seedUser(t, db, "maria", models.RoleUser)

	var forbidden *core.ForbiddenError
	_, err := svc.CreatePop(plain, "Central", "", 10)
	require.Error(t, err)
	assert.True(t, errors.As(err, &forbidden))
}

func TestDeletePopCascades(t *testing.T) {
	db := newTestDB(t)
	svc := NewEntityService(db, core.ModeDual)
	admin := seedAdmin(t, db)

	pop, err := svc.CreatePop(admin, "Central", "Downtown", 100)
	require.NoError(t, err)
	city, err := svc.CreateCity(admin, "Springfield", pop.ID)
	require.NoError(t, err)
	_, err = svc.CreateRoute(admin, CreateRouteInput{Name: "Trunk-1", PopID: pop.ID, CityID: &city.ID})
	require.NoError(t, err)
	_, err = svc.CreateRoute(admin, CreateRouteInput{Name: "Trunk-2", PopID: pop.ID})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePop(admin, pop.ID))

	var notFound *core.NotFoundError
	_, err = svc.GetPop(pop.ID)
	require.Error(t, err)
	assert.True(t, errors.As(err, &notFound))

	var nRoutes, nCities int64
	require.NoError(t, db.Model(&models.Route{}).Count(&nRoutes).Error)
	require.NoError(t, db.Model(&models.City{}).Count(&nCities).Error)
	assert.Zero(t, nRoutes, "cascade must remove every route under the pop")
	assert.Zero(t, nCities, "cascade must remove every city under the pop")
}

func TestCreateCityRequiresExistingPop(t *testing.T) {
	db := newTestDB(t)
	svc := NewEntityService(db, core.ModeDual)
	admin := seedAdmin(t, db)

	var notFound *core.NotFoundError
	_, err := svc.CreateCity(admin, "Springfield", 42)
	require.Error(t, err)
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "pop", notFound.Entity)
}

func TestDeleteCityBlockedByRoutes(t *testing.T) {
	db := newTestDB(t)
	svc := NewEntityService(db, core.ModeDual)
	admin := seedAdmin(t, db)

	pop, err := svc.CreatePop(admin, "Central", "", 100)
	require.NoError(t, err)
	city, err := svc.CreateCity(admin, "Springfield", pop.ID)
	require.NoError(t, err)
	route, err := svc.CreateRoute(admin, CreateRouteInput{Name: "Trunk-1", PopID: pop.ID, CityID: &city.ID})
	require.NoError(t, err)

	var dependents *core.HasDependentsError
	err = svc.DeleteCity(admin, city.ID)
	require.Error(t, err)
	require.True(t, errors.As(err, &dependents))
	assert.Equal(t, int64(1), dependents.Dependents)

	// Nothing was touched: city, route and pop all survive intact.
	_, err = svc.GetCity(city.ID)
	assert.NoError(t, err)
	_, err = svc.GetRoute(route.ID)
	assert.NoError(t, err)
	_, err = svc.GetPop(pop.ID)
	assert.NoError(t, err)
}

func TestDeleteCityWithoutRoutes(t *testing.T) {
	db := newTestDB(t)
	svc := NewEntityService(db, core.ModeDual)
	admin := seedAdmin(t, db)

	pop, err := svc.CreatePop(admin, "Central", "", 100)
	require.NoError(t, err)
	city, err := svc.CreateCity(admin, "Springfield", pop.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCity(admin, city.ID))

	var notFound *core.NotFoundError
	_, err = svc.GetCity(city.ID)
	require.Error(t, err)
	assert.True(t, errors.As(err, &notFound))
}

func TestCreateRouteDefaultsDual(t *testing.T) {
	db := newTestDB(t)
	svc := NewEntityService(db, core.ModeDual)
	admin := seedAdmin(t, db)

	pop, err := svc.CreatePop(admin, "Central", "", 100)
	require.NoError(t, err)
	route, err := svc.CreateRoute(admin, CreateRouteInput{Name: "Trunk-1", PopID: pop.ID})
	require.NoError(t, err)

	assert.Equal(t, core.TrackPending, route.LaunchStatus)
	assert.Equal(t, core.TrackPending, route.FusionStatus)
	assert.Empty(t, route.FeedStatus)
	assert.Empty(t, route.LaunchNotes)
	assert.Empty(t, route.FusionNotes)
	assert.Equal(t, admin.ID, route.UpdatedByID)
}

func TestCreateRouteDefaultsSingle(t *testing.T) {
	db := newTestDB(t)
	svc := NewEntityService(db, core.ModeSingle)
	admin := seedAdmin(t, db)

	pop, err := svc.CreatePop(admin, "Central", "", 100)
	require.NoError(t, err)
	route, err := svc.CreateRoute(admin, CreateRouteInput{Name: "Trunk-1", PopID: pop.ID})
	require.NoError(t, err)

	assert.Equal(t, core.StatusLaunchPending, route.Status)
	assert.Empty(t, route.Notes)
}

func TestCreateRouteRejectsCityOfOtherPop(t *testing.T) {
	db := newTestDB(t)
	svc := NewEntityService(db, core.ModeDual)
	admin := seedAdmin(t, db)

	popA, err := svc.CreatePop(admin, "Central", "", 100)
	require.NoError(t, err)
	popB, err := svc.CreatePop(admin, "North", "", 100)
	require.NoError(t, err)
	cityB, err := svc.CreateCity(admin, "Springfield", popB.ID)
	require.NoError(t, err)

	var validation *core.ValidationError
	_, err = svc.CreateRoute(admin, CreateRouteInput{Name: "Trunk-1", PopID: popA.ID, CityID: &cityB.ID})
	require.Error(t, err)
	assert.True(t, errors.As(err, &validation))
}

func TestListRoutesOrderingIsStable(t *testing.T) {
	db := newTestDB(t)
	svc := NewEntityService(db, core.ModeDual)
	admin := seedAdmin(t, db)

	pop, err := svc.CreatePop(admin, "Central", "", 100)
	require.NoError(t, err)
	for _, name := range []string{"Trunk-1", "Trunk-2", "Trunk-3"} {
		_, err := svc.CreateRoute(admin, CreateRouteInput{Name: name, PopID: pop.ID})
		require.NoError(t, err)
	}

	// Force identical creation timestamps so only the id tie-break
	// decides the order.
	same := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, db.Model(&models.Route{}).Where("1 = 1").Update("created_at", same).Error)

	routes, err := svc.ListRoutesByPop(pop.ID)
	require.NoError(t, err)
	require.Len(t, routes, 3)
	assert.Equal(t, []string{"Trunk-1", "Trunk-2", "Trunk-3"},
		[]string{routes[0].Name, routes[1].Name, routes[2].Name})
	assert.Less(t, routes[0].ID, routes[1].ID)
	assert.Less(t, routes[1].ID, routes[2].ID)
}

func TestListRoutesByCity(t *testing.T) {
	db := newTestDB(t)
	svc := NewEntityService(db, core.ModeDual)
	admin := seedAdmin(t, db)

	pop, err := svc.CreatePop(admin, "Central", "", 100)
	require.NoError(t, err)
	city, err := svc.CreateCity(admin, "Springfield", pop.ID)
	require.NoError(t, err)
	_, err = svc.CreateRoute(admin, CreateRouteInput{Name: "Trunk-1", PopID: pop.ID, CityID: &city.ID})
	require.NoError(t, err)
	_, err = svc.CreateRoute(admin, CreateRouteInput{Name: "Trunk-2", PopID: pop.ID})
	require.NoError(t, err)

	routes, err := svc.ListRoutesByCity(city.ID)
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, "Trunk-1", routes[0].Name)
}

func TestDeleteRouteRequiresAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewEntityService(db, core.ModeDual)
	admin := seedAdmin(t, db)
	plain := seedUser(t, db, "maria", models.RoleUser)

	pop, err := svc.CreatePop(admin, "Central", "", 100)
	require.NoError(t, err)
	route, err := svc.CreateRoute(plain, CreateRouteInput{Name: "Trunk-1", PopID: pop.ID})
	require.NoError(t, err)

	var forbidden *core.ForbiddenError
	err = svc.DeleteRoute(plain, route.ID)
	require.Error(t, err)
	assert.True(t, errors.As(err, &forbidden))

	require.NoError(t, svc.DeleteRoute(admin, route.ID))
	var notFound *core.NotFoundError
	_, err = svc.GetRoute(route.ID)
	require.Error(t, err)
	assert.True(t, errors.As(err, &notFound))
}

func TestRouteGeometryRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewEntityService(db, core.ModeDual)
	admin := seedAdmin(t, db)

	pop, err := svc.CreatePop(admin, "Central", "", 100)
	require.NoError(t, err)

	geoJSON := `{"type":"LineString","coordinates":[[-46.63,-23.55],[-46.62,-23.54]]}`
	route, err := svc.CreateRoute(admin, CreateRouteInput{Name: "Trunk-1", PopID: pop.ID, Geometry: geoJSON})
	require.NoError(t, err)
	require.NotEmpty(t, route.Geometry)

	out, err := GeometryGeoJSON(route)
	require.NoError(t, err)
	assert.Contains(t, out, "LineString")

	var validation *core.ValidationError
	_, err = svc.CreateRoute(admin, CreateRouteInput{Name: "Trunk-2", PopID: pop.ID, Geometry: "{not json"})
	require.Error(t, err)
	assert.True(t, errors.As(err, &validation))
}
