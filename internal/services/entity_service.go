package services

import (
	"encoding/binary"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"

	"github.com/gustavosampaioo/statusrotas/internal/core"
	"github.com/gustavosampaioo/statusrotas/internal/models"
)

// EntityService owns POP, City and Route records. Deletes are physical
// (Unscoped); only users are soft-deleted.
type EntityService struct {
	db   *gorm.DB
	mode core.SchemaMode
}

func NewEntityService(db *gorm.DB, mode core.SchemaMode) *EntityService {
	return &EntityService{db: db, mode: mode}
}

// CreatePop registers a new POP. Admin only.
func (s *EntityService) CreatePop(actor *models.User, name, location string, capacity int) (*models.Pop, error) {
	if err := requireAdmin(actor, "create POPs"); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &core.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if capacity < 1 {
		return nil, &core.ValidationError{Field: "capacity", Reason: "must be at least 1"}
	}

	pop := models.Pop{Name: name, Location: location, Capacity: capacity}
	if err := s.db.Create(&pop).Error; err != nil {
		return nil, err
	}
	return &pop, nil
}

// GetPop retrieves a POP by ID.
func (s *EntityService) GetPop(id uint) (*models.Pop, error) {
	var pop models.Pop
	if err := s.db.First(&pop, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &core.NotFoundError{Entity: "pop", ID: id}
		}
		return nil, err
	}
	return &pop, nil
}

// PopOverview is a POP row plus its current route count, mirroring the
// listing screen.
type PopOverview struct {
	models.Pop
	RouteCount int64 `json:"route_count"`
}

// ListPops returns every POP with its route count, id ascending.
func (s *EntityService) ListPops() ([]PopOverview, error) {
	var pops []models.Pop
	if err := s.db.Order("id ASC").Find(&pops).Error; err != nil {
		return nil, err
	}
	out := make([]PopOverview, 0, len(pops))
	for _, p := range pops {
		var n int64
		if err := s.db.Model(&models.Route{}).Where("pop_id = ?", p.ID).Count(&n).Error; err != nil {
			return nil, err
		}
		out = append(out, PopOverview{Pop: p, RouteCount: n})
	}
	return out, nil
}

// DeletePop removes a POP and everything under it: routes first, then
// cities, then the POP itself, all in one transaction. Admin only.
func (s *EntityService) DeletePop(actor *models.User, id uint) error {
	if err := requireAdmin(actor, "delete POPs"); err != nil {
		return err
	}
	if _, err := s.GetPop(id); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("pop_id = ?", id).Delete(&models.Route{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("pop_id = ?", id).Delete(&models.City{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Pop{}, id).Error
	})
}

// CreateCity registers a new City under an existing POP. Admin only.
func (s *EntityService) CreateCity(actor *models.User, name string, popID uint) (*models.City, error) {
	if err := requireAdmin(actor, "create cities"); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &core.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if _, err := s.GetPop(popID); err != nil {
		return nil, err
	}

	city := models.City{Name: name, PopID: popID}
	if err := s.db.Create(&city).Error; err != nil {
		return nil, err
	}
	return &city, nil
}

// GetCity retrieves a City by ID.
func (s *EntityService) GetCity(id uint) (*models.City, error) {
	var city models.City
	if err := s.db.First(&city, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &core.NotFoundError{Entity: "city", ID: id}
		}
		return nil, err
	}
	return &city, nil
}

// ListCitiesByPop returns the cities under a POP, id ascending.
func (s *EntityService) ListCitiesByPop(popID uint) ([]models.City, error) {
	if _, err := s.GetPop(popID); err != nil {
		return nil, err
	}
	var cities []models.City
	if err := s.db.Where("pop_id = ?", popID).Order("id ASC").Find(&cities).Error; err != nil {
		return nil, err
	}
	return cities, nil
}

// DeleteCity removes a City. Admin only. Refused with HasDependents
// while any route still references the city; nothing is touched in
// that case.
func (s *EntityService) DeleteCity(actor *models.User, id uint) error {
	if err := requireAdmin(actor, "delete cities"); err != nil {
		return err
	}
	if _, err := s.GetCity(id); err != nil {
		return err
	}

	var dependents int64
	if err := s.db.Model(&models.Route{}).Where("city_id = ?", id).Count(&dependents).Error; err != nil {
		return err
	}
	if dependents > 0 {
		return &core.HasDependentsError{Entity: "city", ID: id, Dependents: dependents}
	}

	return s.db.Unscoped().Delete(&models.City{}, id).Error
}

// CreateRouteInput carries the fields of a new route. Geometry is an
// optional GeoJSON LineString describing the physical path.
type CreateRouteInput struct {
	Name     string
	PopID    uint
	CityID   *uint
	Geometry string
}

// CreateRoute registers a new route under a POP (and optionally a
// City). Open to any authenticated user. Status fields start at their
// PENDING defaults for the deployment's schema mode.
func (s *EntityService) CreateRoute(actor *models.User, in CreateRouteInput) (*models.Route, error) {
	if err := requireActor(actor, "create routes"); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, &core.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if _, err := s.GetPop(in.PopID); err != nil {
		return nil, err
	}
	if in.CityID != nil {
		city, err := s.GetCity(*in.CityID)
		if err != nil {
			return nil, err
		}
		if city.PopID != in.PopID {
			return nil, &core.ValidationError{Field: "city_id", Reason: "city belongs to a different pop"}
		}
	}

	wkbGeom, err := parseAndConvertGeometry(in.Geometry)
	if err != nil {
		return nil, &core.ValidationError{Field: "geometry", Reason: err.Error()}
	}

	route := models.Route{
		Name:        in.Name,
		PopID:       in.PopID,
		CityID:      in.CityID,
		Geometry:    wkbGeom,
		UpdatedByID: actor.ID,
	}
	switch s.mode {
	case core.ModeSingle:
		route.Status = core.StatusLaunchPending
	case core.ModeDual:
		route.LaunchStatus = core.TrackPending
		route.FusionStatus = core.TrackPending
	}

	if err := s.db.Create(&route).Error; err != nil {
		return nil, err
	}
	return &route, nil
}

// GetRoute retrieves a route by ID.
func (s *EntityService) GetRoute(id uint) (*models.Route, error) {
	var route models.Route
	if err := s.db.First(&route, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &core.NotFoundError{Entity: "route", ID: id}
		}
		return nil, err
	}
	return &route, nil
}

// ListRoutesByPop returns a POP's routes ordered by creation time then
// id, so widget keys stay stable across refreshes.
func (s *EntityService) ListRoutesByPop(popID uint) ([]models.Route, error) {
	if _, err := s.GetPop(popID); err != nil {
		return nil, err
	}
	var routes []models.Route
	if err := s.db.Where("pop_id = ?", popID).Order("created_at ASC, id ASC").Find(&routes).Error; err != nil {
		return nil, err
	}
	return routes, nil
}

// ListRoutesByCity returns a City's routes with the same ordering.
func (s *EntityService) ListRoutesByCity(cityID uint) ([]models.Route, error) {
	if _, err := s.GetCity(cityID); err != nil {
		return nil, err
	}
	var routes []models.Route
	if err := s.db.Where("city_id = ?", cityID).Order("created_at ASC, id ASC").Find(&routes).Error; err != nil {
		return nil, err
	}
	return routes, nil
}

// DeleteRoute hard-deletes a route. Admin only, unconditional.
func (s *EntityService) DeleteRoute(actor *models.User, id uint) error {
	if err := requireAdmin(actor, "delete routes"); err != nil {
		return err
	}
	if _, err := s.GetRoute(id); err != nil {
		return err
	}
	return s.db.Unscoped().Delete(&models.Route{}, id).Error
}

// parseAndConvertGeometry parses a GeoJSON string into a geom.T and returns WKB bytes
func parseAndConvertGeometry(raw string) ([]byte, error) {
	if raw == "" {
		return nil, nil
	}
	var g geom.T
	err := gjson.Unmarshal([]byte(raw), &g)
	if err != nil {
		return nil, err
	}
	return wkb.Marshal(g, binary.LittleEndian)
}

// GeometryGeoJSON converts a route's stored WKB path back into a
// GeoJSON string for API responses. Empty when the route has no path.
func GeometryGeoJSON(route *models.Route) (string, error) {
	if len(route.Geometry) == 0 {
		return "", nil
	}
	g, err := wkb.Unmarshal(route.Geometry)
	if err != nil {
		return "", err
	}
	b, err := gjson.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
