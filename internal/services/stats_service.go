package services

import (
	"gorm.io/gorm"

	"github.com/gustavosampaioo/statusrotas/internal/core"
	"github.com/gustavosampaioo/statusrotas/internal/models"
)

// StatsService derives read-only aggregates from current entity state.
// Everything is recomputed per call; nothing is cached.
type StatsService struct {
	db   *gorm.DB
	mode core.SchemaMode
}

func NewStatsService(db *gorm.DB, mode core.SchemaMode) *StatsService {
	return &StatsService{db: db, mode: mode}
}

// CountPops returns the number of POPs.
func (s *StatsService) CountPops() (int64, error) {
	var n int64
	err := s.db.Model(&models.Pop{}).Count(&n).Error
	return n, err
}

// CountCities returns the number of Cities.
func (s *StatsService) CountCities() (int64, error) {
	var n int64
	err := s.db.Model(&models.City{}).Count(&n).Error
	return n, err
}

// CountRoutes returns the number of Routes.
func (s *StatsService) CountRoutes() (int64, error) {
	var n int64
	err := s.db.Model(&models.Route{}).Count(&n).Error
	return n, err
}

// RoutesPerPop maps POP name to route count. POPs without routes appear
// with a zero count; the map is empty (never nil) when no POPs exist.
func (s *StatsService) RoutesPerPop() (map[string]int64, error) {
	type row struct {
		Name string
		N    int64
	}
	var rows []row
	err := s.db.Model(&models.Pop{}).
		Select("pops.name AS name, COUNT(routes.id) AS n").
		Joins("LEFT JOIN routes ON routes.pop_id = pops.id AND routes.deleted_at IS NULL").
		Group("pops.id, pops.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Name] = r.N
	}
	return out, nil
}

// StatusBreakdown holds per-status route counts. Single is filled in
// ModeSingle deployments; Launch and Fusion in ModeDual ones.
type StatusBreakdown struct {
	Single map[core.RouteStatus]int64 `json:"single,omitempty"`
	Launch map[core.TrackStatus]int64 `json:"launch,omitempty"`
	Fusion map[core.TrackStatus]int64 `json:"fusion,omitempty"`
}

// StatusBreakdown counts routes per status value for the deployment's
// schema mode. Statuses with no routes appear with a zero count.
func (s *StatsService) StatusBreakdown() (*StatusBreakdown, error) {
	out := &StatusBreakdown{}
	switch s.mode {
	case core.ModeSingle:
		counts, err := s.countColumn("status")
		if err != nil {
			return nil, err
		}
		out.Single = make(map[core.RouteStatus]int64, 4)
		for _, v := range core.RouteStatuses() {
			out.Single[v] = counts[string(v)]
		}
	case core.ModeDual:
		launch, err := s.countColumn("launch_status")
		if err != nil {
			return nil, err
		}
		fusion, err := s.countColumn("fusion_status")
		if err != nil {
			return nil, err
		}
		out.Launch = make(map[core.TrackStatus]int64, 3)
		out.Fusion = make(map[core.TrackStatus]int64, 3)
		for _, v := range core.TrackStatuses() {
			out.Launch[v] = launch[string(v)]
			out.Fusion[v] = fusion[string(v)]
		}
	}
	return out, nil
}

func (s *StatsService) countColumn(column string) (map[string]int64, error) {
	type row struct {
		Value string
		N     int64
	}
	var rows []row
	err := s.db.Model(&models.Route{}).
		Select(column + " AS value, COUNT(*) AS n").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Value] = r.N
	}
	return out, nil
}

// TopPop names the POP carrying the most routes.
type TopPop struct {
	Name   string `json:"name"`
	Routes int64  `json:"routes"`
}

// PopWithMostRoutes returns the busiest POP, or nil when no routes
// exist anywhere (the maximum is undefined, not an error).
func (s *StatsService) PopWithMostRoutes() (*TopPop, error) {
	perPop, err := s.RoutesPerPop()
	if err != nil {
		return nil, err
	}
	var top *TopPop
	for name, n := range perPop {
		if n == 0 {
			continue
		}
		if top == nil || n > top.Routes || (n == top.Routes && name < top.Name) {
			top = &TopPop{Name: name, Routes: n}
		}
	}
	return top, nil
}

// AvgRoutesPerPop returns the mean route count per POP, zero when no
// POPs exist.
func (s *StatsService) AvgRoutesPerPop() (float64, error) {
	pops, err := s.CountPops()
	if err != nil {
		return 0, err
	}
	if pops == 0 {
		return 0, nil
	}
	routes, err := s.CountRoutes()
	if err != nil {
		return 0, err
	}
	return float64(routes) / float64(pops), nil
}
