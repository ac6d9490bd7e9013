package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/gustavosampaioo/statusrotas/internal/core"
	"github.com/gustavosampaioo/statusrotas/internal/models"
)

// StatusService applies route status updates for the deployment's
// schema mode. Each update writes status, notes and the audit stamp
// (updated_by_id plus the refreshed updated_at) in a single UPDATE, so
// the three change together or not at all. Re-submitting identical
// values succeeds and only refreshes the stamp. No history is kept;
// the previous status and notes are overwritten.
type StatusService struct {
	db   *gorm.DB
	mode core.SchemaMode
}

func NewStatusService(db *gorm.DB, mode core.SchemaMode) *StatusService {
	return &StatusService{db: db, mode: mode}
}

// Mode returns the schema mode the service was configured with.
func (s *StatusService) Mode() core.SchemaMode {
	return s.mode
}

// UpdateStatus sets a route's single-shape status and notes. Any of
// the four values may be assigned regardless of the current one;
// progression is not forced forward. Open to any authenticated user.
func (s *StatusService) UpdateStatus(actor *models.User, routeID uint, status core.RouteStatus, notes string) (*models.Route, error) {
	if err := requireActor(actor, "update route status"); err != nil {
		return nil, err
	}
	if s.mode != core.ModeSingle {
		return nil, &core.ValidationError{Field: "status", Reason: "deployment runs the dual-track schema"}
	}
	if !status.Valid() {
		return nil, &core.InvalidStatusError{Field: "status", Value: string(status)}
	}

	route, err := s.loadRoute(routeID)
	if err != nil {
		return nil, err
	}

	err = s.db.Model(route).Updates(map[string]interface{}{
		"status":        status,
		"notes":         notes,
		"updated_by_id": actor.ID,
	}).Error
	if err != nil {
		return nil, err
	}
	return s.loadRoute(routeID)
}

// TrackUpdate carries a dual-track status proposal. Feed is optional;
// when supplied it is persisted even while the fusion track is not
// IN_PROGRESS (the value is gated from display, never rejected or
// cleared).
type TrackUpdate struct {
	Launch      core.TrackStatus
	Fusion      core.TrackStatus
	LaunchNotes string
	FusionNotes string
	Feed        *core.FeedStatus
}

// UpdateTracks sets a route's launch and fusion statuses. The tracks
// move independently; no cross-track precondition is enforced. Open to
// any authenticated user.
func (s *StatusService) UpdateTracks(actor *models.User, routeID uint, in TrackUpdate) (*models.Route, error) {
	if err := requireActor(actor, "update route status"); err != nil {
		return nil, err
	}
	if s.mode != core.ModeDual {
		return nil, &core.ValidationError{Field: "status", Reason: "deployment runs the single-status schema"}
	}
	if !in.Launch.Valid() {
		return nil, &core.InvalidStatusError{Field: "launch_status", Value: string(in.Launch)}
	}
	if !in.Fusion.Valid() {
		return nil, &core.InvalidStatusError{Field: "fusion_status", Value: string(in.Fusion)}
	}
	if in.Feed != nil && !in.Feed.Valid() {
		return nil, &core.InvalidStatusError{Field: "feed_status", Value: string(*in.Feed)}
	}

	route, err := s.loadRoute(routeID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"launch_status": in.Launch,
		"fusion_status": in.Fusion,
		"launch_notes":  in.LaunchNotes,
		"fusion_notes":  in.FusionNotes,
		"updated_by_id": actor.ID,
	}
	if in.Feed != nil {
		updates["feed_status"] = *in.Feed
	}

	if err := s.db.Model(route).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.loadRoute(routeID)
}

// FeedEditable reports whether the route's feed sub-status is
// currently displayed and mutable.
func FeedEditable(route *models.Route) bool {
	return core.FeedEditable(route.FusionStatus)
}

func (s *StatusService) loadRoute(id uint) (*models.Route, error) {
	var route models.Route
	if err := s.db.First(&route, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &core.NotFoundError{Entity: "route", ID: id}
		}
		return nil, err
	}
	return &route, nil
}
