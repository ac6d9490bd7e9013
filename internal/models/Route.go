package models

import (
	"gorm.io/gorm"

	"github.com/gustavosampaioo/statusrotas/internal/core"
)

// Route is a network link tracked through its launch and fusion stages.
// The row carries the columns of both schema shapes; the deployment's
// schema mode decides which set is validated and exposed. Every status
// or notes mutation stamps UpdatedByID together with UpdatedAt in the
// same UPDATE.
type Route struct {
	gorm.Model

	Name   string `json:"name" binding:"required"`
	PopID  uint   `json:"pop_id" gorm:"index"`
	CityID *uint  `json:"city_id,omitempty" gorm:"index"`

	// Single-status shape
	Status core.RouteStatus `json:"status,omitempty"`
	Notes  string           `json:"notes,omitempty"`

	// Dual-track shape. FeedStatus is stored-but-gated: it keeps its
	// value when fusion leaves IN_PROGRESS and is merely hidden.
	LaunchStatus core.TrackStatus `json:"launch_status,omitempty"`
	FusionStatus core.TrackStatus `json:"fusion_status,omitempty"`
	FeedStatus   core.FeedStatus  `json:"feed_status,omitempty"`
	LaunchNotes  string           `json:"launch_notes,omitempty"`
	FusionNotes  string           `json:"fusion_notes,omitempty"`

	// Audit stamp: who performed the latest status/notes mutation.
	UpdatedByID uint `json:"updated_by_id"`

	// Optional path geometry stored as WKB (LINESTRING, SRID 4326).
	// The API speaks GeoJSON; conversion happens in the entity service.
	Geometry []byte `gorm:"type:bytea" json:"-"`
}
