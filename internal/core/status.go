package core

import "fmt"

// SchemaMode selects which route status shape a deployment runs with.
// The choice is made once per deployment via configuration; a running
// instance never mixes both shapes.
type SchemaMode string

const (
	// ModeSingle is the flat four-value status column.
	ModeSingle SchemaMode = "single"
	// ModeDual tracks launch and fusion progress independently.
	ModeDual SchemaMode = "dual"
)

// ParseSchemaMode validates a configured mode string.
func ParseSchemaMode(s string) (SchemaMode, error) {
	switch SchemaMode(s) {
	case ModeSingle, ModeDual:
		return SchemaMode(s), nil
	default:
		return "", fmt.Errorf("unknown schema mode %q (want %q or %q)", s, ModeSingle, ModeDual)
	}
}

// RouteStatus is the single-status (ModeSingle) vocabulary, ordered by
// lifecycle stage. The update operation accepts any of the four values;
// backward reassignment is permitted.
type RouteStatus string

const (
	StatusLaunchPending RouteStatus = "LAUNCH_PENDING"
	StatusLaunchDone    RouteStatus = "LAUNCH_DONE"
	StatusFusionPending RouteStatus = "FUSION_PENDING"
	StatusFusionDone    RouteStatus = "FUSION_DONE"
)

// RouteStatuses returns the ModeSingle vocabulary in lifecycle order.
func RouteStatuses() []RouteStatus {
	return []RouteStatus{StatusLaunchPending, StatusLaunchDone, StatusFusionPending, StatusFusionDone}
}

// Valid reports membership in the ModeSingle vocabulary.
func (s RouteStatus) Valid() bool {
	switch s {
	case StatusLaunchPending, StatusLaunchDone, StatusFusionPending, StatusFusionDone:
		return true
	}
	return false
}

// TrackStatus is the per-track (ModeDual) vocabulary, used by both the
// launch and the fusion track.
type TrackStatus string

const (
	TrackPending    TrackStatus = "PENDING"
	TrackInProgress TrackStatus = "IN_PROGRESS"
	TrackDone       TrackStatus = "DONE"
)

// TrackStatuses returns the ModeDual per-track vocabulary in order.
func TrackStatuses() []TrackStatus {
	return []TrackStatus{TrackPending, TrackInProgress, TrackDone}
}

// Valid reports membership in the per-track vocabulary.
func (s TrackStatus) Valid() bool {
	switch s {
	case TrackPending, TrackInProgress, TrackDone:
		return true
	}
	return false
}

// FeedStatus is the fusion sub-status. It is stored-but-gated: the value
// persists across fusion transitions and is only surfaced as editable
// while the fusion track is IN_PROGRESS.
type FeedStatus string

const (
	FeedFed      FeedStatus = "FED"
	FeedNoSignal FeedStatus = "NO_SIGNAL"
)

// Valid reports membership in the feed vocabulary.
func (s FeedStatus) Valid() bool {
	return s == FeedFed || s == FeedNoSignal
}

// FeedEditable reports whether the feed sub-status is currently
// displayed and mutable for a route with the given fusion status.
func FeedEditable(fusion TrackStatus) bool {
	return fusion == TrackInProgress
}
