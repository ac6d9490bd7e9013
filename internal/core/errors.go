// Package core holds the domain vocabulary shared by every layer:
// the error taxonomy and the route status sets. It has no dependencies
// so it can be imported from models, services and controllers alike.
package core

import "fmt"

// ValidationError reports a missing or malformed required field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports that a referenced record does not exist.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// DuplicateError reports a unique-constraint violation.
type DuplicateError struct {
	Field string
	Value string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s %q already in use", e.Field, e.Value)
}

// HasDependentsError reports a delete blocked by existing children.
// Dependents carries the number of blocking records.
type HasDependentsError struct {
	Entity     string
	ID         uint
	Dependents int64
}

func (e *HasDependentsError) Error() string {
	return fmt.Sprintf("%s %d has %d dependent route(s)", e.Entity, e.ID, e.Dependents)
}

// ForbiddenError reports a role check failure.
type ForbiddenError struct {
	Action string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("not allowed to %s", e.Action)
}

// InvalidStatusError reports a status value outside its allowed set.
type InvalidStatusError struct {
	Field string
	Value string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid %s value %q", e.Field, e.Value)
}

// WeakPasswordError reports a password under the minimum length.
type WeakPasswordError struct {
	MinLength int
}

func (e *WeakPasswordError) Error() string {
	return fmt.Sprintf("password must be at least %d characters", e.MinLength)
}

// InvalidCredentialsError is returned for every authentication failure.
// Unknown username, wrong password and deactivated account all map to
// this one value so callers cannot enumerate usernames.
type InvalidCredentialsError struct{}

func (e *InvalidCredentialsError) Error() string {
	return "invalid credentials"
}
