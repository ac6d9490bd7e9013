// internal/models/pop.go
package models

import (
	"gorm.io/gorm"
)

// Pop is a point of presence: a network site owning cities and routes.
// Deleting a Pop cascades over both child sets in one transaction.
type Pop struct {
	gorm.Model
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
	Capacity int    `json:"capacity"`

	// Associations
	Cities []City  `gorm:"foreignKey:PopID" json:"cities,omitempty"`
	Routes []Route `gorm:"foreignKey:PopID" json:"routes,omitempty"`
}
