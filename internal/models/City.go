package models

import (
	"gorm.io/gorm"
)

// City is a served locality under a Pop. A City with routes referencing
// it cannot be deleted; the guard lives in the entity service.
type City struct {
	gorm.Model
	Name  string `json:"name" binding:"required"`
	PopID uint   `json:"pop_id" gorm:"index"`
}
