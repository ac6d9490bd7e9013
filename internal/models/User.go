package models

import "gorm.io/gorm"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is an operator account. Accounts are soft-deleted by clearing
// Active so that route audit stamps keep resolving; rows are never
// physically removed. Username and EmployeeID stay unique across
// deactivated accounts too.
type User struct {
	gorm.Model
	Username   string `json:"username" gorm:"uniqueIndex;not null"`
	Password   string `json:"-"` // bcrypt digest
	FullName   string `json:"full_name"`
	EmployeeID string `json:"employee_id" gorm:"uniqueIndex;not null"`
	Role       string `json:"role"` // "admin", "user"
	Active     bool   `json:"active" gorm:"default:true"`
}
