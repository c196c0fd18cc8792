package models

import (
	"time"

	"gorm.io/gorm"
)

// UserAuth represents a portal user.
// Standardized: Go (PascalCase) -> DB (snake_case) -> JSON (camelCase)
//
// Roles:
// - admin: full access, user management
// - approver: approve email drafts, view reports
// - staff: process emails, enter ERP forms, run warehouse ops
// - viewer: read-only
type UserAuth struct {
	ID                  string     `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Email               string     `gorm:"unique;not null" json:"email"`
	Password            string     `gorm:"not null" json:"-"`
	Name                string     `json:"name,omitempty"`
	Role                string     `gorm:"default:'staff'" json:"role"`
	Department          string     `json:"department,omitempty"`
	IsActive            bool       `gorm:"default:true" json:"isActive"`
	LastLogin           *time.Time `json:"lastLogin,omitempty"`
	FailedLoginAttempts int        `gorm:"default:0" json:"-"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for UserAuth model
func (UserAuth) TableName() string {
	return "user_auths"
}

// CanApprove reports whether the user may approve email drafts
func (u *UserAuth) CanApprove() bool {
	return u.Role == "admin" || u.Role == "approver"
}

// CanEdit reports whether the user may mutate portal data
func (u *UserAuth) CanEdit() bool {
	return u.Role != "viewer"
}
