package models

import (
	"time"

	"github.com/google/uuid"
)

// Workspace represents an organization account that owns CRM data
type Workspace struct {
	BaseModel
	Name   string `gorm:"not null" json:"name" validate:"required"`
	Slug   string `gorm:"uniqueIndex" json:"slug"`
	Status string `gorm:"default:'active'" json:"status"`
}

// WorkspaceMember links a user to a workspace with a role
type WorkspaceMember struct {
	BaseModel
	WorkspaceID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uni_workspace_member" json:"workspace_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uni_workspace_member" json:"user_id"`
	Role        string    `gorm:"not null;default:'member'" json:"role"` // owner, admin, member, viewer
}

// User represents a person who can sign in
type User struct {
	BaseModel
	Email       string     `gorm:"uniqueIndex;not null" json:"email" validate:"required,email"`
	Password    string     `gorm:"not null" json:"-"`
	Name        string     `json:"name"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

// CanWrite reports whether the member role is allowed to mutate workspace data
func (m *WorkspaceMember) CanWrite() bool {
	return m.Role == "owner" || m.Role == "admin" || m.Role == "member"
}
