package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseWorkspaceModel is the base model for all workspace-scoped entities
type BaseWorkspaceModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	WorkspaceID uuid.UUID       `gorm:"type:uuid;index;not null;constraint:OnDelete:RESTRICT" json:"workspace_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   *gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty" swaggerignore:"true"`
}

// BaseModel is the base model for system-wide entities
type BaseModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt *gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty" swaggerignore:"true"`
}

// BeforeCreate hook to generate UUID if not set
func (b *BaseWorkspaceModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook to generate UUID if not set
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
