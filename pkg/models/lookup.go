package models

import (
	"github.com/google/uuid"
)

// Gender is a global reference value resolved by name during import
type Gender struct {
	BaseModel
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// Race is a global reference value resolved by name during import
type Race struct {
	BaseModel
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// State is a US state or territory
type State struct {
	BaseModel
	Name         string `gorm:"uniqueIndex;not null" json:"name"`
	Abbreviation string `gorm:"uniqueIndex;not null;size:2" json:"abbreviation"`
}

// ZipCode is a postal code, global across workspaces, created on
// demand when an import references one that does not exist yet
type ZipCode struct {
	BaseModel
	Name    string     `gorm:"uniqueIndex;not null" json:"name"`
	StateID *uuid.UUID `gorm:"type:uuid;constraint:OnDelete:SET NULL" json:"state_id"`
}
