package models

import (
	"time"

	"github.com/google/uuid"
)

// Donation represents a single gift from a contact or business.
// Amounts are stored as integer cents.
type Donation struct {
	BaseWorkspaceModel
	ContactID    *uuid.UUID `gorm:"type:uuid;index;constraint:OnDelete:SET NULL" json:"contact_id"`
	BusinessID   *uuid.UUID `gorm:"type:uuid;index;constraint:OnDelete:SET NULL" json:"business_id"`
	AmountCents  int64      `gorm:"not null" json:"amount_cents"`
	DonationDate *time.Time `json:"donation_date"`
	Method       string     `json:"method"` // cash, check, credit_card, in_kind, other
	Status       string     `gorm:"default:'received'" json:"status"`
	Notes        string     `gorm:"type:text" json:"notes"`

	// Relations
	Contact  *Contact  `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	Business *Business `gorm:"foreignKey:BusinessID" json:"business,omitempty"`
}
