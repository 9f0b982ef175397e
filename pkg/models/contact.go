package models

import (
	"github.com/google/uuid"
)

// Contact represents a person tracked in a workspace
type Contact struct {
	BaseWorkspaceModel
	FirstName  string     `gorm:"not null" json:"first_name" validate:"required"`
	MiddleName string     `json:"middle_name"`
	LastName   string     `gorm:"not null" json:"last_name" validate:"required"`
	Pronouns   string     `json:"pronouns"`
	VanID      string     `gorm:"column:vanid;index" json:"vanid"`
	GenderID   *uuid.UUID `gorm:"type:uuid;constraint:OnDelete:SET NULL" json:"gender_id"`
	RaceID     *uuid.UUID `gorm:"type:uuid;constraint:OnDelete:SET NULL" json:"race_id"`
	Status     string     `gorm:"default:'active'" json:"status"`
	Notes      string     `gorm:"type:text" json:"notes"`

	// Relations
	Emails         []ContactEmail   `gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE" json:"emails,omitempty"`
	PhoneNumbers   []ContactPhone   `gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE" json:"phone_numbers,omitempty"`
	Addresses      []ContactAddress `gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE" json:"addresses,omitempty"`
	SocialAccounts []ContactSocial  `gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE" json:"social_accounts,omitempty"`
	Tags           []ContactTag     `gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE" json:"tags,omitempty"`
}

// ContactEmail is one email address attached to a contact
type ContactEmail struct {
	BaseModel
	ContactID uuid.UUID `gorm:"type:uuid;not null;index" json:"contact_id"`
	Email     string    `gorm:"not null;index" json:"email"`
	IsPrimary bool      `gorm:"default:false" json:"is_primary"`
}

// ContactPhone is one phone number attached to a contact
type ContactPhone struct {
	BaseModel
	ContactID   uuid.UUID `gorm:"type:uuid;not null;index" json:"contact_id"`
	PhoneNumber string    `gorm:"not null;index" json:"phone_number"`
	IsPrimary   bool      `gorm:"default:false" json:"is_primary"`
}

// ContactAddress is one postal address attached to a contact
type ContactAddress struct {
	BaseModel
	ContactID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"contact_id"`
	StreetAddress string     `json:"street_address"`
	Unit          string     `json:"unit"`
	City          string     `json:"city"`
	StateID       *uuid.UUID `gorm:"type:uuid;constraint:OnDelete:SET NULL" json:"state_id"`
	ZipCodeID     *uuid.UUID `gorm:"type:uuid;constraint:OnDelete:SET NULL" json:"zip_code_id"`
}

// ContactSocial is one social media account attached to a contact
type ContactSocial struct {
	BaseModel
	ContactID uuid.UUID `gorm:"type:uuid;not null;index" json:"contact_id"`
	Platform  string    `gorm:"not null" json:"platform"`
	Handle    string    `gorm:"not null" json:"handle"`
}

// ContactTag is a free-form label attached to a contact
type ContactTag struct {
	BaseModel
	ContactID uuid.UUID `gorm:"type:uuid;not null;index" json:"contact_id"`
	Tag       string    `gorm:"not null" json:"tag"`
}

// FullName returns the display name used in duplicate candidates and logs
func (c *Contact) FullName() string {
	if c.MiddleName != "" {
		return c.FirstName + " " + c.MiddleName + " " + c.LastName
	}
	return c.FirstName + " " + c.LastName
}
