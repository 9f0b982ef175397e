package models

import (
	"github.com/google/uuid"
)

// Business represents a company or organization tracked in a workspace
type Business struct {
	BaseWorkspaceModel
	Name    string `gorm:"not null" json:"name" validate:"required"`
	Website string `json:"website"`
	Status  string `gorm:"default:'active'" json:"status"`
	Notes   string `gorm:"type:text" json:"notes"`

	// Relations
	Emails         []BusinessEmail    `gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE" json:"emails,omitempty"`
	PhoneNumbers   []BusinessPhone    `gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE" json:"phone_numbers,omitempty"`
	Addresses      []BusinessAddress  `gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE" json:"addresses,omitempty"`
	SocialAccounts []BusinessSocial   `gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE" json:"social_accounts,omitempty"`
	Tags           []BusinessTag      `gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE" json:"tags,omitempty"`
	Employees      []BusinessEmployee `gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE" json:"employees,omitempty"`
}

// BusinessEmail is one email address attached to a business
type BusinessEmail struct {
	BaseModel
	BusinessID uuid.UUID `gorm:"type:uuid;not null;index" json:"business_id"`
	Email      string    `gorm:"not null;index" json:"email"`
}

// BusinessPhone is one phone number attached to a business
type BusinessPhone struct {
	BaseModel
	BusinessID  uuid.UUID `gorm:"type:uuid;not null;index" json:"business_id"`
	PhoneNumber string    `gorm:"not null;index" json:"phone_number"`
}

// BusinessAddress is one postal address attached to a business
type BusinessAddress struct {
	BaseModel
	BusinessID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"business_id"`
	StreetAddress string     `json:"street_address"`
	Unit          string     `json:"unit"`
	City          string     `json:"city"`
	StateID       *uuid.UUID `gorm:"type:uuid;constraint:OnDelete:SET NULL" json:"state_id"`
	ZipCodeID     *uuid.UUID `gorm:"type:uuid;constraint:OnDelete:SET NULL" json:"zip_code_id"`
}

// BusinessSocial is one social media account attached to a business
type BusinessSocial struct {
	BaseModel
	BusinessID uuid.UUID `gorm:"type:uuid;not null;index" json:"business_id"`
	Platform   string    `gorm:"not null" json:"platform"`
	Handle     string    `gorm:"not null" json:"handle"`
}

// BusinessTag is a free-form label attached to a business
type BusinessTag struct {
	BaseModel
	BusinessID uuid.UUID `gorm:"type:uuid;not null;index" json:"business_id"`
	Tag        string    `gorm:"not null" json:"tag"`
}

// BusinessEmployee links a contact to a business with a title.
// Employees are managed through the business API only; the import
// pipeline never writes this table.
type BusinessEmployee struct {
	BaseModel
	BusinessID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uni_business_employee" json:"business_id"`
	ContactID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uni_business_employee" json:"contact_id"`
	Title      string    `json:"title"`
}
