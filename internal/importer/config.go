package importer

import (
	"fmt"

	"harborcrm/pkg/models"
)

// RuleKind identifies a declarative validation rule
type RuleKind string

const (
	RuleRequired RuleKind = "required"
	RuleEmail    RuleKind = "email"
	RulePhone    RuleKind = "phone"
	RuleNumber   RuleKind = "number"
	RuleEnum     RuleKind = "enum"
)

// ValidationRule is one declared check for a field. Min/Max apply to
// number rules, Options to enum rules.
type ValidationRule struct {
	Kind    RuleKind `json:"kind"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Options []string `json:"options,omitempty"`
}

// RelatedLookup describes a reference-value lookup consulted during
// validate-only soft checks. AutoCreate stays false for every declared
// lookup; on-miss creation (zip codes) happens in the write path, not
// through the registry.
type RelatedLookup struct {
	Field        string   `json:"field"`
	Table        string   `json:"table"`
	SearchFields []string `json:"search_fields"`
	AutoCreate   bool     `json:"auto_create"`
}

// ImportConfig is the static declarative definition for one entity type
type ImportConfig struct {
	EntityType      models.EntityType         `json:"entity_type"`
	RequiredFields  []string                  `json:"required_fields"`
	OptionalFields  []string                  `json:"optional_fields"`
	ValidationRules map[string]ValidationRule `json:"validation_rules"`
	DuplicateFields []string                  `json:"duplicate_fields"`
	RelatedLookups  []RelatedLookup           `json:"related_lookups"`
}

func floatPtr(v float64) *float64 { return &v }

var configRegistry = map[models.EntityType]*ImportConfig{
	models.EntityTypeContacts: {
		EntityType:     models.EntityTypeContacts,
		RequiredFields: []string{"firstName", "lastName"},
		OptionalFields: []string{
			"middleName", "pronouns", "vanid", "gender", "race", "status",
			"emails", "phoneNumbers", "streetAddress", "unit", "city",
			"state", "zipCode", "addresses", "socialMediaAccounts",
			"tags", "notes",
		},
		ValidationRules: map[string]ValidationRule{
			"firstName":    {Kind: RuleRequired},
			"lastName":     {Kind: RuleRequired},
			"emails":       {Kind: RuleEmail},
			"phoneNumbers": {Kind: RulePhone},
			"status":       {Kind: RuleEnum, Options: []string{"active", "inactive", "archived"}},
		},
		DuplicateFields: []string{"emails", "phoneNumbers", "vanid", "firstName", "lastName"},
		RelatedLookups: []RelatedLookup{
			{Field: "gender", Table: "genders", SearchFields: []string{"name"}},
			{Field: "race", Table: "races", SearchFields: []string{"name"}},
		},
	},
	models.EntityTypeBusinesses: {
		EntityType:     models.EntityTypeBusinesses,
		RequiredFields: []string{"businessName"},
		OptionalFields: []string{
			"website", "status", "emails", "phoneNumbers", "streetAddress",
			"unit", "city", "state", "zipCode", "addresses",
			"socialMediaAccounts", "tags", "notes",
		},
		ValidationRules: map[string]ValidationRule{
			"businessName": {Kind: RuleRequired},
			"emails":       {Kind: RuleEmail},
			"phoneNumbers": {Kind: RulePhone},
			"status":       {Kind: RuleEnum, Options: []string{"active", "inactive", "archived"}},
		},
		DuplicateFields: []string{"businessName", "phoneNumbers"},
	},
	models.EntityTypeDonations: {
		EntityType:     models.EntityTypeDonations,
		RequiredFields: []string{"amount"},
		OptionalFields: []string{
			"contactId", "businessId", "donorEmail", "businessName",
			"donationDate", "method", "status", "notes",
		},
		ValidationRules: map[string]ValidationRule{
			"amount":     {Kind: RuleNumber, Min: floatPtr(0)},
			"donorEmail": {Kind: RuleEmail},
			"method":     {Kind: RuleEnum, Options: []string{"cash", "check", "credit_card", "in_kind", "other"}},
			"status":     {Kind: RuleEnum, Options: []string{"pledged", "received", "refunded"}},
		},
		// Donations have no single duplicate field; matching is the
		// conjunction of amount/contactId/businessId (see detector).
		DuplicateFields: []string{},
		RelatedLookups: []RelatedLookup{
			{Field: "donorEmail", Table: "contact_emails", SearchFields: []string{"email"}},
			{Field: "businessName", Table: "businesses", SearchFields: []string{"name"}},
		},
	},
}

// ConfigFor returns the frozen import configuration for an entity type
func ConfigFor(entityType models.EntityType) (*ImportConfig, bool) {
	cfg, ok := configRegistry[entityType]
	return cfg, ok
}

// EntityTypes lists the registered entity types
func EntityTypes() []models.EntityType {
	return []models.EntityType{
		models.EntityTypeContacts,
		models.EntityTypeBusinesses,
		models.EntityTypeDonations,
	}
}

// ValidateRegistry checks registry integrity at process start: every
// entity type must be present with non-empty required fields.
func ValidateRegistry() error {
	for _, entityType := range EntityTypes() {
		cfg, ok := configRegistry[entityType]
		if !ok {
			return fmt.Errorf("import config missing for entity type %q", entityType)
		}
		if len(cfg.RequiredFields) == 0 {
			return fmt.Errorf("import config for %q has no required fields", entityType)
		}
	}
	return nil
}
