package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"harborcrm/pkg/models"

	"github.com/xuri/excelize/v2"
)

// FieldDoc documents one importable field for template consumers
type FieldDoc struct {
	Field       string   `json:"field"`
	Required    bool     `json:"required"`
	Rule        RuleKind `json:"rule,omitempty"`
	Options     []string `json:"options,omitempty"`
	Description string   `json:"description"`
}

var sampleRows = map[models.EntityType][]string{
	models.EntityTypeContacts: {
		"Jane", "Doe", "A", "she/her", "100234", "Female", "White", "active",
		"jane@example.com,jdoe@example.org", "+1 555-201-3344",
		"123 Main St", "Apt 4", "Springfield", "IL", "62701",
		"", "twitter:janedoe,instagram:jane.doe", "volunteer,donor",
		"Met at the spring fundraiser",
	},
	models.EntityTypeBusinesses: {
		"Acme Hardware", "https://acmehardware.example", "active",
		"info@acmehardware.example", "+1 555-880-1200",
		"500 Commerce Way", "", "Springfield", "IL", "62704",
		"", "facebook:acmehardware", "vendor", "Local supplier",
	},
	models.EntityTypeDonations: {
		"19.99", "", "", "jane@example.com", "", "2024-03-15",
		"credit_card", "received", "Spring fundraiser",
	},
}

var fieldDescriptions = map[string]string{
	"firstName":           "Contact first name",
	"middleName":          "Contact middle name",
	"lastName":            "Contact last name",
	"pronouns":            "Preferred pronouns",
	"vanid":               "VAN identifier",
	"gender":              "Gender, matched against the reference list",
	"race":                "Race, matched against the reference list",
	"status":              "Record status",
	"emails":              "Comma-separated email addresses",
	"phoneNumbers":        "Comma-separated phone numbers",
	"streetAddress":       "Street address line",
	"unit":                "Apartment, suite, or unit",
	"city":                "City",
	"state":               "State name or two-letter abbreviation",
	"zipCode":             "Zip code, created if not already known",
	"addresses":           "Combined street, city address shorthand",
	"socialMediaAccounts": "Comma-separated platform:handle pairs",
	"tags":                "Comma-separated labels",
	"notes":               "Free-form notes",
	"businessName":        "Business name",
	"website":             "Business website URL",
	"amount":              "Donation amount in dollars, e.g. 19.99",
	"contactId":           "Existing contact id of the donor",
	"businessId":          "Existing business id of the donor",
	"donorEmail":          "Donor contact email used to resolve the donor",
	"donationDate":        "Date of the donation (YYYY-MM-DD)",
	"method":              "How the donation was made",
}

// TemplateFields returns the ordered header fields for an entity type
func TemplateFields(entityType models.EntityType) ([]string, error) {
	cfg, ok := ConfigFor(entityType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntityType, entityType)
	}
	fields := make([]string, 0, len(cfg.RequiredFields)+len(cfg.OptionalFields))
	fields = append(fields, cfg.RequiredFields...)
	fields = append(fields, cfg.OptionalFields...)
	return fields, nil
}

// FieldDocs returns the field documentation for an entity type
func FieldDocs(entityType models.EntityType) ([]FieldDoc, error) {
	cfg, ok := ConfigFor(entityType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntityType, entityType)
	}

	fields, _ := TemplateFields(entityType)
	required := make(map[string]bool, len(cfg.RequiredFields))
	for _, f := range cfg.RequiredFields {
		required[f] = true
	}

	docs := make([]FieldDoc, 0, len(fields))
	for _, field := range fields {
		doc := FieldDoc{
			Field:       field,
			Required:    required[field],
			Description: fieldDescriptions[field],
		}
		if rule, ok := cfg.ValidationRules[field]; ok {
			doc.Rule = rule.Kind
			doc.Options = rule.Options
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// GenerateCSVTemplate renders a sample CSV (header plus one example
// row) for an entity type
func GenerateCSVTemplate(entityType models.EntityType) ([]byte, error) {
	fields, err := TemplateFields(entityType)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(fields); err != nil {
		return nil, err
	}
	sample := sampleRows[entityType]
	row := make([]string, len(fields))
	copy(row, sample)
	if err := w.Write(row); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateXLSXTemplate renders the same template as a spreadsheet
func GenerateXLSXTemplate(entityType models.EntityType) ([]byte, error) {
	fields, err := TemplateFields(entityType)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, field := range fields {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, field); err != nil {
			return nil, err
		}
	}
	sample := sampleRows[entityType]
	for col := range fields {
		if col >= len(sample) || sample[col] == "" {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(col+1, 2)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, sample[col]); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
