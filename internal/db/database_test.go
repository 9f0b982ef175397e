package db

import (
	"strings"
	"sync"
	"testing"

	"harborcrm/pkg/models"

	"gorm.io/gorm/schema"
)

// The relation-table index statements must reference the column names
// gorm actually derives from the models; a typo here fails silently at
// migration time and leaves the duplicate lookups unindexed.
func TestCustomIndexColumnsMatchModels(t *testing.T) {
	cache := &sync.Map{}

	tests := []struct {
		table string
		model interface{}
		field string
	}{
		{"contact_emails", &models.ContactEmail{}, "Email"},
		{"contact_phones", &models.ContactPhone{}, "PhoneNumber"},
		{"business_phones", &models.BusinessPhone{}, "PhoneNumber"},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			parsed, err := schema.Parse(tt.model, cache, schema.NamingStrategy{})
			if err != nil {
				t.Fatalf("parse schema: %v", err)
			}
			if parsed.Table != tt.table {
				t.Fatalf("table = %s, want %s", parsed.Table, tt.table)
			}
			field := parsed.LookUpField(tt.field)
			if field == nil {
				t.Fatalf("field %s not found on %s", tt.field, tt.table)
			}

			var stmt string
			for _, idx := range customIndexes {
				if strings.Contains(idx, " ON "+tt.table+"(") {
					stmt = idx
					break
				}
			}
			if stmt == "" {
				t.Fatalf("no index statement for %s", tt.table)
			}
			if !strings.Contains(stmt, "("+field.DBName+")") {
				t.Errorf("index on %s does not cover column %s: %s", tt.table, field.DBName, stmt)
			}
		})
	}
}
