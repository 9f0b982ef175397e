package importer

import (
	"bytes"
	"encoding/csv"
	"testing"

	"harborcrm/pkg/models"

	"github.com/xuri/excelize/v2"
)

func TestGenerateCSVTemplate(t *testing.T) {
	for _, entityType := range EntityTypes() {
		t.Run(string(entityType), func(t *testing.T) {
			data, err := GenerateCSVTemplate(entityType)
			if err != nil {
				t.Fatalf("GenerateCSVTemplate: %v", err)
			}

			records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
			if err != nil {
				t.Fatalf("template is not valid CSV: %v", err)
			}
			if len(records) != 2 {
				t.Fatalf("got %d rows, want header plus one sample", len(records))
			}

			fields, _ := TemplateFields(entityType)
			if len(records[0]) != len(fields) {
				t.Fatalf("header has %d columns, want %d", len(records[0]), len(fields))
			}
			for i, field := range fields {
				if records[0][i] != field {
					t.Errorf("header[%d] = %q, want %q", i, records[0][i], field)
				}
			}
			if len(records[1]) != len(fields) {
				t.Errorf("sample row has %d columns, want %d", len(records[1]), len(fields))
			}

			// Required columns come first and carry sample values
			cfg, _ := ConfigFor(entityType)
			for i := range cfg.RequiredFields {
				if records[1][i] == "" {
					t.Errorf("sample value for required field %q is empty", fields[i])
				}
			}
		})
	}

	if _, err := GenerateCSVTemplate(models.EntityType("events")); err == nil {
		t.Error("unknown entity type should fail")
	}
}

func TestGenerateCSVTemplateSampleRowsValidate(t *testing.T) {
	// The shipped sample rows must pass their own entity's validation
	for _, entityType := range EntityTypes() {
		t.Run(string(entityType), func(t *testing.T) {
			data, err := GenerateCSVTemplate(entityType)
			if err != nil {
				t.Fatal(err)
			}
			records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
			if err != nil {
				t.Fatal(err)
			}

			row := make(map[string]string, len(records[0]))
			for i, field := range records[0] {
				if records[1][i] != "" {
					row[field] = records[1][i]
				}
			}

			cfg, _ := ConfigFor(entityType)
			if failures := ValidateRow(row, cfg); len(failures) != 0 {
				t.Errorf("sample row fails validation: %v", failures)
			}
		})
	}
}

func TestGenerateXLSXTemplate(t *testing.T) {
	data, err := GenerateXLSXTemplate(models.EntityTypeContacts)
	if err != nil {
		t.Fatalf("GenerateXLSXTemplate: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("template is not a valid spreadsheet: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	first, err := f.GetCellValue(sheet, "A1")
	if err != nil {
		t.Fatal(err)
	}
	if first != "firstName" {
		t.Errorf("A1 = %q, want firstName", first)
	}
	sampleFirst, err := f.GetCellValue(sheet, "A2")
	if err != nil {
		t.Fatal(err)
	}
	if sampleFirst == "" {
		t.Error("sample row missing in spreadsheet")
	}
}

func TestFieldDocs(t *testing.T) {
	docs, err := FieldDocs(models.EntityTypeDonations)
	if err != nil {
		t.Fatalf("FieldDocs: %v", err)
	}

	byField := map[string]FieldDoc{}
	for _, doc := range docs {
		byField[doc.Field] = doc
	}

	amount, ok := byField["amount"]
	if !ok {
		t.Fatal("amount doc missing")
	}
	if !amount.Required {
		t.Error("amount should be required")
	}
	if amount.Rule != RuleNumber {
		t.Errorf("amount rule = %s, want number", amount.Rule)
	}

	method := byField["method"]
	if method.Rule != RuleEnum || len(method.Options) == 0 {
		t.Errorf("method doc should carry enum options: %+v", method)
	}
}
