package importer

import (
	"strings"
	"testing"

	"harborcrm/pkg/models"
)

func mustConfig(t *testing.T, entityType models.EntityType) *ImportConfig {
	t.Helper()
	cfg, ok := ConfigFor(entityType)
	if !ok {
		t.Fatalf("no config for %s", entityType)
	}
	return cfg
}

func TestValidateRowCollectsAllFailures(t *testing.T) {
	cfg := mustConfig(t, models.EntityTypeContacts)

	// Two missing required fields plus a malformed email: every check
	// reports, not just the first
	failures := ValidateRow(map[string]string{"emails": "not-an-email"}, cfg)
	if len(failures) != 3 {
		t.Fatalf("got %d failures, want 3: %v", len(failures), failures)
	}

	fields := map[string]bool{}
	for _, f := range failures {
		fields[f.Field] = true
	}
	for _, want := range []string{"firstName", "lastName", "emails"} {
		if !fields[want] {
			t.Errorf("missing failure for %s in %v", want, failures)
		}
	}
}

func TestValidateRowRules(t *testing.T) {
	contacts := mustConfig(t, models.EntityTypeContacts)
	donations := mustConfig(t, models.EntityTypeDonations)

	tests := []struct {
		name      string
		cfg       *ImportConfig
		row       map[string]string
		wantField string // empty means the row is valid
	}{
		{
			name: "valid contact",
			cfg:  contacts,
			row: map[string]string{
				"firstName": "Ada", "lastName": "Lovelace",
				"emails":       "ada@example.com, countess@example.org",
				"phoneNumbers": "+1 (555) 010-0100",
				"status":       "active",
			},
		},
		{
			name:      "one bad email in a list fails the field",
			cfg:       contacts,
			row:       map[string]string{"firstName": "A", "lastName": "B", "emails": "good@example.com, bad"},
			wantField: "emails",
		},
		{
			name:      "letters in phone",
			cfg:       contacts,
			row:       map[string]string{"firstName": "A", "lastName": "B", "phoneNumbers": "call me"},
			wantField: "phoneNumbers",
		},
		{
			name:      "unknown status enum value",
			cfg:       contacts,
			row:       map[string]string{"firstName": "A", "lastName": "B", "status": "dormant"},
			wantField: "status",
		},
		{
			name:      "whitespace-only required field",
			cfg:       contacts,
			row:       map[string]string{"firstName": "   ", "lastName": "B"},
			wantField: "firstName",
		},
		{
			name: "empty optional fields are skipped",
			cfg:  contacts,
			row:  map[string]string{"firstName": "A", "lastName": "B", "emails": ""},
		},
		{
			name:      "social account without handle",
			cfg:       contacts,
			row:       map[string]string{"firstName": "A", "lastName": "B", "socialMediaAccounts": "twitter:@ada, instagram"},
			wantField: "socialMediaAccounts",
		},
		{
			name: "valid donation",
			cfg:  donations,
			row:  map[string]string{"amount": "19.99", "method": "check"},
		},
		{
			name:      "non-numeric amount",
			cfg:       donations,
			row:       map[string]string{"amount": "twenty"},
			wantField: "amount",
		},
		{
			name:      "negative amount",
			cfg:       donations,
			row:       map[string]string{"amount": "-5"},
			wantField: "amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failures := ValidateRow(tt.row, tt.cfg)
			if tt.wantField == "" {
				if len(failures) != 0 {
					t.Fatalf("want valid row, got %v", failures)
				}
				return
			}
			if len(failures) == 0 {
				t.Fatalf("want failure on %s, got none", tt.wantField)
			}
			found := false
			for _, f := range failures {
				if f.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("want failure on %s, got %v", tt.wantField, failures)
			}
		})
	}
}

func TestJoinFailures(t *testing.T) {
	msg := JoinFailures([]ValidationFailure{
		{Field: "firstName", Message: "required field is missing or empty"},
		{Field: "emails", Message: `invalid email address "x"`},
	})
	if !strings.Contains(msg, "firstName") || !strings.Contains(msg, "emails") {
		t.Errorf("joined message %q should carry both fields", msg)
	}
	if !strings.Contains(msg, "; ") {
		t.Errorf("joined message %q should be semicolon-delimited", msg)
	}
}
