package importer

import (
	"context"
	"testing"

	"harborcrm/pkg/models"

	"github.com/google/uuid"
)

func TestCalculateDuplicateScore(t *testing.T) {
	tests := []struct {
		name        string
		importRow   map[string]string
		existing    map[string]string
		matchFields []string
		want        float64
	}{
		{
			name:        "exact name match ignoring case",
			importRow:   map[string]string{"businessName": "acme corp"},
			existing:    map[string]string{"businessName": "Acme Corp"},
			matchFields: []string{"businessName"},
			want:        100,
		},
		{
			name:        "substring containment scores half",
			importRow:   map[string]string{"businessName": "Acme"},
			existing:    map[string]string{"businessName": "Acme Corp"},
			matchFields: []string{"businessName"},
			want:        50,
		},
		{
			name:        "no overlap scores zero",
			importRow:   map[string]string{"businessName": "Globex"},
			existing:    map[string]string{"businessName": "Acme Corp"},
			matchFields: []string{"businessName"},
			want:        0,
		},
		{
			name:        "multi-value field matches on any shared token",
			importRow:   map[string]string{"emails": "new@x.com, ada@example.com"},
			existing:    map[string]string{"emails": "ada@example.com"},
			matchFields: []string{"emails"},
			want:        100,
		},
		{
			name:        "missing value on either side scores zero",
			importRow:   map[string]string{"vanid": "123"},
			existing:    map[string]string{},
			matchFields: []string{"vanid"},
			want:        0,
		},
		{
			name:        "average over several fields",
			importRow:   map[string]string{"amount": "1999", "contactId": "abc"},
			existing:    map[string]string{"amount": "1999", "contactId": "def"},
			matchFields: []string{"amount", "contactId"},
			want:        50,
		},
		{
			name:        "no match fields",
			importRow:   map[string]string{"a": "b"},
			existing:    map[string]string{"a": "b"},
			matchFields: nil,
			want:        0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateDuplicateScore(tt.importRow, tt.existing, tt.matchFields)
			if got != tt.want {
				t.Errorf("score = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindDuplicatesContactDispatch(t *testing.T) {
	stores := newFakeStores()
	workspaceID := uuid.New()

	contact := &models.Contact{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		VanID:        "104523",
		Emails:       []models.ContactEmail{{Email: "ada@example.com"}},
		PhoneNumbers: []models.ContactPhone{{PhoneNumber: "555-0100"}},
	}
	contact.WorkspaceID = workspaceID
	if err := stores.contacts.Create(context.Background(), contact); err != nil {
		t.Fatal(err)
	}

	detector := NewDuplicateDetector(stores)
	ctx := context.Background()

	tests := []struct {
		name           string
		row            map[string]string
		duplicateField string
		wantHits       int
	}{
		{"email exact match", map[string]string{"emails": "ada@example.com"}, "emails", 1},
		{"email is case-sensitive", map[string]string{"emails": "ADA@EXAMPLE.COM"}, "emails", 0},
		{"any email in the list matches", map[string]string{"emails": "other@x.com, ada@example.com"}, "emails", 1},
		{"phone exact match", map[string]string{"phoneNumbers": "555-0100"}, "phoneNumbers", 1},
		{"phone formatting differences do not match", map[string]string{"phoneNumbers": "5550100"}, "phoneNumbers", 0},
		{"vanid match", map[string]string{"vanid": "104523"}, "vanid", 1},
		{"name substring match ignores case", map[string]string{"lastName": "love"}, "lastName", 1},
		{"empty duplicate value finds nothing", map[string]string{}, "emails", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates, err := detector.FindDuplicates(ctx, models.EntityTypeContacts, tt.row, workspaceID, tt.duplicateField)
			if err != nil {
				t.Fatalf("FindDuplicates: %v", err)
			}
			if len(candidates) != tt.wantHits {
				t.Errorf("got %d candidates, want %d", len(candidates), tt.wantHits)
			}
			if tt.wantHits > 0 && candidates[0].ID != contact.ID {
				t.Errorf("candidate ID mismatch")
			}
		})
	}

	// Other workspaces never leak in
	candidates, err := detector.FindDuplicates(ctx, models.EntityTypeContacts,
		map[string]string{"emails": "ada@example.com"}, uuid.New(), "emails")
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 0 {
		t.Errorf("cross-workspace lookup returned %d candidates", len(candidates))
	}
}

func TestFindDuplicatesDonationConjunction(t *testing.T) {
	stores := newFakeStores()
	workspaceID := uuid.New()
	contactID := uuid.New()

	donation := &models.Donation{
		ContactID:   &contactID,
		AmountCents: 1999,
	}
	donation.WorkspaceID = workspaceID
	if err := stores.donations.Create(context.Background(), donation); err != nil {
		t.Fatal(err)
	}

	detector := NewDuplicateDetector(stores)
	ctx := context.Background()

	// Matching amount and contact
	candidates, err := detector.FindDuplicates(ctx, models.EntityTypeDonations,
		map[string]string{"amount": "19.99", "contactId": contactID.String()}, workspaceID, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(candidates))
	}

	// Same amount, different contact: the conjunction fails
	candidates, err = detector.FindDuplicates(ctx, models.EntityTypeDonations,
		map[string]string{"amount": "19.99", "contactId": uuid.New().String()}, workspaceID, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 0 {
		t.Errorf("conjunction should fail on mismatched contact, got %d", len(candidates))
	}

	// No usable criteria at all
	candidates, err = detector.FindDuplicates(ctx, models.EntityTypeDonations,
		map[string]string{"notes": "irrelevant"}, workspaceID, "")
	if err != nil {
		t.Fatal(err)
	}
	if candidates != nil {
		t.Errorf("criteria-less lookup should return nil, got %v", candidates)
	}
}
