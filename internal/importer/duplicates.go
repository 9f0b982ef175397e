package importer

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"harborcrm/pkg/models"

	"github.com/google/uuid"
)

// DuplicateCandidate is a lightweight projection of an existing record
// that may match an import row
type DuplicateCandidate struct {
	ID         uuid.UUID         `json:"id"`
	EntityType models.EntityType `json:"entity_type"`
	Label      string            `json:"label"`
	Fields     map[string]string `json:"fields"`
}

// DuplicateDetector finds existing records matching an import row on
// the session's duplicate field
type DuplicateDetector struct {
	stores Stores
}

// NewDuplicateDetector creates a new duplicate detector
func NewDuplicateDetector(stores Stores) *DuplicateDetector {
	return &DuplicateDetector{stores: stores}
}

// FindDuplicates dispatches on (entityType, duplicateField) and returns
// zero or more candidates scoped to the workspace
func (d *DuplicateDetector) FindDuplicates(ctx context.Context, entityType models.EntityType, row map[string]string, workspaceID uuid.UUID, duplicateField string) ([]DuplicateCandidate, error) {
	switch entityType {
	case models.EntityTypeContacts:
		return d.findContactDuplicates(ctx, row, workspaceID, duplicateField)
	case models.EntityTypeBusinesses:
		return d.findBusinessDuplicates(ctx, row, workspaceID, duplicateField)
	case models.EntityTypeDonations:
		return d.findDonationDuplicates(ctx, row, workspaceID)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntityType, entityType)
	}
}

func (d *DuplicateDetector) findContactDuplicates(ctx context.Context, row map[string]string, workspaceID uuid.UUID, duplicateField string) ([]DuplicateCandidate, error) {
	value := row[duplicateField]
	if value == "" {
		return nil, nil
	}

	var (
		contacts []models.Contact
		err      error
	)
	switch duplicateField {
	case "emails":
		contacts, err = d.stores.Contacts().FindByAnyEmail(ctx, workspaceID, SplitList(value))
	case "phoneNumbers":
		contacts, err = d.stores.Contacts().FindByAnyPhone(ctx, workspaceID, SplitList(value))
	case "vanid":
		contacts, err = d.stores.Contacts().FindByVanID(ctx, workspaceID, value)
	default:
		contacts, err = d.stores.Contacts().SearchByName(ctx, workspaceID, duplicateField, value)
	}
	if err != nil {
		return nil, err
	}

	candidates := make([]DuplicateCandidate, 0, len(contacts))
	for i := range contacts {
		candidates = append(candidates, contactCandidate(&contacts[i]))
	}
	return candidates, nil
}

func (d *DuplicateDetector) findBusinessDuplicates(ctx context.Context, row map[string]string, workspaceID uuid.UUID, duplicateField string) ([]DuplicateCandidate, error) {
	value := row[duplicateField]
	if value == "" {
		return nil, nil
	}

	var (
		businesses []models.Business
		err        error
	)
	switch duplicateField {
	case "phoneNumbers":
		businesses, err = d.stores.Businesses().FindByAnyPhone(ctx, workspaceID, SplitList(value))
	default:
		businesses, err = d.stores.Businesses().SearchByName(ctx, workspaceID, value)
	}
	if err != nil {
		return nil, err
	}

	candidates := make([]DuplicateCandidate, 0, len(businesses))
	for i := range businesses {
		candidates = append(candidates, businessCandidate(&businesses[i]))
	}
	return candidates, nil
}

// findDonationDuplicates matches on the conjunction of whichever of
// amount/contactId/businessId are present in the row
func (d *DuplicateDetector) findDonationDuplicates(ctx context.Context, row map[string]string, workspaceID uuid.UUID) ([]DuplicateCandidate, error) {
	var amountCents *int64
	if amount := row["amount"]; amount != "" {
		cents, err := ParseAmountCents(amount)
		if err == nil {
			amountCents = &cents
		}
	}

	var contactID, businessID *uuid.UUID
	if raw := row["contactId"]; raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			contactID = &id
		}
	}
	if raw := row["businessId"]; raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			businessID = &id
		}
	}

	if amountCents == nil && contactID == nil && businessID == nil {
		return nil, nil
	}

	donations, err := d.stores.Donations().FindMatching(ctx, workspaceID, amountCents, contactID, businessID)
	if err != nil {
		return nil, err
	}

	candidates := make([]DuplicateCandidate, 0, len(donations))
	for i := range donations {
		candidates = append(candidates, donationCandidate(&donations[i]))
	}
	return candidates, nil
}

func contactCandidate(contact *models.Contact) DuplicateCandidate {
	emails := make([]string, 0, len(contact.Emails))
	for _, e := range contact.Emails {
		emails = append(emails, e.Email)
	}
	phones := make([]string, 0, len(contact.PhoneNumbers))
	for _, p := range contact.PhoneNumbers {
		phones = append(phones, p.PhoneNumber)
	}
	return DuplicateCandidate{
		ID:         contact.ID,
		EntityType: models.EntityTypeContacts,
		Label:      contact.FullName(),
		Fields: map[string]string{
			"firstName":    contact.FirstName,
			"lastName":     contact.LastName,
			"vanid":        contact.VanID,
			"emails":       strings.Join(emails, ","),
			"phoneNumbers": strings.Join(phones, ","),
		},
	}
}

func businessCandidate(business *models.Business) DuplicateCandidate {
	phones := make([]string, 0, len(business.PhoneNumbers))
	for _, p := range business.PhoneNumbers {
		phones = append(phones, p.PhoneNumber)
	}
	return DuplicateCandidate{
		ID:         business.ID,
		EntityType: models.EntityTypeBusinesses,
		Label:      business.Name,
		Fields: map[string]string{
			"businessName": business.Name,
			"phoneNumbers": strings.Join(phones, ","),
		},
	}
}

func donationCandidate(donation *models.Donation) DuplicateCandidate {
	fields := map[string]string{
		"amount": strconv.FormatInt(donation.AmountCents, 10),
	}
	if donation.ContactID != nil {
		fields["contactId"] = donation.ContactID.String()
	}
	if donation.BusinessID != nil {
		fields["businessId"] = donation.BusinessID.String()
	}
	return DuplicateCandidate{
		ID:         donation.ID,
		EntityType: models.EntityTypeDonations,
		Label:      fmt.Sprintf("donation of %d cents", donation.AmountCents),
		Fields:     fields,
	}
}

// multiValueFields are scored by comma-split token membership instead
// of whole-string comparison
var multiValueFields = map[string]bool{
	"emails":       true,
	"phoneNumbers": true,
}

// CalculateDuplicateScore returns an advisory 0-100 confidence that an
// import row and an existing record describe the same thing. The
// create-vs-update decision never consults this score; it is surfaced
// for operator review only.
func CalculateDuplicateScore(importRow map[string]string, existing map[string]string, matchFields []string) float64 {
	if len(matchFields) == 0 {
		return 0
	}

	var sum float64
	for _, field := range matchFields {
		sum += fieldScore(field, importRow[field], existing[field])
	}
	return sum / float64(len(matchFields)) * 100
}

func fieldScore(field, importValue, existingValue string) float64 {
	importValue = strings.TrimSpace(importValue)
	existingValue = strings.TrimSpace(existingValue)
	if importValue == "" || existingValue == "" {
		return 0
	}

	if multiValueFields[field] {
		if anyTokenMatch(importValue, existingValue) {
			return 1.0
		}
	} else if strings.EqualFold(importValue, existingValue) {
		return 1.0
	}

	lowerImport := strings.ToLower(importValue)
	lowerExisting := strings.ToLower(existingValue)
	if strings.Contains(lowerImport, lowerExisting) || strings.Contains(lowerExisting, lowerImport) {
		return 0.5
	}
	return 0
}

func anyTokenMatch(importValue, existingValue string) bool {
	existingTokens := SplitList(existingValue)
	for _, importToken := range SplitList(importValue) {
		for _, existingToken := range existingTokens {
			if strings.EqualFold(importToken, existingToken) {
				return true
			}
		}
	}
	return false
}
