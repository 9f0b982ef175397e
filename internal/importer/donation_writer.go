package importer

import (
	"context"
	"fmt"
	"time"

	"harborcrm/pkg/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var donationDateFormats = []string{"2006-01-02", "01/02/2006", time.RFC3339}

// ParseAmountCents parses a decimal dollar figure into integer cents
func ParseAmountCents(value string) (int64, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return 0, fmt.Errorf("amount %q is not a valid dollar figure", value)
	}
	if amount.IsNegative() {
		return 0, fmt.Errorf("amount %q cannot be negative", value)
	}
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

// createDonation writes a new donation, resolving the donor from the
// row. Explicit contactId/businessId take precedence over donorEmail
// and businessName resolution.
func (p *BatchProcessor) createDonation(ctx context.Context, s Stores, workspaceID uuid.UUID, row map[string]string) error {
	cents, err := ParseAmountCents(row["amount"])
	if err != nil {
		return newValidationError("amount", err.Error())
	}

	contactID, businessID, err := p.resolveDonor(ctx, s, workspaceID, row)
	if err != nil {
		return err
	}

	donation := &models.Donation{
		BaseWorkspaceModel: models.BaseWorkspaceModel{WorkspaceID: workspaceID},
		ContactID:          contactID,
		BusinessID:         businessID,
		AmountCents:        cents,
		Method:             row["method"],
		Notes:              row["notes"],
	}
	if status := row["status"]; status != "" {
		donation.Status = status
	}
	if date := parseDonationDate(row["donationDate"]); date != nil {
		donation.DonationDate = date
	}

	return s.Donations().Create(ctx, donation)
}

// updateDonation replaces scalar fields on the matched donation
func (p *BatchProcessor) updateDonation(ctx context.Context, s Stores, workspaceID, donationID uuid.UUID, row map[string]string) error {
	donation, err := s.Donations().GetByID(ctx, workspaceID, donationID)
	if err != nil {
		return err
	}
	if donation == nil {
		return newProcessingError("", "matched donation no longer exists")
	}

	if amount := row["amount"]; amount != "" {
		cents, err := ParseAmountCents(amount)
		if err != nil {
			return newValidationError("amount", err.Error())
		}
		donation.AmountCents = cents
	}
	if v := row["method"]; v != "" {
		donation.Method = v
	}
	if v := row["status"]; v != "" {
		donation.Status = v
	}
	if v := row["notes"]; v != "" {
		donation.Notes = v
	}
	if date := parseDonationDate(row["donationDate"]); date != nil {
		donation.DonationDate = date
	}

	return s.Donations().UpdateScalars(ctx, donation)
}

// resolveDonor finds the contact or business a donation belongs to.
// Returns a processing error when neither can be resolved.
func (p *BatchProcessor) resolveDonor(ctx context.Context, s Stores, workspaceID uuid.UUID, row map[string]string) (*uuid.UUID, *uuid.UUID, error) {
	if raw := row["contactId"]; raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, nil, newValidationError("contactId", fmt.Sprintf("invalid contact id %q", raw))
		}
		contact, err := s.Contacts().GetByID(ctx, workspaceID, id)
		if err != nil {
			return nil, nil, err
		}
		if contact == nil {
			return nil, nil, newProcessingError("contactId", fmt.Sprintf("contact %s not found in workspace", id))
		}
		return &contact.ID, nil, nil
	}

	if raw := row["businessId"]; raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, nil, newValidationError("businessId", fmt.Sprintf("invalid business id %q", raw))
		}
		business, err := s.Businesses().GetByID(ctx, workspaceID, id)
		if err != nil {
			return nil, nil, err
		}
		if business == nil {
			return nil, nil, newProcessingError("businessId", fmt.Sprintf("business %s not found in workspace", id))
		}
		return nil, &business.ID, nil
	}

	if email := row["donorEmail"]; email != "" {
		contacts, err := s.Contacts().FindByAnyEmail(ctx, workspaceID, []string{email})
		if err != nil {
			return nil, nil, err
		}
		if len(contacts) > 0 {
			return &contacts[0].ID, nil, nil
		}
	}

	if name := row["businessName"]; name != "" {
		businesses, err := s.Businesses().FindByNameFold(ctx, workspaceID, name)
		if err != nil {
			return nil, nil, err
		}
		if len(businesses) > 0 {
			return nil, &businesses[0].ID, nil
		}
	}

	return nil, nil, newProcessingError("", "no valid contact or business found for donation")
}

func parseDonationDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, format := range donationDateFormats {
		if parsed, err := time.Parse(format, value); err == nil {
			return &parsed
		}
	}
	log.Debug().Str("donation_date", value).Msg("unparseable donation date, dropping")
	return nil
}
