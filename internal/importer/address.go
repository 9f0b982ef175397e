package importer

import (
	"context"
	"strings"

	"harborcrm/pkg/models"

	"github.com/google/uuid"
)

// importAddress is the normalized shape shared by contact and business
// address rows before they become entity-specific records
type importAddress struct {
	Street    string
	Unit      string
	City      string
	StateID   *uuid.UUID
	ZipCodeID *uuid.UUID
}

type socialAccount struct {
	Platform string
	Handle   string
}

// parseSocialAccounts splits "platform:handle,platform:handle" into
// accounts, skipping malformed tokens (validation already reported them)
func parseSocialAccounts(value string) []socialAccount {
	var accounts []socialAccount
	for _, token := range SplitList(value) {
		platform, handle, ok := strings.Cut(token, ":")
		platform = strings.TrimSpace(platform)
		handle = strings.TrimSpace(handle)
		if !ok || platform == "" || handle == "" {
			continue
		}
		accounts = append(accounts, socialAccount{Platform: platform, Handle: handle})
	}
	return accounts
}

// buildAddresses produces address rows from both supported input
// shapes: the discrete streetAddress/city/state/zipCode fields and the
// combined "addresses" field. One source row may yield rows from both.
//
// The combined field is split naively on commas into street/city
// pairs: "123 Main St, Springfield" becomes street "123 Main St" and
// city "Springfield". This is documented best-effort parsing for the
// common US shorthand, not a full address parser.
func (p *BatchProcessor) buildAddresses(ctx context.Context, s Stores, row map[string]string) ([]importAddress, error) {
	var addresses []importAddress

	stateID, err := p.resolveState(ctx, s, row["state"])
	if err != nil {
		return nil, err
	}

	if street, city := row["streetAddress"], row["city"]; street != "" && city != "" {
		zipID, err := p.resolveZipCode(ctx, s, row["zipCode"], stateID)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, importAddress{
			Street:    street,
			Unit:      row["unit"],
			City:      city,
			StateID:   stateID,
			ZipCodeID: zipID,
		})
	}

	if combined := row["addresses"]; combined != "" {
		parts := SplitList(combined)
		for i := 0; i < len(parts); i += 2 {
			addr := importAddress{Street: parts[i], StateID: stateID}
			if i+1 < len(parts) {
				addr.City = parts[i+1]
			}
			addresses = append(addresses, addr)
		}
	}

	return addresses, nil
}

func (p *BatchProcessor) resolveState(ctx context.Context, s Stores, value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	state, err := s.Lookups().FindStateByNameOrAbbr(ctx, value)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, nil
	}
	return &state.ID, nil
}

// resolveZipCode finds a zip code by exact name or creates it on the
// fly. Zip codes are global, not workspace-scoped.
func (p *BatchProcessor) resolveZipCode(ctx context.Context, s Stores, value string, stateID *uuid.UUID) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	zip, err := s.Lookups().FindZipCodeByName(ctx, value)
	if err != nil {
		return nil, err
	}
	if zip == nil {
		zip = &models.ZipCode{Name: value, StateID: stateID}
		if err := s.Lookups().CreateZipCode(ctx, zip); err != nil {
			return nil, err
		}
	}
	return &zip.ID, nil
}
