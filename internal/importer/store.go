package importer

import (
	"context"

	"harborcrm/pkg/models"

	"github.com/google/uuid"
)

// ContactStore is the contact-table access the pipeline needs. Find
// methods return an empty slice on no match; Get methods return
// (nil, nil) on a miss so not-found never reads as a storage failure.
type ContactStore interface {
	Create(ctx context.Context, contact *models.Contact) error
	GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*models.Contact, error)
	UpdateScalars(ctx context.Context, contact *models.Contact) error

	// Duplicate-detection primitives. Email and phone matches are
	// exact and case-sensitive against stored values; name search is
	// a case-insensitive substring match.
	FindByAnyEmail(ctx context.Context, workspaceID uuid.UUID, emails []string) ([]models.Contact, error)
	FindByAnyPhone(ctx context.Context, workspaceID uuid.UUID, phones []string) ([]models.Contact, error)
	FindByVanID(ctx context.Context, workspaceID uuid.UUID, vanid string) ([]models.Contact, error)
	SearchByName(ctx context.Context, workspaceID uuid.UUID, field, value string) ([]models.Contact, error)

	AddEmails(ctx context.Context, emails []models.ContactEmail) error
	AddPhones(ctx context.Context, phones []models.ContactPhone) error
	AddAddresses(ctx context.Context, addresses []models.ContactAddress) error
	AddSocialAccounts(ctx context.Context, accounts []models.ContactSocial) error
	AddTags(ctx context.Context, tags []models.ContactTag) error
}

// BusinessStore is the business-table access the pipeline needs
type BusinessStore interface {
	Create(ctx context.Context, business *models.Business) error
	GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*models.Business, error)
	UpdateScalars(ctx context.Context, business *models.Business) error

	SearchByName(ctx context.Context, workspaceID uuid.UUID, name string) ([]models.Business, error)
	FindByNameFold(ctx context.Context, workspaceID uuid.UUID, name string) ([]models.Business, error)
	FindByAnyPhone(ctx context.Context, workspaceID uuid.UUID, phones []string) ([]models.Business, error)

	AddEmails(ctx context.Context, emails []models.BusinessEmail) error
	AddPhones(ctx context.Context, phones []models.BusinessPhone) error
	AddAddresses(ctx context.Context, addresses []models.BusinessAddress) error
	AddSocialAccounts(ctx context.Context, accounts []models.BusinessSocial) error
	AddTags(ctx context.Context, tags []models.BusinessTag) error
}

// DonationStore is the donation-table access the pipeline needs
type DonationStore interface {
	Create(ctx context.Context, donation *models.Donation) error
	GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*models.Donation, error)
	UpdateScalars(ctx context.Context, donation *models.Donation) error

	// FindMatching intersects whichever of amount/contact/business are
	// present, scoped to donations whose donor belongs to the workspace
	FindMatching(ctx context.Context, workspaceID uuid.UUID, amountCents *int64, contactID, businessID *uuid.UUID) ([]models.Donation, error)
}

// LookupStore resolves global reference values. Lookups return
// (nil, nil) on a miss.
type LookupStore interface {
	FindGenderByName(ctx context.Context, name string) (*models.Gender, error)
	FindRaceByName(ctx context.Context, name string) (*models.Race, error)
	FindStateByNameOrAbbr(ctx context.Context, value string) (*models.State, error)
	FindZipCodeByName(ctx context.Context, name string) (*models.ZipCode, error)
	CreateZipCode(ctx context.Context, zip *models.ZipCode) error
}

// SessionStore owns import-session persistence. ApplyProgress is the
// single writer of the session counters.
type SessionStore interface {
	Create(ctx context.Context, session *models.ImportSession) error
	Get(ctx context.Context, id uuid.UUID) (*models.ImportSession, error)
	GetStatus(ctx context.Context, id uuid.UUID) (models.ImportStatus, error)
	MarkProcessing(ctx context.Context, id uuid.UUID) error
	ApplyProgress(ctx context.Context, id uuid.UUID, processedDelta, successDelta, failDelta int) (*models.ImportSession, error)
	SetStatus(ctx context.Context, id uuid.UUID, status models.ImportStatus) error
	SetSourceKey(ctx context.Context, id uuid.UUID, key string) error
	AddRowError(ctx context.Context, rowError *models.ImportRowError) error
	ListErrors(ctx context.Context, sessionID uuid.UUID) ([]models.ImportRowError, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, workspaceID uuid.UUID, page, limit int, status string) ([]models.ImportSession, int64, error)
}

// Stores bundles the data-access surface consumed by the batch
// processor and duplicate detector. Transact runs fn against a
// transactional view of the same stores; the processor wraps each
// row's full write sequence in one transaction so a failed row rolls
// back alone while prior rows stay committed.
type Stores interface {
	Contacts() ContactStore
	Businesses() BusinessStore
	Donations() DonationStore
	Lookups() LookupStore
	Sessions() SessionStore
	Transact(ctx context.Context, fn func(Stores) error) error
}
