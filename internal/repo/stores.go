package repo

import (
	"context"

	"harborcrm/internal/importer"

	"gorm.io/gorm"
)

// Stores is the gorm-backed implementation of the importer's
// data-access surface
type Stores struct {
	db         *gorm.DB
	contacts   *ContactRepository
	businesses *BusinessRepository
	donations  *DonationRepository
	lookups    *LookupRepository
	sessions   *ImportSessionRepository
}

// NewStores creates the store bundle over one database handle
func NewStores(db *gorm.DB) *Stores {
	return &Stores{
		db:         db,
		contacts:   NewContactRepository(db),
		businesses: NewBusinessRepository(db),
		donations:  NewDonationRepository(db),
		lookups:    NewLookupRepository(db),
		sessions:   NewImportSessionRepository(db),
	}
}

func (s *Stores) Contacts() importer.ContactStore    { return s.contacts }
func (s *Stores) Businesses() importer.BusinessStore { return s.businesses }
func (s *Stores) Donations() importer.DonationStore  { return s.donations }
func (s *Stores) Lookups() importer.LookupStore      { return s.lookups }
func (s *Stores) Sessions() importer.SessionStore    { return s.sessions }

// ContactRepo exposes the concrete contact repository for handlers
func (s *Stores) ContactRepo() *ContactRepository { return s.contacts }

// BusinessRepo exposes the concrete business repository for handlers
func (s *Stores) BusinessRepo() *BusinessRepository { return s.businesses }

// DonationRepo exposes the concrete donation repository for handlers
func (s *Stores) DonationRepo() *DonationRepository { return s.donations }

// SessionRepo exposes the concrete session repository for services
func (s *Stores) SessionRepo() *ImportSessionRepository { return s.sessions }

// Transact runs fn against a transactional view of the same stores
func (s *Stores) Transact(ctx context.Context, fn func(importer.Stores) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStores(tx))
	})
}
