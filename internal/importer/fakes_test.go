package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"harborcrm/pkg/models"

	"github.com/google/uuid"
)

// In-memory store implementations backing the pipeline tests. They
// mirror the matching semantics of the SQL repositories: email and
// phone matches are exact, name searches are case-insensitive
// substring matches.

type fakeStores struct {
	contacts   *fakeContactStore
	businesses *fakeBusinessStore
	donations  *fakeDonationStore
	lookups    *fakeLookupStore
	sessions   *fakeSessionStore
}

func newFakeStores() *fakeStores {
	return &fakeStores{
		contacts:   &fakeContactStore{},
		businesses: &fakeBusinessStore{},
		donations:  &fakeDonationStore{},
		lookups:    &fakeLookupStore{},
		sessions:   &fakeSessionStore{sessions: map[uuid.UUID]*models.ImportSession{}},
	}
}

func (f *fakeStores) Contacts() ContactStore    { return f.contacts }
func (f *fakeStores) Businesses() BusinessStore { return f.businesses }
func (f *fakeStores) Donations() DonationStore  { return f.donations }
func (f *fakeStores) Lookups() LookupStore      { return f.lookups }
func (f *fakeStores) Sessions() SessionStore    { return f.sessions }

func (f *fakeStores) Transact(ctx context.Context, fn func(Stores) error) error {
	return fn(f)
}

type fakeContactStore struct {
	records []*models.Contact
}

func (s *fakeContactStore) Create(ctx context.Context, contact *models.Contact) error {
	if contact.ID == uuid.Nil {
		contact.ID = uuid.New()
	}
	s.records = append(s.records, contact)
	return nil
}

func (s *fakeContactStore) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*models.Contact, error) {
	for _, c := range s.records {
		if c.ID == id && c.WorkspaceID == workspaceID {
			return c, nil
		}
	}
	return nil, nil
}

func (s *fakeContactStore) UpdateScalars(ctx context.Context, contact *models.Contact) error {
	for i, c := range s.records {
		if c.ID == contact.ID {
			s.records[i] = contact
			return nil
		}
	}
	return fmt.Errorf("contact %s not found", contact.ID)
}

func (s *fakeContactStore) FindByAnyEmail(ctx context.Context, workspaceID uuid.UUID, emails []string) ([]models.Contact, error) {
	var out []models.Contact
	for _, c := range s.records {
		if c.WorkspaceID != workspaceID {
			continue
		}
		for _, existing := range c.Emails {
			for _, email := range emails {
				if existing.Email == email {
					out = append(out, *c)
				}
			}
		}
	}
	return out, nil
}

func (s *fakeContactStore) FindByAnyPhone(ctx context.Context, workspaceID uuid.UUID, phones []string) ([]models.Contact, error) {
	var out []models.Contact
	for _, c := range s.records {
		if c.WorkspaceID != workspaceID {
			continue
		}
		for _, existing := range c.PhoneNumbers {
			for _, phone := range phones {
				if existing.PhoneNumber == phone {
					out = append(out, *c)
				}
			}
		}
	}
	return out, nil
}

func (s *fakeContactStore) FindByVanID(ctx context.Context, workspaceID uuid.UUID, vanid string) ([]models.Contact, error) {
	var out []models.Contact
	for _, c := range s.records {
		if c.WorkspaceID == workspaceID && c.VanID == vanid {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *fakeContactStore) SearchByName(ctx context.Context, workspaceID uuid.UUID, field, value string) ([]models.Contact, error) {
	needle := strings.ToLower(value)
	var out []models.Contact
	for _, c := range s.records {
		if c.WorkspaceID != workspaceID {
			continue
		}
		first := strings.Contains(strings.ToLower(c.FirstName), needle)
		last := strings.Contains(strings.ToLower(c.LastName), needle)
		switch field {
		case "firstName":
			if first {
				out = append(out, *c)
			}
		case "lastName":
			if last {
				out = append(out, *c)
			}
		default:
			if first || last {
				out = append(out, *c)
			}
		}
	}
	return out, nil
}

func (s *fakeContactStore) byID(id uuid.UUID) *models.Contact {
	for _, c := range s.records {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (s *fakeContactStore) AddEmails(ctx context.Context, emails []models.ContactEmail) error {
	for _, e := range emails {
		if c := s.byID(e.ContactID); c != nil {
			c.Emails = append(c.Emails, e)
		}
	}
	return nil
}

func (s *fakeContactStore) AddPhones(ctx context.Context, phones []models.ContactPhone) error {
	for _, p := range phones {
		if c := s.byID(p.ContactID); c != nil {
			c.PhoneNumbers = append(c.PhoneNumbers, p)
		}
	}
	return nil
}

func (s *fakeContactStore) AddAddresses(ctx context.Context, addresses []models.ContactAddress) error {
	for _, a := range addresses {
		if c := s.byID(a.ContactID); c != nil {
			c.Addresses = append(c.Addresses, a)
		}
	}
	return nil
}

func (s *fakeContactStore) AddSocialAccounts(ctx context.Context, accounts []models.ContactSocial) error {
	for _, a := range accounts {
		if c := s.byID(a.ContactID); c != nil {
			c.SocialAccounts = append(c.SocialAccounts, a)
		}
	}
	return nil
}

func (s *fakeContactStore) AddTags(ctx context.Context, tags []models.ContactTag) error {
	for _, t := range tags {
		if c := s.byID(t.ContactID); c != nil {
			c.Tags = append(c.Tags, t)
		}
	}
	return nil
}

type fakeBusinessStore struct {
	records []*models.Business
}

func (s *fakeBusinessStore) Create(ctx context.Context, business *models.Business) error {
	if business.ID == uuid.Nil {
		business.ID = uuid.New()
	}
	s.records = append(s.records, business)
	return nil
}

func (s *fakeBusinessStore) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*models.Business, error) {
	for _, b := range s.records {
		if b.ID == id && b.WorkspaceID == workspaceID {
			return b, nil
		}
	}
	return nil, nil
}

func (s *fakeBusinessStore) UpdateScalars(ctx context.Context, business *models.Business) error {
	for i, b := range s.records {
		if b.ID == business.ID {
			s.records[i] = business
			return nil
		}
	}
	return fmt.Errorf("business %s not found", business.ID)
}

func (s *fakeBusinessStore) SearchByName(ctx context.Context, workspaceID uuid.UUID, name string) ([]models.Business, error) {
	needle := strings.ToLower(name)
	var out []models.Business
	for _, b := range s.records {
		if b.WorkspaceID == workspaceID && strings.Contains(strings.ToLower(b.Name), needle) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *fakeBusinessStore) FindByNameFold(ctx context.Context, workspaceID uuid.UUID, name string) ([]models.Business, error) {
	var out []models.Business
	for _, b := range s.records {
		if b.WorkspaceID == workspaceID && strings.EqualFold(b.Name, name) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *fakeBusinessStore) FindByAnyPhone(ctx context.Context, workspaceID uuid.UUID, phones []string) ([]models.Business, error) {
	var out []models.Business
	for _, b := range s.records {
		if b.WorkspaceID != workspaceID {
			continue
		}
		for _, existing := range b.PhoneNumbers {
			for _, phone := range phones {
				if existing.PhoneNumber == phone {
					out = append(out, *b)
				}
			}
		}
	}
	return out, nil
}

func (s *fakeBusinessStore) byID(id uuid.UUID) *models.Business {
	for _, b := range s.records {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (s *fakeBusinessStore) AddEmails(ctx context.Context, emails []models.BusinessEmail) error {
	for _, e := range emails {
		if b := s.byID(e.BusinessID); b != nil {
			b.Emails = append(b.Emails, e)
		}
	}
	return nil
}

func (s *fakeBusinessStore) AddPhones(ctx context.Context, phones []models.BusinessPhone) error {
	for _, p := range phones {
		if b := s.byID(p.BusinessID); b != nil {
			b.PhoneNumbers = append(b.PhoneNumbers, p)
		}
	}
	return nil
}

func (s *fakeBusinessStore) AddAddresses(ctx context.Context, addresses []models.BusinessAddress) error {
	for _, a := range addresses {
		if b := s.byID(a.BusinessID); b != nil {
			b.Addresses = append(b.Addresses, a)
		}
	}
	return nil
}

func (s *fakeBusinessStore) AddSocialAccounts(ctx context.Context, accounts []models.BusinessSocial) error {
	for _, a := range accounts {
		if b := s.byID(a.BusinessID); b != nil {
			b.SocialAccounts = append(b.SocialAccounts, a)
		}
	}
	return nil
}

func (s *fakeBusinessStore) AddTags(ctx context.Context, tags []models.BusinessTag) error {
	for _, t := range tags {
		if b := s.byID(t.BusinessID); b != nil {
			b.Tags = append(b.Tags, t)
		}
	}
	return nil
}

type fakeDonationStore struct {
	records []*models.Donation
}

func (s *fakeDonationStore) Create(ctx context.Context, donation *models.Donation) error {
	if donation.ID == uuid.Nil {
		donation.ID = uuid.New()
	}
	s.records = append(s.records, donation)
	return nil
}

func (s *fakeDonationStore) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*models.Donation, error) {
	for _, d := range s.records {
		if d.ID == id && d.WorkspaceID == workspaceID {
			return d, nil
		}
	}
	return nil, nil
}

func (s *fakeDonationStore) UpdateScalars(ctx context.Context, donation *models.Donation) error {
	for i, d := range s.records {
		if d.ID == donation.ID {
			s.records[i] = donation
			return nil
		}
	}
	return fmt.Errorf("donation %s not found", donation.ID)
}

func (s *fakeDonationStore) FindMatching(ctx context.Context, workspaceID uuid.UUID, amountCents *int64, contactID, businessID *uuid.UUID) ([]models.Donation, error) {
	var out []models.Donation
	for _, d := range s.records {
		if d.WorkspaceID != workspaceID {
			continue
		}
		if amountCents != nil && d.AmountCents != *amountCents {
			continue
		}
		if contactID != nil && (d.ContactID == nil || *d.ContactID != *contactID) {
			continue
		}
		if businessID != nil && (d.BusinessID == nil || *d.BusinessID != *businessID) {
			continue
		}
		out = append(out, *d)
	}
	return out, nil
}

type fakeLookupStore struct {
	genders []models.Gender
	races   []models.Race
	states  []models.State
	zips    []models.ZipCode
}

func (s *fakeLookupStore) FindGenderByName(ctx context.Context, name string) (*models.Gender, error) {
	for i := range s.genders {
		if strings.EqualFold(s.genders[i].Name, name) {
			return &s.genders[i], nil
		}
	}
	return nil, nil
}

func (s *fakeLookupStore) FindRaceByName(ctx context.Context, name string) (*models.Race, error) {
	for i := range s.races {
		if strings.EqualFold(s.races[i].Name, name) {
			return &s.races[i], nil
		}
	}
	return nil, nil
}

func (s *fakeLookupStore) FindStateByNameOrAbbr(ctx context.Context, value string) (*models.State, error) {
	for i := range s.states {
		if strings.EqualFold(s.states[i].Name, value) || strings.EqualFold(s.states[i].Abbreviation, value) {
			return &s.states[i], nil
		}
	}
	return nil, nil
}

func (s *fakeLookupStore) FindZipCodeByName(ctx context.Context, name string) (*models.ZipCode, error) {
	for i := range s.zips {
		if s.zips[i].Name == name {
			return &s.zips[i], nil
		}
	}
	return nil, nil
}

func (s *fakeLookupStore) CreateZipCode(ctx context.Context, zip *models.ZipCode) error {
	if zip.ID == uuid.Nil {
		zip.ID = uuid.New()
	}
	s.zips = append(s.zips, *zip)
	return nil
}

type fakeSessionStore struct {
	sessions  map[uuid.UUID]*models.ImportSession
	rowErrors []models.ImportRowError

	// statusHook runs on every GetStatus call with the 1-based call
	// count, letting tests flip a session mid-batch
	statusHook  func(callCount int)
	statusCalls int
}

func (s *fakeSessionStore) Create(ctx context.Context, session *models.ImportSession) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	if session.Status == "" {
		session.Status = models.ImportStatusPending
	}
	s.sessions[session.ID] = session
	return nil
}

func (s *fakeSessionStore) Get(ctx context.Context, id uuid.UUID) (*models.ImportSession, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (s *fakeSessionStore) GetStatus(ctx context.Context, id uuid.UUID) (models.ImportStatus, error) {
	s.statusCalls++
	if s.statusHook != nil {
		s.statusHook(s.statusCalls)
	}
	session, ok := s.sessions[id]
	if !ok {
		return "", fmt.Errorf("session %s not found", id)
	}
	return session.Status, nil
}

func (s *fakeSessionStore) MarkProcessing(ctx context.Context, id uuid.UUID) error {
	session, ok := s.sessions[id]
	if !ok {
		return fmt.Errorf("session %s not found", id)
	}
	if session.Status == models.ImportStatusPending {
		session.Status = models.ImportStatusProcessing
		now := time.Now()
		session.StartedAt = &now
	}
	return nil
}

func (s *fakeSessionStore) ApplyProgress(ctx context.Context, id uuid.UUID, processedDelta, successDelta, failDelta int) (*models.ImportSession, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s not found", id)
	}
	session.ProcessedRecords += processedDelta
	session.SuccessfulRecords += successDelta
	session.FailedRecords += failDelta
	if session.Status == models.ImportStatusProcessing && session.ProcessedRecords >= session.TotalRecords {
		session.Status = models.ImportStatusCompleted
		now := time.Now()
		session.CompletedAt = &now
	}
	copied := *session
	return &copied, nil
}

func (s *fakeSessionStore) SetStatus(ctx context.Context, id uuid.UUID, status models.ImportStatus) error {
	session, ok := s.sessions[id]
	if !ok {
		return fmt.Errorf("session %s not found", id)
	}
	session.Status = status
	if status.Terminal() {
		now := time.Now()
		session.CompletedAt = &now
	}
	return nil
}

func (s *fakeSessionStore) SetSourceKey(ctx context.Context, id uuid.UUID, key string) error {
	session, ok := s.sessions[id]
	if !ok {
		return fmt.Errorf("session %s not found", id)
	}
	session.SourceKey = key
	return nil
}

func (s *fakeSessionStore) AddRowError(ctx context.Context, rowError *models.ImportRowError) error {
	s.rowErrors = append(s.rowErrors, *rowError)
	return nil
}

func (s *fakeSessionStore) ListErrors(ctx context.Context, sessionID uuid.UUID) ([]models.ImportRowError, error) {
	var out []models.ImportRowError
	for _, e := range s.rowErrors {
		if e.SessionID == sessionID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.sessions, id)
	return nil
}

func (s *fakeSessionStore) List(ctx context.Context, workspaceID uuid.UUID, page, limit int, status string) ([]models.ImportSession, int64, error) {
	var out []models.ImportSession
	for _, session := range s.sessions {
		if session.WorkspaceID != workspaceID {
			continue
		}
		if status != "" && string(session.Status) != status {
			continue
		}
		out = append(out, *session)
	}
	return out, int64(len(out)), nil
}
