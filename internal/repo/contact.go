package repo

import (
	"context"
	"errors"

	"harborcrm/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactRepository handles contact data access
type ContactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create creates a contact along with any attached related records
func (r *ContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

// GetByID gets a contact with its related records preloaded. Returns
// (nil, nil) when no contact matches.
func (r *ContactRepository) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.WithContext(ctx).
		Preload("Emails").
		Preload("PhoneNumbers").
		Preload("Addresses").
		Preload("SocialAccounts").
		Preload("Tags").
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		First(&contact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// UpdateScalars updates the contact row without touching related tables
func (r *ContactRepository) UpdateScalars(ctx context.Context, contact *models.Contact) error {
	return r.db.WithContext(ctx).Model(&models.Contact{}).
		Where("id = ?", contact.ID).
		Updates(map[string]interface{}{
			"first_name":  contact.FirstName,
			"middle_name": contact.MiddleName,
			"last_name":   contact.LastName,
			"pronouns":    contact.Pronouns,
			"vanid":       contact.VanID,
			"gender_id":   contact.GenderID,
			"race_id":     contact.RaceID,
			"status":      contact.Status,
			"notes":       contact.Notes,
		}).Error
}

// FindByAnyEmail finds contacts having any of the given emails.
// Matching is exact and case-sensitive against the stored value.
func (r *ContactRepository) FindByAnyEmail(ctx context.Context, workspaceID uuid.UUID, emails []string) ([]models.Contact, error) {
	if len(emails) == 0 {
		return nil, nil
	}
	return r.findByRelatedValues(ctx, workspaceID, "contact_emails", "email", emails)
}

// FindByAnyPhone finds contacts having any of the given phone numbers
func (r *ContactRepository) FindByAnyPhone(ctx context.Context, workspaceID uuid.UUID, phones []string) ([]models.Contact, error) {
	if len(phones) == 0 {
		return nil, nil
	}
	return r.findByRelatedValues(ctx, workspaceID, "contact_phones", "phone_number", phones)
}

func (r *ContactRepository) findByRelatedValues(ctx context.Context, workspaceID uuid.UUID, table, column string, values []string) ([]models.Contact, error) {
	var contacts []models.Contact
	err := r.db.WithContext(ctx).
		Preload("Emails").
		Preload("PhoneNumbers").
		Preload("Addresses").
		Preload("SocialAccounts").
		Preload("Tags").
		Where("workspace_id = ?", workspaceID).
		Where("id IN (?)", r.db.Table(table).Select("contact_id").Where(column+" IN ?", values)).
		Find(&contacts).Error
	return contacts, err
}

// FindByVanID finds contacts by exact VAN identifier
func (r *ContactRepository) FindByVanID(ctx context.Context, workspaceID uuid.UUID, vanid string) ([]models.Contact, error) {
	var contacts []models.Contact
	err := r.db.WithContext(ctx).
		Preload("Emails").
		Preload("PhoneNumbers").
		Where("workspace_id = ? AND vanid = ?", workspaceID, vanid).
		Find(&contacts).Error
	return contacts, err
}

// SearchByName finds contacts by case-insensitive substring match on
// the given name field; any other field searches both name columns
func (r *ContactRepository) SearchByName(ctx context.Context, workspaceID uuid.UUID, field, value string) ([]models.Contact, error) {
	pattern := "%" + value + "%"
	query := r.db.WithContext(ctx).
		Preload("Emails").
		Preload("PhoneNumbers").
		Where("workspace_id = ?", workspaceID)

	switch field {
	case "firstName":
		query = query.Where("first_name ILIKE ?", pattern)
	case "lastName":
		query = query.Where("last_name ILIKE ?", pattern)
	default:
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ?", pattern, pattern)
	}

	var contacts []models.Contact
	err := query.Find(&contacts).Error
	return contacts, err
}

// AddEmails appends email records to contacts
func (r *ContactRepository) AddEmails(ctx context.Context, emails []models.ContactEmail) error {
	return r.db.WithContext(ctx).Create(&emails).Error
}

// AddPhones appends phone records to contacts
func (r *ContactRepository) AddPhones(ctx context.Context, phones []models.ContactPhone) error {
	return r.db.WithContext(ctx).Create(&phones).Error
}

// AddAddresses appends address records to contacts
func (r *ContactRepository) AddAddresses(ctx context.Context, addresses []models.ContactAddress) error {
	return r.db.WithContext(ctx).Create(&addresses).Error
}

// AddSocialAccounts appends social account records to contacts
func (r *ContactRepository) AddSocialAccounts(ctx context.Context, accounts []models.ContactSocial) error {
	return r.db.WithContext(ctx).Create(&accounts).Error
}

// AddTags appends tag records to contacts
func (r *ContactRepository) AddTags(ctx context.Context, tags []models.ContactTag) error {
	return r.db.WithContext(ctx).Create(&tags).Error
}

// List returns a page of contacts for a workspace
func (r *ContactRepository) List(ctx context.Context, workspaceID uuid.UUID, page, limit int) ([]models.Contact, int64, error) {
	var contacts []models.Contact
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Contact{}).Where("workspace_id = ?", workspaceID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.
		Preload("Emails").
		Preload("PhoneNumbers").
		Order("last_name, first_name").
		Offset(offset).Limit(limit).
		Find(&contacts).Error
	return contacts, total, err
}
