package repo

import (
	"context"
	"errors"

	"harborcrm/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BusinessRepository handles business data access
type BusinessRepository struct {
	db *gorm.DB
}

// NewBusinessRepository creates a new business repository
func NewBusinessRepository(db *gorm.DB) *BusinessRepository {
	return &BusinessRepository{db: db}
}

// Create creates a business along with any attached related records
func (r *BusinessRepository) Create(ctx context.Context, business *models.Business) error {
	return r.db.WithContext(ctx).Create(business).Error
}

// GetByID gets a business with its related records preloaded. Returns
// (nil, nil) when no business matches.
func (r *BusinessRepository) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*models.Business, error) {
	var business models.Business
	err := r.db.WithContext(ctx).
		Preload("Emails").
		Preload("PhoneNumbers").
		Preload("Addresses").
		Preload("SocialAccounts").
		Preload("Tags").
		Preload("Employees").
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		First(&business).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &business, nil
}

// UpdateScalars updates the business row without touching related tables
func (r *BusinessRepository) UpdateScalars(ctx context.Context, business *models.Business) error {
	return r.db.WithContext(ctx).Model(&models.Business{}).
		Where("id = ?", business.ID).
		Updates(map[string]interface{}{
			"name":    business.Name,
			"website": business.Website,
			"status":  business.Status,
			"notes":   business.Notes,
		}).Error
}

// SearchByName finds businesses by case-insensitive substring match
func (r *BusinessRepository) SearchByName(ctx context.Context, workspaceID uuid.UUID, name string) ([]models.Business, error) {
	var businesses []models.Business
	err := r.db.WithContext(ctx).
		Preload("PhoneNumbers").
		Where("workspace_id = ? AND name ILIKE ?", workspaceID, "%"+name+"%").
		Find(&businesses).Error
	return businesses, err
}

// FindByNameFold finds businesses by case-insensitive exact name match
func (r *BusinessRepository) FindByNameFold(ctx context.Context, workspaceID uuid.UUID, name string) ([]models.Business, error) {
	var businesses []models.Business
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND LOWER(name) = LOWER(?)", workspaceID, name).
		Find(&businesses).Error
	return businesses, err
}

// FindByAnyPhone finds businesses having any of the given phone
// numbers, via the business phone records
func (r *BusinessRepository) FindByAnyPhone(ctx context.Context, workspaceID uuid.UUID, phones []string) ([]models.Business, error) {
	if len(phones) == 0 {
		return nil, nil
	}
	var businesses []models.Business
	err := r.db.WithContext(ctx).
		Preload("PhoneNumbers").
		Where("workspace_id = ?", workspaceID).
		Where("id IN (?)", r.db.Table("business_phones").Select("business_id").Where("phone_number IN ?", phones)).
		Find(&businesses).Error
	return businesses, err
}

// AddEmails appends email records to businesses
func (r *BusinessRepository) AddEmails(ctx context.Context, emails []models.BusinessEmail) error {
	return r.db.WithContext(ctx).Create(&emails).Error
}

// AddPhones appends phone records to businesses
func (r *BusinessRepository) AddPhones(ctx context.Context, phones []models.BusinessPhone) error {
	return r.db.WithContext(ctx).Create(&phones).Error
}

// AddAddresses appends address records to businesses
func (r *BusinessRepository) AddAddresses(ctx context.Context, addresses []models.BusinessAddress) error {
	return r.db.WithContext(ctx).Create(&addresses).Error
}

// AddSocialAccounts appends social account records to businesses
func (r *BusinessRepository) AddSocialAccounts(ctx context.Context, accounts []models.BusinessSocial) error {
	return r.db.WithContext(ctx).Create(&accounts).Error
}

// AddTags appends tag records to businesses
func (r *BusinessRepository) AddTags(ctx context.Context, tags []models.BusinessTag) error {
	return r.db.WithContext(ctx).Create(&tags).Error
}

// List returns a page of businesses for a workspace
func (r *BusinessRepository) List(ctx context.Context, workspaceID uuid.UUID, page, limit int) ([]models.Business, int64, error) {
	var businesses []models.Business
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Business{}).Where("workspace_id = ?", workspaceID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.
		Preload("Emails").
		Preload("PhoneNumbers").
		Order("name").
		Offset(offset).Limit(limit).
		Find(&businesses).Error
	return businesses, total, err
}
