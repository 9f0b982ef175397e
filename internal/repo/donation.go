package repo

import (
	"context"
	"errors"

	"harborcrm/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DonationRepository handles donation data access
type DonationRepository struct {
	db *gorm.DB
}

// NewDonationRepository creates a new donation repository
func NewDonationRepository(db *gorm.DB) *DonationRepository {
	return &DonationRepository{db: db}
}

// Create creates a donation
func (r *DonationRepository) Create(ctx context.Context, donation *models.Donation) error {
	return r.db.WithContext(ctx).Create(donation).Error
}

// GetByID gets a donation. Returns (nil, nil) when no donation matches.
func (r *DonationRepository) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*models.Donation, error) {
	var donation models.Donation
	err := r.db.WithContext(ctx).
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		First(&donation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &donation, nil
}

// UpdateScalars updates the donation row
func (r *DonationRepository) UpdateScalars(ctx context.Context, donation *models.Donation) error {
	return r.db.WithContext(ctx).Model(&models.Donation{}).
		Where("id = ?", donation.ID).
		Updates(map[string]interface{}{
			"amount_cents":  donation.AmountCents,
			"donation_date": donation.DonationDate,
			"method":        donation.Method,
			"status":        donation.Status,
			"notes":         donation.Notes,
		}).Error
}

// FindMatching intersects whichever of amount/contact/business are
// present, scoped to the workspace
func (r *DonationRepository) FindMatching(ctx context.Context, workspaceID uuid.UUID, amountCents *int64, contactID, businessID *uuid.UUID) ([]models.Donation, error) {
	query := r.db.WithContext(ctx).Where("workspace_id = ?", workspaceID)
	if amountCents != nil {
		query = query.Where("amount_cents = ?", *amountCents)
	}
	if contactID != nil {
		query = query.Where("contact_id = ?", *contactID)
	}
	if businessID != nil {
		query = query.Where("business_id = ?", *businessID)
	}

	var donations []models.Donation
	err := query.Find(&donations).Error
	return donations, err
}

// List returns a page of donations for a workspace
func (r *DonationRepository) List(ctx context.Context, workspaceID uuid.UUID, page, limit int) ([]models.Donation, int64, error) {
	var donations []models.Donation
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Donation{}).Where("workspace_id = ?", workspaceID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.
		Preload("Contact").
		Preload("Business").
		Order("donation_date DESC NULLS LAST, created_at DESC").
		Offset(offset).Limit(limit).
		Find(&donations).Error
	return donations, total, err
}
