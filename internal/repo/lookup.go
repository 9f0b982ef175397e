package repo

import (
	"context"
	"errors"

	"harborcrm/pkg/models"

	"gorm.io/gorm"
)

// LookupRepository resolves global reference values
type LookupRepository struct {
	db *gorm.DB
}

// NewLookupRepository creates a new lookup repository
func NewLookupRepository(db *gorm.DB) *LookupRepository {
	return &LookupRepository{db: db}
}

// FindGenderByName finds a gender by case-insensitive exact name
func (r *LookupRepository) FindGenderByName(ctx context.Context, name string) (*models.Gender, error) {
	var gender models.Gender
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&gender).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &gender, nil
}

// FindRaceByName finds a race by case-insensitive exact name
func (r *LookupRepository) FindRaceByName(ctx context.Context, name string) (*models.Race, error) {
	var race models.Race
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&race).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &race, nil
}

// FindStateByNameOrAbbr finds a state by name or two-letter abbreviation
func (r *LookupRepository) FindStateByNameOrAbbr(ctx context.Context, value string) (*models.State, error) {
	var state models.State
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?) OR LOWER(abbreviation) = LOWER(?)", value, value).
		First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// FindZipCodeByName finds a zip code by exact name
func (r *LookupRepository) FindZipCodeByName(ctx context.Context, name string) (*models.ZipCode, error) {
	var zip models.ZipCode
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&zip).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &zip, nil
}

// CreateZipCode creates a zip code; zip codes are global, not
// workspace-scoped
func (r *LookupRepository) CreateZipCode(ctx context.Context, zip *models.ZipCode) error {
	return r.db.WithContext(ctx).Create(zip).Error
}
