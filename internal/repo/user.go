package repo

import (
	"harborcrm/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository handles user data access
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create creates a new user
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update updates a user
func (r *UserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// GetMembership returns the caller's membership in a workspace, or
// gorm.ErrRecordNotFound if they are not a member
func (r *UserRepository) GetMembership(userID, workspaceID uuid.UUID) (*models.WorkspaceMember, error) {
	var member models.WorkspaceMember
	err := r.db.Where("user_id = ? AND workspace_id = ?", userID, workspaceID).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}
