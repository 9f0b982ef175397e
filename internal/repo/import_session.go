package repo

import (
	"context"
	"errors"
	"time"

	"harborcrm/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImportSessionRepository handles import session persistence
type ImportSessionRepository struct {
	db *gorm.DB
}

// NewImportSessionRepository creates a new import session repository
func NewImportSessionRepository(db *gorm.DB) *ImportSessionRepository {
	return &ImportSessionRepository{db: db}
}

// Create creates an import session
func (r *ImportSessionRepository) Create(ctx context.Context, session *models.ImportSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// Get gets a session by id. Returns (nil, nil) when no session matches.
func (r *ImportSessionRepository) Get(ctx context.Context, id uuid.UUID) (*models.ImportSession, error) {
	var session models.ImportSession
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetStatus re-reads only the session status, used for the per-row
// cancellation check
func (r *ImportSessionRepository) GetStatus(ctx context.Context, id uuid.UUID) (models.ImportStatus, error) {
	var status models.ImportStatus
	err := r.db.WithContext(ctx).
		Model(&models.ImportSession{}).
		Where("id = ?", id).
		Pluck("status", &status).Error
	return status, err
}

// MarkProcessing transitions a pending session to processing and
// stamps its start time; a session already processing is left alone
func (r *ImportSessionRepository) MarkProcessing(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.ImportSession{}).
		Where("id = ? AND status = ?", id, models.ImportStatusPending).
		Updates(map[string]interface{}{
			"status":     models.ImportStatusProcessing,
			"started_at": &now,
		}).Error
}

// ApplyProgress adds a batch's counts to the session's running totals
// and transitions processing sessions to completed once processed
// reaches total. It is the single writer of the progress counters.
func (r *ImportSessionRepository) ApplyProgress(ctx context.Context, id uuid.UUID, processedDelta, successDelta, failDelta int) (*models.ImportSession, error) {
	session, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, gorm.ErrRecordNotFound
	}

	session.ProcessedRecords += processedDelta
	session.SuccessfulRecords += successDelta
	session.FailedRecords += failDelta

	updates := map[string]interface{}{
		"processed_records":  session.ProcessedRecords,
		"successful_records": session.SuccessfulRecords,
		"failed_records":     session.FailedRecords,
		"updated_at":         time.Now(),
	}

	if session.Status == models.ImportStatusProcessing && session.ProcessedRecords >= session.TotalRecords {
		now := time.Now()
		session.Status = models.ImportStatusCompleted
		session.CompletedAt = &now
		updates["status"] = session.Status
		updates["completed_at"] = session.CompletedAt
	}

	err = r.db.WithContext(ctx).
		Model(&models.ImportSession{}).
		Where("id = ?", id).
		Updates(updates).Error
	if err != nil {
		return nil, err
	}
	return session, nil
}

// SetStatus forces a session status, stamping completion time for
// terminal states
func (r *ImportSessionRepository) SetStatus(ctx context.Context, id uuid.UUID, status models.ImportStatus) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if status.Terminal() {
		now := time.Now()
		updates["completed_at"] = &now
	}
	return r.db.WithContext(ctx).
		Model(&models.ImportSession{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// SetSourceKey records the archived source-file object key on a
// session. The key is written after the upload succeeds so sessions
// created without an archive keep an empty key.
func (r *ImportSessionRepository) SetSourceKey(ctx context.Context, id uuid.UUID, key string) error {
	return r.db.WithContext(ctx).
		Model(&models.ImportSession{}).
		Where("id = ?", id).
		Update("source_key", key).Error
}

// AddRowError persists one row error
func (r *ImportSessionRepository) AddRowError(ctx context.Context, rowError *models.ImportRowError) error {
	return r.db.WithContext(ctx).Create(rowError).Error
}

// ListErrors returns the full error log for a session in row order
func (r *ImportSessionRepository) ListErrors(ctx context.Context, sessionID uuid.UUID) ([]models.ImportRowError, error) {
	var rowErrors []models.ImportRowError
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("row_number").
		Find(&rowErrors).Error
	return rowErrors, err
}

// Delete removes a session and cascades its error log
func (r *ImportSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&models.ImportRowError{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.ImportSession{}).Error
	})
}

// List returns a page of sessions for a workspace, optionally filtered
// by status
func (r *ImportSessionRepository) List(ctx context.Context, workspaceID uuid.UUID, page, limit int, status string) ([]models.ImportSession, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.ImportSession{}).
		Where("workspace_id = ?", workspaceID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sessions []models.ImportSession
	offset := (page - 1) * limit
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&sessions).Error
	return sessions, total, err
}
