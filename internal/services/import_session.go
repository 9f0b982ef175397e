package services

import (
	"context"
	"fmt"

	"harborcrm/internal/importer"
	"harborcrm/pkg/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// ImportArchive is the part of the storage service the session
// lifecycle touches, the removal of archived source files.
type ImportArchive interface {
	DeleteImportFile(key string) error
}

// ImportSessionService owns the import session lifecycle outside of
// batch processing: creation, progress reads, cancellation, deletion.
type ImportSessionService struct {
	sessions importer.SessionStore
	storage  ImportArchive
}

// NewImportSessionService creates a new import session service.
// storage may be nil when S3 archiving is not configured.
func NewImportSessionService(sessions importer.SessionStore, storage ImportArchive) *ImportSessionService {
	return &ImportSessionService{sessions: sessions, storage: storage}
}

// CreateSessionRequest carries the session parameters supplied by the client
type CreateSessionRequest struct {
	EntityType     models.EntityType `json:"entity_type" validate:"required"`
	FileName       string            `json:"file_name" validate:"required"`
	TotalRecords   int               `json:"total_records" validate:"gte=0"`
	ImportMode     models.ImportMode `json:"import_mode"`
	DuplicateField string            `json:"duplicate_field"`
	FieldMapping   map[string]string `json:"field_mapping"`
	SourceKey      string            `json:"-"`
}

// CreateSession validates the request against the configuration
// registry and persists a new pending session
func (s *ImportSessionService) CreateSession(ctx context.Context, workspaceID, userID uuid.UUID, req CreateSessionRequest) (*models.ImportSession, error) {
	cfg, ok := importer.ConfigFor(req.EntityType)
	if !ok {
		return nil, fmt.Errorf("unknown entity type: %s", req.EntityType)
	}

	mode := req.ImportMode
	if mode == "" {
		mode = models.ImportModeCreateOnly
	}
	if mode != models.ImportModeCreateOnly && mode != models.ImportModeUpdateOrCreate {
		return nil, fmt.Errorf("unknown import mode: %s", mode)
	}

	if mode == models.ImportModeUpdateOrCreate && req.DuplicateField != "" {
		known := false
		for _, field := range cfg.DuplicateFields {
			if field == req.DuplicateField {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("field %q cannot be used for duplicate matching on %s", req.DuplicateField, req.EntityType)
		}
	}

	mapping := make(datatypes.JSONMap, len(req.FieldMapping))
	for source, target := range req.FieldMapping {
		mapping[source] = target
	}

	session := &models.ImportSession{
		EntityType:     req.EntityType,
		FileName:       req.FileName,
		SourceKey:      req.SourceKey,
		TotalRecords:   req.TotalRecords,
		ImportMode:     mode,
		DuplicateField: req.DuplicateField,
		FieldMapping:   mapping,
		Status:         models.ImportStatusPending,
		CreatedBy:      userID,
	}
	session.WorkspaceID = workspaceID

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create import session: %w", err)
	}

	log.Info().
		Str("session_id", session.ID.String()).
		Str("workspace_id", workspaceID.String()).
		Str("entity_type", string(req.EntityType)).
		Int("total_records", req.TotalRecords).
		Msg("Import session created")

	return session, nil
}

// GetSession returns a session scoped to the workspace, or nil when
// it does not exist
func (s *ImportSessionService) GetSession(ctx context.Context, workspaceID, id uuid.UUID) (*models.ImportSession, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil || session.WorkspaceID != workspaceID {
		return nil, nil
	}
	return session, nil
}

// AttachSource persists the archived source-file key on a session so
// the original CSV can be re-downloaded and cleaned up later
func (s *ImportSessionService) AttachSource(ctx context.Context, workspaceID, id uuid.UUID, key string) error {
	session, err := s.GetSession(ctx, workspaceID, id)
	if err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("import session %s not found", id)
	}
	return s.sessions.SetSourceKey(ctx, id, key)
}

// GetProgress composes the polling summary from the session row and
// its error log
func (s *ImportSessionService) GetProgress(ctx context.Context, workspaceID, id uuid.UUID) (*models.ImportProgress, error) {
	session, err := s.GetSession(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	rowErrors, err := s.sessions.ListErrors(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load session errors: %w", err)
	}

	return &models.ImportProgress{
		SessionID:         session.ID,
		EntityType:        session.EntityType,
		Status:            session.Status,
		TotalRecords:      session.TotalRecords,
		ProcessedRecords:  session.ProcessedRecords,
		SuccessfulRecords: session.SuccessfulRecords,
		FailedRecords:     session.FailedRecords,
		Progress:          session.CalculateProgress(),
		Message:           progressMessage(session),
		Errors:            rowErrors,
	}, nil
}

// Cancel moves a non-terminal session to cancelled. Cancelling an
// already terminal session is rejected.
func (s *ImportSessionService) Cancel(ctx context.Context, workspaceID, id uuid.UUID) (*models.ImportSession, error) {
	session, err := s.GetSession(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	if session.Status.Terminal() {
		return nil, fmt.Errorf("session already %s", session.Status)
	}

	if err := s.sessions.SetStatus(ctx, id, models.ImportStatusCancelled); err != nil {
		return nil, fmt.Errorf("failed to cancel session: %w", err)
	}

	log.Info().
		Str("session_id", id.String()).
		Int("processed", session.ProcessedRecords).
		Msg("Import session cancelled")

	session.Status = models.ImportStatusCancelled
	return session, nil
}

// Delete removes the session and its error log. The archived source
// file is removed best-effort.
func (s *ImportSessionService) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	session, err := s.GetSession(ctx, workspaceID, id)
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}

	if err := s.sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	if s.storage != nil && session.SourceKey != "" {
		if err := s.storage.DeleteImportFile(session.SourceKey); err != nil {
			log.Warn().Err(err).
				Str("session_id", id.String()).
				Str("source_key", session.SourceKey).
				Msg("Failed to delete archived import file")
		}
	}

	return nil
}

// List returns workspace sessions newest first with an optional
// status filter
func (s *ImportSessionService) List(ctx context.Context, workspaceID uuid.UUID, page, limit int, status string) (*models.PaginationResult[models.ImportSession], error) {
	sessions, total, err := s.sessions.List(ctx, workspaceID, page, limit, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return &models.PaginationResult[models.ImportSession]{
		Data:       sessions,
		Total:      total,
		Page:       page,
		PerPage:    limit,
		TotalPages: totalPages,
	}, nil
}

func progressMessage(session *models.ImportSession) string {
	switch session.Status {
	case models.ImportStatusPending:
		return "Waiting for the first batch"
	case models.ImportStatusProcessing:
		return fmt.Sprintf("Processed %d of %d records", session.ProcessedRecords, session.TotalRecords)
	case models.ImportStatusCompleted:
		return fmt.Sprintf("Import complete: %d succeeded, %d failed", session.SuccessfulRecords, session.FailedRecords)
	case models.ImportStatusFailed:
		return "Import failed"
	case models.ImportStatusCancelled:
		return fmt.Sprintf("Import cancelled after %d records", session.ProcessedRecords)
	default:
		return ""
	}
}
