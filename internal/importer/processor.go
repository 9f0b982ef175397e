package importer

import (
	"context"
	"fmt"

	"harborcrm/pkg/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// BatchProcessor runs import batches against a session. Callers submit
// successive batches until the session completes; batches for one
// session must be submitted sequentially because progress counters are
// read-then-written.
type BatchProcessor struct {
	stores   Stores
	detector *DuplicateDetector
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(stores Stores) *BatchProcessor {
	return &BatchProcessor{
		stores:   stores,
		detector: NewDuplicateDetector(stores),
	}
}

// ProcessBatch maps, validates, and writes one batch of rows for a
// session. Row-level failures never abort the batch: each failed row
// is recorded and processing continues. Only pre-loop invariant
// violations (unknown session, unknown entity type, finished session)
// propagate as errors.
func (p *BatchProcessor) ProcessBatch(ctx context.Context, sessionID uuid.UUID, rows []map[string]any, startIndex int, validateOnly bool) (*models.BatchResult, error) {
	session, err := p.stores.Sessions().Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("import session %s not found", sessionID)
	}

	cfg, ok := ConfigFor(session.EntityType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntityType, session.EntityType)
	}

	if session.Status.Terminal() {
		return nil, fmt.Errorf("%w: session %s is %s", ErrSessionFinished, sessionID, session.Status)
	}

	if !validateOnly {
		if err := p.stores.Sessions().MarkProcessing(ctx, sessionID); err != nil {
			return nil, fmt.Errorf("mark session processing: %w", err)
		}
	}

	mapping := session.FieldMappingStrings()
	result := &models.BatchResult{Errors: []models.BatchRowError{}}

	for i, raw := range rows {
		// Cooperative cancellation: checked once per row, never mid-row.
		// Rows committed before the check stay committed.
		status, err := p.stores.Sessions().GetStatus(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("check session status: %w", err)
		}
		if status == models.ImportStatusCancelled || status == models.ImportStatusFailed {
			log.Info().
				Str("session_id", sessionID.String()).
				Int("row", startIndex+i+1).
				Str("status", string(status)).
				Msg("import batch stopped early")
			break
		}

		rowNumber := startIndex + i + 1
		mapped := MapRow(raw, mapping)

		if validateOnly {
			p.validateRow(ctx, session, cfg, mapped, rowNumber, result)
			continue
		}

		if err := p.writeRow(ctx, session, cfg, mapped); err != nil {
			result.Failed++
			kind, field, message := classifyRowError(err)
			result.Errors = append(result.Errors, models.BatchRowError{
				RowNumber: rowNumber,
				Field:     field,
				Kind:      kind,
				Message:   message,
				RowData:   mapped,
			})
			p.recordRowError(ctx, sessionID, rowNumber, field, kind, message, mapped)
			continue
		}
		result.Successful++
	}

	// processedRecords advances by the full batch size even when
	// cancellation stopped the loop early: it counts rows attempted.
	// Validate-only batches leave the persisted counters and status
	// untouched so a dry run can precede the real import on the same
	// session.
	updated := session
	if !validateOnly {
		updated, err = p.stores.Sessions().ApplyProgress(ctx, sessionID, len(rows), result.Successful, result.Failed)
		if err != nil {
			return nil, fmt.Errorf("update session progress: %w", err)
		}
	}

	log.Info().
		Str("session_id", sessionID.String()).
		Str("entity_type", string(session.EntityType)).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Int("processed", updated.ProcessedRecords).
		Int("total", updated.TotalRecords).
		Str("status", string(updated.Status)).
		Bool("validate_only", validateOnly).
		Msg("import batch processed")

	return result, nil
}

// validateRow handles the validate-only path: declared rules plus
// entity-specific soft checks that warn without failing the row
func (p *BatchProcessor) validateRow(ctx context.Context, session *models.ImportSession, cfg *ImportConfig, row map[string]string, rowNumber int, result *models.BatchResult) {
	failures := ValidateRow(row, cfg)
	if len(failures) > 0 {
		result.Failed++
		result.Errors = append(result.Errors, models.BatchRowError{
			RowNumber: rowNumber,
			Field:     failures[0].Field,
			Kind:      models.ImportErrorValidation,
			Message:   JoinFailures(failures),
			RowData:   row,
		})
		return
	}
	result.Successful++

	result.Warnings = append(result.Warnings, p.softChecks(ctx, session, row, rowNumber)...)

	if session.ImportMode == models.ImportModeUpdateOrCreate && session.DuplicateField != "" || session.EntityType == models.EntityTypeDonations {
		candidates, err := p.detector.FindDuplicates(ctx, session.EntityType, row, session.WorkspaceID, session.DuplicateField)
		if err != nil {
			log.Warn().Err(err).Str("session_id", session.ID.String()).Int("row", rowNumber).Msg("duplicate lookup failed during validation")
			return
		}
		matchFields := []string{session.DuplicateField}
		if session.EntityType == models.EntityTypeDonations {
			matchFields = []string{"amount", "contactId", "businessId"}
		}
		for _, candidate := range candidates {
			score := CalculateDuplicateScore(row, candidate.Fields, matchFields)
			result.Warnings = append(result.Warnings, models.BatchRowWarning{
				RowNumber: rowNumber,
				Field:     session.DuplicateField,
				Message:   fmt.Sprintf("possible duplicate of %q (%.0f%% match)", candidate.Label, score),
			})
		}
	}
}

// softChecks surface reference-lookup misses and donor-resolution
// problems before a real import commits
func (p *BatchProcessor) softChecks(ctx context.Context, session *models.ImportSession, row map[string]string, rowNumber int) []models.BatchRowWarning {
	var warnings []models.BatchRowWarning
	warn := func(field, message string) {
		warnings = append(warnings, models.BatchRowWarning{RowNumber: rowNumber, Field: field, Message: message})
	}

	switch session.EntityType {
	case models.EntityTypeContacts:
		if name := row["gender"]; name != "" {
			if gender, err := p.stores.Lookups().FindGenderByName(ctx, name); err == nil && gender == nil {
				warn("gender", fmt.Sprintf("gender %q not found; it will be skipped", name))
			}
		}
		if name := row["race"]; name != "" {
			if race, err := p.stores.Lookups().FindRaceByName(ctx, name); err == nil && race == nil {
				warn("race", fmt.Sprintf("race %q not found; it will be skipped", name))
			}
		}
		if value := row["state"]; value != "" {
			if state, err := p.stores.Lookups().FindStateByNameOrAbbr(ctx, value); err == nil && state == nil {
				warn("state", fmt.Sprintf("state %q not found; addresses will be created without a state", value))
			}
		}
	case models.EntityTypeBusinesses:
		if value := row["state"]; value != "" {
			if state, err := p.stores.Lookups().FindStateByNameOrAbbr(ctx, value); err == nil && state == nil {
				warn("state", fmt.Sprintf("state %q not found; addresses will be created without a state", value))
			}
		}
	case models.EntityTypeDonations:
		if _, _, err := p.resolveDonor(ctx, p.stores, session.WorkspaceID, row); err != nil {
			_, field, message := classifyRowError(err)
			warn(field, message)
		}
	}

	return warnings
}

// writeRow validates then writes one row inside its own transaction so
// a failed row rolls back alone while prior rows stay committed
func (p *BatchProcessor) writeRow(ctx context.Context, session *models.ImportSession, cfg *ImportConfig, row map[string]string) error {
	if failures := ValidateRow(row, cfg); len(failures) > 0 {
		return &RowError{
			Kind:    models.ImportErrorValidation,
			Field:   failures[0].Field,
			Message: JoinFailures(failures),
		}
	}

	var target *uuid.UUID
	if session.ImportMode == models.ImportModeUpdateOrCreate {
		candidates, err := p.detector.FindDuplicates(ctx, session.EntityType, row, session.WorkspaceID, session.DuplicateField)
		if err != nil {
			return err
		}
		if len(candidates) > 0 {
			// Multiple matches update the first one
			target = &candidates[0].ID
		}
	}

	return p.stores.Transact(ctx, func(s Stores) error {
		if target != nil {
			return p.updateEntity(ctx, s, session, *target, row)
		}
		return p.createEntity(ctx, s, session, row)
	})
}

func (p *BatchProcessor) createEntity(ctx context.Context, s Stores, session *models.ImportSession, row map[string]string) error {
	switch session.EntityType {
	case models.EntityTypeContacts:
		return p.createContact(ctx, s, session.WorkspaceID, row)
	case models.EntityTypeBusinesses:
		return p.createBusiness(ctx, s, session.WorkspaceID, row)
	case models.EntityTypeDonations:
		return p.createDonation(ctx, s, session.WorkspaceID, row)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEntityType, session.EntityType)
	}
}

func (p *BatchProcessor) updateEntity(ctx context.Context, s Stores, session *models.ImportSession, target uuid.UUID, row map[string]string) error {
	switch session.EntityType {
	case models.EntityTypeContacts:
		return p.updateContact(ctx, s, session.WorkspaceID, target, row)
	case models.EntityTypeBusinesses:
		return p.updateBusiness(ctx, s, session.WorkspaceID, target, row)
	case models.EntityTypeDonations:
		return p.updateDonation(ctx, s, session.WorkspaceID, target, row)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEntityType, session.EntityType)
	}
}

// recordRowError persists an ImportRowError best-effort: a failure to
// write the error log never fails the row a second time
func (p *BatchProcessor) recordRowError(ctx context.Context, sessionID uuid.UUID, rowNumber int, field string, kind models.ImportErrorKind, message string, row map[string]string) {
	rowData := make(map[string]any, len(row))
	for k, v := range row {
		rowData[k] = v
	}
	rowError := &models.ImportRowError{
		SessionID: sessionID,
		RowNumber: rowNumber,
		Field:     field,
		Kind:      kind,
		Message:   message,
		RowData:   rowData,
	}
	if err := p.stores.Sessions().AddRowError(ctx, rowError); err != nil {
		log.Error().Err(err).
			Str("session_id", sessionID.String()).
			Int("row", rowNumber).
			Msg("failed to persist import row error")
	}
}
