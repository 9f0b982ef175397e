package importer

import (
	"errors"
	"fmt"

	"harborcrm/pkg/models"
)

// ErrSessionFinished is returned when a batch is submitted against a
// session already in a terminal state.
var ErrSessionFinished = errors.New("import session already finished")

// ErrUnknownEntityType is returned when a session references an entity
// type with no registered config.
var ErrUnknownEntityType = errors.New("unknown entity type")

// RowError is a row-scoped import failure carrying its classification.
// Any other error raised while writing a row is treated as a
// processing error.
type RowError struct {
	Kind    models.ImportErrorKind
	Field   string
	Message string
}

func (e *RowError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func newValidationError(field, message string) *RowError {
	return &RowError{Kind: models.ImportErrorValidation, Field: field, Message: message}
}

func newProcessingError(field, message string) *RowError {
	return &RowError{Kind: models.ImportErrorProcessing, Field: field, Message: message}
}

// classifyRowError maps any error from the row write path onto the
// import error taxonomy
func classifyRowError(err error) (models.ImportErrorKind, string, string) {
	var rowErr *RowError
	if errors.As(err, &rowErr) {
		return rowErr.Kind, rowErr.Field, rowErr.Message
	}
	return models.ImportErrorProcessing, "", err.Error()
}
