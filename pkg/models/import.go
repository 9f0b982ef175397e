package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EntityType identifies the kind of record an import session targets
type EntityType string

const (
	EntityTypeContacts   EntityType = "contacts"
	EntityTypeBusinesses EntityType = "businesses"
	EntityTypeDonations  EntityType = "donations"
)

// ImportMode controls create-vs-update behavior for each row
type ImportMode string

const (
	ImportModeCreateOnly     ImportMode = "create_only"
	ImportModeUpdateOrCreate ImportMode = "update_or_create"
)

// ImportStatus is the lifecycle state of an import session.
// Cancellation is a distinct terminal state, not a flavor of failure.
type ImportStatus string

const (
	ImportStatusPending    ImportStatus = "pending"
	ImportStatusProcessing ImportStatus = "processing"
	ImportStatusCompleted  ImportStatus = "completed"
	ImportStatusFailed     ImportStatus = "failed"
	ImportStatusCancelled  ImportStatus = "cancelled"
)

// Terminal reports whether no further batches may run against the session
func (s ImportStatus) Terminal() bool {
	return s == ImportStatusCompleted || s == ImportStatusFailed || s == ImportStatusCancelled
}

// ImportErrorKind classifies a row-level import failure
type ImportErrorKind string

const (
	ImportErrorValidation ImportErrorKind = "validation"
	ImportErrorDuplicate  ImportErrorKind = "duplicate"
	ImportErrorProcessing ImportErrorKind = "processing"
)

// ImportSession is one bulk-import job. TotalRecords is fixed at
// creation; counters are advanced only by batch processing.
type ImportSession struct {
	BaseWorkspaceModel
	EntityType        EntityType        `gorm:"not null" json:"entity_type"`
	FileName          string            `gorm:"not null" json:"file_name"`
	SourceKey         string            `json:"source_key"` // archived source file location, if uploaded
	TotalRecords      int               `gorm:"default:0" json:"total_records"`
	ImportMode        ImportMode        `gorm:"not null;default:'create_only'" json:"import_mode"`
	DuplicateField    string            `json:"duplicate_field"`
	FieldMapping      datatypes.JSONMap `gorm:"type:jsonb" json:"field_mapping"`
	ProcessedRecords  int               `gorm:"default:0" json:"processed_records"`
	SuccessfulRecords int               `gorm:"default:0" json:"successful_records"`
	FailedRecords     int               `gorm:"default:0" json:"failed_records"`
	Status            ImportStatus      `gorm:"not null;default:'pending'" json:"status"`
	CreatedBy         uuid.UUID         `gorm:"type:uuid;not null;index" json:"created_by"`
	StartedAt         *time.Time        `json:"started_at"`
	CompletedAt       *time.Time        `json:"completed_at"`

	Errors []ImportRowError `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"errors,omitempty"`
}

// FieldMappingStrings returns the session field mapping as string pairs,
// skipping any non-string values that arrived through the JSONB column.
func (s *ImportSession) FieldMappingStrings() map[string]string {
	mapping := make(map[string]string, len(s.FieldMapping))
	for source, target := range s.FieldMapping {
		if t, ok := target.(string); ok {
			mapping[source] = t
		}
	}
	return mapping
}

// ImportRowError is one failed row tied to a session. RowNumber is
// 1-based over the whole import, header row excluded, so it maps back
// to the source file.
type ImportRowError struct {
	BaseModel
	SessionID uuid.UUID         `gorm:"type:uuid;not null;index" json:"session_id"`
	RowNumber int               `gorm:"not null" json:"row_number"`
	Field     string            `json:"field"`
	Kind      ImportErrorKind   `gorm:"not null" json:"kind"`
	Message   string            `gorm:"not null" json:"message"`
	RowData   datatypes.JSONMap `gorm:"type:jsonb" json:"row_data"`
}

// ImportProgress is the polling summary composed from a session and
// its error log
type ImportProgress struct {
	SessionID         uuid.UUID        `json:"session_id"`
	EntityType        EntityType       `json:"entity_type"`
	Status            ImportStatus     `json:"status"`
	TotalRecords      int              `json:"total_records"`
	ProcessedRecords  int              `json:"processed_records"`
	SuccessfulRecords int              `json:"successful_records"`
	FailedRecords     int              `json:"failed_records"`
	Progress          float64          `json:"progress"` // 0-100
	Message           string           `json:"message"`
	Errors            []ImportRowError `json:"errors"`
}

// CalculateProgress returns percentage completion of the session
func (s *ImportSession) CalculateProgress() float64 {
	if s.TotalRecords == 0 {
		return 0
	}
	return float64(s.ProcessedRecords) / float64(s.TotalRecords) * 100
}

// BatchRowError is a batch-local error returned to the batch caller
type BatchRowError struct {
	RowNumber int               `json:"row_number"`
	Field     string            `json:"field,omitempty"`
	Kind      ImportErrorKind   `json:"kind"`
	Message   string            `json:"message"`
	RowData   map[string]string `json:"row_data,omitempty"`
}

// BatchRowWarning is a validate-only advisory that does not fail the row
type BatchRowWarning struct {
	RowNumber int    `json:"row_number"`
	Field     string `json:"field,omitempty"`
	Message   string `json:"message"`
}

// BatchResult summarizes a single processBatch invocation
type BatchResult struct {
	Successful int               `json:"successful"`
	Failed     int               `json:"failed"`
	Errors     []BatchRowError   `json:"errors"`
	Warnings   []BatchRowWarning `json:"warnings,omitempty"`
}

// PaginationResult represents paginated results
type PaginationResult[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
}
