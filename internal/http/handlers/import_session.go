package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"harborcrm/internal/importer"
	"harborcrm/internal/services"
	"harborcrm/internal/utils"
	"harborcrm/pkg/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ImportSessionHandler exposes the bulk-import session API
type ImportSessionHandler struct {
	sessionService *services.ImportSessionService
	processor      *importer.BatchProcessor
	storage        *services.StorageService
}

// NewImportSessionHandler creates a new import session handler
func NewImportSessionHandler(sessionService *services.ImportSessionService, processor *importer.BatchProcessor, storage *services.StorageService) *ImportSessionHandler {
	return &ImportSessionHandler{
		sessionService: sessionService,
		processor:      processor,
		storage:        storage,
	}
}

// CreateSession godoc
// @Summary Create import session
// @Description Create a new import session for batch submission
// @Tags import
// @Accept json
// @Produce json
// @Param request body services.CreateSessionRequest true "Session parameters"
// @Success 201 {object} models.ImportSession
// @Failure 400 {object} map[string]string
// @Router /import/sessions [post]
func (h *ImportSessionHandler) CreateSession(c echo.Context) error {
	workspaceID, userID, err := requestIdentity(c)
	if err != nil {
		return err
	}

	var req services.CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	session, err := h.sessionService.CreateSession(c.Request().Context(), workspaceID, userID, req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, session)
}

// UploadFile godoc
// @Summary Upload import file
// @Description Upload a CSV file, archive it and create a pending session
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file to import"
// @Param entity_type formData string true "Target entity type"
// @Param import_mode formData string false "create_only or update_or_create"
// @Param duplicate_field formData string false "Field used for duplicate matching"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /import/sessions/upload [post]
func (h *ImportSessionHandler) UploadFile(c echo.Context) error {
	workspaceID, userID, err := requestIdentity(c)
	if err != nil {
		return err
	}

	file, header, err := c.Request().FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "file not found in request"})
	}
	defer file.Close()

	if header.Header.Get("Content-Type") != "text/csv" && !strings.HasSuffix(header.Filename, ".csv") {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "only CSV files are accepted"})
	}

	content, err := io.ReadAll(file)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "failed to read file"})
	}

	records, analysis, err := utils.ParseCSV(bytes.NewReader(content))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if len(records) < 2 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "file has no data rows"})
	}

	req := services.CreateSessionRequest{
		EntityType:     models.EntityType(c.FormValue("entity_type")),
		FileName:       header.Filename,
		TotalRecords:   len(records) - 1,
		ImportMode:     models.ImportMode(c.FormValue("import_mode")),
		DuplicateField: c.FormValue("duplicate_field"),
	}

	session, err := h.sessionService.CreateSession(c.Request().Context(), workspaceID, userID, req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if h.storage != nil {
		key, err := h.storage.UploadImportFile(workspaceID, session.ID, header.Filename, bytes.NewReader(content))
		if err != nil {
			log.Warn().Err(err).
				Str("session_id", session.ID.String()).
				Msg("Failed to archive import file")
		} else if err := h.sessionService.AttachSource(c.Request().Context(), workspaceID, session.ID, key); err != nil {
			log.Warn().Err(err).
				Str("session_id", session.ID.String()).
				Str("source_key", key).
				Msg("Failed to record archived file key")
		} else {
			session.SourceKey = key
		}
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"session":   session,
		"headers":   records[0],
		"row_count": len(records) - 1,
		"delimiter": string(analysis.Delimiter),
	})
}

// batchRequest is the JSON body of a batch submission
type batchRequest struct {
	Rows         []map[string]any `json:"rows" validate:"required,min=1"`
	StartIndex   int              `json:"start_index" validate:"gte=0"`
	ValidateOnly bool             `json:"validate_only"`
}

// ProcessBatch godoc
// @Summary Process import batch
// @Description Submit a batch of rows against a session
// @Tags import
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body batchRequest true "Batch rows"
// @Success 200 {object} models.BatchResult
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /import/sessions/{id}/batches [post]
func (h *ImportSessionHandler) ProcessBatch(c echo.Context) error {
	workspaceID, _, err := requestIdentity(c)
	if err != nil {
		return err
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid session id"})
	}

	session, err := h.sessionService.GetSession(c.Request().Context(), workspaceID, sessionID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if session == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
	}

	var req batchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	result, err := h.processor.ProcessBatch(c.Request().Context(), sessionID, req.Rows, req.StartIndex, req.ValidateOnly)
	if err != nil {
		if errors.Is(err, importer.ErrSessionFinished) {
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, result)
}

// GetProgress godoc
// @Summary Get import progress
// @Description Get session counters and the accumulated error log
// @Tags import
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.ImportProgress
// @Failure 404 {object} map[string]string
// @Router /import/sessions/{id}/progress [get]
func (h *ImportSessionHandler) GetProgress(c echo.Context) error {
	workspaceID, _, err := requestIdentity(c)
	if err != nil {
		return err
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid session id"})
	}

	progress, err := h.sessionService.GetProgress(c.Request().Context(), workspaceID, sessionID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if progress == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
	}

	return c.JSON(http.StatusOK, progress)
}

// CancelSession godoc
// @Summary Cancel import session
// @Description Move a pending or processing session to cancelled
// @Tags import
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.ImportSession
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /import/sessions/{id}/cancel [post]
func (h *ImportSessionHandler) CancelSession(c echo.Context) error {
	workspaceID, _, err := requestIdentity(c)
	if err != nil {
		return err
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid session id"})
	}

	session, err := h.sessionService.Cancel(c.Request().Context(), workspaceID, sessionID)
	if err != nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}
	if session == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
	}

	return c.JSON(http.StatusOK, session)
}

// DeleteSession godoc
// @Summary Delete import session
// @Description Delete a session and its error log
// @Tags import
// @Produce json
// @Param id path string true "Session ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /import/sessions/{id} [delete]
func (h *ImportSessionHandler) DeleteSession(c echo.Context) error {
	workspaceID, _, err := requestIdentity(c)
	if err != nil {
		return err
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid session id"})
	}

	if err := h.sessionService.Delete(c.Request().Context(), workspaceID, sessionID); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.NoContent(http.StatusNoContent)
}

// ListSessions godoc
// @Summary List import sessions
// @Description List workspace sessions, newest first
// @Tags import
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param status query string false "Status filter"
// @Success 200 {object} models.PaginationResult[models.ImportSession]
// @Router /import/sessions [get]
func (h *ImportSessionHandler) ListSessions(c echo.Context) error {
	workspaceID, _, err := requestIdentity(c)
	if err != nil {
		return err
	}

	page, limit := paginationParams(c)
	status := c.QueryParam("status")

	result, err := h.sessionService.List(c.Request().Context(), workspaceID, page, limit, status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, result)
}

func requestIdentity(c echo.Context) (workspaceID, userID uuid.UUID, err error) {
	workspaceID, ok := c.Get("workspace_id").(uuid.UUID)
	if !ok {
		return uuid.Nil, uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "workspace_id not found")
	}
	userID, ok = c.Get("user_id").(uuid.UUID)
	if !ok {
		return uuid.Nil, uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "user_id not found")
	}
	return workspaceID, userID, nil
}

func paginationParams(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
