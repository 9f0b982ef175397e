package handlers

import (
	"net/http"

	"harborcrm/internal/repo"
	"harborcrm/pkg/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContactHandler exposes basic contact CRUD
type ContactHandler struct {
	contacts *repo.ContactRepository
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contacts *repo.ContactRepository) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// List godoc
// @Summary List contacts
// @Tags contacts
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} models.PaginationResult[models.Contact]
// @Router /contacts [get]
func (h *ContactHandler) List(c echo.Context) error {
	workspaceID, _, err := requestIdentity(c)
	if err != nil {
		return err
	}

	page, limit := paginationParams(c)
	contacts, total, err := h.contacts.List(c.Request().Context(), workspaceID, page, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, paginate(contacts, total, page, limit))
}

// Get godoc
// @Summary Get contact
// @Tags contacts
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} models.Contact
// @Failure 404 {object} map[string]string
// @Router /contacts/{id} [get]
func (h *ContactHandler) Get(c echo.Context) error {
	workspaceID, _, err := requestIdentity(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid contact id"})
	}

	contact, err := h.contacts.GetByID(c.Request().Context(), workspaceID, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if contact == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "contact not found"})
	}

	return c.JSON(http.StatusOK, contact)
}

// Create godoc
// @Summary Create contact
// @Tags contacts
// @Accept json
// @Produce json
// @Param request body models.Contact true "Contact"
// @Success 201 {object} models.Contact
// @Failure 400 {object} map[string]string
// @Router /contacts [post]
func (h *ContactHandler) Create(c echo.Context) error {
	workspaceID, _, err := requestIdentity(c)
	if err != nil {
		return err
	}

	var contact models.Contact
	if err := c.Bind(&contact); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if contact.FirstName == "" || contact.LastName == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "first and last name are required"})
	}

	contact.WorkspaceID = workspaceID
	if err := h.contacts.Create(c.Request().Context(), &contact); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, contact)
}

func paginate[T any](data []T, total int64, page, limit int) *models.PaginationResult[T] {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return &models.PaginationResult[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		PerPage:    limit,
		TotalPages: totalPages,
	}
}
