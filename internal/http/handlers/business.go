package handlers

import (
	"net/http"

	"harborcrm/internal/repo"
	"harborcrm/pkg/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// BusinessHandler exposes basic business CRUD
type BusinessHandler struct {
	businesses *repo.BusinessRepository
}

// NewBusinessHandler creates a new business handler
func NewBusinessHandler(businesses *repo.BusinessRepository) *BusinessHandler {
	return &BusinessHandler{businesses: businesses}
}

// List godoc
// @Summary List businesses
// @Tags businesses
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} models.PaginationResult[models.Business]
// @Router /businesses [get]
func (h *BusinessHandler) List(c echo.Context) error {
	workspaceID, _, err := requestIdentity(c)
	if err != nil {
		return err
	}

	page, limit := paginationParams(c)
	businesses, total, err := h.businesses.List(c.Request().Context(), workspaceID, page, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, paginate(businesses, total, page, limit))
}

// Get godoc
// @Summary Get business
// @Tags businesses
// @Produce json
// @Param id path string true "Business ID"
// @Success 200 {object} models.Business
// @Failure 404 {object} map[string]string
// @Router /businesses/{id} [get]
func (h *BusinessHandler) Get(c echo.Context) error {
	workspaceID, _, err := requestIdentity(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid business id"})
	}

	business, err := h.businesses.GetByID(c.Request().Context(), workspaceID, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if business == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "business not found"})
	}

	return c.JSON(http.StatusOK, business)
}

// Create godoc
// @Summary Create business
// @Tags businesses
// @Accept json
// @Produce json
// @Param request body models.Business true "Business"
// @Success 201 {object} models.Business
// @Failure 400 {object} map[string]string
// @Router /businesses [post]
func (h *BusinessHandler) Create(c echo.Context) error {
	workspaceID, _, err := requestIdentity(c)
	if err != nil {
		return err
	}

	var business models.Business
	if err := c.Bind(&business); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if business.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "business name is required"})
	}

	business.WorkspaceID = workspaceID
	if err := h.businesses.Create(c.Request().Context(), &business); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, business)
}
