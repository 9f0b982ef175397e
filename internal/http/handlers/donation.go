package handlers

import (
	"net/http"

	"harborcrm/internal/repo"
	"harborcrm/pkg/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// DonationHandler exposes basic donation CRUD
type DonationHandler struct {
	donations *repo.DonationRepository
}

// NewDonationHandler creates a new donation handler
func NewDonationHandler(donations *repo.DonationRepository) *DonationHandler {
	return &DonationHandler{donations: donations}
}

// List godoc
// @Summary List donations
// @Tags donations
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} models.PaginationResult[models.Donation]
// @Router /donations [get]
func (h *DonationHandler) List(c echo.Context) error {
	workspaceID, _, err := requestIdentity(c)
	if err != nil {
		return err
	}

	page, limit := paginationParams(c)
	donations, total, err := h.donations.List(c.Request().Context(), workspaceID, page, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, paginate(donations, total, page, limit))
}

// Get godoc
// @Summary Get donation
// @Tags donations
// @Produce json
// @Param id path string true "Donation ID"
// @Success 200 {object} models.Donation
// @Failure 404 {object} map[string]string
// @Router /donations/{id} [get]
func (h *DonationHandler) Get(c echo.Context) error {
	workspaceID, _, err := requestIdentity(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid donation id"})
	}

	donation, err := h.donations.GetByID(c.Request().Context(), workspaceID, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if donation == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "donation not found"})
	}

	return c.JSON(http.StatusOK, donation)
}

// Create godoc
// @Summary Create donation
// @Tags donations
// @Accept json
// @Produce json
// @Param request body models.Donation true "Donation"
// @Success 201 {object} models.Donation
// @Failure 400 {object} map[string]string
// @Router /donations [post]
func (h *DonationHandler) Create(c echo.Context) error {
	workspaceID, _, err := requestIdentity(c)
	if err != nil {
		return err
	}

	var donation models.Donation
	if err := c.Bind(&donation); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if donation.AmountCents < 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "amount cannot be negative"})
	}
	if donation.ContactID == nil && donation.BusinessID == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "donation requires a contact or business donor"})
	}

	donation.WorkspaceID = workspaceID
	if err := h.donations.Create(c.Request().Context(), &donation); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, donation)
}
