package handlers

import (
	"fmt"
	"net/http"

	"harborcrm/internal/importer"
	"harborcrm/pkg/models"

	"github.com/labstack/echo/v4"
)

// ImportTemplateHandler serves per-entity import templates and field docs
type ImportTemplateHandler struct{}

// NewImportTemplateHandler creates a new template handler
func NewImportTemplateHandler() *ImportTemplateHandler {
	return &ImportTemplateHandler{}
}

// GetTemplate godoc
// @Summary Download import template
// @Description Sample file with one header row and one example row. Use ?format=xlsx for a spreadsheet, ?format=json for field documentation.
// @Tags import
// @Produce octet-stream
// @Param entityType path string true "Entity type"
// @Param format query string false "csv (default), xlsx or json"
// @Success 200
// @Failure 400 {object} map[string]string
// @Router /import/templates/{entityType} [get]
func (h *ImportTemplateHandler) GetTemplate(c echo.Context) error {
	entityType := models.EntityType(c.Param("entityType"))

	switch c.QueryParam("format") {
	case "xlsx":
		data, err := importer.GenerateXLSXTemplate(entityType)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		c.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename="%s_import_template.xlsx"`, entityType))
		return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)

	case "json":
		docs, err := importer.FieldDocs(entityType)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"entity_type": entityType,
			"fields":      docs,
		})

	default:
		data, err := importer.GenerateCSVTemplate(entityType)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		c.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename="%s_import_template.csv"`, entityType))
		return c.Blob(http.StatusOK, "text/csv", data)
	}
}
