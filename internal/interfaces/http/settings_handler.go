package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stocker-app/stocker-api/internal/application/dto"
	"github.com/stocker-app/stocker-api/internal/application/settings"
	"github.com/stocker-app/stocker-api/internal/domain"
)

// SettingsHandler preferencias de visualización del usuario autenticado.
type SettingsHandler struct {
	uc *settings.UseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *settings.UseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// Get godoc
// @Summary      Preferencias del usuario (se crean con defaults en el primer acceso)
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SettingsResponse
// @Router       /api/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// SetColumns godoc
// @Summary      Reemplazar las columnas visibles de una tabla
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        table  path  string  true  "products, clients, sales, assignments, history o sellers"
// @Param        body   body  dto.SetColumnsRequest  true  "lista de columnas (no vacía)"
// @Success      200    {object}  dto.SettingsResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/settings/columns/{table} [put]
func (h *SettingsHandler) SetColumns(c *fiber.Ctx) error {
	table := c.Params("table")
	var in dto.SetColumnsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SetColumns(c.Context(), GetUserID(c), table, in.Columns)
	if err != nil {
		if err == domain.ErrUnknownTable {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_TABLE", Message: "tabla desconocida"})
		}
		if err == domain.ErrEmptyColumns {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_COLUMNS", Message: "la lista de columnas no puede quedar vacía"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// SetPageSize godoc
// @Summary      Cambiar el tamaño de página preferido
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetPageSizeRequest  true  "10, 25, 50 o 100"
// @Success      200   {object}  dto.SettingsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings/page-size [put]
func (h *SettingsHandler) SetPageSize(c *fiber.Ctx) error {
	var in dto.SetPageSizeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SetPageSize(c.Context(), GetUserID(c), in.PageSize)
	if err != nil {
		if err == domain.ErrInvalidPageSize {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PAGE_SIZE", Message: "valores permitidos: 10, 25, 50, 100"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
