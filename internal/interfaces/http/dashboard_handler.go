package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stocker-app/stocker-api/internal/application/analytics"
	"github.com/stocker-app/stocker-api/internal/application/dto"
)

// DashboardHandler resumen del negocio para el owner (protegido).
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen del día y del mes en curso
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	ownerID := GetScopeOwnerID(c)
	if ownerID == "" {
		// El dashboard agrega por negocio; un admin debe indicar de cuál.
		ownerID = c.Query("owner_id")
		if ownerID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_OWNER", Message: "owner_id es requerido para cuentas admin"})
		}
	}
	out, err := h.uc.GetSummary(c.Context(), ownerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
