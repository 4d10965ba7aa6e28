package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stocker-app/stocker-api/internal/application/dto"
	"github.com/stocker-app/stocker-api/internal/application/settings"
	"github.com/stocker-app/stocker-api/internal/application/usecase"
)

// HistoryHandler lectura del registro de actividad (protegido).
type HistoryHandler struct {
	uc         *usecase.HistoryUseCase
	settingsUC *settings.UseCase
}

// NewHistoryHandler construye el handler.
func NewHistoryHandler(uc *usecase.HistoryUseCase, settingsUC *settings.UseCase) *HistoryHandler {
	return &HistoryHandler{uc: uc, settingsUC: settingsUC}
}

// List godoc
// @Summary      Registro de actividad, más reciente primero
// @Tags         history
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite (default: tamaño de página preferido)"
// @Param        offset  query  int  false  "Offset"
// @Success      200     {object}  dto.HistoryListResponse
// @Router       /api/history [get]
func (h *HistoryHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c, h.settingsUC)
	out, err := h.uc.List(c.Context(), GetScopeOwnerID(c), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
