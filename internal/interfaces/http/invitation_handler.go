package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stocker-app/stocker-api/internal/application/dto"
	"github.com/stocker-app/stocker-api/internal/application/invitation"
	"github.com/stocker-app/stocker-api/internal/application/settings"
	"github.com/stocker-app/stocker-api/internal/domain"
)

// InvitationHandler emisión, listado y revocación de invitaciones (protegido).
type InvitationHandler struct {
	uc         *invitation.UseCase
	settingsUC *settings.UseCase
}

// NewInvitationHandler construye el handler.
func NewInvitationHandler(uc *invitation.UseCase, settingsUC *settings.UseCase) *InvitationHandler {
	return &InvitationHandler{uc: uc, settingsUC: settingsUC}
}

// Create godoc
// @Summary      Emitir invitación
// @Tags         invitations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvitationRequest  true  "email y rol del invitado"
// @Success      201   {object}  dto.InvitationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/invitations [post]
func (h *InvitationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvitationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Invite(c.Context(), GetUserID(c), GetRole(c), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y role (owner o seller) son requeridos"})
		}
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el rol autenticado no puede emitir esa invitación"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar invitaciones visibles
// @Tags         invitations
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"
// @Param        offset  query  int  false  "Offset"
// @Success      200     {object}  dto.InvitationListResponse
// @Router       /api/invitations [get]
func (h *InvitationHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c, h.settingsUC)
	out, err := h.uc.List(c.Context(), GetScopeOwnerID(c), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Revoke godoc
// @Summary      Revocar invitación sin usar
// @Tags         invitations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la invitación"
// @Success      204  "sin contenido"
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/invitations/{id} [delete]
func (h *InvitationHandler) Revoke(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	err := h.uc.Revoke(c.Context(), GetUserID(c), GetRole(c), id)
	if err != nil {
		switch err {
		case domain.ErrInvitationNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "invitación no encontrada"})
		case domain.ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo el emisor o un admin pueden revocar"})
		case domain.ErrInvitationUsed:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVITATION_USED", Message: "la invitación ya fue usada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
