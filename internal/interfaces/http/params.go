package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stocker-app/stocker-api/internal/application/settings"
)

// maxPageLimit techo absoluto del tamaño de página.
const maxPageLimit = 100

// pageParams resuelve limit y offset del listado. Sin ?limit el default es el
// tamaño de página preferido del usuario autenticado.
func pageParams(c *fiber.Ctx, settingsUC *settings.UseCase) (limit, offset int) {
	limit = c.QueryInt("limit", 0)
	if limit <= 0 {
		limit = settingsUC.PageSize(c.Context(), GetUserID(c))
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	offset = c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
