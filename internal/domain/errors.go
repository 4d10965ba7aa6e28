package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)

// Errores del flujo de invitaciones. Cada causa de rechazo tiene su propio
// error para que el handler entregue un mensaje específico al usuario.
var (
	ErrInvitationNotFound = errors.New("invitación no encontrada")
	ErrInvitationUsed     = errors.New("la invitación ya fue utilizada")
	ErrInvitationExpired  = errors.New("la invitación expiró")
	ErrInvitationEmail    = errors.New("el email no coincide con la invitación")
)

// Errores de preferencias de visualización.
var (
	ErrEmptyColumns    = errors.New("la lista de columnas no puede quedar vacía")
	ErrUnknownTable    = errors.New("tabla de preferencias desconocida")
	ErrInvalidPageSize = errors.New("tamaño de página inválido")
)
