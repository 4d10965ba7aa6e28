package repository

import (
	"context"
	"time"

	"github.com/stocker-app/stocker-api/internal/domain/entity"
)

// InvitationRepository puerto de persistencia para invitaciones.
// Los Get* devuelven (nil, nil) cuando no hay registro.
type InvitationRepository interface {
	Create(ctx context.Context, inv *entity.Invitation) error
	GetByID(ctx context.Context, id string) (*entity.Invitation, error)
	GetByToken(ctx context.Context, token string) (*entity.Invitation, error)
	// List lista invitaciones; ownerID vacío no filtra (admin).
	List(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Invitation, error)
	Delete(ctx context.Context, id string) error
	// MarkUsed marca la invitación como usada solo si seguía sin usar
	// (UPDATE condicional). Devuelve false si alguien la consumió antes.
	MarkUsed(ctx context.Context, id string, usedAt time.Time) (bool, error)
}
