package repository

import (
	"context"

	"github.com/stocker-app/stocker-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get* devuelven (nil, nil) cuando no hay registro.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// ListSellers lista usuarios con rol seller ligados al owner indicado.
	ListSellers(ctx context.Context, ownerID string, limit, offset int) ([]*entity.User, error)
}
