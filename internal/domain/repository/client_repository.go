package repository

import (
	"context"

	"github.com/stocker-app/stocker-api/internal/domain/entity"
)

// ClientRepository puerto de persistencia para clientes.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	// List lista clientes; ownerID vacío no filtra (admin).
	List(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Client, error)
	Delete(ctx context.Context, id string) error
}
