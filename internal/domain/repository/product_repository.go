package repository

import (
	"context"

	"github.com/stocker-app/stocker-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para productos.
// Los Get* devuelven (nil, nil) cuando no hay registro.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetByIDForUpdate bloquea la fila (SELECT FOR UPDATE); solo tiene
	// sentido dentro de una transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetByOwnerAndSKU(ctx context.Context, ownerID, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// List lista productos; ownerID vacío no filtra (admin).
	List(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
