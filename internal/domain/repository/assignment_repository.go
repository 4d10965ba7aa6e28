package repository

import (
	"context"

	"github.com/stocker-app/stocker-api/internal/domain/entity"
)

// AssignmentRepository puerto de persistencia para asignaciones
// (consignaciones de producto a sellers).
type AssignmentRepository interface {
	Create(ctx context.Context, a *entity.Assignment) error
	GetByID(ctx context.Context, id string) (*entity.Assignment, error)
	// GetByIDForUpdate bloquea la fila (SELECT FOR UPDATE); solo tiene
	// sentido dentro de una transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Assignment, error)
	Update(ctx context.Context, a *entity.Assignment) error
	// List lista asignaciones; ownerID vacío no filtra (admin).
	List(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Assignment, error)
}
