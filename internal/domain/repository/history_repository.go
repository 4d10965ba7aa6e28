package repository

import (
	"context"

	"github.com/stocker-app/stocker-api/internal/domain/entity"
)

// HistoryRepository puerto de persistencia para el registro de actividad.
// Es append-only: no hay update ni delete.
type HistoryRepository interface {
	Create(ctx context.Context, e *entity.HistoryEntry) error
	// List lista entradas recientes; ownerID vacío no filtra (admin).
	List(ctx context.Context, ownerID string, limit, offset int) ([]*entity.HistoryEntry, error)
}
