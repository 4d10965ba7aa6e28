package postgres

import (
	"context"
	"fmt"

	"github.com/stocker-app/stocker-api/internal/domain/entity"
	"github.com/stocker-app/stocker-api/internal/domain/repository"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

// HistoryRepo implementación del puerto HistoryRepository sobre PostgreSQL
// (usable con pool o tx). La tabla es append-only; Detail se guarda como
// jsonb.
type HistoryRepo struct {
	q Querier
}

// NewHistoryRepository construye el adaptador del historial.
func NewHistoryRepository(q Querier) *HistoryRepo {
	return &HistoryRepo{q: q}
}

// Create persiste una entrada del historial.
func (r *HistoryRepo) Create(ctx context.Context, e *entity.HistoryEntry) error {
	query := `
		INSERT INTO history (id, owner_id, actor_id, action, entity_type, entity_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.OwnerID, e.ActorID, e.Action, e.EntityType, e.EntityID, e.Detail, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	return nil
}

// List lista entradas recientes; ownerID vacío no filtra (admin).
func (r *HistoryRepo) List(ctx context.Context, ownerID string, limit, offset int) ([]*entity.HistoryEntry, error) {
	query := `
		SELECT id, owner_id, actor_id, action, entity_type, entity_id, detail, created_at
		FROM history WHERE ($1 = '' OR owner_id = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()
	var list []*entity.HistoryEntry
	for rows.Next() {
		var e entity.HistoryEntry
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.ActorID, &e.Action, &e.EntityType, &e.EntityID, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
