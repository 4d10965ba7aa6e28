package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/stocker-app/stocker-api/internal/domain/entity"
	"github.com/stocker-app/stocker-api/internal/domain/repository"
)

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

// AssignmentRepo implementación del puerto AssignmentRepository sobre
// PostgreSQL (usable con pool o tx).
type AssignmentRepo struct {
	q Querier
}

// NewAssignmentRepository construye el adaptador de asignaciones.
func NewAssignmentRepository(q Querier) *AssignmentRepo {
	return &AssignmentRepo{q: q}
}

const assignmentColumns = `id, owner_id, seller_id, product_id, quantity, remaining, status, created_at, updated_at`

// Create persiste una asignación.
func (r *AssignmentRepo) Create(ctx context.Context, a *entity.Assignment) error {
	query := `
		INSERT INTO assignments (id, owner_id, seller_id, product_id, quantity, remaining, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.OwnerID, a.SellerID, a.ProductID, a.Quantity, a.Remaining, a.Status,
		a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

// GetByID obtiene una asignación por ID.
func (r *AssignmentRepo) GetByID(ctx context.Context, id string) (*entity.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// GetByIDForUpdate obtiene una asignación bloqueando la fila (SELECT FOR
// UPDATE). Solo tiene sentido dentro de una transacción del TxRunner.
func (r *AssignmentRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE id = $1 FOR UPDATE`
	return r.scanOne(ctx, query, id)
}

func (r *AssignmentRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Assignment, error) {
	var a entity.Assignment
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&a.ID, &a.OwnerID, &a.SellerID, &a.ProductID, &a.Quantity, &a.Remaining, &a.Status,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	return &a, nil
}

// Update actualiza remanente y estado de una asignación.
func (r *AssignmentRepo) Update(ctx context.Context, a *entity.Assignment) error {
	query := `
		UPDATE assignments SET quantity = $2, remaining = $3, status = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, a.ID, a.Quantity, a.Remaining, a.Status, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update assignment: %w", err)
	}
	return nil
}

// List lista asignaciones; ownerID vacío no filtra (admin).
func (r *AssignmentRepo) List(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Assignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM assignments WHERE ($1 = '' OR owner_id = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Assignment
	for rows.Next() {
		var a entity.Assignment
		if err := rows.Scan(&a.ID, &a.OwnerID, &a.SellerID, &a.ProductID, &a.Quantity, &a.Remaining, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
