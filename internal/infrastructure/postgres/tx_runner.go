package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stocker-app/stocker-api/internal/application/assignment"
	"github.com/stocker-app/stocker-api/internal/application/sales"
	"github.com/stocker-app/stocker-api/internal/application/usecase"
	"github.com/stocker-app/stocker-api/internal/domain/repository"
)

// El mismo Run satisface los puertos TxRunner de ventas, asignaciones y
// ajustes de stock.
var _ sales.TxRunner = (*TxRunner)(nil)
var _ assignment.TxRunner = (*TxRunner)(nil)
var _ usecase.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback según el resultado.
func (r *TxRunner) Run(ctx context.Context, fn func(
	products repository.ProductRepository,
	assignments repository.AssignmentRepository,
	salesRepo repository.SaleRepository,
	history repository.HistoryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	productRepo := NewProductRepository(tx)
	assignmentRepo := NewAssignmentRepository(tx)
	saleRepo := NewSaleRepository(tx)
	historyRepo := NewHistoryRepository(tx)

	if err := fn(productRepo, assignmentRepo, saleRepo, historyRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
