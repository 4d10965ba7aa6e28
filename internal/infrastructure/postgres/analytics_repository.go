package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stocker-app/stocker-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard del owner.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetSalesMetrics devuelve ingresos y unidades vendidas del período.
// Usa COALESCE para devolver cero si no hay filas (período sin ventas).
func (r *AnalyticsRepo) GetSalesMetrics(
	ctx context.Context,
	ownerID string,
	start, end time.Time,
) (revenue, units decimal.Decimal, err error) {
	const query = `
	SELECT
	    COALESCE(SUM(total),    0) AS revenue,
	    COALESCE(SUM(quantity), 0) AS units
	FROM sales
	WHERE owner_id = $1
	  AND sold_at BETWEEN $2 AND $3`

	err = r.q.QueryRow(ctx, query, ownerID, start, end).Scan(&revenue, &units)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("analytics.GetSalesMetrics: %w", err)
	}
	return revenue, units, nil
}

// GetTopProducts devuelve los `limit` productos con mayor ingreso del
// período, con unidades e ingresos agregados.
func (r *AnalyticsRepo) GetTopProducts(
	ctx context.Context,
	ownerID string,
	start, end time.Time,
	limit int,
) ([]repository.TopProductResult, error) {
	const query = `
	SELECT
	    p.id,
	    p.name,
	    SUM(s.quantity) AS units,
	    SUM(s.total)    AS revenue
	FROM sales s
	JOIN products p ON p.id = s.product_id
	WHERE s.owner_id = $1
	  AND s.sold_at BETWEEN $2 AND $3
	GROUP BY p.id, p.name
	ORDER BY revenue DESC
	LIMIT $4`

	rows, err := r.q.Query(ctx, query, ownerID, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProductResult
	for rows.Next() {
		var row repository.TopProductResult
		if err := rows.Scan(&row.ProductID, &row.Name, &row.Units, &row.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.GetTopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// CountSellersWithActiveAssignments cuenta sellers distintos con al menos
// una asignación activa.
func (r *AnalyticsRepo) CountSellersWithActiveAssignments(ctx context.Context, ownerID string) (int, error) {
	const query = `
	SELECT COUNT(DISTINCT seller_id)
	FROM assignments
	WHERE owner_id = $1 AND status = 'active'`

	var n int
	if err := r.q.QueryRow(ctx, query, ownerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.CountSellersWithActiveAssignments: %w", err)
	}
	return n, nil
}

// GetLowStock devuelve productos con stock menor o igual al umbral,
// ordenados del más crítico al menos.
func (r *AnalyticsRepo) GetLowStock(
	ctx context.Context,
	ownerID string,
	threshold decimal.Decimal,
	limit int,
) ([]repository.LowStockResult, error) {
	const query = `
	SELECT id, name, stock
	FROM products
	WHERE owner_id = $1 AND stock <= $2
	ORDER BY stock ASC, name ASC
	LIMIT $3`

	rows, err := r.q.Query(ctx, query, ownerID, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetLowStock: %w", err)
	}
	defer rows.Close()

	var results []repository.LowStockResult
	for rows.Next() {
		var row repository.LowStockResult
		if err := rows.Scan(&row.ProductID, &row.Name, &row.Stock); err != nil {
			return nil, fmt.Errorf("analytics.GetLowStock scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
