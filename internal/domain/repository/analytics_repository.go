package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TopProductResult producto con mayores ingresos en un período.
type TopProductResult struct {
	ProductID string
	Name      string
	Units     decimal.Decimal
	Revenue   decimal.Decimal
}

// LowStockResult producto con stock por debajo del umbral.
type LowStockResult struct {
	ProductID string
	Name      string
	Stock     decimal.Decimal
}

// AnalyticsRepository consultas read-only para el dashboard del owner.
type AnalyticsRepository interface {
	// GetSalesMetrics devuelve ingresos y unidades vendidas del período.
	GetSalesMetrics(ctx context.Context, ownerID string, start, end time.Time) (revenue, units decimal.Decimal, err error)
	// GetTopProducts devuelve los `limit` productos con mayor ingreso del período.
	GetTopProducts(ctx context.Context, ownerID string, start, end time.Time, limit int) ([]TopProductResult, error)
	// CountSellersWithActiveAssignments cuenta sellers distintos con al menos
	// una asignación activa.
	CountSellersWithActiveAssignments(ctx context.Context, ownerID string) (int, error)
	// GetLowStock devuelve productos con stock <= threshold.
	GetLowStock(ctx context.Context, ownerID string, threshold decimal.Decimal, limit int) ([]LowStockResult, error)
}
