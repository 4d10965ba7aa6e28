package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product artículo del catálogo de un owner. El SKU es único por owner.
// Stock se modifica solo vía ventas, asignaciones o ajustes explícitos.
type Product struct {
	ID          string
	OwnerID     string
	SKU         string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
