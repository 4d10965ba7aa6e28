package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest registra una venta. Si AssignmentID viene, la venta
// descuenta del remanente de esa asignación (venta de seller); si no,
// descuenta del stock general del producto (venta de owner).
type CreateSaleRequest struct {
	ClientID     string          `json:"client_id"`
	ProductID    string          `json:"product_id"`
	AssignmentID *string         `json:"assignment_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	// UnitPrice opcional: si es cero se usa el precio vigente del producto.
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// SaleResponse representación de una venta.
type SaleResponse struct {
	ID           string          `json:"id"`
	OwnerID      string          `json:"owner_id"`
	SellerID     string          `json:"seller_id"`
	ClientID     string          `json:"client_id"`
	ProductID    string          `json:"product_id"`
	AssignmentID *string         `json:"assignment_id,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Total        decimal.Decimal `json:"total"`
	SoldAt       time.Time       `json:"sold_at"`
	CreatedAt    time.Time       `json:"created_at"`
}

// SaleListResponse listado paginado de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
