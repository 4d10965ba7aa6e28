package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale venta registrada. SellerID es quien la registró (owner o seller).
// AssignmentID se llena cuando un seller vende desde mercancía consignada.
// Invariante: Total = Quantity × UnitPrice.
type Sale struct {
	ID           string
	OwnerID      string
	SellerID     string
	ClientID     string
	ProductID    string
	AssignmentID *string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	Total        decimal.Decimal
	SoldAt       time.Time
	CreatedAt    time.Time
}
