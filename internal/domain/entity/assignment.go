package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una asignación.
const (
	AssignmentActive    = "active"
	AssignmentExhausted = "exhausted"
	AssignmentReturned  = "returned"
)

// Assignment consignación de unidades de producto a un seller.
// Invariante: 0 <= Remaining <= Quantity.
type Assignment struct {
	ID        string
	OwnerID   string
	SellerID  string
	ProductID string
	Quantity  decimal.Decimal
	Remaining decimal.Decimal
	Status    string // active, exhausted, returned
	CreatedAt time.Time
	UpdatedAt time.Time
}
