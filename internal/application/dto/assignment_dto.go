package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAssignmentRequest consigna unidades de producto a un seller.
type CreateAssignmentRequest struct {
	SellerID  string          `json:"seller_id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// AssignmentResponse representación de una asignación.
type AssignmentResponse struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"owner_id"`
	SellerID  string          `json:"seller_id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Remaining decimal.Decimal `json:"remaining"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// AssignmentListResponse listado paginado de asignaciones.
type AssignmentListResponse struct {
	Items []AssignmentResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
