// Package sales implementa el registro de ventas: un owner vende desde el
// stock general y un seller desde el remanente de una asignación activa.
// El descuento de stock y la venta se confirman en una sola transacción con
// la fila del producto (o de la asignación) bloqueada.
package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stocker-app/stocker-api/internal/application/dto"
	"github.com/stocker-app/stocker-api/internal/domain"
	"github.com/stocker-app/stocker-api/internal/domain/entity"
	"github.com/stocker-app/stocker-api/internal/domain/repository"
)

// CreateSaleUseCase registra ventas de forma transaccional.
type CreateSaleUseCase struct {
	txRunner   TxRunner
	clientRepo repository.ClientRepository
	saleRepo   repository.SaleRepository
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(txRunner TxRunner, clientRepo repository.ClientRepository, saleRepo repository.SaleRepository) *CreateSaleUseCase {
	return &CreateSaleUseCase{txRunner: txRunner, clientRepo: clientRepo, saleRepo: saleRepo}
}

// Create registra una venta.
//
// Sin AssignmentID (owner): bloquea el producto, verifica stock suficiente y
// lo descuenta. Con AssignmentID (seller, o un owner vendiendo de una
// consignación): bloquea la asignación, verifica remanente suficiente y lo
// descuenta; al llegar a cero la asignación pasa a exhausted.
// Total = Quantity × UnitPrice siempre.
func (uc *CreateSaleUseCase) Create(ctx context.Context, actorID, actorRole, scopeOwnerID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if in.ClientID == "" || in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if actorRole == entity.RoleSeller && in.AssignmentID == nil {
		// Un seller solo vende mercancía consignada.
		return nil, domain.ErrForbidden
	}

	client, err := uc.clientRepo.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil || !visibleTo(scopeOwnerID, client.OwnerID) {
		return nil, domain.ErrNotFound
	}

	var sale *entity.Sale
	err = uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		assignments repository.AssignmentRepository,
		salesRepo repository.SaleRepository,
		history repository.HistoryRepository,
	) error {
		product, err := products.GetByIDForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil || !visibleTo(scopeOwnerID, product.OwnerID) {
			return domain.ErrNotFound
		}

		unitPrice := in.UnitPrice
		if unitPrice.IsZero() {
			unitPrice = product.Price
		}
		if unitPrice.IsNegative() {
			return domain.ErrInvalidInput
		}

		now := time.Now()
		if in.AssignmentID != nil {
			a, err := assignments.GetByIDForUpdate(ctx, *in.AssignmentID)
			if err != nil {
				return err
			}
			if a == nil || !visibleTo(scopeOwnerID, a.OwnerID) {
				return domain.ErrNotFound
			}
			if a.ProductID != product.ID {
				return domain.ErrInvalidInput
			}
			if actorRole == entity.RoleSeller && a.SellerID != actorID {
				return domain.ErrForbidden
			}
			if a.Status != entity.AssignmentActive {
				return domain.ErrConflict
			}
			if a.Remaining.LessThan(in.Quantity) {
				return domain.ErrInsufficientStock
			}
			a.Remaining = a.Remaining.Sub(in.Quantity)
			if a.Remaining.IsZero() {
				a.Status = entity.AssignmentExhausted
			}
			a.UpdatedAt = now
			if err := assignments.Update(ctx, a); err != nil {
				return err
			}
		} else {
			if product.Stock.LessThan(in.Quantity) {
				return domain.ErrInsufficientStock
			}
			product.Stock = product.Stock.Sub(in.Quantity)
			product.UpdatedAt = now
			if err := products.Update(ctx, product); err != nil {
				return err
			}
		}

		sale = &entity.Sale{
			ID:           uuid.New().String(),
			OwnerID:      product.OwnerID,
			SellerID:     actorID,
			ClientID:     in.ClientID,
			ProductID:    in.ProductID,
			AssignmentID: in.AssignmentID,
			Quantity:     in.Quantity,
			UnitPrice:    unitPrice,
			Total:        in.Quantity.Mul(unitPrice),
			SoldAt:       now,
			CreatedAt:    now,
		}
		if err := salesRepo.Create(ctx, sale); err != nil {
			return err
		}

		entry := &entity.HistoryEntry{
			ID:         uuid.New().String(),
			OwnerID:    product.OwnerID,
			ActorID:    actorID,
			Action:     entity.ActionSold,
			EntityType: "sale",
			EntityID:   sale.ID,
			Detail: map[string]any{
				"product_id": product.ID,
				"quantity":   in.Quantity.String(),
				"total":      sale.Total.String(),
			},
			CreatedAt: now,
		}
		return history.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return ToSaleResponse(sale), nil
}

// GetByID obtiene una venta visible para el alcance.
func (uc *CreateSaleUseCase) GetByID(ctx context.Context, scopeOwnerID, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil || !visibleTo(scopeOwnerID, sale.OwnerID) {
		return nil, nil
	}
	return ToSaleResponse(sale), nil
}

// List lista ventas del alcance con paginación.
func (uc *CreateSaleUseCase) List(ctx context.Context, scopeOwnerID string, limit, offset int) (*dto.SaleListResponse, error) {
	list, err := uc.saleRepo.List(ctx, scopeOwnerID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *ToSaleResponse(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func visibleTo(scopeOwnerID, recordOwnerID string) bool {
	return scopeOwnerID == "" || scopeOwnerID == recordOwnerID
}

// ToSaleResponse mapea la entidad a DTO.
func ToSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	return &dto.SaleResponse{
		ID:           s.ID,
		OwnerID:      s.OwnerID,
		SellerID:     s.SellerID,
		ClientID:     s.ClientID,
		ProductID:    s.ProductID,
		AssignmentID: s.AssignmentID,
		Quantity:     s.Quantity,
		UnitPrice:    s.UnitPrice,
		Total:        s.Total,
		SoldAt:       s.SoldAt,
		CreatedAt:    s.CreatedAt,
	}
}
