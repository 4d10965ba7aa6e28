// Package assignment implementa las consignaciones: un owner asigna
// unidades de producto a un seller (el stock pasa del producto a la
// asignación) y puede recibir de vuelta el remanente.
package assignment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stocker-app/stocker-api/internal/application/dto"
	"github.com/stocker-app/stocker-api/internal/domain"
	"github.com/stocker-app/stocker-api/internal/domain/entity"
	"github.com/stocker-app/stocker-api/internal/domain/repository"
)

// TxRunner ejecuta un callback con repos atados a una transacción.
// Lo implementa postgres.TxRunner.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		assignments repository.AssignmentRepository,
		sales repository.SaleRepository,
		history repository.HistoryRepository,
	) error) error
}

// UseCase casos de uso de asignaciones.
type UseCase struct {
	txRunner       TxRunner
	assignmentRepo repository.AssignmentRepository
	userRepo       repository.UserRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, assignmentRepo repository.AssignmentRepository, userRepo repository.UserRepository) *UseCase {
	return &UseCase{txRunner: txRunner, assignmentRepo: assignmentRepo, userRepo: userRepo}
}

// Create consigna unidades al seller: bloquea el producto, descuenta el
// stock y crea la asignación activa con remanente igual a la cantidad.
func (uc *UseCase) Create(ctx context.Context, ownerID, actorID string, in dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	seller, err := uc.userRepo.GetByID(ctx, in.SellerID)
	if err != nil {
		return nil, err
	}
	if seller == nil || seller.Role != entity.RoleSeller ||
		seller.OwnerID == nil || *seller.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	if seller.Status != entity.StatusActive {
		return nil, domain.ErrConflict
	}

	var assignment *entity.Assignment
	err = uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		assignments repository.AssignmentRepository,
		_ repository.SaleRepository,
		history repository.HistoryRepository,
	) error {
		product, err := products.GetByIDForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil || product.OwnerID != ownerID {
			return domain.ErrNotFound
		}
		if product.Stock.LessThan(in.Quantity) {
			return domain.ErrInsufficientStock
		}
		now := time.Now()
		product.Stock = product.Stock.Sub(in.Quantity)
		product.UpdatedAt = now
		if err := products.Update(ctx, product); err != nil {
			return err
		}

		assignment = &entity.Assignment{
			ID:        uuid.New().String(),
			OwnerID:   ownerID,
			SellerID:  in.SellerID,
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			Remaining: in.Quantity,
			Status:    entity.AssignmentActive,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := assignments.Create(ctx, assignment); err != nil {
			return err
		}

		entry := &entity.HistoryEntry{
			ID:         uuid.New().String(),
			OwnerID:    ownerID,
			ActorID:    actorID,
			Action:     entity.ActionAssigned,
			EntityType: "assignment",
			EntityID:   assignment.ID,
			Detail: map[string]any{
				"product_id": in.ProductID,
				"seller_id":  in.SellerID,
				"quantity":   in.Quantity.String(),
			},
			CreatedAt: now,
		}
		return history.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(assignment), nil
}

// Return devuelve el remanente de una asignación activa al stock del
// producto y deja la asignación en estado returned.
func (uc *UseCase) Return(ctx context.Context, scopeOwnerID, actorID, id string) (*dto.AssignmentResponse, error) {
	var out *dto.AssignmentResponse
	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		assignments repository.AssignmentRepository,
		_ repository.SaleRepository,
		history repository.HistoryRepository,
	) error {
		a, err := assignments.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if a == nil || !visibleTo(scopeOwnerID, a.OwnerID) {
			return domain.ErrNotFound
		}
		if a.Status != entity.AssignmentActive {
			return domain.ErrConflict
		}

		product, err := products.GetByIDForUpdate(ctx, a.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		now := time.Now()
		returned := a.Remaining
		product.Stock = product.Stock.Add(returned)
		product.UpdatedAt = now
		if err := products.Update(ctx, product); err != nil {
			return err
		}

		a.Remaining = a.Remaining.Sub(returned)
		a.Status = entity.AssignmentReturned
		a.UpdatedAt = now
		if err := assignments.Update(ctx, a); err != nil {
			return err
		}

		entry := &entity.HistoryEntry{
			ID:         uuid.New().String(),
			OwnerID:    a.OwnerID,
			ActorID:    actorID,
			Action:     entity.ActionReturned,
			EntityType: "assignment",
			EntityID:   a.ID,
			Detail: map[string]any{
				"product_id": a.ProductID,
				"returned":   returned.String(),
			},
			CreatedAt: now,
		}
		if err := history.Create(ctx, entry); err != nil {
			return err
		}
		out = toResponse(a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID obtiene una asignación visible para el alcance.
func (uc *UseCase) GetByID(ctx context.Context, scopeOwnerID, id string) (*dto.AssignmentResponse, error) {
	a, err := uc.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil || !visibleTo(scopeOwnerID, a.OwnerID) {
		return nil, nil
	}
	return toResponse(a), nil
}

// List lista asignaciones del alcance con paginación.
func (uc *UseCase) List(ctx context.Context, scopeOwnerID string, limit, offset int) (*dto.AssignmentListResponse, error) {
	list, err := uc.assignmentRepo.List(ctx, scopeOwnerID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AssignmentResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toResponse(a))
	}
	return &dto.AssignmentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func visibleTo(scopeOwnerID, recordOwnerID string) bool {
	return scopeOwnerID == "" || scopeOwnerID == recordOwnerID
}

func toResponse(a *entity.Assignment) *dto.AssignmentResponse {
	if a == nil {
		return nil
	}
	return &dto.AssignmentResponse{
		ID:        a.ID,
		OwnerID:   a.OwnerID,
		SellerID:  a.SellerID,
		ProductID: a.ProductID,
		Quantity:  a.Quantity,
		Remaining: a.Remaining,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
