package usecase

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

// ProductUseCase casos de uso CRUD para productos. El stock solo se mueve
// vía ventas, asignaciones o el ajuste explícito AdjustStock.
type ProductUseCase struct {
	repo        repository.ProductRepository
	historyRepo repository.HistoryRepository
	txRunner    TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, historyRepo repository.HistoryRepository, txRunner TxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, historyRepo: historyRepo, txRunner: txRunner}
}

// Create crea un producto para el owner. SKU duplicado dentro del owner
// devuelve ErrDuplicate.
func (uc *ProductUseCase) Create(ctx context.Context, ownerID, actorID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.Stock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByOwnerAndSKU(ctx, ownerID, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.appendHistory(ctx, ownerID, actorID, entity.ActionCreated, product.ID, map[string]any{"sku": product.SKU})
	return toProductResponse(product), nil
}

// GetByID obtiene un producto visible para el alcance dado. Un registro de
// otro owner se responde como inexistente, nunca se filtra su contenido.
func (uc *ProductUseCase) GetByID(ctx context.Context, scopeOwnerID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || !visibleTo(scopeOwnerID, product.OwnerID) {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza nombre, descripción o precio. Stock no se toca aquí.
func (uc *ProductUseCase) Update(ctx context.Context, scopeOwnerID, actorID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || !visibleTo(scopeOwnerID, product.OwnerID) {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.appendHistory(ctx, product.OwnerID, actorID, entity.ActionUpdated, product.ID, map[string]any{"sku": product.SKU})
	return toProductResponse(product), nil
}

// AdjustStock aplica un delta manual al stock dentro de una transacción con
// la fila bloqueada. No permite dejar el stock negativo.
func (uc *ProductUseCase) AdjustStock(ctx context.Context, scopeOwnerID, actorID, id string, in dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	if in.Delta.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.ProductResponse
	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		_ repository.AssignmentRepository,
		_ repository.SaleRepository,
		history repository.HistoryRepository,
	) error {
		product, err := products.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil || !visibleTo(scopeOwnerID, product.OwnerID) {
			return domain.ErrNotFound
		}
		next := product.Stock.Add(in.Delta)
		if next.IsNegative() {
			return domain.ErrInsufficientStock
		}
		product.Stock = next
		product.UpdatedAt = time.Now()
		if err := products.Update(ctx, product); err != nil {
			return err
		}
		entry := &entity.HistoryEntry{
			ID:         uuid.New().String(),
			OwnerID:    product.OwnerID,
			ActorID:    actorID,
			Action:     entity.ActionAdjusted,
			EntityType: "product",
			EntityID:   product.ID,
			Detail:     map[string]any{"delta": in.Delta.String(), "reason": in.Reason, "stock": next.String()},
			CreatedAt:  time.Now(),
		}
		if err := history.Create(ctx, entry); err != nil {
			return err
		}
		out = toProductResponse(product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List lista productos del alcance con paginación.
func (uc *ProductUseCase) List(ctx context.Context, scopeOwnerID string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx, scopeOwnerID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto del alcance.
func (uc *ProductUseCase) Delete(ctx context.Context, scopeOwnerID, actorID, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil || !visibleTo(scopeOwnerID, product.OwnerID) {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.appendHistory(ctx, product.OwnerID, actorID, entity.ActionDeleted, product.ID, map[string]any{"sku": product.SKU})
	return nil
}

func (uc *ProductUseCase) appendHistory(ctx context.Context, ownerID, actorID, action, entityID string, detail map[string]any) {
	entry := &entity.HistoryEntry{
		ID:         uuid.New().String(),
		OwnerID:    ownerID,
		ActorID:    actorID,
		Action:     action,
		EntityType: "product",
		EntityID:   entityID,
		Detail:     detail,
		CreatedAt:  time.Now(),
	}
	_ = uc.historyRepo.Create(ctx, entry) // best-effort, no bloquea la operación
}

// visibleTo aplica la regla de alcance: scope vacío (admin) ve todo; en otro
// caso solo registros del mismo owner.
func visibleTo(scopeOwnerID, recordOwnerID string) bool {
	return scopeOwnerID == "" || scopeOwnerID == recordOwnerID
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
