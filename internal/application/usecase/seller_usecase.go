package usecase

import (
	"context"
	"time"

	"github.com/stocker-app/stocker-api/internal/application/auth"
	"github.com/stocker-app/stocker-api/internal/application/dto"
	"github.com/stocker-app/stocker-api/internal/domain"
	"github.com/stocker-app/stocker-api/internal/domain/entity"
	"github.com/stocker-app/stocker-api/internal/domain/repository"
)

// SellerUseCase gestión de los sellers de un owner. Las cuentas se crean
// solo vía invitación; aquí se listan, consultan y desactivan.
type SellerUseCase struct {
	userRepo repository.UserRepository
}

// NewSellerUseCase construye el caso de uso.
func NewSellerUseCase(userRepo repository.UserRepository) *SellerUseCase {
	return &SellerUseCase{userRepo: userRepo}
}

// List lista los sellers del owner con paginación.
func (uc *SellerUseCase) List(ctx context.Context, ownerID string, limit, offset int) (*dto.SellerListResponse, error) {
	list, err := uc.userRepo.ListSellers(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *auth.ToUserResponse(u))
	}
	return &dto.SellerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// GetByID obtiene un seller del owner.
func (uc *SellerUseCase) GetByID(ctx context.Context, ownerID, id string) (*dto.UserResponse, error) {
	u, err := uc.sellerOf(ctx, ownerID, id)
	if err != nil || u == nil {
		return nil, err
	}
	return auth.ToUserResponse(u), nil
}

// Deactivate marca la cuenta del seller como inactiva; deja de poder entrar
// pero sus registros históricos se conservan.
func (uc *SellerUseCase) Deactivate(ctx context.Context, ownerID, id string) (*dto.UserResponse, error) {
	u, err := uc.sellerOf(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	u.Status = entity.StatusInactive
	u.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(u), nil
}

// sellerOf devuelve el usuario solo si es un seller visible para el owner
// (ownerID vacío = admin, ve todos).
func (uc *SellerUseCase) sellerOf(ctx context.Context, ownerID, id string) (*entity.User, error) {
	u, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil || u.Role != entity.RoleSeller {
		return nil, nil
	}
	if ownerID != "" && (u.OwnerID == nil || *u.OwnerID != ownerID) {
		return nil, nil
	}
	return u, nil
}
