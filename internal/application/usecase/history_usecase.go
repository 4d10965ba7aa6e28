package usecase

import (
	"context"

	"github.com/stocker-app/stocker-api/internal/application/dto"
	"github.com/stocker-app/stocker-api/internal/domain/repository"
)

// HistoryUseCase lectura del registro de actividad (append-only).
type HistoryUseCase struct {
	repo repository.HistoryRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(repo repository.HistoryRepository) *HistoryUseCase {
	return &HistoryUseCase{repo: repo}
}

// List lista entradas del alcance, más recientes primero.
func (uc *HistoryUseCase) List(ctx context.Context, scopeOwnerID string, limit, offset int) (*dto.HistoryListResponse, error) {
	list, err := uc.repo.List(ctx, scopeOwnerID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.HistoryEntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, dto.HistoryEntryResponse{
			ID:         e.ID,
			OwnerID:    e.OwnerID,
			ActorID:    e.ActorID,
			Action:     e.Action,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Detail:     e.Detail,
			CreatedAt:  e.CreatedAt,
		})
	}
	return &dto.HistoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}
