package repository

import (
	"context"

	"github.com/stocker-app/stocker-api/internal/domain/entity"
)

// SettingsRepository puerto de persistencia para las preferencias de
// visualización. GetByUserID devuelve (nil, nil) cuando el usuario aún no
// tiene registro. Create devuelve domain.ErrDuplicate si otro request ganó
// la carrera de primera creación (constraint único en user_id).
type SettingsRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entity.Settings, error)
	Create(ctx context.Context, s *entity.Settings) error
	Update(ctx context.Context, s *entity.Settings) error
}
