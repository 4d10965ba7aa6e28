package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/stocker-app/stocker-api/internal/domain"
	"github.com/stocker-app/stocker-api/internal/domain/entity"
	"github.com/stocker-app/stocker-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implementación del puerto SettingsRepository sobre
// PostgreSQL. Las columnas por tabla se guardan como jsonb; el constraint
// único de user_id es la señal con la que se detecta la carrera de primera
// creación.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador de preferencias.
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// GetByUserID obtiene las preferencias del usuario; (nil, nil) si aún no
// tiene registro.
func (r *SettingsRepo) GetByUserID(ctx context.Context, userID string) (*entity.Settings, error) {
	query := `
		SELECT id, user_id, columns, page_size, created_at, updated_at
		FROM settings WHERE user_id = $1`
	var s entity.Settings
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&s.ID, &s.UserID, &s.Columns, &s.PageSize, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// Create inserta el registro de preferencias. Si otro request creó el del
// mismo usuario primero (unique_violation en user_id) devuelve ErrDuplicate
// para que el caso de uso recupere releyendo.
func (r *SettingsRepo) Create(ctx context.Context, s *entity.Settings) error {
	query := `
		INSERT INTO settings (id, user_id, columns, page_size, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.UserID, s.Columns, s.PageSize, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert settings: %w", err)
	}
	return nil
}

// Update reemplaza columnas y tamaño de página del registro del usuario.
func (r *SettingsRepo) Update(ctx context.Context, s *entity.Settings) error {
	query := `
		UPDATE settings SET columns = $2, page_size = $3, updated_at = $4
		WHERE user_id = $1`
	_, err := r.q.Exec(ctx, query, s.UserID, s.Columns, s.PageSize, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}
