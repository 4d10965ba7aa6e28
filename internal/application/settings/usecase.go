// Package settings implementa el almacén de preferencias de visualización
// por usuario: columnas visibles por tabla y tamaño de página, con creación
// perezosa en el primer acceso y recuperación de la carrera de creación
// concurrente vía el constraint único de user_id.
package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/stocker-app/stocker-api/internal/application/dto"
	"github.com/stocker-app/stocker-api/internal/domain"
	"github.com/stocker-app/stocker-api/internal/domain/display"
	"github.com/stocker-app/stocker-api/internal/domain/entity"
	"github.com/stocker-app/stocker-api/internal/domain/repository"
)

// UseCase casos de uso de preferencias de visualización.
type UseCase struct {
	repo repository.SettingsRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.SettingsRepository) *UseCase {
	return &UseCase{repo: repo}
}

// GetOrCreate devuelve las preferencias del usuario, creándolas con los
// valores por defecto en el primer acceso. Si dos requests compiten por la
// primera creación, el perdedor detecta el duplicado (unique_violation) y
// relee el registro que dejó el ganador; la carrera nunca llega al caller.
func (uc *UseCase) GetOrCreate(ctx context.Context, userID string) (*entity.Settings, error) {
	s, err := uc.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("leer preferencias: %w", err)
	}
	if s != nil {
		return s, nil
	}

	now := time.Now()
	fresh := &entity.Settings{
		ID:        uuid.New().String(),
		UserID:    userID,
		Columns:   display.DefaultAll(),
		PageSize:  display.DefaultPageSize,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = uc.repo.Create(ctx, fresh)
	if err == nil {
		return fresh, nil
	}
	if !errors.Is(err, domain.ErrDuplicate) {
		return nil, fmt.Errorf("crear preferencias: %w", err)
	}

	// Otro request creó el registro primero: recuperar releyendo.
	log.Debug().Str("user_id", userID).Msg("carrera de creación de preferencias recuperada")
	s, err = uc.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("releer preferencias: %w", err)
	}
	if s == nil {
		return nil, fmt.Errorf("preferencias de %s: duplicado reportado pero el registro no existe", userID)
	}
	return s, nil
}

// Get devuelve las preferencias efectivas del usuario como DTO.
func (uc *UseCase) Get(ctx context.Context, userID string) (*dto.SettingsResponse, error) {
	s, err := uc.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toResponse(s), nil
}

// SetColumns reemplaza la lista de columnas visibles de una tabla. Rechaza
// tablas desconocidas y listas vacías; en ese caso la lista guardada se
// conserva intacta.
func (uc *UseCase) SetColumns(ctx context.Context, userID, table string, columns []string) (*dto.SettingsResponse, error) {
	if !display.ValidTable(table) {
		return nil, domain.ErrUnknownTable
	}
	if len(columns) == 0 {
		return nil, domain.ErrEmptyColumns
	}
	s, err := uc.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s.Columns == nil {
		s.Columns = make(map[string][]string)
	}
	s.Columns[table] = columns
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, fmt.Errorf("guardar columnas: %w", err)
	}
	return toResponse(s), nil
}

// SetPageSize cambia el tamaño de página. Solo se aceptan 10, 25, 50 y 100.
func (uc *UseCase) SetPageSize(ctx context.Context, userID string, size int) (*dto.SettingsResponse, error) {
	if !display.ValidPageSize(size) {
		return nil, domain.ErrInvalidPageSize
	}
	s, err := uc.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.PageSize = size
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, fmt.Errorf("guardar tamaño de página: %w", err)
	}
	return toResponse(s), nil
}

// PageSize devuelve el tamaño de página preferido del usuario; ante un error
// de lectura cae al valor por defecto en vez de romper el listado.
func (uc *UseCase) PageSize(ctx context.Context, userID string) int {
	s, err := uc.GetOrCreate(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("no se pudo leer el tamaño de página preferido")
		return display.DefaultPageSize
	}
	return s.PageSize
}

// toResponse arma el DTO con las columnas efectivas por tabla: la lista
// guardada, o la de defecto cuando la guardada falta o quedó vacía.
func toResponse(s *entity.Settings) *dto.SettingsResponse {
	columns := make(map[string][]string, len(display.Tables()))
	for _, table := range display.Tables() {
		columns[table] = display.VisibleColumns(s, table)
	}
	return &dto.SettingsResponse{
		UserID:   s.UserID,
		Columns:  columns,
		PageSize: s.PageSize,
	}
}
