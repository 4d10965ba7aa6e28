package settings_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocker-app/stocker-api/internal/application/settings"
	"github.com/stocker-app/stocker-api/internal/domain"
	"github.com/stocker-app/stocker-api/internal/domain/display"
	"github.com/stocker-app/stocker-api/internal/domain/entity"
)

const testUserID = "00000000-0000-0000-0000-000000000001"

// ──────────────────────────────────────────────────────────────────────────────
// Fake del repositorio de preferencias
// ──────────────────────────────────────────────────────────────────────────────

// fakeSettingsRepo repo en memoria con ganchos para simular errores y la
// carrera de primera creación.
type fakeSettingsRepo struct {
	stored *entity.Settings
	// winner simula que otro request creó el registro primero: Create falla
	// con ErrDuplicate y deja este registro visible para la relectura.
	winner  *entity.Settings
	getErr  error
	creates int
	updates int
}

func (r *fakeSettingsRepo) GetByUserID(_ context.Context, userID string) (*entity.Settings, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	if r.stored != nil && r.stored.UserID == userID {
		return r.stored, nil
	}
	return nil, nil
}

func (r *fakeSettingsRepo) Create(_ context.Context, s *entity.Settings) error {
	r.creates++
	if r.winner != nil {
		r.stored = r.winner
		return domain.ErrDuplicate
	}
	r.stored = s
	return nil
}

func (r *fakeSettingsRepo) Update(_ context.Context, s *entity.Settings) error {
	r.updates++
	r.stored = s
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación perezosa
// ──────────────────────────────────────────────────────────────────────────────

func TestGetOrCreate_PrimerAccesoSiembraDefaults(t *testing.T) {
	repo := &fakeSettingsRepo{}
	uc := settings.NewUseCase(repo)

	s, err := uc.GetOrCreate(context.Background(), testUserID)
	require.NoError(t, err)
	require.NotNil(t, s)

	assert.Equal(t, 1, repo.creates, "el primer acceso debe crear el registro")
	assert.Equal(t, testUserID, s.UserID)
	assert.Equal(t, display.DefaultPageSize, s.PageSize)
	assert.Equal(t, display.DefaultAll(), s.Columns,
		"el registro nuevo debe sembrarse con las columnas por defecto")
}

func TestGetOrCreate_RegistroExistenteNoCrea(t *testing.T) {
	existing := &entity.Settings{
		ID:       "s-1",
		UserID:   testUserID,
		Columns:  map[string][]string{display.TableProducts: {"sku"}},
		PageSize: 25,
	}
	repo := &fakeSettingsRepo{stored: existing}
	uc := settings.NewUseCase(repo)

	s, err := uc.GetOrCreate(context.Background(), testUserID)
	require.NoError(t, err)

	assert.Equal(t, 0, repo.creates, "con registro existente no debe crearse otro")
	assert.Equal(t, existing, s)
}

// TestGetOrCreate_CarreraDeCreacionRecupera simula que dos requests compiten
// por la primera creación: el perdedor recibe ErrDuplicate del constraint
// único y debe releer el registro del ganador sin propagar el error.
func TestGetOrCreate_CarreraDeCreacionRecupera(t *testing.T) {
	winner := &entity.Settings{
		ID:       "s-ganador",
		UserID:   testUserID,
		Columns:  display.DefaultAll(),
		PageSize: display.DefaultPageSize,
	}
	repo := &fakeSettingsRepo{winner: winner}
	uc := settings.NewUseCase(repo)

	s, err := uc.GetOrCreate(context.Background(), testUserID)
	require.NoError(t, err, "la carrera de creación no debe llegar al caller")
	assert.Equal(t, winner.ID, s.ID, "debe devolverse el registro del ganador")
	assert.Equal(t, 1, repo.creates)
}

func TestGetOrCreate_ErrorDeLecturaSePropaga(t *testing.T) {
	repo := &fakeSettingsRepo{getErr: errors.New("db caída")}
	uc := settings.NewUseCase(repo)

	_, err := uc.GetOrCreate(context.Background(), testUserID)
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// SetColumns
// ──────────────────────────────────────────────────────────────────────────────

func TestSetColumns_TablaDesconocida(t *testing.T) {
	repo := &fakeSettingsRepo{}
	uc := settings.NewUseCase(repo)

	_, err := uc.SetColumns(context.Background(), testUserID, "facturas", []string{"total"})
	assert.ErrorIs(t, err, domain.ErrUnknownTable)
	assert.Equal(t, 0, repo.updates, "con tabla desconocida no debe escribirse nada")
}

func TestSetColumns_ListaVaciaRechazada(t *testing.T) {
	existing := &entity.Settings{
		ID:       "s-1",
		UserID:   testUserID,
		Columns:  map[string][]string{display.TableProducts: {"sku", "name"}},
		PageSize: 10,
	}
	repo := &fakeSettingsRepo{stored: existing}
	uc := settings.NewUseCase(repo)

	_, err := uc.SetColumns(context.Background(), testUserID, display.TableProducts, nil)
	assert.ErrorIs(t, err, domain.ErrEmptyColumns)
	assert.Equal(t, []string{"sku", "name"}, repo.stored.Columns[display.TableProducts],
		"la lista guardada debe conservarse intacta")
}

func TestSetColumns_GuardaYDevuelveLasEfectivas(t *testing.T) {
	repo := &fakeSettingsRepo{}
	uc := settings.NewUseCase(repo)

	out, err := uc.SetColumns(context.Background(), testUserID, display.TableClients, []string{"name", "phone"})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.updates)
	assert.Equal(t, []string{"name", "phone"}, out.Columns[display.TableClients])
	// Las demás tablas siguen mostrando sus defaults.
	assert.Equal(t, display.DefaultColumns(display.TableSales), out.Columns[display.TableSales])
}

// ──────────────────────────────────────────────────────────────────────────────
// SetPageSize y PageSize
// ──────────────────────────────────────────────────────────────────────────────

func TestSetPageSize_ValorNoAdmitido(t *testing.T) {
	repo := &fakeSettingsRepo{}
	uc := settings.NewUseCase(repo)

	_, err := uc.SetPageSize(context.Background(), testUserID, 17)
	assert.ErrorIs(t, err, domain.ErrInvalidPageSize)
	assert.Equal(t, 0, repo.updates)
}

func TestSetPageSize_ValorAdmitido(t *testing.T) {
	repo := &fakeSettingsRepo{}
	uc := settings.NewUseCase(repo)

	out, err := uc.SetPageSize(context.Background(), testUserID, 50)
	require.NoError(t, err)
	assert.Equal(t, 50, out.PageSize)
	assert.Equal(t, 1, repo.updates)
}

func TestPageSize_DevuelveElPreferido(t *testing.T) {
	repo := &fakeSettingsRepo{stored: &entity.Settings{
		ID:        "s-1",
		UserID:    testUserID,
		Columns:   display.DefaultAll(),
		PageSize:  100,
		CreatedAt: time.Now(),
	}}
	uc := settings.NewUseCase(repo)

	assert.Equal(t, 100, uc.PageSize(context.Background(), testUserID))
}

// TestPageSize_CaeAlDefaultAnteError un error de lectura no debe romper los
// listados: se pagina con el valor por defecto.
func TestPageSize_CaeAlDefaultAnteError(t *testing.T) {
	repo := &fakeSettingsRepo{getErr: errors.New("db caída")}
	uc := settings.NewUseCase(repo)

	assert.Equal(t, display.DefaultPageSize, uc.PageSize(context.Background(), testUserID))
}
