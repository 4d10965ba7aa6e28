package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocker-app/stocker-api/internal/application/dto"
	"github.com/stocker-app/stocker-api/internal/application/usecase"
	"github.com/stocker-app/stocker-api/internal/domain"
	"github.com/stocker-app/stocker-api/internal/domain/entity"
	"github.com/stocker-app/stocker-api/internal/domain/repository"
)

const (
	ownerA   = "00000000-0000-0000-0000-0000000000aa"
	ownerB   = "00000000-0000-0000-0000-0000000000bb"
	actorID  = "00000000-0000-0000-0000-000000000001"
	adminAll = "" // alcance vacío: admin ve todo
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	byID map[string]*entity.Product
	// skuErr fuerza un error en GetByOwnerAndSKU (DB caída).
	skuErr error
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{byID: make(map[string]*entity.Product)}
	for _, p := range products {
		cp := *p
		r.byID[p.ID] = &cp
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.byID[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.byID[id], nil
}

func (r *fakeProductRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProductRepo) GetByOwnerAndSKU(_ context.Context, ownerID, sku string) (*entity.Product, error) {
	if r.skuErr != nil {
		return nil, r.skuErr
	}
	for _, p := range r.byID {
		if p.OwnerID == ownerID && p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.byID[p.ID] = p
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, ownerID string, _, _ int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.byID {
		if ownerID == "" || p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

type fakeHistoryRepo struct {
	entries []*entity.HistoryEntry
}

func (r *fakeHistoryRepo) Create(_ context.Context, e *entity.HistoryEntry) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *fakeHistoryRepo) List(_ context.Context, ownerID string, _, _ int) ([]*entity.HistoryEntry, error) {
	var out []*entity.HistoryEntry
	for _, e := range r.entries {
		if ownerID == "" || e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeHistoryRepo) lastAction() string {
	if len(r.entries) == 0 {
		return ""
	}
	return r.entries[len(r.entries)-1].Action
}

// fakeTxRunner ejecuta el callback directo contra los fakes, sin transacción.
type fakeTxRunner struct {
	products *fakeProductRepo
	history  *fakeHistoryRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	repository.ProductRepository,
	repository.AssignmentRepository,
	repository.SaleRepository,
	repository.HistoryRepository,
) error) error {
	return fn(r.products, nil, nil, r.history)
}

func newProductUC(repo *fakeProductRepo, history *fakeHistoryRepo) *usecase.ProductUseCase {
	return usecase.NewProductUseCase(repo, history, &fakeTxRunner{products: repo, history: history})
}

func productOf(owner, sku string, stock int64) *entity.Product {
	now := time.Now()
	return &entity.Product{
		ID:        "prod-" + owner + "-" + sku,
		OwnerID:   owner,
		SKU:       sku,
		Name:      "Producto " + sku,
		Price:     decimal.NewFromInt(100),
		Stock:     decimal.NewFromInt(stock),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_OK(t *testing.T) {
	repo := newFakeProductRepo()
	history := &fakeHistoryRepo{}
	uc := newProductUC(repo, history)

	out, err := uc.Create(context.Background(), ownerA, actorID, dto.CreateProductRequest{
		SKU:   "CAF-001",
		Name:  "Café molido 500g",
		Price: decimal.NewFromInt(120),
		Stock: decimal.NewFromInt(30),
	})
	require.NoError(t, err)

	assert.Equal(t, ownerA, out.OwnerID)
	assert.True(t, out.Stock.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, entity.ActionCreated, history.lastAction(), "el alta debe quedar en el historial")
}

func TestProductCreate_SKUDuplicadoDentroDelOwner(t *testing.T) {
	repo := newFakeProductRepo(productOf(ownerA, "CAF-001", 10))
	uc := newProductUC(repo, &fakeHistoryRepo{})

	_, err := uc.Create(context.Background(), ownerA, actorID, dto.CreateProductRequest{
		SKU:   "CAF-001",
		Name:  "Otro café",
		Price: decimal.NewFromInt(90),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// El mismo SKU en otro owner no es conflicto: la unicidad es por owner.
func TestProductCreate_MismoSKUEnOtroOwner(t *testing.T) {
	repo := newFakeProductRepo(productOf(ownerB, "CAF-001", 10))
	uc := newProductUC(repo, &fakeHistoryRepo{})

	_, err := uc.Create(context.Background(), ownerA, actorID, dto.CreateProductRequest{
		SKU:   "CAF-001",
		Name:  "Café propio",
		Price: decimal.NewFromInt(90),
	})
	assert.NoError(t, err)
}

// Un fallo al consultar el SKU no puede confundirse con "no hay duplicado":
// el error se propaga y no se intenta el alta.
func TestProductCreate_ErrorAlVerificarSKUSePropaga(t *testing.T) {
	repo := newFakeProductRepo()
	repo.skuErr = errors.New("db caída")
	uc := newProductUC(repo, &fakeHistoryRepo{})

	_, err := uc.Create(context.Background(), ownerA, actorID, dto.CreateProductRequest{
		SKU:   "CAF-001",
		Name:  "Café molido 500g",
		Price: decimal.NewFromInt(120),
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrDuplicate, "un error de lectura no es un duplicado")
	assert.Empty(t, repo.byID, "no debe crearse el producto")
}

func TestProductCreate_EntradaInvalida(t *testing.T) {
	uc := newProductUC(newFakeProductRepo(), &fakeHistoryRepo{})
	ctx := context.Background()

	_, err := uc.Create(ctx, ownerA, actorID, dto.CreateProductRequest{SKU: "", Name: "Sin SKU"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, ownerA, actorID, dto.CreateProductRequest{
		SKU: "X", Name: "Precio negativo", Price: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Alcance de visibilidad
// ──────────────────────────────────────────────────────────────────────────────

// Un registro de otro owner se responde como inexistente, nunca se filtra.
func TestProductGetByID_OtroOwnerComoInexistente(t *testing.T) {
	p := productOf(ownerB, "CAF-001", 10)
	uc := newProductUC(newFakeProductRepo(p), &fakeHistoryRepo{})

	got, err := uc.GetByID(context.Background(), ownerA, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "un producto ajeno no debe ser visible")

	// El admin (alcance vacío) sí lo ve.
	got, err = uc.GetByID(context.Background(), adminAll, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.ID, got.ID)
}

func TestProductDelete_OtroOwner(t *testing.T) {
	p := productOf(ownerB, "CAF-001", 10)
	repo := newFakeProductRepo(p)
	uc := newProductUC(repo, &fakeHistoryRepo{})

	err := uc.Delete(context.Background(), ownerA, actorID, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	stored, _ := repo.GetByID(context.Background(), p.ID)
	assert.NotNil(t, stored, "el producto ajeno debe seguir existiendo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Update y AdjustStock
// ──────────────────────────────────────────────────────────────────────────────

func TestProductUpdate_PrecioNegativoRechazado(t *testing.T) {
	p := productOf(ownerA, "CAF-001", 10)
	uc := newProductUC(newFakeProductRepo(p), &fakeHistoryRepo{})

	negative := decimal.NewFromInt(-5)
	_, err := uc.Update(context.Background(), ownerA, actorID, p.ID, dto.UpdateProductRequest{Price: &negative})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUpdate_Parcial(t *testing.T) {
	p := productOf(ownerA, "CAF-001", 10)
	uc := newProductUC(newFakeProductRepo(p), &fakeHistoryRepo{})

	name := "Café premium"
	out, err := uc.Update(context.Background(), ownerA, actorID, p.ID, dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Café premium", out.Name)
	assert.True(t, out.Price.Equal(p.Price), "los campos no enviados se conservan")
	assert.True(t, out.Stock.Equal(p.Stock), "el stock no se toca por Update")
}

func TestAdjustStock_DeltaPositivo(t *testing.T) {
	p := productOf(ownerA, "CAF-001", 10)
	history := &fakeHistoryRepo{}
	uc := newProductUC(newFakeProductRepo(p), history)

	out, err := uc.AdjustStock(context.Background(), ownerA, actorID, p.ID, dto.AdjustStockRequest{
		Delta:  decimal.NewFromInt(5),
		Reason: "recepción de mercadería",
	})
	require.NoError(t, err)

	assert.True(t, out.Stock.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, entity.ActionAdjusted, history.lastAction())
}

func TestAdjustStock_NoDejaStockNegativo(t *testing.T) {
	p := productOf(ownerA, "CAF-001", 3)
	repo := newFakeProductRepo(p)
	uc := newProductUC(repo, &fakeHistoryRepo{})

	_, err := uc.AdjustStock(context.Background(), ownerA, actorID, p.ID, dto.AdjustStockRequest{
		Delta: decimal.NewFromInt(-4),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	stored, _ := repo.GetByID(context.Background(), p.ID)
	assert.True(t, stored.Stock.Equal(decimal.NewFromInt(3)), "el stock debe quedar intacto")
}

func TestAdjustStock_DeltaCeroRechazado(t *testing.T) {
	p := productOf(ownerA, "CAF-001", 3)
	uc := newProductUC(newFakeProductRepo(p), &fakeHistoryRepo{})

	_, err := uc.AdjustStock(context.Background(), ownerA, actorID, p.ID, dto.AdjustStockRequest{
		Delta: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
