package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocker-app/stocker-api/internal/application/dto"
	"github.com/stocker-app/stocker-api/internal/application/sales"
	"github.com/stocker-app/stocker-api/internal/domain"
	"github.com/stocker-app/stocker-api/internal/domain/entity"
	"github.com/stocker-app/stocker-api/internal/domain/repository"
)

const (
	ownerA     = "00000000-0000-0000-0000-0000000000aa"
	ownerB     = "00000000-0000-0000-0000-0000000000bb"
	sellerID   = "00000000-0000-0000-0000-000000000051"
	otroSeller = "00000000-0000-0000-0000-000000000052"
	clientID   = "00000000-0000-0000-0000-0000000000c1"
	productID  = "00000000-0000-0000-0000-0000000000p1"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	byID map[string]*entity.Product
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
func (r *fakeProductRepo) List(_ context.Context, _ string, _, _ int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

type fakeAssignmentRepo struct {
	byID map[string]*entity.Assignment
}

func (r *fakeAssignmentRepo) Create(_ context.Context, a *entity.Assignment) error {
	r.byID[a.ID] = a
	return nil
}
func (r *fakeAssignmentRepo) GetByID(_ context.Context, id string) (*entity.Assignment, error) {
	return r.byID[id], nil
}
func (r *fakeAssignmentRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Assignment, error) {
	return r.GetByID(ctx, id)
}
func (r *fakeAssignmentRepo) Update(_ context.Context, a *entity.Assignment) error {
	r.byID[a.ID] = a
	return nil
}
func (r *fakeAssignmentRepo) List(_ context.Context, _ string, _, _ int) ([]*entity.Assignment, error) {
	return nil, nil
}

type fakeSaleRepo struct {
	sales []*entity.Sale
}

func (r *fakeSaleRepo) Create(_ context.Context, s *entity.Sale) error {
	r.sales = append(r.sales, s)
	return nil
}
func (r *fakeSaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	for _, s := range r.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}
func (r *fakeSaleRepo) List(_ context.Context, ownerID string, _, _ int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.sales {
		if ownerID == "" || s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeClientRepo struct {
	byID map[string]*entity.Client
}

func (r *fakeClientRepo) Create(_ context.Context, c *entity.Client) error {
	r.byID[c.ID] = c
	return nil
}
func (r *fakeClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	return r.byID[id], nil
}
func (r *fakeClientRepo) Update(_ context.Context, c *entity.Client) error {
	r.byID[c.ID] = c
	return nil
}
func (r *fakeClientRepo) List(_ context.Context, _ string, _, _ int) ([]*entity.Client, error) {
	return nil, nil
}
func (r *fakeClientRepo) Delete(_ context.Context, id string) error {
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
func (r *fakeHistoryRepo) List(_ context.Context, _ string, _, _ int) ([]*entity.HistoryEntry, error) {
	return r.entries, nil
}

// fakeTxRunner ejecuta el callback directo contra los fakes, sin transacción.
type fakeTxRunner struct {
	products    *fakeProductRepo
	assignments *fakeAssignmentRepo
	sales       *fakeSaleRepo
	history     *fakeHistoryRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	repository.ProductRepository,
	repository.AssignmentRepository,
	repository.SaleRepository,
	repository.HistoryRepository,
) error) error {
	return fn(r.products, r.assignments, r.sales, r.history)
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado del escenario
// ──────────────────────────────────────────────────────────────────────────────

type saleFixture struct {
	uc          *sales.CreateSaleUseCase
	products    *fakeProductRepo
	assignments *fakeAssignmentRepo
	sales       *fakeSaleRepo
	history     *fakeHistoryRepo
}

// newSaleFixture deja listo un producto de ownerA con stock 10 a $150 y un
// cliente del mismo owner.
func newSaleFixture() *saleFixture {
	now := time.Now()
	products := &fakeProductRepo{byID: map[string]*entity.Product{
		productID: {
			ID:        productID,
			OwnerID:   ownerA,
			SKU:       "CAF-001",
			Name:      "Café molido 500g",
			Price:     decimal.NewFromInt(150),
			Stock:     decimal.NewFromInt(10),
			CreatedAt: now,
			UpdatedAt: now,
		},
	}}
	clients := &fakeClientRepo{byID: map[string]*entity.Client{
		clientID: {ID: clientID, OwnerID: ownerA, Name: "Cliente de prueba"},
	}}
	assignments := &fakeAssignmentRepo{byID: make(map[string]*entity.Assignment)}
	salesRepo := &fakeSaleRepo{}
	history := &fakeHistoryRepo{}
	tx := &fakeTxRunner{products: products, assignments: assignments, sales: salesRepo, history: history}
	return &saleFixture{
		uc:          sales.NewCreateSaleUseCase(tx, clients, salesRepo),
		products:    products,
		assignments: assignments,
		sales:       salesRepo,
		history:     history,
	}
}

func (f *saleFixture) addAssignment(seller string, remaining int64, status string) *entity.Assignment {
	a := &entity.Assignment{
		ID:        "asg-" + seller,
		OwnerID:   ownerA,
		SellerID:  seller,
		ProductID: productID,
		Quantity:  decimal.NewFromInt(remaining),
		Remaining: decimal.NewFromInt(remaining),
		Status:    status,
	}
	f.assignments.byID[a.ID] = a
	return a
}

// ──────────────────────────────────────────────────────────────────────────────
// Venta de owner desde el stock general
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_OwnerDescuentaStock(t *testing.T) {
	f := newSaleFixture()

	out, err := f.uc.Create(context.Background(), ownerA, entity.RoleOwner, ownerA, dto.CreateSaleRequest{
		ClientID:  clientID,
		ProductID: productID,
		Quantity:  decimal.NewFromInt(3),
		UnitPrice: decimal.NewFromInt(140),
	})
	require.NoError(t, err)

	assert.True(t, out.Total.Equal(decimal.NewFromInt(420)), "Total = Quantity × UnitPrice")
	assert.Nil(t, out.AssignmentID)

	product := f.products.byID[productID]
	assert.True(t, product.Stock.Equal(decimal.NewFromInt(7)), "el stock debe descontarse")

	require.Len(t, f.history.entries, 1)
	assert.Equal(t, entity.ActionSold, f.history.entries[0].Action)
}

// Sin precio explícito se usa el precio vigente del producto.
func TestCreateSale_PrecioPorDefectoDelProducto(t *testing.T) {
	f := newSaleFixture()

	out, err := f.uc.Create(context.Background(), ownerA, entity.RoleOwner, ownerA, dto.CreateSaleRequest{
		ClientID:  clientID,
		ProductID: productID,
		Quantity:  decimal.NewFromInt(2),
	})
	require.NoError(t, err)

	assert.True(t, out.UnitPrice.Equal(decimal.NewFromInt(150)))
	assert.True(t, out.Total.Equal(decimal.NewFromInt(300)))
}

func TestCreateSale_StockInsuficiente(t *testing.T) {
	f := newSaleFixture()

	_, err := f.uc.Create(context.Background(), ownerA, entity.RoleOwner, ownerA, dto.CreateSaleRequest{
		ClientID:  clientID,
		ProductID: productID,
		Quantity:  decimal.NewFromInt(11),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, f.sales.sales, "no debe registrarse ninguna venta")
}

func TestCreateSale_CantidadNoPositiva(t *testing.T) {
	f := newSaleFixture()

	_, err := f.uc.Create(context.Background(), ownerA, entity.RoleOwner, ownerA, dto.CreateSaleRequest{
		ClientID:  clientID,
		ProductID: productID,
		Quantity:  decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateSale_ClienteDeOtroOwner(t *testing.T) {
	f := newSaleFixture()

	// ownerB no ve al cliente de ownerA: para él no existe.
	_, err := f.uc.Create(context.Background(), ownerB, entity.RoleOwner, ownerB, dto.CreateSaleRequest{
		ClientID:  clientID,
		ProductID: productID,
		Quantity:  decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Venta de seller desde una asignación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_SellerSinAsignacionProhibido(t *testing.T) {
	f := newSaleFixture()

	_, err := f.uc.Create(context.Background(), sellerID, entity.RoleSeller, ownerA, dto.CreateSaleRequest{
		ClientID:  clientID,
		ProductID: productID,
		Quantity:  decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden, "un seller solo vende mercancía consignada")
}

func TestCreateSale_SellerDescuentaRemanente(t *testing.T) {
	f := newSaleFixture()
	a := f.addAssignment(sellerID, 5, entity.AssignmentActive)

	out, err := f.uc.Create(context.Background(), sellerID, entity.RoleSeller, ownerA, dto.CreateSaleRequest{
		ClientID:     clientID,
		ProductID:    productID,
		AssignmentID: &a.ID,
		Quantity:     decimal.NewFromInt(2),
	})
	require.NoError(t, err)

	require.NotNil(t, out.AssignmentID)
	assert.Equal(t, a.ID, *out.AssignmentID)
	assert.True(t, a.Remaining.Equal(decimal.NewFromInt(3)), "el remanente debe descontarse")
	assert.Equal(t, entity.AssignmentActive, a.Status, "con remanente > 0 sigue activa")

	product := f.products.byID[productID]
	assert.True(t, product.Stock.Equal(decimal.NewFromInt(10)),
		"la venta consignada no toca el stock general")
}

// Al agotar el remanente la asignación pasa a exhausted.
func TestCreateSale_RemanenteAgotadoPasaAExhausted(t *testing.T) {
	f := newSaleFixture()
	a := f.addAssignment(sellerID, 2, entity.AssignmentActive)

	_, err := f.uc.Create(context.Background(), sellerID, entity.RoleSeller, ownerA, dto.CreateSaleRequest{
		ClientID:     clientID,
		ProductID:    productID,
		AssignmentID: &a.ID,
		Quantity:     decimal.NewFromInt(2),
	})
	require.NoError(t, err)

	assert.True(t, a.Remaining.IsZero())
	assert.Equal(t, entity.AssignmentExhausted, a.Status)
}

func TestCreateSale_RemanenteInsuficiente(t *testing.T) {
	f := newSaleFixture()
	a := f.addAssignment(sellerID, 1, entity.AssignmentActive)

	_, err := f.uc.Create(context.Background(), sellerID, entity.RoleSeller, ownerA, dto.CreateSaleRequest{
		ClientID:     clientID,
		ProductID:    productID,
		AssignmentID: &a.ID,
		Quantity:     decimal.NewFromInt(2),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, a.Remaining.Equal(decimal.NewFromInt(1)), "el remanente debe quedar intacto")
}

func TestCreateSale_AsignacionDeOtroSeller(t *testing.T) {
	f := newSaleFixture()
	a := f.addAssignment(otroSeller, 5, entity.AssignmentActive)

	_, err := f.uc.Create(context.Background(), sellerID, entity.RoleSeller, ownerA, dto.CreateSaleRequest{
		ClientID:     clientID,
		ProductID:    productID,
		AssignmentID: &a.ID,
		Quantity:     decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreateSale_AsignacionAgotadaEsConflicto(t *testing.T) {
	f := newSaleFixture()
	a := f.addAssignment(sellerID, 0, entity.AssignmentExhausted)

	_, err := f.uc.Create(context.Background(), sellerID, entity.RoleSeller, ownerA, dto.CreateSaleRequest{
		ClientID:     clientID,
		ProductID:    productID,
		AssignmentID: &a.ID,
		Quantity:     decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreateSale_AsignacionDeOtroProducto(t *testing.T) {
	f := newSaleFixture()
	a := f.addAssignment(sellerID, 5, entity.AssignmentActive)
	a.ProductID = "otro-producto"

	_, err := f.uc.Create(context.Background(), sellerID, entity.RoleSeller, ownerA, dto.CreateSaleRequest{
		ClientID:     clientID,
		ProductID:    productID,
		AssignmentID: &a.ID,
		Quantity:     decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lectura con alcance
// ──────────────────────────────────────────────────────────────────────────────

func TestSaleGetByID_OtroOwnerComoInexistente(t *testing.T) {
	f := newSaleFixture()

	out, err := f.uc.Create(context.Background(), ownerA, entity.RoleOwner, ownerA, dto.CreateSaleRequest{
		ClientID:  clientID,
		ProductID: productID,
		Quantity:  decimal.NewFromInt(1),
	})
	require.NoError(t, err)

	got, err := f.uc.GetByID(context.Background(), ownerB, out.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "una venta ajena no debe ser visible")

	got, err = f.uc.GetByID(context.Background(), "", out.ID)
	require.NoError(t, err)
	assert.NotNil(t, got, "el admin ve todas las ventas")
}
