package analytics_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocker-app/stocker-api/internal/application/analytics"
	"github.com/stocker-app/stocker-api/internal/domain/repository"
)

const testOwnerID = "00000000-0000-0000-0000-0000000000aa"

// ──────────────────────────────────────────────────────────────────────────────
// Fake del repositorio de analítica
// ──────────────────────────────────────────────────────────────────────────────

// fakeAnalyticsRepo devuelve valores fijos y registra los períodos pedidos.
type fakeAnalyticsRepo struct {
	todayRevenue decimal.Decimal
	todayUnits   decimal.Decimal
	monthRevenue decimal.Decimal
	monthUnits   decimal.Decimal
	top          []repository.TopProductResult
	sellers      int
	lowStock     []repository.LowStockResult

	metricsErr error

	// mu protege ranges: el caso de uso consulta en paralelo.
	mu     sync.Mutex
	ranges [][2]time.Time
}

func (r *fakeAnalyticsRepo) GetSalesMetrics(_ context.Context, _ string, start, end time.Time) (decimal.Decimal, decimal.Decimal, error) {
	if r.metricsErr != nil {
		return decimal.Zero, decimal.Zero, r.metricsErr
	}
	r.mu.Lock()
	r.ranges = append(r.ranges, [2]time.Time{start, end})
	r.mu.Unlock()
	// El período de un día es "hoy"; el resto, el mes en curso.
	if end.Sub(start) < 25*time.Hour {
		return r.todayRevenue, r.todayUnits, nil
	}
	return r.monthRevenue, r.monthUnits, nil
}

func (r *fakeAnalyticsRepo) GetTopProducts(_ context.Context, _ string, _, _ time.Time, limit int) ([]repository.TopProductResult, error) {
	if limit < len(r.top) {
		return r.top[:limit], nil
	}
	return r.top, nil
}

func (r *fakeAnalyticsRepo) CountSellersWithActiveAssignments(_ context.Context, _ string) (int, error) {
	return r.sellers, nil
}

func (r *fakeAnalyticsRepo) GetLowStock(_ context.Context, _ string, _ decimal.Decimal, _ int) ([]repository.LowStockResult, error) {
	return r.lowStock, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// GetSummary
// ──────────────────────────────────────────────────────────────────────────────

func TestGetSummary_ArmaElResumen(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		todayRevenue: decimal.RequireFromString("1234.567"),
		todayUnits:   decimal.NewFromInt(8),
		monthRevenue: decimal.RequireFromString("45000.004"),
		monthUnits:   decimal.NewFromInt(230),
		top: []repository.TopProductResult{
			{ProductID: "p-1", Name: "Café molido 500g", Units: decimal.NewFromInt(90), Revenue: decimal.RequireFromString("13500.005")},
			{ProductID: "p-2", Name: "Yerba 1kg", Units: decimal.NewFromInt(60), Revenue: decimal.NewFromInt(9000)},
		},
		sellers: 3,
		lowStock: []repository.LowStockResult{
			{ProductID: "p-9", Name: "Azúcar 1kg", Stock: decimal.NewFromInt(2)},
		},
	}
	uc := analytics.NewDashboardUseCase(repo)

	out, err := uc.GetSummary(context.Background(), testOwnerID)
	require.NoError(t, err)

	// Los montos se redondean a 2 decimales para presentación.
	assert.Equal(t, "1234.57", out.TodayRevenue.String())
	assert.Equal(t, "45000", out.MonthRevenue.String())
	assert.True(t, out.TodayUnits.Equal(decimal.NewFromInt(8)))
	assert.True(t, out.MonthUnits.Equal(decimal.NewFromInt(230)))

	require.Len(t, out.TopProducts, 2)
	assert.Equal(t, "Café molido 500g", out.TopProducts[0].Name)
	assert.Equal(t, "13500.01", out.TopProducts[0].Revenue.String())

	assert.Equal(t, 3, out.ActiveSellers)
	require.Len(t, out.LowStock, 1)
	assert.Equal(t, "Azúcar 1kg", out.LowStock[0].Name)

	assert.NotEmpty(t, out.DateLabel, "el resumen lleva la etiqueta del mes")
}

// TestGetSummary_PeriodosDelDiaYDelMes verifica que las métricas se piden
// para el día en curso y para el mes en curso, no para rangos arbitrarios.
func TestGetSummary_PeriodosDelDiaYDelMes(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	uc := analytics.NewDashboardUseCase(repo)

	_, err := uc.GetSummary(context.Background(), testOwnerID)
	require.NoError(t, err)

	require.Len(t, repo.ranges, 2, "deben pedirse métricas de hoy y del mes")

	now := time.Now()
	for _, r := range repo.ranges {
		start, end := r[0], r[1]
		assert.Equal(t, 0, start.Hour(), "los períodos arrancan a medianoche")
		assert.True(t, end.After(start))
		assert.Equal(t, now.Month(), start.Month(), "ambos períodos caen en el mes en curso")
		assert.Equal(t, now.Day(), end.Day(), "ambos períodos terminan hoy")
	}
}

func TestGetSummary_ErrorDeMetricasSePropaga(t *testing.T) {
	repo := &fakeAnalyticsRepo{metricsErr: errors.New("db caída")}
	uc := analytics.NewDashboardUseCase(repo)

	_, err := uc.GetSummary(context.Background(), testOwnerID)
	assert.Error(t, err)
}

func TestGetSummary_SinDatosDevuelveCeros(t *testing.T) {
	uc := analytics.NewDashboardUseCase(&fakeAnalyticsRepo{})

	out, err := uc.GetSummary(context.Background(), testOwnerID)
	require.NoError(t, err)

	assert.True(t, out.TodayRevenue.IsZero())
	assert.True(t, out.MonthUnits.IsZero())
	assert.Empty(t, out.TopProducts)
	assert.Empty(t, out.LowStock)
	assert.Zero(t, out.ActiveSellers)
}
