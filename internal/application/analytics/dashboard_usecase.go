// Package analytics contiene el caso de uso del dashboard del owner:
// ventas de hoy y del mes, productos top, sellers con consignación activa
// y productos con stock bajo.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stocker-app/stocker-api/internal/application/dto"
	"github.com/stocker-app/stocker-api/internal/domain/repository"
)

const (
	dashboardTopProducts = 5  // productos en el widget de top del mes
	dashboardLowStockMax = 10 // filas máximas del widget de stock bajo
)

// lowStockThreshold stock igual o inferior a este valor se considera bajo.
var lowStockThreshold = decimal.NewFromInt(5)

// DashboardUseCase genera el resumen del día y del mes en curso.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary construye el DashboardSummaryDTO para el owner indicado.
//
// Cinco llamadas en paralelo:
//  1. GetSalesMetrics(hoy)  → TodayRevenue + TodayUnits
//  2. GetSalesMetrics(mes)  → MonthRevenue + MonthUnits
//  3. GetTopProducts(mes)   → TopProducts
//  4. CountSellersWithActiveAssignments → ActiveSellers
//  5. GetLowStock           → LowStock
func (uc *DashboardUseCase) GetSummary(ctx context.Context, ownerID string) (*dto.DashboardSummaryDTO, error) {
	now := time.Now()

	// Hoy: 00:00:00.000 – 23:59:59.999
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)

	// Mes en curso: día 1 a las 00:00 – hoy a las 23:59:59
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := todayEnd

	type metricsResult struct {
		revenue decimal.Decimal
		units   decimal.Decimal
		err     error
	}
	type topResult struct {
		items []repository.TopProductResult
		err   error
	}
	type countResult struct {
		n   int
		err error
	}
	type lowStockResult struct {
		items []repository.LowStockResult
		err   error
	}

	todayCh := make(chan metricsResult, 1)
	monthCh := make(chan metricsResult, 1)
	topCh := make(chan topResult, 1)
	sellersCh := make(chan countResult, 1)
	lowCh := make(chan lowStockResult, 1)

	go func() {
		rev, units, err := uc.analyticsRepo.GetSalesMetrics(ctx, ownerID, todayStart, todayEnd)
		todayCh <- metricsResult{rev, units, err}
	}()
	go func() {
		rev, units, err := uc.analyticsRepo.GetSalesMetrics(ctx, ownerID, monthStart, monthEnd)
		monthCh <- metricsResult{rev, units, err}
	}()
	go func() {
		items, err := uc.analyticsRepo.GetTopProducts(ctx, ownerID, monthStart, monthEnd, dashboardTopProducts)
		topCh <- topResult{items, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountSellersWithActiveAssignments(ctx, ownerID)
		sellersCh <- countResult{n, err}
	}()
	go func() {
		items, err := uc.analyticsRepo.GetLowStock(ctx, ownerID, lowStockThreshold, dashboardLowStockMax)
		lowCh <- lowStockResult{items, err}
	}()

	today := <-todayCh
	month := <-monthCh
	top := <-topCh
	sellers := <-sellersCh
	low := <-lowCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: métricas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: métricas del mes: %w", month.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: productos top: %w", top.err)
	}
	if sellers.err != nil {
		return nil, fmt.Errorf("dashboard: sellers activos: %w", sellers.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}

	topItems := make([]dto.TopProductDTO, 0, len(top.items))
	for _, p := range top.items {
		topItems = append(topItems, dto.TopProductDTO{
			ProductID: p.ProductID,
			Name:      p.Name,
			Units:     p.Units,
			Revenue:   p.Revenue.Round(2),
		})
	}
	lowItems := make([]dto.LowStockDTO, 0, len(low.items))
	for _, p := range low.items {
		lowItems = append(lowItems, dto.LowStockDTO{
			ProductID: p.ProductID,
			Name:      p.Name,
			Stock:     p.Stock,
		})
	}

	return &dto.DashboardSummaryDTO{
		TodayRevenue:  today.revenue.Round(2),
		TodayUnits:    today.units,
		MonthRevenue:  month.revenue.Round(2),
		MonthUnits:    month.units,
		TopProducts:   topItems,
		ActiveSellers: sellers.n,
		LowStock:      lowItems,
		DateLabel:     monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Agosto 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
