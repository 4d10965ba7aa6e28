package dto

import "github.com/shopspring/decimal"

// TopProductDTO producto destacado del mes en el dashboard.
type TopProductDTO struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Units     decimal.Decimal `json:"units"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// LowStockDTO producto con stock bajo.
type LowStockDTO struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Stock     decimal.Decimal `json:"stock"`
}

// DashboardSummaryDTO resumen del negocio para el owner: ventas de hoy y del
// mes, top de productos, sellers con consignación activa y stock bajo.
type DashboardSummaryDTO struct {
	TodayRevenue  decimal.Decimal `json:"today_revenue"`
	TodayUnits    decimal.Decimal `json:"today_units"`
	MonthRevenue  decimal.Decimal `json:"month_revenue"`
	MonthUnits    decimal.Decimal `json:"month_units"`
	TopProducts   []TopProductDTO `json:"top_products"`
	ActiveSellers int             `json:"active_sellers"`
	LowStock      []LowStockDTO   `json:"low_stock"`
	DateLabel     string          `json:"date_label"`
}
