package dto

import "github.com/shopspring/decimal"

// DashboardKPIsResponse métricas del día y del mes.
type DashboardKPIsResponse struct {
	SalesToday      decimal.Decimal `json:"sales_today"`
	SalesMonth      decimal.Decimal `json:"sales_month"`
	ProfitToday     decimal.Decimal `json:"profit_today"`
	ProfitMonth     decimal.Decimal `json:"profit_month"`
	CostsToday      decimal.Decimal `json:"costs_today"`
	CostsMonth      decimal.Decimal `json:"costs_month"`
	ProfitMarginAvg decimal.Decimal `json:"profit_margin_avg"`
	OrdersToday     int64           `json:"total_orders_today"`
	OrdersMonth     int64           `json:"total_orders_month"`
}

// BestSellerResponse producto por unidades vendidas en el rango pedido.
type BestSellerResponse struct {
	ProductoID   string          `json:"producto_id"`
	ProductoName string          `json:"producto_name"`
	UnitsSold    int64           `json:"units_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// ProfitTrendPointResponse punto diario de la serie de ganancia.
type ProfitTrendPointResponse struct {
	Date   string          `json:"date"` // YYYY-MM-DD
	Income decimal.Decimal `json:"income"`
	Costs  decimal.Decimal `json:"costs"`
	Profit decimal.Decimal `json:"profit"`
}
