package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardKPIs agrega las métricas del día y del mes para el tablero.
type DashboardKPIs struct {
	SalesToday      decimal.Decimal
	SalesMonth      decimal.Decimal
	ProfitToday     decimal.Decimal
	ProfitMonth     decimal.Decimal
	CostsToday      decimal.Decimal
	CostsMonth      decimal.Decimal
	ProfitMarginAvg decimal.Decimal // fracción promedio del mes
	OrdersToday     int64
	OrdersMonth     int64
}

// BestSeller es un producto ordenado por unidades vendidas en un rango.
type BestSeller struct {
	ProductoID   string
	ProductoName string
	UnitsSold    int64
	TotalRevenue decimal.Decimal
}

// ProfitTrendPoint es un punto diario de la serie ingresos/costos/ganancia.
type ProfitTrendPoint struct {
	Date   time.Time
	Income decimal.Decimal
	Costs  decimal.Decimal
	Profit decimal.Decimal
}
