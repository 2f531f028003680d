package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateVentaRequest body para registrar una venta. PriceSold nil usa el precio
// de lista del producto. Si no hay stock terminado suficiente, el sistema
// fabrica el faltante antes de completar la venta.
type CreateVentaRequest struct {
	ProductoID string           `json:"producto_id"`
	Quantity   int64            `json:"quantity"`
	PriceSold  *decimal.Decimal `json:"price_sold,omitempty"`
	SaleDate   *time.Time       `json:"sale_date,omitempty"`
}

// UpdateVentaRequest body para editar una venta: solo cantidad y precio.
// El snapshot de costo y el stock no se tocan.
type UpdateVentaRequest struct {
	Quantity  int64           `json:"quantity"`
	PriceSold decimal.Decimal `json:"price_sold"`
}

// VentaFilterRequest filtros de listado (query params).
type VentaFilterRequest struct {
	StartDate  string `query:"start_date"` // YYYY-MM-DD
	EndDate    string `query:"end_date"`
	ProductoID string `query:"producto_id"`
}

// VentaResponse una venta con sus derivados.
type VentaResponse struct {
	ID           string          `json:"id"`
	ProductoID   *string         `json:"producto_id"`
	ProductoName string          `json:"producto_name"`
	Quantity     int64           `json:"quantity"`
	PriceSold    decimal.Decimal `json:"price_sold"`
	CostUnit     decimal.Decimal `json:"cost_unit"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	Profit       decimal.Decimal `json:"profit"`
	ProfitMargin decimal.Decimal `json:"profit_margin"`
	SaleDate     time.Time       `json:"sale_date"`
}
