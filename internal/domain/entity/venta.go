package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Venta registra una venta con el costo unitario congelado al momento de vender.
// CostUnit nunca se recalcula aunque luego cambien los precios de los lotes:
// ese snapshot es el contrato de costeo punto-en-el-tiempo del sistema.
// ProductoID es nullable para que la venta sobreviva si el producto se elimina.
type Venta struct {
	ID           string
	UserID       string
	ProductoID   *string
	ProductoName string
	Quantity     int64
	PriceSold    decimal.Decimal
	CostUnit     decimal.Decimal
	TotalIncome  decimal.Decimal
	TotalCost    decimal.Decimal
	Profit       decimal.Decimal
	ProfitMargin decimal.Decimal // fracción (0.35 = 35%); 0 si TotalIncome es 0
	SaleDate     time.Time
	CreatedAt    time.Time
}

// RecomputeTotals recalcula los campos derivados a partir de Quantity, PriceSold
// y el CostUnit congelado. Se usa al crear y al editar (la edición jamás toca CostUnit).
func (v *Venta) RecomputeTotals() {
	qty := decimal.NewFromInt(v.Quantity)
	v.TotalIncome = qty.Mul(v.PriceSold)
	v.TotalCost = qty.Mul(v.CostUnit)
	v.Profit = v.TotalIncome.Sub(v.TotalCost)
	if v.TotalIncome.IsZero() {
		v.ProfitMargin = decimal.Zero
		return
	}
	v.ProfitMargin = v.Profit.Div(v.TotalIncome)
}
