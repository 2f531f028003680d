package costing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ProfitMarginPct devuelve el margen de ganancia como porcentaje:
// ((precio - costo) / precio) × 100. Si el precio es 0, devuelve 0.
func ProfitMarginPct(priceSale, costUnit decimal.Decimal) decimal.Decimal {
	if priceSale.IsZero() {
		return decimal.Zero
	}
	return priceSale.Sub(costUnit).Div(priceSale).Mul(hundred)
}

// SuggestedPrice calcula el precio de venta sugerido para alcanzar un margen
// objetivo: costo / (1 - margen/100). Con margen fuera de [0, 100) devuelve el costo.
func SuggestedPrice(costUnit, marginGoal decimal.Decimal) decimal.Decimal {
	if marginGoal.IsNegative() || marginGoal.GreaterThanOrEqual(hundred) {
		return costUnit
	}
	return costUnit.Div(decimal.NewFromInt(1).Sub(marginGoal.Div(hundred)))
}
