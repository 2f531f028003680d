package costing

import "github.com/shopspring/decimal"

// TotalCost suma cantidad × precio de cada extracción de todos los planes.
// Devuelve solo la suma: dividir entre la cantidad producida es del caller,
// que ya validó cantidad > 0 (así no se esconde aquí una política de división por cero).
func TotalCost(plans []Plan) decimal.Decimal {
	total := decimal.Zero
	for _, p := range plans {
		for _, d := range p.Draws {
			total = total.Add(d.Quantity.Mul(d.PricePerUnit))
		}
	}
	return total
}

// RecipeCost calcula un costo unitario "vigente" de referencia: suma de cantidad
// de receta × costo unitario actual de cada insumo. Es el costo que se congela en
// una venta servida solo con stock terminado.
func RecipeCost(lines []RecipeLineCost) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Quantity.Mul(l.UnitCost))
	}
	return total
}

// RecipeLineCost es una línea de receta con el costo unitario vigente de su insumo.
type RecipeLineCost struct {
	InsumoID string
	Quantity decimal.Decimal // unidades mínimas por unidad de producto
	UnitCost decimal.Decimal // precio por unidad mínima del próximo lote a consumir
}
