package costing

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jmcastano/costeo-api/internal/domain"
	"github.com/jmcastano/costeo-api/internal/domain/entity"
)

// Draw es una extracción planificada: cuánto sacar de qué lote y a qué precio.
type Draw struct {
	LoteID       string
	Quantity     decimal.Decimal
	PricePerUnit decimal.Decimal
}

// Plan es el plan de consumo de un insumo para una corrida de producción.
type Plan struct {
	InsumoID string
	Draws    []Draw
}

// InsufficientStockError reporta qué insumo no alcanzó y cuánto faltó.
// Envuelve domain.ErrInsufficientStock para que errors.Is funcione aguas arriba.
type InsufficientStockError struct {
	InsumoID  string
	Shortfall decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente del insumo %s: faltan %s unidades", e.InsumoID, e.Shortfall.String())
}

func (e *InsufficientStockError) Unwrap() error { return domain.ErrInsufficientStock }

// SortLIFO ordena los lotes para consumo LIFO: fecha de compra descendente y,
// a igualdad de fecha, inserción más reciente primero. Devuelve una copia;
// el slice de entrada no se toca.
func SortLIFO(lotes []entity.InsumoLote) []entity.InsumoLote {
	ordered := make([]entity.InsumoLote, len(lotes))
	copy(ordered, lotes)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].PurchaseDate.Equal(ordered[j].PurchaseDate) {
			return ordered[i].PurchaseDate.After(ordered[j].PurchaseDate)
		}
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})
	return ordered
}

// ApplyManualOrder reordena los lotes según una secuencia explícita de IDs elegida
// por el usuario. Los lotes listados van primero, en ese orden; los no listados se
// agregan después en orden LIFO por defecto. IDs desconocidos se ignoran.
func ApplyManualOrder(lotes []entity.InsumoLote, order []string) []entity.InsumoLote {
	if len(order) == 0 {
		return SortLIFO(lotes)
	}
	byID := make(map[string]entity.InsumoLote, len(lotes))
	for _, l := range lotes {
		byID[l.ID] = l
	}
	result := make([]entity.InsumoLote, 0, len(lotes))
	seen := make(map[string]bool, len(order))
	for _, id := range order {
		if l, ok := byID[id]; ok && !seen[id] {
			result = append(result, l)
			seen[id] = true
		}
	}
	rest := make([]entity.InsumoLote, 0, len(lotes))
	for _, l := range lotes {
		if !seen[l.ID] {
			rest = append(rest, l)
		}
	}
	return append(result, SortLIFO(rest)...)
}

// PlanConsumption arma el plan de extracción para cubrir `needed` unidades mínimas
// del insumo, recorriendo los lotes en el orden dado y sacando min(remanente, faltante)
// de cada uno. Es determinista para un orden y remanentes fijos, y no muta nada.
// Si los lotes se agotan con faltante > 0, falla con InsufficientStockError sin
// devolver plan parcial.
func PlanConsumption(insumoID string, needed decimal.Decimal, lotes []entity.InsumoLote) (Plan, error) {
	if !needed.IsPositive() {
		return Plan{}, domain.ErrInvalidInput
	}
	plan := Plan{InsumoID: insumoID}
	still := needed
	for _, l := range lotes {
		if !still.IsPositive() {
			break
		}
		if !l.QuantityRemaining.IsPositive() {
			continue
		}
		draw := decimal.Min(l.QuantityRemaining, still)
		plan.Draws = append(plan.Draws, Draw{
			LoteID:       l.ID,
			Quantity:     draw,
			PricePerUnit: l.PricePerUnit,
		})
		still = still.Sub(draw)
	}
	if still.IsPositive() {
		return Plan{}, &InsufficientStockError{InsumoID: insumoID, Shortfall: still}
	}
	return plan, nil
}
