package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InsumoLote es un evento de compra de un insumo, con su propio precio.
// Invariantes: 0 <= QuantityRemaining <= QuantityPurchased; QuantityRemaining solo
// decrece. PricePerUnit (precio por unidad mínima) se fija al insertar y nunca se recalcula.
type InsumoLote struct {
	ID                string
	UserID            string
	InsumoID          string
	PurchaseDate      time.Time
	QuantityPurchased decimal.Decimal // en unidades mínimas (g / ml / unidad)
	QuantityRemaining decimal.Decimal
	PricePerUnit      decimal.Decimal
	CreatedAt         time.Time
}

// Untouched indica si el lote no ha sido consumido (remanente == comprado).
// Solo los lotes intactos pueden eliminarse.
func (l *InsumoLote) Untouched() bool {
	return l.QuantityRemaining.Equal(l.QuantityPurchased)
}
