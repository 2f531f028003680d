package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProduceRequest body para fabricar unidades de un producto.
// ManualOrder permite al usuario fijar el orden de consumo de lotes por insumo
// (los no listados se consumen después en orden LIFO).
type ProduceRequest struct {
	Quantity    int64               `json:"quantity"`
	ManualOrder map[string][]string `json:"manual_order,omitempty"` // insumo_id -> lote_ids
}

// ProductionResult resultado de una corrida de producción exitosa.
type ProductionResult struct {
	QuantityProduced int64           `json:"quantity_produced"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	CostPerUnit      decimal.Decimal `json:"cost_per_unit"`
}

// ProductionRecordResponse una corrida del historial de producción.
type ProductionRecordResponse struct {
	ID             string          `json:"id"`
	ProductoID     string          `json:"producto_id"`
	Quantity       int64           `json:"quantity"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	CostPerUnit    decimal.Decimal `json:"cost_per_unit"`
	ProductionDate time.Time       `json:"production_date"`
}
