package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInsumoRequest body para crear un insumo de catálogo.
type CreateInsumoRequest struct {
	Name     string `json:"name"`
	UnitType string `json:"unit_type"` // kg | l | g | ml | unit
}

// UpdateInsumoRequest body para actualizar nombre/estado.
type UpdateInsumoRequest struct {
	Name   string `json:"name"`
	Active *bool  `json:"active,omitempty"`
}

// InsumoResponse insumo con su costo vigente por unidad mínima.
type InsumoResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	UnitType        string          `json:"unit_type"`
	BaseUnit        string          `json:"base_unit"` // g | ml | unit
	Active          bool            `json:"active"`
	CurrentUnitCost decimal.Decimal `json:"current_unit_cost"`
	CreatedAt       time.Time       `json:"created_at"`
}

// RecordPurchaseRequest body para registrar una compra (lote) de un insumo.
// Quantity y TotalPrice vienen en la unidad de compra (ej. 2.5 kg por $7500);
// el precio por unidad mínima se deriva una sola vez al insertar.
type RecordPurchaseRequest struct {
	PurchaseDate *time.Time      `json:"purchase_date,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

// LoteResponse un lote con su remanente.
type LoteResponse struct {
	ID                string          `json:"id"`
	InsumoID          string          `json:"insumo_id"`
	PurchaseDate      time.Time       `json:"purchase_date"`
	QuantityPurchased decimal.Decimal `json:"quantity_purchased"`
	QuantityRemaining decimal.Decimal `json:"quantity_remaining"`
	PricePerUnit      decimal.Decimal `json:"price_per_unit"`
	CreatedAt         time.Time       `json:"created_at"`
}

// PriceHistoryPoint un punto del historial de precios de compra de un insumo.
type PriceHistoryPoint struct {
	Date              time.Time       `json:"date"`
	PricePerUnit      decimal.Decimal `json:"price_per_unit"`
	QuantityPurchased decimal.Decimal `json:"quantity_purchased"`
}
