package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostoFijoRequest body para crear o actualizar un costo fijo.
type CostoFijoRequest struct {
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Frequency string          `json:"frequency"` // monthly | weekly | annual
}

// CostoFijoResponse costo fijo con su equivalente mensual.
type CostoFijoResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Amount        decimal.Decimal `json:"amount"`
	Frequency     string          `json:"frequency"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount"`
	CreatedAt     time.Time       `json:"created_at"`
}

// MonthlyTotalResponse total mensual de todos los costos fijos.
type MonthlyTotalResponse struct {
	MonthlyTotal decimal.Decimal `json:"monthly_total"`
}
