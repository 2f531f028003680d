package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frecuencias admitidas para un costo fijo.
const (
	FrequencyMonthly = "monthly"
	FrequencyWeekly  = "weekly"
	FrequencyAnnual  = "annual"
)

// CostoFijo es un gasto recurrente del negocio (alquiler, servicios, suscripciones).
type CostoFijo struct {
	ID        string
	UserID    string
	Name      string
	Amount    decimal.Decimal
	Frequency string // monthly | weekly | annual
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidFrequency indica si la frecuencia es una de las admitidas.
func ValidFrequency(f string) bool {
	switch f {
	case FrequencyMonthly, FrequencyWeekly, FrequencyAnnual:
		return true
	}
	return false
}

// MonthlyAmount normaliza el monto a su equivalente mensual:
// semanal -> ×52/12, anual -> ÷12, mensual -> sin cambio.
func (c *CostoFijo) MonthlyAmount() decimal.Decimal {
	switch c.Frequency {
	case FrequencyWeekly:
		return c.Amount.Mul(decimal.NewFromInt(52)).Div(decimal.NewFromInt(12))
	case FrequencyAnnual:
		return c.Amount.Div(decimal.NewFromInt(12))
	default:
		return c.Amount
	}
}
