package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeItem es una línea de la receta: cuánta unidad mínima de un insumo
// lleva una unidad del producto. Inmutable durante una producción.
type RecipeItem struct {
	ID                  string
	ProductoID          string
	InsumoID            string
	QuantityInBaseUnits decimal.Decimal
	CreatedAt           time.Time
}

// Producto es un producto terminado con receta y stock de terminados.
// FinishedStock solo lo aumenta producción y solo lo reduce ventas; nunca baja de 0.
// El costo unitario vigente es derivado (ver costing), no se persiste aquí.
type Producto struct {
	ID            string
	UserID        string
	Name          string
	PriceSale     decimal.Decimal
	MarginGoal    *decimal.Decimal // % objetivo de margen, opcional
	FinishedStock int64
	Recipe        []RecipeItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProductionRecord es el registro de auditoría de una corrida de producción exitosa.
// Append-only: una fila por corrida, con el costo unitario resultante.
type ProductionRecord struct {
	ID             string
	UserID         string
	ProductoID     string
	Quantity       int64
	TotalCost      decimal.Decimal
	CostPerUnit    decimal.Decimal
	ProductionDate time.Time
}
