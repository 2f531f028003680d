package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeItemRequest una línea de receta al crear/actualizar un producto.
type RecipeItemRequest struct {
	InsumoID            string          `json:"insumo_id"`
	QuantityInBaseUnits decimal.Decimal `json:"quantity_in_base_units"`
}

// CreateProductoRequest body para crear un producto con su receta.
type CreateProductoRequest struct {
	Name       string              `json:"name"`
	PriceSale  decimal.Decimal     `json:"price_sale"`
	MarginGoal *decimal.Decimal    `json:"margin_goal,omitempty"`
	Recipe     []RecipeItemRequest `json:"recipe"`
}

// UpdateProductoRequest body para actualizar un producto. Los campos omitidos
// conservan su valor: Name vacío, PriceSale nil y Recipe nil no tocan nada;
// MarginGoal sí se reemplaza siempre (null lo borra, es un campo anulable).
type UpdateProductoRequest struct {
	Name       string              `json:"name"`
	PriceSale  *decimal.Decimal    `json:"price_sale,omitempty"`
	MarginGoal *decimal.Decimal    `json:"margin_goal,omitempty"`
	Recipe     []RecipeItemRequest `json:"recipe,omitempty"`
}

// RecipeItemResponse una línea de receta en respuestas.
type RecipeItemResponse struct {
	InsumoID            string          `json:"insumo_id"`
	QuantityInBaseUnits decimal.Decimal `json:"quantity_in_base_units"`
}

// ProductoResponse producto con costo unitario vigente y precio sugerido derivados.
type ProductoResponse struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	PriceSale      decimal.Decimal      `json:"price_sale"`
	MarginGoal     *decimal.Decimal     `json:"margin_goal,omitempty"`
	FinishedStock  int64                `json:"finished_stock"`
	CostUnit       decimal.Decimal      `json:"cost_unit"`
	ProfitMargin   decimal.Decimal      `json:"profit_margin_pct"`
	SuggestedPrice *decimal.Decimal     `json:"suggested_price,omitempty"`
	Recipe         []RecipeItemResponse `json:"recipe"`
	CreatedAt      time.Time            `json:"created_at"`
}

// AdjustStockRequest body para fijar el stock de terminados en un valor absoluto.
type AdjustStockRequest struct {
	FinishedStock int64 `json:"finished_stock"`
}
