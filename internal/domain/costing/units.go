// Package costing contiene los servicios de dominio del motor de costeo por lotes:
// conversión a unidades mínimas, orden de consumo LIFO, planificación de extracciones
// y acumulación de costos. Todo es puro: planear no muta estado; el commit es
// responsabilidad de los casos de uso dentro de una transacción.
package costing

import (
	"github.com/shopspring/decimal"

	"github.com/jmcastano/costeo-api/internal/domain/entity"
)

var thousand = decimal.NewFromInt(1000)

// ToBaseUnits convierte una cantidad expresada en la unidad de compra del insumo
// a unidades mínimas: kg -> g y l -> ml (×1000); g, ml y unit quedan igual.
func ToBaseUnits(qty decimal.Decimal, unitType string) decimal.Decimal {
	switch unitType {
	case entity.UnitKg, entity.UnitL:
		return qty.Mul(thousand)
	default:
		return qty
	}
}

// PricePerBaseUnit convierte un precio por unidad de compra a precio por unidad
// mínima: $/kg -> $/g y $/l -> $/ml (÷1000); el resto queda igual.
func PricePerBaseUnit(price decimal.Decimal, unitType string) decimal.Decimal {
	switch unitType {
	case entity.UnitKg, entity.UnitL:
		return price.Div(thousand)
	default:
		return price
	}
}

// BaseUnit devuelve la unidad mínima en la que se almacena un insumo.
func BaseUnit(unitType string) string {
	switch unitType {
	case entity.UnitKg:
		return entity.UnitG
	case entity.UnitL:
		return entity.UnitMl
	default:
		return unitType
	}
}
