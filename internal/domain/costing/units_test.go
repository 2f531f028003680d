package costing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jmcastano/costeo-api/internal/domain/costing"
	"github.com/jmcastano/costeo-api/internal/domain/entity"
)

func TestToBaseUnits(t *testing.T) {
	cases := []struct {
		unit string
		in   string
		want string
	}{
		{entity.UnitKg, "2.5", "2500"},
		{entity.UnitL, "1", "1000"},
		{entity.UnitG, "350", "350"},
		{entity.UnitMl, "75", "75"},
		{entity.UnitUnit, "12", "12"},
	}
	for _, c := range cases {
		got := costing.ToBaseUnits(decimal.RequireFromString(c.in), c.unit)
		assert.True(t, got.Equal(decimal.RequireFromString(c.want)),
			"%s %s debe dar %s, obtuvo %s", c.in, c.unit, c.want, got)
	}
}

func TestPricePerBaseUnit(t *testing.T) {
	// $3000 el kilo -> $3 el gramo
	got := costing.PricePerBaseUnit(decimal.NewFromInt(3000), entity.UnitKg)
	assert.True(t, got.Equal(decimal.NewFromInt(3)))

	// $800 el litro -> $0.8 el ml
	got = costing.PricePerBaseUnit(decimal.NewFromInt(800), entity.UnitL)
	assert.True(t, got.Equal(decimal.RequireFromString("0.8")))

	// por unidad no cambia
	got = costing.PricePerBaseUnit(decimal.NewFromInt(500), entity.UnitUnit)
	assert.True(t, got.Equal(decimal.NewFromInt(500)))
}

func TestBaseUnit(t *testing.T) {
	assert.Equal(t, entity.UnitG, costing.BaseUnit(entity.UnitKg))
	assert.Equal(t, entity.UnitMl, costing.BaseUnit(entity.UnitL))
	assert.Equal(t, entity.UnitUnit, costing.BaseUnit(entity.UnitUnit))
	assert.Equal(t, entity.UnitG, costing.BaseUnit(entity.UnitG))
}
