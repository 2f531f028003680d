package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jmcastano/costeo-api/internal/domain/entity"
)

func TestCostoFijoMonthlyAmount(t *testing.T) {
	cases := []struct {
		freq   string
		amount string
		want   string
	}{
		{entity.FrequencyMonthly, "1200", "1200"},
		{entity.FrequencyAnnual, "1200", "100"},
		// 120 semanal -> 120×52/12 = 520 mensual
		{entity.FrequencyWeekly, "120", "520"},
	}
	for _, c := range cases {
		cf := entity.CostoFijo{Amount: decimal.RequireFromString(c.amount), Frequency: c.freq}
		got := cf.MonthlyAmount()
		assert.True(t, got.Equal(decimal.RequireFromString(c.want)),
			"%s %s debe normalizar a %s, obtuvo %s", c.amount, c.freq, c.want, got)
	}
}

func TestValidFrequency(t *testing.T) {
	assert.True(t, entity.ValidFrequency("weekly"))
	assert.False(t, entity.ValidFrequency("daily"))
}

func TestVentaRecomputeTotals(t *testing.T) {
	v := entity.Venta{
		Quantity:  3,
		PriceSold: decimal.NewFromInt(1000),
		CostUnit:  decimal.NewFromInt(400),
	}
	v.RecomputeTotals()
	assert.True(t, v.TotalIncome.Equal(decimal.NewFromInt(3000)))
	assert.True(t, v.TotalCost.Equal(decimal.NewFromInt(1200)))
	assert.True(t, v.Profit.Equal(decimal.NewFromInt(1800)))
	assert.True(t, v.ProfitMargin.Equal(decimal.RequireFromString("0.6")))

	// venta regalada: margen 0, no división por cero
	v.PriceSold = decimal.Zero
	v.RecomputeTotals()
	assert.True(t, v.ProfitMargin.IsZero())
}
