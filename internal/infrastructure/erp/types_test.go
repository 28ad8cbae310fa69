package erp

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/evasence/holoo-admin/internal/domain/billing"
)

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestProductTierPrice(t *testing.T) {
	p := &Product{
		SellPrice:  mustDecimal("1000"),
		SellPrice4: mustDecimal("25"),
		SellPrice7: mustDecimal("900"),
	}
	assert.Equal(t, "1000", p.TierPrice(billing.TierSellPrice).String())
	assert.Equal(t, "25", p.TierPrice(billing.TierSellPrice4).String())
	assert.Equal(t, "900", p.TierPrice(billing.TierSellPrice7).String())
	assert.True(t, p.TierPrice(billing.TierSellPrice2).IsZero())
}

func TestNewDetail(t *testing.T) {
	t.Run("rial line carries the real quantity", func(t *testing.T) {
		item := billing.LineItem{
			ProductCode:    "101",
			ProductErpCode: "e-101",
			ProductName:    "widget",
			Quantity:       3,
			UnitPrice:      mustDecimal("100000"),
			Tier:           billing.TierSellPrice,
			Discount:       billing.ParseDiscountPercent("10"),
		}
		d := NewDetail(item)
		assert.Equal(t, "3", d.Few.String())
		assert.Equal(t, "270000", d.SumPrice.String())
		assert.Equal(t, "10", d.DiscountPercent.String())
		assert.False(t, d.IsUSD())
	})

	t.Run("dollar line carries the magic quantity", func(t *testing.T) {
		item := billing.LineItem{
			ProductCode:    "101",
			ProductErpCode: "e-101",
			ProductName:    "imported",
			Quantity:       3,
			UnitPrice:      mustDecimal("50"),
			Tier:           billing.TierUSD,
		}
		d := NewDetail(item)
		assert.Equal(t, "5", d.Few.String())
		// quantity never multiplies a dollar price
		assert.Equal(t, "50", d.SumPrice.String())
		assert.True(t, d.IsUSD())
	})
}
