package billing

import (
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func rialItem(price int64, qty int64, discount string) LineItem {
	return LineItem{
		ProductCode:    "101",
		ProductErpCode: "erp-101",
		ProductName:    "item",
		Quantity:       qty,
		UnitPrice:      decimal.NewFromInt(price),
		Tier:           TierSellPrice,
		Discount:       ParseDiscountPercent(discount),
	}
}

func usdItem(price int64, qty int64, discount string) LineItem {
	item := rialItem(price, qty, discount)
	item.Tier = TierUSD
	return item
}

func TestLineItemTotal(t *testing.T) {
	t.Run("rial line scales by quantity", func(t *testing.T) {
		item := rialItem(100000, 2, "10")
		assert.True(t, item.Total().Equal(decimal.NewFromInt(180000)), "got %s", item.Total())
	})

	t.Run("dollar line ignores quantity", func(t *testing.T) {
		item := usdItem(50, 3, "0")
		assert.Equal(t, int64(1), item.EffectiveQuantity())
		assert.True(t, item.Total().Equal(decimal.NewFromInt(50)), "got %s", item.Total())
	})

	t.Run("full discount floors at zero", func(t *testing.T) {
		item := rialItem(100000, 1, "100")
		assert.True(t, item.Total().IsZero())
	})

	t.Run("invalid discount means no discount", func(t *testing.T) {
		item := rialItem(100000, 1, "abc")
		assert.True(t, item.Total().Equal(decimal.NewFromInt(100000)))
	})
}

func TestLineItemTotalMonotonicInDiscount(t *testing.T) {
	prev := rialItem(99999, 3, "0").Total()
	for pct := 1; pct <= 100; pct++ {
		total := rialItem(99999, 3, strconv.Itoa(pct)).Total()
		assert.True(t, total.LessThanOrEqual(prev), "total rose from %s to %s at %d%%", prev, total, pct)
		assert.False(t, total.IsNegative())
		prev = total
	}
	assert.True(t, prev.IsZero())
}

func TestLineItemCurrency(t *testing.T) {
	assert.Equal(t, CurrencyRial, rialItem(1, 1, "0").Currency())
	assert.Equal(t, CurrencyUSD, usdItem(1, 1, "0").Currency())
	assert.True(t, TierSellPrice4.IsUSD())
	assert.False(t, TierSellPrice5.IsUSD())
}

func TestLineItemSubmittable(t *testing.T) {
	assert.True(t, rialItem(100, 1, "0").Submittable())

	missingProduct := rialItem(100, 1, "0")
	missingProduct.ProductErpCode = ""
	assert.False(t, missingProduct.Submittable())

	zeroQty := rialItem(100, 0, "0")
	assert.False(t, zeroQty.Submittable())

	// dollar lines are lump sums, quantity zero still prices as one unit
	usdZeroQty := usdItem(100, 0, "0")
	assert.True(t, usdZeroQty.Submittable())

	zeroPrice := rialItem(0, 1, "0")
	assert.False(t, zeroPrice.Submittable())

	unknownTier := rialItem(100, 1, "0")
	unknownTier.Tier = PriceTier("SellPrice11")
	assert.False(t, unknownTier.Submittable())
}
