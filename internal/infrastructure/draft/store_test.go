package draft

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evasence/holoo-admin/internal/domain/billing"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	sample := &billing.Draft{
		Customer: &billing.Customer{Code: "7", ErpCode: "e-7", Name: "Test"},
		Items: []billing.LineItem{{
			ProductCode:    "101",
			ProductErpCode: "e-101",
			ProductName:    "widget",
			Quantity:       2,
			UnitPrice:      decimal.NewFromInt(100000),
			Tier:           billing.TierSellPrice,
			Discount:       billing.ParseDiscountPercent("10"),
		}},
		GlobalDiscount: billing.ParseDiscountPercent("5"),
	}

	t.Run("load without a draft", func(t *testing.T) {
		d, err := store.Load(ctx, "empty")
		require.NoError(t, err)
		assert.Nil(t, d)
	})

	t.Run("round trip keeps the numbers", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "sid", sample))

		loaded, err := store.Load(ctx, "sid")
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, "e-7", loaded.Customer.ErpCode)
		require.Len(t, loaded.Items, 1)
		assert.True(t, loaded.Items[0].UnitPrice.Equal(decimal.NewFromInt(100000)))
		assert.Equal(t, "10", loaded.Items[0].Discount.Value().String())
		assert.Equal(t, "5", loaded.GlobalDiscount.Value().String())
		assert.False(t, loaded.UpdatedAt.IsZero())
	})

	t.Run("sessions are isolated", func(t *testing.T) {
		d, err := store.Load(ctx, "other-session")
		require.NoError(t, err)
		assert.Nil(t, d)
	})

	t.Run("clear removes the draft", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx, "sid"))
		d, err := store.Load(ctx, "sid")
		require.NoError(t, err)
		assert.Nil(t, d)
	})
}
