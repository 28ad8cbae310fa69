package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDraftSubmittableItems(t *testing.T) {
	draft := &Draft{
		Items: []LineItem{
			rialItem(100000, 1, "0"),
			{ProductName: "half-filled row"}, // operator never picked a product
			usdItem(10, 1, "0"),
		},
	}
	items := draft.SubmittableItems()
	assert.Len(t, items, 2)
}

func TestDraftValidate(t *testing.T) {
	customer := &Customer{Code: "7", ErpCode: "erp-7", Name: "Test"}

	t.Run("valid draft", func(t *testing.T) {
		draft := &Draft{Customer: customer, Items: []LineItem{rialItem(100, 1, "0")}}
		assert.NoError(t, draft.Validate())
	})

	t.Run("missing customer", func(t *testing.T) {
		draft := &Draft{Items: []LineItem{rialItem(100, 1, "0")}}
		assert.ErrorIs(t, draft.Validate(), ErrNoCustomer)
	})

	t.Run("customer without erp code", func(t *testing.T) {
		draft := &Draft{Customer: &Customer{Name: "n"}, Items: []LineItem{rialItem(100, 1, "0")}}
		assert.ErrorIs(t, draft.Validate(), ErrNoCustomer)
	})

	t.Run("only incomplete items", func(t *testing.T) {
		draft := &Draft{Customer: customer, Items: []LineItem{{ProductName: "incomplete"}}}
		assert.ErrorIs(t, draft.Validate(), ErrNoItems)
	})
}
