package billing

import "github.com/shopspring/decimal"

// Currency is the denomination of a line amount. Only two exist in this
// business: rial for regular tiers and dollars for the TierUSD tier.
type Currency string

const (
	CurrencyRial Currency = "IRR"
	CurrencyUSD  Currency = "USD"
)

// LineItem is a single product row on a draft or submitted invoice.
type LineItem struct {
	ProductCode    string          `json:"product_code"`
	ProductErpCode string          `json:"product_erp_code"`
	ProductName    string          `json:"product_name"`
	WarehouseName  string          `json:"warehouse_name,omitempty"`
	Quantity       int64           `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Tier           PriceTier       `json:"tier"`
	Discount       DiscountPercent `json:"discount"`
}

// Currency returns the denomination of this line, derived from its tier.
func (li LineItem) Currency() Currency {
	return li.Tier.Currency()
}

// EffectiveQuantity is the quantity the price actually multiplies by.
// Dollar lines are quoted as a lump sum, so their quantity never scales
// the price; rial lines multiply normally.
func (li LineItem) EffectiveQuantity() int64 {
	if li.Tier.IsUSD() {
		return 1
	}
	return li.Quantity
}

// Gross is the line amount before any discount.
func (li LineItem) Gross() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(li.EffectiveQuantity()))
}

// DiscountAmount is the absolute value taken off the line by its own discount.
func (li LineItem) DiscountAmount() decimal.Decimal {
	return li.Discount.AmountOf(li.Gross())
}

// Total is the discounted line amount. It is never negative: the discount
// percent is clamped to [0, 100], so the floor is zero.
func (li LineItem) Total() decimal.Decimal {
	total := li.Gross().Sub(li.DiscountAmount())
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// Submittable reports whether the line is complete enough to send upstream.
// Rows the operator started but never finished (no product picked, zero
// quantity, zero price) are silently skipped at submit time.
func (li LineItem) Submittable() bool {
	if li.ProductErpCode == "" || li.ProductCode == "" || li.ProductName == "" {
		return false
	}
	if !li.Tier.IsValid() {
		return false
	}
	if li.EffectiveQuantity() < 1 {
		return false
	}
	return li.UnitPrice.IsPositive()
}
