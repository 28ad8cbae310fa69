package billing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// DiscountPercent is a percentage bounded to [0, 100].
type DiscountPercent struct {
	value decimal.Decimal
}

// ZeroDiscount is the canonical "no discount" value.
var ZeroDiscount = DiscountPercent{value: decimal.Zero}

// ParseDiscountPercent parses free-form user input into a bounded percentage.
// Non-numeric, negative and over-100 inputs all collapse to zero; the raw
// input is never stored.
func ParseDiscountPercent(raw string) DiscountPercent {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return ZeroDiscount
	}
	return NewDiscountPercent(d)
}

// NewDiscountPercent clamps a decimal into a valid DiscountPercent.
func NewDiscountPercent(d decimal.Decimal) DiscountPercent {
	if d.IsNegative() || d.GreaterThan(hundred) {
		return ZeroDiscount
	}
	return DiscountPercent{value: d}
}

// Value returns the percentage as a decimal in [0, 100].
func (p DiscountPercent) Value() decimal.Decimal {
	return p.value
}

// IsZero reports whether no discount applies.
func (p DiscountPercent) IsZero() bool {
	return p.value.IsZero()
}

// AmountOf returns the discount amount for the given base value.
func (p DiscountPercent) AmountOf(base decimal.Decimal) decimal.Decimal {
	return base.Mul(p.value).Div(hundred)
}

// String returns the canonical percentage string.
func (p DiscountPercent) String() string {
	return p.value.String()
}

// MarshalJSON implements json.Marshaler
func (p DiscountPercent) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.value.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler, clamping like ParseDiscountPercent.
func (p *DiscountPercent) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	*p = ParseDiscountPercent(s)
	return nil
}
