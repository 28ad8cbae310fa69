// Package valueobject holds small immutable value types shared across domains.
package valueobject

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency identifies the denomination of a monetary amount. The business
// only deals in rial and dollars.
type Currency string

const (
	IRR Currency = "IRR"
	USD Currency = "USD"
)

// Money pairs an amount with its currency so rial and dollar figures can
// never be mixed by accident. It is immutable; arithmetic returns copies.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoneyIRR wraps a rial amount.
func NewMoneyIRR(amount decimal.Decimal) Money {
	return Money{amount: amount, currency: IRR}
}

// NewMoneyUSD wraps a dollar amount.
func NewMoneyUSD(amount decimal.Decimal) Money {
	return Money{amount: amount, currency: USD}
}

// Amount returns the bare decimal value.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the denomination.
func (m Money) Currency() Currency {
	return m.currency
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Add sums two amounts of the same currency. Mixing currencies is an error,
// not a silent conversion.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("cannot add %s to %s", other.currency, m.currency)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Equals reports whether both the amount and the currency match.
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String renders the amount with its currency code, for logs.
func (m Money) String() string {
	return m.amount.String() + " " + string(m.currency)
}

type moneyJSON struct {
	Amount   string   `json:"amount"`
	Currency Currency `json:"currency"`
}

// MarshalJSON encodes the amount as a string to keep decimal precision.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.amount.String(), Currency: m.currency})
}

// UnmarshalJSON decodes the string-amount form produced by MarshalJSON.
func (m *Money) UnmarshalJSON(data []byte) error {
	var v moneyJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	amount, err := decimal.NewFromString(v.Amount)
	if err != nil {
		return fmt.Errorf("invalid money amount: %w", err)
	}
	m.amount = amount
	m.currency = v.Currency
	return nil
}
