package billing

import "github.com/shopspring/decimal"

// CurrencyTotals aggregates the lines of one currency.
// HasItems distinguishes "no lines in this currency" from a genuine zero.
type CurrencyTotals struct {
	Currency       Currency        `json:"currency"`
	HasItems       bool            `json:"has_items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	ItemDiscount   decimal.Decimal `json:"item_discount"`
	GlobalDiscount decimal.Decimal `json:"global_discount"`
	Payable        decimal.Decimal `json:"payable"`
}

// SumDiscount is the total discount carried by this currency bucket.
func (ct CurrencyTotals) SumDiscount() decimal.Decimal {
	return ct.ItemDiscount.Add(ct.GlobalDiscount)
}

// InvoiceTotals is the currency-split aggregate over all lines of a draft.
type InvoiceTotals struct {
	Rial CurrencyTotals `json:"rial"`
	USD  CurrencyTotals `json:"usd"`
}

// SumDiscount is the single trusted discount aggregate across currencies.
// It is what gets submitted upstream; per-line amounts are display detail.
func (t InvoiceTotals) SumDiscount() decimal.Decimal {
	return t.Rial.SumDiscount().Add(t.USD.SumDiscount())
}

// RoundedSumDiscount rounds the aggregate to a whole number, matching what
// the accounting system stores.
func (t InvoiceTotals) RoundedSumDiscount() decimal.Decimal {
	return t.SumDiscount().Round(0)
}

// ComputeInvoiceTotals partitions the items by currency and applies the
// global discount to each bucket's post-item-discount subtotal. Each
// currency absorbs only the share of the global discount its own subtotal
// generates; rial and dollar amounts are never summed together.
func ComputeInvoiceTotals(items []LineItem, global DiscountPercent) InvoiceTotals {
	totals := InvoiceTotals{
		Rial: CurrencyTotals{Currency: CurrencyRial},
		USD:  CurrencyTotals{Currency: CurrencyUSD},
	}

	for _, item := range items {
		bucket := &totals.Rial
		if item.Currency() == CurrencyUSD {
			bucket = &totals.USD
		}
		bucket.HasItems = true
		bucket.Subtotal = bucket.Subtotal.Add(item.Gross())
		bucket.ItemDiscount = bucket.ItemDiscount.Add(item.DiscountAmount())
	}

	finish := func(ct *CurrencyTotals) {
		net := ct.Subtotal.Sub(ct.ItemDiscount)
		ct.GlobalDiscount = global.AmountOf(net)
		ct.Payable = net.Sub(ct.GlobalDiscount)
		if ct.Payable.IsNegative() {
			ct.Payable = decimal.Zero
		}
	}
	finish(&totals.Rial)
	finish(&totals.USD)

	return totals
}
