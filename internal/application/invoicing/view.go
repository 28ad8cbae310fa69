package invoicing

import (
	"github.com/shopspring/decimal"

	"github.com/evasence/holoo-admin/internal/domain/shared/valueobject"
	"github.com/evasence/holoo-admin/internal/infrastructure/erp"
)

// DocumentTotals is the currency-split footer of a stored document. Rial and
// dollar amounts stay apart; SumDiscount is the stored aggregate and is
// reported as-is rather than recomputed from the lines.
type DocumentTotals struct {
	HasRial     bool            `json:"hasRial"`
	RialTotal   decimal.Decimal `json:"rialTotal"`
	HasUSD      bool            `json:"hasUsd"`
	USDTotal    decimal.Decimal `json:"usdTotal"`
	SumDiscount decimal.Decimal `json:"sumDiscount"`
}

// RialMoney returns the rial bucket as a Money value.
func (t DocumentTotals) RialMoney() valueobject.Money {
	return valueobject.NewMoneyIRR(t.RialTotal)
}

// USDMoney returns the dollar bucket as a Money value.
func (t DocumentTotals) USDMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(t.USDTotal)
}

// LineView is one document line shaped for the dashboard.
type LineView struct {
	ProductCode     string          `json:"productCode,omitempty"`
	ProductErpCode  string          `json:"productErpCode"`
	ProductName     string          `json:"productName,omitempty"`
	Quantity        int64           `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	Total           decimal.Decimal `json:"total"`
	USD             bool            `json:"usd"`
}

// UnitPriceMoney returns the unit price tagged with the line currency.
func (l LineView) UnitPriceMoney() valueobject.Money {
	if l.USD {
		return valueobject.NewMoneyUSD(l.UnitPrice)
	}
	return valueobject.NewMoneyIRR(l.UnitPrice)
}

// TotalMoney returns the line total tagged with the line currency.
func (l LineView) TotalMoney() valueobject.Money {
	if l.USD {
		return valueobject.NewMoneyUSD(l.Total)
	}
	return valueobject.NewMoneyIRR(l.Total)
}

// Summary is one row of the pre-invoice or invoice list.
type Summary struct {
	ID              string         `json:"id"`
	ErpCode         string         `json:"erpCode,omitempty"`
	Number          string         `json:"number,omitempty"`
	CustomerErpCode string         `json:"customerErpCode"`
	CustomerName    string         `json:"customerName,omitempty"`
	Date            string         `json:"date,omitempty"`
	LineCount       int            `json:"lineCount"`
	Totals          DocumentTotals `json:"totals"`
}

// DetailView is a full document with its lines.
type DetailView struct {
	Summary
	Comment string     `json:"comment,omitempty"`
	Lines   []LineView `json:"lines"`
}

// splitDetailTotals buckets stored detail lines by currency. The line's
// stored SumPrice is already the discounted line total, so buckets sum
// without reapplying discounts.
func splitDetailTotals(details []erp.InvoiceDetail, sumDiscount decimal.Decimal) DocumentTotals {
	totals := DocumentTotals{SumDiscount: sumDiscount}
	for i := range details {
		d := &details[i]
		if d.IsUSD() {
			totals.HasUSD = true
			totals.USDTotal = totals.USDTotal.Add(d.SumPrice)
		} else {
			totals.HasRial = true
			totals.RialTotal = totals.RialTotal.Add(d.SumPrice)
		}
	}
	return totals
}

func lineViews(details []erp.InvoiceDetail) []LineView {
	lines := make([]LineView, 0, len(details))
	for i := range details {
		d := &details[i]
		usd := d.IsUSD()
		qty := d.Few.IntPart()
		if usd {
			// the stored quantity on dollar lines is a currency marker,
			// not a count
			qty = 1
		}
		lines = append(lines, LineView{
			ProductCode:     d.ProductCode,
			ProductErpCode:  d.ProductErpCode,
			ProductName:     d.ProductName,
			Quantity:        qty,
			UnitPrice:       d.Price,
			DiscountPercent: d.DiscountPercent,
			Total:           d.SumPrice,
			USD:             usd,
		})
	}
	return lines
}

func preInvoiceSummary(p *erp.PreInvoice) Summary {
	return Summary{
		ID:              p.ID,
		ErpCode:         p.ErpCode,
		Number:          p.InvoiceNumber,
		CustomerErpCode: p.CustomerErpCode,
		CustomerName:    p.CustomerName,
		Date:            p.Date,
		LineCount:       len(p.Detail),
		Totals:          splitDetailTotals(p.Detail, p.SumDiscount),
	}
}

func invoiceSummary(inv *erp.Invoice) Summary {
	return Summary{
		ID:              inv.ID,
		ErpCode:         inv.ErpCode,
		Number:          inv.InvoiceNumber,
		CustomerErpCode: inv.CustomerErpCode,
		CustomerName:    inv.CustomerName,
		Date:            inv.Date,
		LineCount:       len(inv.Detail),
		Totals:          splitDetailTotals(inv.Detail, inv.SumDiscount),
	}
}

func preInvoiceDetail(p *erp.PreInvoice) *DetailView {
	return &DetailView{
		Summary: preInvoiceSummary(p),
		Comment: p.Comment,
		Lines:   lineViews(p.Detail),
	}
}

func invoiceDetail(inv *erp.Invoice) *DetailView {
	return &DetailView{
		Summary: invoiceSummary(inv),
		Comment: inv.Comment,
		Lines:   lineViews(inv.Detail),
	}
}
