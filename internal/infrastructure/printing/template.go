package printing

import (
	"bytes"
	"html/template"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/evasence/holoo-admin/internal/domain/shared/valueobject"
)

var (
	faPrinter = message.NewPrinter(language.Persian)
	enPrinter = message.NewPrinter(language.English)
)

// FormatRial renders a rial amount with Persian digits and grouping.
// Rial amounts are whole numbers; fractions are rounded away.
func FormatRial(d decimal.Decimal) string {
	return faPrinter.Sprint(number.Decimal(d.Round(0).IntPart()))
}

// FormatUSD renders a dollar amount with Western digits, two decimals max.
func FormatUSD(d decimal.Decimal) string {
	f, _ := d.Float64()
	return enPrinter.Sprint(number.Decimal(f, number.MaxFractionDigits(2)))
}

// FormatMoney renders an amount in its own currency's convention.
func FormatMoney(m valueobject.Money) string {
	if m.Currency() == valueobject.USD {
		return FormatUSD(m.Amount())
	}
	return FormatRial(m.Amount())
}

// FormatCount renders a quantity with Persian digits.
func FormatCount(n int64) string {
	return faPrinter.Sprint(number.Decimal(n))
}

// FormatPercent renders a discount percentage with Persian digits and the
// Persian percent sign. Zero renders as a dash.
func FormatPercent(d decimal.Decimal) string {
	if d.IsZero() {
		return "-"
	}
	f, _ := d.Float64()
	return faPrinter.Sprint(number.Decimal(f, number.MaxFractionDigits(2))) + "٪"
}

// DocumentLine is one row of a printable invoice.
type DocumentLine struct {
	Name      string
	Quantity  string
	UnitPrice string
	Discount  string
	Total     string
	USD       bool
}

// Document carries everything the invoice template shows.
type Document struct {
	Title        string
	Number       string
	Date         string
	CustomerName string
	Comment      string
	Lines        []DocumentLine
	HasRial      bool
	RialPayable  string
	HasUSD       bool
	USDPayable   string
	SumDiscount  string
}

// invoiceTemplate is the RTL print layout. Styling lives inline because
// Chrome renders the document from a string with no asset base URL.
var invoiceTemplate = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html dir="rtl" lang="fa">
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
  body { font-family: "Vazirmatn", "Tahoma", sans-serif; font-size: 12px; color: #111; margin: 0; }
  .header { display: flex; justify-content: space-between; align-items: baseline; border-bottom: 2px solid #333; padding-bottom: 8px; }
  .header h1 { font-size: 18px; margin: 0; }
  .meta { font-size: 11px; color: #444; }
  table { width: 100%; border-collapse: collapse; margin-top: 12px; }
  th, td { border: 1px solid #999; padding: 6px 8px; text-align: center; }
  th { background: #f0f0f0; }
  td.name { text-align: right; }
  .usd { color: #0a5; }
  .totals { margin-top: 14px; width: 45%; margin-right: auto; }
  .totals td { border: none; padding: 4px 8px; }
  .totals td.label { text-align: right; color: #444; }
  .totals td.value { text-align: left; font-weight: bold; }
  .comment { margin-top: 16px; font-size: 11px; color: #444; }
</style>
</head>
<body>
  <div class="header">
    <h1>{{.Title}}</h1>
    <div class="meta">
      {{if .Number}}<div>شماره: {{.Number}}</div>{{end}}
      {{if .Date}}<div>تاریخ: {{.Date}}</div>{{end}}
    </div>
  </div>

  <div class="meta" style="margin-top:8px">مشتری: {{.CustomerName}}</div>

  <table>
    <thead>
      <tr>
        <th>#</th>
        <th>شرح کالا</th>
        <th>تعداد</th>
        <th>قیمت واحد</th>
        <th>تخفیف</th>
        <th>مبلغ</th>
      </tr>
    </thead>
    <tbody>
      {{range $i, $line := .Lines}}
      <tr{{if $line.USD}} class="usd"{{end}}>
        <td>{{inc $i}}</td>
        <td class="name">{{$line.Name}}</td>
        <td>{{$line.Quantity}}</td>
        <td>{{$line.UnitPrice}}</td>
        <td>{{$line.Discount}}</td>
        <td>{{$line.Total}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>

  <table class="totals">
    {{if .HasRial}}
    <tr>
      <td class="label">جمع ریالی</td>
      <td class="value">{{.RialPayable}} ریال</td>
    </tr>
    {{end}}
    {{if .HasUSD}}
    <tr>
      <td class="label">جمع ارزی</td>
      <td class="value">{{.USDPayable}} $</td>
    </tr>
    {{end}}
    {{if .SumDiscount}}
    <tr>
      <td class="label">جمع تخفیف</td>
      <td class="value">{{.SumDiscount}}</td>
    </tr>
    {{end}}
  </table>

  {{if .Comment}}<div class="comment">{{.Comment}}</div>{{end}}
</body>
</html>`))

// RenderInvoiceHTML fills the invoice template with the document data.
func RenderInvoiceHTML(doc *Document) (string, error) {
	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, doc); err != nil {
		return "", NewRenderError(ErrCodeInvalidHTML, "invoice template failed", err)
	}
	return buf.String(), nil
}
