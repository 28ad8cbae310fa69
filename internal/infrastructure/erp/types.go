// Package erp is the HTTP adapter for the Holoo accounting API. The field
// casing on the wire types mirrors what Holoo actually emits, inconsistent
// capitalization included.
package erp

import (
	"github.com/shopspring/decimal"

	"github.com/evasence/holoo-admin/internal/domain/billing"
)

// Product is a Holoo product record with its ten parallel sell prices.
type Product struct {
	Code             string          `json:"Code"`
	ErpCode          string          `json:"ErpCode"`
	Name             string          `json:"Name"`
	Unit             string          `json:"Unit,omitempty"`
	Few              decimal.Decimal `json:"Few"`
	SellPrice        decimal.Decimal `json:"SellPrice"`
	SellPrice2       decimal.Decimal `json:"SellPrice2"`
	SellPrice3       decimal.Decimal `json:"SellPrice3"`
	SellPrice4       decimal.Decimal `json:"SellPrice4"`
	SellPrice5       decimal.Decimal `json:"SellPrice5"`
	SellPrice6       decimal.Decimal `json:"SellPrice6"`
	SellPrice7       decimal.Decimal `json:"SellPrice7"`
	SellPrice8       decimal.Decimal `json:"SellPrice8"`
	SellPrice9       decimal.Decimal `json:"SellPrice9"`
	SellPrice10      decimal.Decimal `json:"SellPrice10"`
	MainGroupErpCode string          `json:"MainGroupErpCode,omitempty"`
	SideGroupErpCode string          `json:"SideGroupErpCode,omitempty"`
}

// TierPrice returns the price on the given tier.
func (p *Product) TierPrice(tier billing.PriceTier) decimal.Decimal {
	switch tier {
	case billing.TierSellPrice:
		return p.SellPrice
	case billing.TierSellPrice2:
		return p.SellPrice2
	case billing.TierSellPrice3:
		return p.SellPrice3
	case billing.TierSellPrice4:
		return p.SellPrice4
	case billing.TierSellPrice5:
		return p.SellPrice5
	case billing.TierSellPrice6:
		return p.SellPrice6
	case billing.TierSellPrice7:
		return p.SellPrice7
	case billing.TierSellPrice8:
		return p.SellPrice8
	case billing.TierSellPrice9:
		return p.SellPrice9
	case billing.TierSellPrice10:
		return p.SellPrice10
	}
	return decimal.Zero
}

// Customer is a Holoo customer record.
type Customer struct {
	Code      string          `json:"Code"`
	ErpCode   string          `json:"ErpCode"`
	Name      string          `json:"Name"`
	Mobile    string          `json:"Mobile,omitempty"`
	Phone     string          `json:"Phone,omitempty"`
	Address   string          `json:"Address,omitempty"`
	Credit    decimal.Decimal `json:"Credit,omitempty"`
	IsBlocked bool            `json:"IsBlocked,omitempty"`
}

// CustomerAddress is one delivery address attached to a customer.
type CustomerAddress struct {
	ErpCode         string `json:"ErpCode"`
	CustomerErpCode string `json:"CustomerErpCode"`
	Address         string `json:"Address"`
	Tel             string `json:"Tel,omitempty"`
}

// Seller is a Holoo salesperson record.
type Seller struct {
	Code    string `json:"Code"`
	ErpCode string `json:"ErpCode"`
	Name    string `json:"Name"`
}

// User is the authenticated dashboard operator as Holoo reports it.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role,omitempty"`
}

// usdDetailFew is the magic quantity Holoo stores on dollar detail lines.
// The writing side always sends quantity 5 for dollar lines, so the reading
// side uses it to recover the currency. Isolated here on purpose.
const usdDetailFew = 5

// InvoiceDetail is one line of a pre-invoice or invoice as Holoo returns it.
type InvoiceDetail struct {
	ProductErpCode  string          `json:"ProductErpCode"`
	ProductCode     string          `json:"ProductCode,omitempty"`
	ProductName     string          `json:"ProductName,omitempty"`
	Few             decimal.Decimal `json:"Few"`
	Price           decimal.Decimal `json:"Price"`
	SumPrice        decimal.Decimal `json:"SumPrice"`
	DiscountPercent decimal.Decimal `json:"discountpercent"`
}

// IsUSD reports whether this detail line is denominated in dollars.
func (d *InvoiceDetail) IsUSD() bool {
	return d.Few.Equal(decimal.NewFromInt(usdDetailFew))
}

// PreInvoice is a Holoo pre-invoice record.
type PreInvoice struct {
	ID              string          `json:"_id,omitempty"`
	ErpCode         string          `json:"ErpCode,omitempty"`
	InvoiceNumber   string          `json:"InvoiceNumber,omitempty"`
	CustomerErpCode string          `json:"CustomerErpCode"`
	CustomerName    string          `json:"CustomerName,omitempty"`
	SellerErpCode   string          `json:"TypeSalesRef,omitempty"`
	Date            string          `json:"Date,omitempty"`
	SumPrice        decimal.Decimal `json:"SumPrice"`
	SumDiscount     decimal.Decimal `json:"SumDiscount"`
	Comment         string          `json:"Comment,omitempty"`
	Detail          []InvoiceDetail `json:"Detail"`
}

// Invoice is a Holoo invoice record. Same shape as a pre-invoice on the
// wire, kept as its own type so the two never get mixed up in signatures.
type Invoice struct {
	ID              string          `json:"_id,omitempty"`
	ErpCode         string          `json:"ErpCode,omitempty"`
	InvoiceNumber   string          `json:"InvoiceNumber,omitempty"`
	CustomerErpCode string          `json:"CustomerErpCode"`
	CustomerName    string          `json:"CustomerName,omitempty"`
	Date            string          `json:"Date,omitempty"`
	SumPrice        decimal.Decimal `json:"SumPrice"`
	SumDiscount     decimal.Decimal `json:"SumDiscount"`
	Comment         string          `json:"Comment,omitempty"`
	Detail          []InvoiceDetail `json:"Detail"`
}

// NewDetail builds a wire detail line from a domain line item. Dollar lines
// go out with the magic quantity so later reads can recover the currency.
func NewDetail(item billing.LineItem) InvoiceDetail {
	few := decimal.NewFromInt(item.Quantity)
	if item.Tier.IsUSD() {
		few = decimal.NewFromInt(usdDetailFew)
	}
	return InvoiceDetail{
		ProductErpCode:  item.ProductErpCode,
		ProductCode:     item.ProductCode,
		ProductName:     item.ProductName,
		Few:             few,
		Price:           item.UnitPrice,
		SumPrice:        item.Total(),
		DiscountPercent: item.Discount.Value(),
	}
}

// LoginRequest is the credential payload for /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token Holoo hands back on login.
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}
