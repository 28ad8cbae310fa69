package billing

import (
	"time"

	"github.com/evasence/holoo-admin/internal/domain/shared"
)

// Customer is the party a draft invoice is billed to.
type Customer struct {
	Code    string `json:"code"`
	ErpCode string `json:"erp_code"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// Draft is a per-session work-in-progress invoice. It survives page reloads
// through the draft store and is cleared only after a successful submission.
type Draft struct {
	Customer       *Customer       `json:"customer,omitempty"`
	SellerErpCode  string          `json:"seller_erp_code,omitempty"`
	Items          []LineItem      `json:"items"`
	GlobalDiscount DiscountPercent `json:"global_discount"`
	Comment        string          `json:"comment,omitempty"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Domain errors for draft validation
var (
	ErrNoCustomer = shared.NewDomainError("DRAFT_NO_CUSTOMER", "A customer must be selected before submitting")
	ErrNoItems    = shared.NewDomainError("DRAFT_NO_ITEMS", "At least one complete item is required before submitting")
)

// SubmittableItems returns only the rows complete enough to send upstream.
func (d *Draft) SubmittableItems() []LineItem {
	items := make([]LineItem, 0, len(d.Items))
	for _, item := range d.Items {
		if item.Submittable() {
			items = append(items, item)
		}
	}
	return items
}

// Totals computes the currency-split aggregate over the submittable rows.
func (d *Draft) Totals() InvoiceTotals {
	return ComputeInvoiceTotals(d.SubmittableItems(), d.GlobalDiscount)
}

// Validate checks the draft is ready for submission. It runs before any
// network call so incomplete drafts fail fast and cheap.
func (d *Draft) Validate() error {
	if d.Customer == nil || d.Customer.ErpCode == "" {
		return ErrNoCustomer
	}
	if len(d.SubmittableItems()) == 0 {
		return ErrNoItems
	}
	return nil
}
