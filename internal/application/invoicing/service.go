// Package invoicing drives the draft lifecycle, pre-invoice and invoice
// operations, and PDF export.
package invoicing

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/evasence/holoo-admin/internal/domain/billing"
	"github.com/evasence/holoo-admin/internal/domain/shared"
	"github.com/evasence/holoo-admin/internal/infrastructure/draft"
	"github.com/evasence/holoo-admin/internal/infrastructure/erp"
	"github.com/evasence/holoo-admin/internal/infrastructure/printing"
	"github.com/evasence/holoo-admin/internal/infrastructure/storage"
)

// Gateway is the slice of the Holoo client the invoicing flow needs.
type Gateway interface {
	CreatePreInvoice(ctx context.Context, token string, pre *erp.PreInvoice) (*erp.PreInvoice, error)
	ListPreInvoices(ctx context.Context, token string) ([]erp.PreInvoice, error)
	GetPreInvoice(ctx context.Context, token, id string) (*erp.PreInvoice, error)
	DeletePreInvoice(ctx context.Context, token, id string) error
	ConvertPreInvoice(ctx context.Context, token, id string) (*erp.Invoice, error)
	ListInvoices(ctx context.Context, token string) ([]erp.Invoice, error)
	GetInvoice(ctx context.Context, token, id string) (*erp.Invoice, error)
}

// Service implements the invoicing workflows on top of the accounting system
// and the per-session draft store.
type Service struct {
	gateway  Gateway
	drafts   draft.Store
	renderer printing.PDFRenderer
	archive  storage.PDFArchive
	logger   *zap.Logger
}

// NewService creates an invoicing service. The renderer and archive are
// optional; without a renderer PDF export is unavailable, and without an
// archive exports are returned but not stored.
func NewService(gateway Gateway, drafts draft.Store, renderer printing.PDFRenderer, archive storage.PDFArchive, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		gateway:  gateway,
		drafts:   drafts,
		renderer: renderer,
		archive:  archive,
		logger:   logger,
	}
}

// DraftState is a draft together with its computed totals, so the dashboard
// never computes money client-side.
type DraftState struct {
	Draft  *billing.Draft        `json:"draft"`
	Totals billing.InvoiceTotals `json:"totals"`
}

// Draft returns the session's draft. A session with no stored draft gets a
// fresh empty one.
func (s *Service) Draft(ctx context.Context, sessionID string) (*DraftState, error) {
	d, err := s.drafts.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		d = &billing.Draft{Items: []billing.LineItem{}}
	}
	return &DraftState{Draft: d, Totals: d.Totals()}, nil
}

// SaveDraft stores the session's draft and returns the recomputed totals.
func (s *Service) SaveDraft(ctx context.Context, sessionID string, d *billing.Draft) (*DraftState, error) {
	if d == nil {
		return nil, shared.ErrInvalidInput
	}
	if err := s.drafts.Save(ctx, sessionID, d); err != nil {
		return nil, err
	}
	return &DraftState{Draft: d, Totals: d.Totals()}, nil
}

// ClearDraft discards the session's draft on explicit operator request.
func (s *Service) ClearDraft(ctx context.Context, sessionID string) error {
	return s.drafts.Clear(ctx, sessionID)
}

// SubmitPreInvoice validates the session's draft, sends it upstream as a
// pre-invoice and, only once the upstream accepts it, clears the draft. Any
// failure leaves the draft untouched for the operator to retry.
func (s *Service) SubmitPreInvoice(ctx context.Context, token, sessionID string) (*DetailView, error) {
	d, err := s.drafts.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		d = &billing.Draft{}
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	items := d.SubmittableItems()
	totals := billing.ComputeInvoiceTotals(items, d.GlobalDiscount)

	details := make([]erp.InvoiceDetail, 0, len(items))
	for _, item := range items {
		details = append(details, erp.NewDetail(item))
	}

	pre := &erp.PreInvoice{
		CustomerErpCode: d.Customer.ErpCode,
		CustomerName:    d.Customer.Name,
		SellerErpCode:   d.SellerErpCode,
		SumPrice:        totals.Rial.Subtotal.Add(totals.USD.Subtotal),
		SumDiscount:     totals.RoundedSumDiscount(),
		Comment:         d.Comment,
		Detail:          details,
	}

	created, err := s.gateway.CreatePreInvoice(ctx, token, pre)
	if err != nil {
		return nil, err
	}

	if err := s.drafts.Clear(ctx, sessionID); err != nil {
		// the submission stands; the stale draft just lingers until its TTL
		s.logger.Warn("draft clear after submit failed",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}

	s.logger.Info("pre-invoice submitted",
		zap.String("customer_erp_code", pre.CustomerErpCode),
		zap.Int("lines", len(details)))
	return preInvoiceDetail(created), nil
}

// PreInvoices lists pre-invoices, newest first.
func (s *Service) PreInvoices(ctx context.Context, token string) ([]Summary, error) {
	records, err := s.gateway.ListPreInvoices(ctx, token)
	if err != nil {
		return nil, err
	}
	summaries := make([]Summary, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		summaries = append(summaries, preInvoiceSummary(&records[i]))
	}
	return summaries, nil
}

// PreInvoice fetches one pre-invoice with its lines.
func (s *Service) PreInvoice(ctx context.Context, token, id string) (*DetailView, error) {
	record, err := s.gateway.GetPreInvoice(ctx, token, id)
	if err != nil {
		return nil, err
	}
	return preInvoiceDetail(record), nil
}

// DeletePreInvoice removes a pre-invoice upstream.
func (s *Service) DeletePreInvoice(ctx context.Context, token, id string) error {
	return s.gateway.DeletePreInvoice(ctx, token, id)
}

// ConvertToInvoice turns a pre-invoice into a final invoice. A customer
// lacking credit surfaces as ErrInsufficientCredit for the handler to relay.
func (s *Service) ConvertToInvoice(ctx context.Context, token, id string) (*DetailView, error) {
	inv, err := s.gateway.ConvertPreInvoice(ctx, token, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("pre-invoice converted", zap.String("pre_invoice_id", id))
	return invoiceDetail(inv), nil
}

// Invoices lists invoices, newest first.
func (s *Service) Invoices(ctx context.Context, token string) ([]Summary, error) {
	records, err := s.gateway.ListInvoices(ctx, token)
	if err != nil {
		return nil, err
	}
	summaries := make([]Summary, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		summaries = append(summaries, invoiceSummary(&records[i]))
	}
	return summaries, nil
}

// Invoice fetches one invoice with its lines.
func (s *Service) Invoice(ctx context.Context, token, id string) (*DetailView, error) {
	record, err := s.gateway.GetInvoice(ctx, token, id)
	if err != nil {
		return nil, err
	}
	return invoiceDetail(record), nil
}

// Export is a rendered PDF ready to stream to the browser. When a copy was
// archived, ArchiveURL is a presigned link to it.
type Export struct {
	FileName   string
	PDF        []byte
	ArchiveKey string
	ArchiveURL string
}

// ExportInvoicePDF renders an invoice as a printable PDF and, when an
// archive is configured, stores a copy.
func (s *Service) ExportInvoicePDF(ctx context.Context, token, id string) (*Export, error) {
	record, err := s.gateway.GetInvoice(ctx, token, id)
	if err != nil {
		return nil, err
	}
	return s.export(ctx, id, buildDocument("فاکتور", invoiceDetail(record)))
}

// ExportPreInvoicePDF renders a pre-invoice as a printable PDF.
func (s *Service) ExportPreInvoicePDF(ctx context.Context, token, id string) (*Export, error) {
	record, err := s.gateway.GetPreInvoice(ctx, token, id)
	if err != nil {
		return nil, err
	}
	return s.export(ctx, id, buildDocument("پیش‌فاکتور", preInvoiceDetail(record)))
}

func (s *Service) export(ctx context.Context, id string, doc *printing.Document) (*Export, error) {
	if s.renderer == nil {
		return nil, shared.ErrInvalidState
	}

	html, err := printing.RenderInvoiceHTML(doc)
	if err != nil {
		return nil, err
	}

	result, err := s.renderer.Render(ctx, &printing.RenderRequest{
		HTML:    html,
		Title:   doc.Title,
		Margins: printing.DefaultMargins(),
	})
	if err != nil {
		return nil, err
	}

	export := &Export{
		FileName: fmt.Sprintf("invoice-%s.pdf", id),
		PDF:      result.PDFData,
	}

	if s.archive != nil {
		key, err := s.archive.Archive(ctx, id, result.PDFData)
		if err != nil {
			// export still succeeds; archiving is an extra copy
			s.logger.Warn("pdf archive failed",
				zap.String("invoice_id", id),
				zap.Error(err))
		} else {
			export.ArchiveKey = key
			if u, _, err := s.archive.DownloadURL(ctx, key); err == nil {
				export.ArchiveURL = u
			}
		}
	}

	return export, nil
}

// buildDocument shapes a document view into the printable layout.
func buildDocument(title string, view *DetailView) *printing.Document {
	lines := make([]printing.DocumentLine, 0, len(view.Lines))
	for _, line := range view.Lines {
		lines = append(lines, printing.DocumentLine{
			Name:      line.ProductName,
			Quantity:  printing.FormatCount(line.Quantity),
			UnitPrice: printing.FormatMoney(line.UnitPriceMoney()),
			Discount:  printing.FormatPercent(line.DiscountPercent),
			Total:     printing.FormatMoney(line.TotalMoney()),
			USD:       line.USD,
		})
	}

	doc := &printing.Document{
		Title:        title,
		Number:       view.Number,
		Date:         view.Date,
		CustomerName: view.CustomerName,
		Comment:      view.Comment,
		Lines:        lines,
		HasRial:      view.Totals.HasRial,
		HasUSD:       view.Totals.HasUSD,
	}
	if doc.HasRial {
		doc.RialPayable = printing.FormatMoney(view.Totals.RialMoney())
	}
	if doc.HasUSD {
		doc.USDPayable = printing.FormatMoney(view.Totals.USDMoney())
	}
	if view.Totals.SumDiscount.IsPositive() {
		doc.SumDiscount = printing.FormatRial(view.Totals.SumDiscount)
	}
	return doc
}
