package invoicing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evasence/holoo-admin/internal/domain/billing"
	"github.com/evasence/holoo-admin/internal/domain/shared"
	"github.com/evasence/holoo-admin/internal/infrastructure/draft"
	"github.com/evasence/holoo-admin/internal/infrastructure/erp"
	"github.com/evasence/holoo-admin/internal/infrastructure/printing"
)

type stubGateway struct {
	created     *erp.PreInvoice
	createErr   error
	preInvoices []erp.PreInvoice
	invoices    []erp.Invoice
	converted   *erp.Invoice
	convertErr  error
	deleted     []string
}

func (g *stubGateway) CreatePreInvoice(_ context.Context, _ string, pre *erp.PreInvoice) (*erp.PreInvoice, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.created = pre
	out := *pre
	out.ID = "pre-1"
	return &out, nil
}

func (g *stubGateway) ListPreInvoices(context.Context, string) ([]erp.PreInvoice, error) {
	return g.preInvoices, nil
}

func (g *stubGateway) GetPreInvoice(_ context.Context, _, id string) (*erp.PreInvoice, error) {
	for i := range g.preInvoices {
		if g.preInvoices[i].ID == id {
			return &g.preInvoices[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (g *stubGateway) DeletePreInvoice(_ context.Context, _, id string) error {
	g.deleted = append(g.deleted, id)
	return nil
}

func (g *stubGateway) ConvertPreInvoice(context.Context, string, string) (*erp.Invoice, error) {
	return g.converted, g.convertErr
}

func (g *stubGateway) ListInvoices(context.Context, string) ([]erp.Invoice, error) {
	return g.invoices, nil
}

func (g *stubGateway) GetInvoice(_ context.Context, _, id string) (*erp.Invoice, error) {
	for i := range g.invoices {
		if g.invoices[i].ID == id {
			return &g.invoices[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func draftWithItems() *billing.Draft {
	return &billing.Draft{
		Customer: &billing.Customer{Code: "10", ErpCode: "C-1", Name: "فروشگاه نمونه"},
		Items: []billing.LineItem{
			{
				ProductCode:    "1001",
				ProductErpCode: "P-1",
				ProductName:    "کالای ریالی",
				Quantity:       2,
				UnitPrice:      decimal.NewFromInt(100000),
				Tier:           billing.TierSellPrice,
				Discount:       billing.ParseDiscountPercent("10"),
			},
			{
				ProductCode:    "1002",
				ProductErpCode: "P-2",
				ProductName:    "کالای ارزی",
				Quantity:       3,
				UnitPrice:      decimal.NewFromInt(50),
				Tier:           billing.TierSellPrice4,
			},
			// incomplete row, skipped at submit
			{ProductName: "ناتمام", Quantity: 1},
		},
	}
}

func TestDraftLifecycle(t *testing.T) {
	store := draft.NewMemoryStore()
	svc := NewService(&stubGateway{}, store, nil, nil, nil)
	ctx := context.Background()

	t.Run("missing draft comes back empty", func(t *testing.T) {
		state, err := svc.Draft(ctx, "s1")
		require.NoError(t, err)
		assert.Nil(t, state.Draft.Customer)
		assert.Empty(t, state.Draft.Items)
	})

	t.Run("save computes totals", func(t *testing.T) {
		state, err := svc.SaveDraft(ctx, "s1", draftWithItems())
		require.NoError(t, err)
		// 200000 gross minus 10% item discount
		assert.True(t, state.Totals.Rial.Payable.Equal(decimal.NewFromInt(180000)))
		// dollar quantity never scales the price
		assert.True(t, state.Totals.USD.Payable.Equal(decimal.NewFromInt(50)))
	})

	t.Run("draft survives reload", func(t *testing.T) {
		state, err := svc.Draft(ctx, "s1")
		require.NoError(t, err)
		require.NotNil(t, state.Draft.Customer)
		assert.Equal(t, "C-1", state.Draft.Customer.ErpCode)
	})

	t.Run("clear removes it", func(t *testing.T) {
		require.NoError(t, svc.ClearDraft(ctx, "s1"))
		state, err := svc.Draft(ctx, "s1")
		require.NoError(t, err)
		assert.Nil(t, state.Draft.Customer)
	})
}

func TestSubmitPreInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("submits aggregates and clears the draft", func(t *testing.T) {
		store := draft.NewMemoryStore()
		gw := &stubGateway{}
		svc := NewService(gw, store, nil, nil, nil)

		d := draftWithItems()
		d.GlobalDiscount = billing.ParseDiscountPercent("10")
		_, err := svc.SaveDraft(ctx, "s1", d)
		require.NoError(t, err)

		view, err := svc.SubmitPreInvoice(ctx, "tok", "s1")
		require.NoError(t, err)
		assert.Equal(t, "pre-1", view.ID)

		require.NotNil(t, gw.created)
		// incomplete rows are dropped
		require.Len(t, gw.created.Detail, 2)
		// subtotal before discounts: 200000 rial + 50 dollar
		assert.True(t, gw.created.SumPrice.Equal(decimal.NewFromInt(200050)))
		// item 20000 + global 18000 rial + global 5 dollar, rounded
		assert.True(t, gw.created.SumDiscount.Equal(decimal.NewFromInt(38005)))
		// dollar lines carry the marker quantity
		assert.True(t, gw.created.Detail[1].Few.Equal(decimal.NewFromInt(5)))

		state, err := svc.Draft(ctx, "s1")
		require.NoError(t, err)
		assert.Nil(t, state.Draft.Customer)
	})

	t.Run("upstream failure keeps the draft", func(t *testing.T) {
		store := draft.NewMemoryStore()
		gw := &stubGateway{createErr: shared.ErrUpstreamFailure}
		svc := NewService(gw, store, nil, nil, nil)

		_, err := svc.SaveDraft(ctx, "s1", draftWithItems())
		require.NoError(t, err)

		_, err = svc.SubmitPreInvoice(ctx, "tok", "s1")
		assert.ErrorIs(t, err, shared.ErrUpstreamFailure)

		state, err := svc.Draft(ctx, "s1")
		require.NoError(t, err)
		require.NotNil(t, state.Draft.Customer)
	})

	t.Run("draft without customer is rejected", func(t *testing.T) {
		svc := NewService(&stubGateway{}, draft.NewMemoryStore(), nil, nil, nil)
		_, err := svc.SubmitPreInvoice(ctx, "tok", "s1")
		assert.ErrorIs(t, err, billing.ErrNoCustomer)
	})

	t.Run("draft with only incomplete rows is rejected", func(t *testing.T) {
		store := draft.NewMemoryStore()
		svc := NewService(&stubGateway{}, store, nil, nil, nil)

		d := &billing.Draft{
			Customer: &billing.Customer{ErpCode: "C-1", Name: "x"},
			Items:    []billing.LineItem{{ProductName: "ناتمام"}},
		}
		_, err := svc.SaveDraft(ctx, "s1", d)
		require.NoError(t, err)

		_, err = svc.SubmitPreInvoice(ctx, "tok", "s1")
		assert.ErrorIs(t, err, billing.ErrNoItems)
	})
}

func TestListsAreNewestFirst(t *testing.T) {
	gw := &stubGateway{preInvoices: []erp.PreInvoice{
		{ID: "old", Detail: []erp.InvoiceDetail{}},
		{ID: "new", Detail: []erp.InvoiceDetail{}},
	}}
	svc := NewService(gw, draft.NewMemoryStore(), nil, nil, nil)

	summaries, err := svc.PreInvoices(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "new", summaries[0].ID)
	assert.Equal(t, "old", summaries[1].ID)
}

func TestDetailViewSplitsCurrencies(t *testing.T) {
	gw := &stubGateway{invoices: []erp.Invoice{{
		ID:          "inv-1",
		SumDiscount: decimal.NewFromInt(20000),
		Detail: []erp.InvoiceDetail{
			{ProductErpCode: "P-1", Few: decimal.NewFromInt(2), Price: decimal.NewFromInt(100000), SumPrice: decimal.NewFromInt(180000)},
			{ProductErpCode: "P-2", Few: decimal.NewFromInt(5), Price: decimal.NewFromInt(50), SumPrice: decimal.NewFromInt(50)},
		},
	}}}
	svc := NewService(gw, draft.NewMemoryStore(), nil, nil, nil)

	view, err := svc.Invoice(context.Background(), "tok", "inv-1")
	require.NoError(t, err)

	assert.True(t, view.Totals.HasRial)
	assert.True(t, view.Totals.RialTotal.Equal(decimal.NewFromInt(180000)))
	assert.True(t, view.Totals.HasUSD)
	assert.True(t, view.Totals.USDTotal.Equal(decimal.NewFromInt(50)))
	assert.True(t, view.Totals.SumDiscount.Equal(decimal.NewFromInt(20000)))

	require.Len(t, view.Lines, 2)
	assert.False(t, view.Lines[0].USD)
	assert.Equal(t, int64(2), view.Lines[0].Quantity)
	assert.True(t, view.Lines[1].USD)
	// the marker quantity on dollar lines reads back as one
	assert.Equal(t, int64(1), view.Lines[1].Quantity)
}

func TestConvertPassesCreditErrorThrough(t *testing.T) {
	gw := &stubGateway{convertErr: shared.ErrInsufficientCredit}
	svc := NewService(gw, draft.NewMemoryStore(), nil, nil, nil)

	_, err := svc.ConvertToInvoice(context.Background(), "tok", "pre-1")
	assert.ErrorIs(t, err, shared.ErrInsufficientCredit)
}

type stubRenderer struct {
	lastHTML string
}

func (r *stubRenderer) Render(_ context.Context, req *printing.RenderRequest) (*printing.RenderResult, error) {
	r.lastHTML = req.HTML
	return &printing.RenderResult{PDFData: []byte("%PDF-stub")}, nil
}

func (r *stubRenderer) Close() error { return nil }

func TestExportInvoicePDF(t *testing.T) {
	gw := &stubGateway{invoices: []erp.Invoice{{
		ID:           "inv-1",
		CustomerName: "فروشگاه نمونه",
		Detail: []erp.InvoiceDetail{
			{ProductErpCode: "P-1", ProductName: "کالا", Few: decimal.NewFromInt(1), Price: decimal.NewFromInt(1000), SumPrice: decimal.NewFromInt(1000)},
		},
	}}}
	renderer := &stubRenderer{}
	svc := NewService(gw, draft.NewMemoryStore(), renderer, nil, nil)

	export, err := svc.ExportInvoicePDF(context.Background(), "tok", "inv-1")
	require.NoError(t, err)
	assert.Equal(t, "invoice-inv-1.pdf", export.FileName)
	assert.NotEmpty(t, export.PDF)
	assert.Contains(t, renderer.lastHTML, "فروشگاه نمونه")
}

type stubArchive struct {
	lastID string
}

func (a *stubArchive) Archive(_ context.Context, invoiceID string, _ []byte) (string, error) {
	a.lastID = invoiceID
	return "invoices/2026/08/" + invoiceID + ".pdf", nil
}

func (a *stubArchive) DownloadURL(_ context.Context, key string) (string, time.Time, error) {
	return "https://archive.test/" + key, time.Now().Add(15 * time.Minute), nil
}

func TestExportArchivesCopy(t *testing.T) {
	gw := &stubGateway{invoices: []erp.Invoice{{ID: "inv-7"}}}
	archive := &stubArchive{}
	svc := NewService(gw, draft.NewMemoryStore(), &stubRenderer{}, archive, nil)

	export, err := svc.ExportInvoicePDF(context.Background(), "tok", "inv-7")
	require.NoError(t, err)
	assert.Equal(t, "inv-7", archive.lastID)
	assert.Equal(t, "invoices/2026/08/inv-7.pdf", export.ArchiveKey)
	assert.Contains(t, export.ArchiveURL, export.ArchiveKey)
}

func TestExportWithoutRenderer(t *testing.T) {
	svc := NewService(&stubGateway{invoices: []erp.Invoice{{ID: "inv-1"}}}, draft.NewMemoryStore(), nil, nil, nil)
	_, err := svc.ExportInvoicePDF(context.Background(), "tok", "inv-1")
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}
