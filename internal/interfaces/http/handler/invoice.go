package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/evasence/holoo-admin/internal/application/invoicing"
	"github.com/evasence/holoo-admin/internal/domain/shared"
	"github.com/evasence/holoo-admin/internal/interfaces/http/dto"
)

// InvoiceHandler serves the final invoice list and PDF export.
type InvoiceHandler struct {
	BaseHandler
	invoicing *invoicing.Service
}

// NewInvoiceHandler creates an invoice handler.
func NewInvoiceHandler(invoicingSvc *invoicing.Service) *InvoiceHandler {
	return &InvoiceHandler{invoicing: invoicingSvc}
}

// List returns one page of invoices, newest first.
func (h *InvoiceHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "invalid pagination parameters")
		return
	}
	req.Normalize()

	summaries, err := h.invoicing.Invoices(c.Request.Context(), erpToken(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := shared.ClampPage(req.Page, len(summaries), req.PageSize)
	h.SuccessWithMeta(c, shared.Page(summaries, page, req.PageSize), int64(len(summaries)), page, req.PageSize)
}

// Get returns one invoice with its lines.
func (h *InvoiceHandler) Get(c *gin.Context) {
	view, err := h.invoicing.Invoice(c.Request.Context(), erpToken(c), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// ExportPDF streams a printable PDF of the invoice.
func (h *InvoiceHandler) ExportPDF(c *gin.Context) {
	export, err := h.invoicing.ExportInvoicePDF(c.Request.Context(), erpToken(c), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	servePDF(c, export)
}

// servePDF writes a rendered export as a file download. When a copy landed in
// the archive, its presigned link rides along in a header.
func servePDF(c *gin.Context, export *invoicing.Export) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, export.FileName))
	if export.ArchiveURL != "" {
		c.Header("X-Archive-Url", export.ArchiveURL)
	}
	c.Data(http.StatusOK, "application/pdf", export.PDF)
}
