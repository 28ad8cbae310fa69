package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/evasence/holoo-admin/internal/application/invoicing"
	"github.com/evasence/holoo-admin/internal/domain/shared"
	"github.com/evasence/holoo-admin/internal/interfaces/http/dto"
)

// PreInvoiceHandler serves the pre-invoice list and lifecycle.
type PreInvoiceHandler struct {
	BaseHandler
	invoicing *invoicing.Service
}

// NewPreInvoiceHandler creates a pre-invoice handler.
func NewPreInvoiceHandler(invoicingSvc *invoicing.Service) *PreInvoiceHandler {
	return &PreInvoiceHandler{invoicing: invoicingSvc}
}

// List returns one page of pre-invoices, newest first.
func (h *PreInvoiceHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "invalid pagination parameters")
		return
	}
	req.Normalize()

	summaries, err := h.invoicing.PreInvoices(c.Request.Context(), erpToken(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := shared.ClampPage(req.Page, len(summaries), req.PageSize)
	h.SuccessWithMeta(c, shared.Page(summaries, page, req.PageSize), int64(len(summaries)), page, req.PageSize)
}

// Get returns one pre-invoice with its lines.
func (h *PreInvoiceHandler) Get(c *gin.Context) {
	view, err := h.invoicing.PreInvoice(c.Request.Context(), erpToken(c), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Delete removes a pre-invoice.
func (h *PreInvoiceHandler) Delete(c *gin.Context) {
	if err := h.invoicing.DeletePreInvoice(c.Request.Context(), erpToken(c), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Convert turns a pre-invoice into a final invoice. A customer without
// enough credit answers 422 with the credit error code.
func (h *PreInvoiceHandler) Convert(c *gin.Context) {
	view, err := h.invoicing.ConvertToInvoice(c.Request.Context(), erpToken(c), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// ExportPDF streams a printable PDF of the pre-invoice.
func (h *PreInvoiceHandler) ExportPDF(c *gin.Context) {
	export, err := h.invoicing.ExportPreInvoicePDF(c.Request.Context(), erpToken(c), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	servePDF(c, export)
}
