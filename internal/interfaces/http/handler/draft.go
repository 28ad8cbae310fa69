package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/evasence/holoo-admin/internal/application/invoicing"
	"github.com/evasence/holoo-admin/internal/domain/billing"
)

// DraftHandler serves the per-session draft invoice. There is exactly one
// draft per session; it survives reloads and disappears only on a successful
// submission or an explicit discard.
type DraftHandler struct {
	BaseHandler
	invoicing *invoicing.Service
}

// NewDraftHandler creates a draft handler.
func NewDraftHandler(invoicingSvc *invoicing.Service) *DraftHandler {
	return &DraftHandler{invoicing: invoicingSvc}
}

// Get returns the session's draft with computed totals.
func (h *DraftHandler) Get(c *gin.Context) {
	state, err := h.invoicing.Draft(c.Request.Context(), sessionID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, state)
}

// Save replaces the session's draft. Discount percentages clamp to [0, 100]
// during decoding, so a hostile payload cannot produce negative totals.
func (h *DraftHandler) Save(c *gin.Context) {
	var d billing.Draft
	if err := c.ShouldBindJSON(&d); err != nil {
		h.BadRequest(c, "invalid draft payload")
		return
	}

	state, err := h.invoicing.SaveDraft(c.Request.Context(), sessionID(c), &d)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, state)
}

// Clear discards the session's draft.
func (h *DraftHandler) Clear(c *gin.Context) {
	if err := h.invoicing.ClearDraft(c.Request.Context(), sessionID(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Submit validates the draft and creates a pre-invoice upstream. The draft
// is cleared only when the upstream accepts it.
func (h *DraftHandler) Submit(c *gin.Context) {
	view, err := h.invoicing.SubmitPreInvoice(c.Request.Context(), erpToken(c), sessionID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}
