package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/evasence/holoo-admin/internal/application/partner"
)

// SellerHandler serves salesperson lookups.
type SellerHandler struct {
	BaseHandler
	partners *partner.Service
}

// NewSellerHandler creates a seller handler.
func NewSellerHandler(partners *partner.Service) *SellerHandler {
	return &SellerHandler{partners: partners}
}

// List returns all salespeople.
func (h *SellerHandler) List(c *gin.Context) {
	sellers, err := h.partners.Sellers(c.Request.Context(), erpToken(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sellers)
}

// Search filters salespeople by name.
func (h *SellerHandler) Search(c *gin.Context) {
	sellers, err := h.partners.SearchSellers(c.Request.Context(), erpToken(c), c.Query("q"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sellers)
}
