package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/evasence/holoo-admin/internal/application/partner"
	"github.com/evasence/holoo-admin/internal/domain/shared"
	"github.com/evasence/holoo-admin/internal/interfaces/http/dto"
)

// CustomerHandler serves customer lookups. The upstream returns full lists,
// so paging happens here after the fetch.
type CustomerHandler struct {
	BaseHandler
	partners *partner.Service
}

// NewCustomerHandler creates a customer handler.
func NewCustomerHandler(partners *partner.Service) *CustomerHandler {
	return &CustomerHandler{partners: partners}
}

// List returns one page of the operator's customers.
func (h *CustomerHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "invalid pagination parameters")
		return
	}
	req.Normalize()

	customers, err := h.partners.Customers(c.Request.Context(), erpToken(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := shared.ClampPage(req.Page, len(customers), req.PageSize)
	h.SuccessWithMeta(c, shared.Page(customers, page, req.PageSize), int64(len(customers)), page, req.PageSize)
}

// Search filters customers by name or phone number.
func (h *CustomerHandler) Search(c *gin.Context) {
	results, err := h.partners.SearchCustomers(c.Request.Context(), erpToken(c), c.Query("q"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, results)
}

// Addresses lists the delivery addresses of one customer.
func (h *CustomerHandler) Addresses(c *gin.Context) {
	addresses, err := h.partners.Addresses(c.Request.Context(), erpToken(c), c.Param("erpCode"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, addresses)
}
