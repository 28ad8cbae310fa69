package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/evasence/holoo-admin/internal/application/catalog"
	"github.com/evasence/holoo-admin/internal/interfaces/http/dto"
)

// ProductHandler serves the product catalog.
type ProductHandler struct {
	BaseHandler
	catalog *catalog.Service
}

// NewProductHandler creates a product handler.
func NewProductHandler(catalogSvc *catalog.Service) *ProductHandler {
	return &ProductHandler{catalog: catalogSvc}
}

// Search looks products up by name or code. A response overtaken by a newer
// search on the same session answers 409 and the dashboard drops it.
func (h *ProductHandler) Search(c *gin.Context) {
	query := c.Query("q")
	results, err := h.catalog.Search(c.Request.Context(), erpToken(c), sessionID(c), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, results)
}

// List returns one page of the catalog. Paging is forwarded upstream.
func (h *ProductHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "invalid pagination parameters")
		return
	}
	req.Normalize()

	results, err := h.catalog.List(c.Request.Context(), erpToken(c), req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, results)
}
