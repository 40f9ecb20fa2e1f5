package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/spicebox/packing-summary/internal/application/packing"
	"github.com/spicebox/packing-summary/internal/interfaces/http/dto"
)

// PackingQueries is the read side the packing endpoints depend on
type PackingQueries interface {
	PackingSummary(ctx context.Context) (*packing.PackingSummaryResult, error)
	OrdersView(ctx context.Context) (*packing.OrdersViewResult, error)
}

var _ PackingQueries = (*packing.PackingService)(nil)

// PackingHandler serves the packing summary and the orders view
type PackingHandler struct {
	BaseHandler
	service PackingQueries
}

// NewPackingHandler creates a new PackingHandler
func NewPackingHandler(service PackingQueries) *PackingHandler {
	return &PackingHandler{service: service}
}

// PackingSummary returns per-item totals across every unfulfilled order.
//
//	GET /api/packing-summary
func (h *PackingHandler) PackingSummary(c *gin.Context) {
	result, err := h.service.PackingSummary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err, "Error generating packing summary")
		return
	}

	h.Success(c, dto.NewPackingSummaryResponse(result))
}

// OrdersView returns every unfulfilled order, express orders first.
//
//	GET /api/orders-view
func (h *PackingHandler) OrdersView(c *gin.Context) {
	result, err := h.service.OrdersView(c.Request.Context())
	if err != nil {
		h.HandleError(c, err, "Error generating orders view")
		return
	}

	h.Success(c, dto.NewOrdersViewResponse(result))
}
