package dto

import (
	"time"

	"github.com/spicebox/packing-summary/internal/application/packing"
)

// GeneratedAtLayout renders timestamps in UTC with millisecond precision
const GeneratedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// Health check payload
const (
	HealthStatusOK = "OK"
	HealthMessage  = "Packing Summary Tool is running"
)

// HealthResponse is returned by the health check
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewHealthResponse returns the fixed liveness payload
func NewHealthResponse() HealthResponse {
	return HealthResponse{Status: HealthStatusOK, Message: HealthMessage}
}

// PackingSummaryResponse is the success envelope of the packing summary
type PackingSummaryResponse struct {
	Success     bool                  `json:"success"`
	TotalOrders int                   `json:"totalOrders"`
	Items       []packing.SummaryItem `json:"items"`
	GeneratedAt string                `json:"generatedAt"`
}

// NewPackingSummaryResponse wraps a packing summary result
func NewPackingSummaryResponse(result *packing.PackingSummaryResult) PackingSummaryResponse {
	items := result.Items
	if items == nil {
		items = []packing.SummaryItem{}
	}
	return PackingSummaryResponse{
		Success:     true,
		TotalOrders: result.TotalOrders,
		Items:       items,
		GeneratedAt: FormatTimestamp(result.GeneratedAt),
	}
}

// OrdersViewResponse is the success envelope of the orders view
type OrdersViewResponse struct {
	Success     bool                `json:"success"`
	TotalOrders int                 `json:"totalOrders"`
	Orders      []packing.OrderView `json:"orders"`
	GeneratedAt string              `json:"generatedAt"`
}

// NewOrdersViewResponse wraps an orders view result
func NewOrdersViewResponse(result *packing.OrdersViewResult) OrdersViewResponse {
	orders := result.Orders
	if orders == nil {
		orders = []packing.OrderView{}
	}
	return OrdersViewResponse{
		Success:     true,
		TotalOrders: result.TotalOrders,
		Orders:      orders,
		GeneratedAt: FormatTimestamp(result.GeneratedAt),
	}
}

// FormatTimestamp formats t as an ISO-8601 UTC timestamp, e.g. 2024-03-01T09:30:00.000Z
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(GeneratedAtLayout)
}
