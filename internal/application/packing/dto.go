package packing

import "time"

// OrderRef identifies an order that contributed to a summary item
type OrderRef struct {
	OrderNumber  int64  `json:"orderNumber"`
	OrderName    string `json:"orderName"`
	CustomerName string `json:"customerName"`
	IsExpress    bool   `json:"isExpress"`
}

// SummaryItem is the total quantity to pack for one product variant across
// all open orders. Bundle items list their components in Items.
type SummaryItem struct {
	Name         string     `json:"name"`
	Title        string     `json:"title"`
	VariantTitle *string    `json:"variantTitle"`
	Quantity     int        `json:"quantity"`
	ProductID    *int64     `json:"productId"`
	VariantID    *int64     `json:"variantId"`
	IsBundle     bool       `json:"isBundle"`
	BundleName   string     `json:"bundleName,omitempty"`
	Items        []string   `json:"items,omitempty"`
	Orders       []OrderRef `json:"orders"`
}

// PackingSummaryResult is the packing summary for every open order
type PackingSummaryResult struct {
	TotalOrders int           `json:"totalOrders"`
	Items       []SummaryItem `json:"items"`
	GeneratedAt time.Time     `json:"generatedAt"`
}

// OrderItem is one line of an order in the assembly view
type OrderItem struct {
	Name         string   `json:"name"`
	Title        string   `json:"title"`
	VariantTitle *string  `json:"variantTitle"`
	Quantity     int      `json:"quantity"`
	Price        string   `json:"price"`
	IsBundle     bool     `json:"isBundle"`
	BundleName   string   `json:"bundleName,omitempty"`
	Items        []string `json:"items,omitempty"`
}

// OrderView is one order prepared for assembly
type OrderView struct {
	ID           int64       `json:"id"`
	OrderNumber  int64       `json:"orderNumber"`
	OrderName    string      `json:"orderName"`
	CustomerName string      `json:"customerName"`
	IsExpress    bool        `json:"isExpress"`
	Items        []OrderItem `json:"items"`
	ItemCount    int         `json:"itemCount"`
	Subtotal     string      `json:"subtotal"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// OrdersViewResult is the assembly view of every open order
type OrdersViewResult struct {
	TotalOrders int         `json:"totalOrders"`
	Orders      []OrderView `json:"orders"`
	GeneratedAt time.Time   `json:"generatedAt"`
}
