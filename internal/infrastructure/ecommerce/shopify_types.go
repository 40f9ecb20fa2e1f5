package ecommerce

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ShopifyOrdersResponse is the body of GET /admin/api/{version}/orders.json.
// Orders is a pointer so that a missing key can be told apart from an empty page.
type ShopifyOrdersResponse struct {
	Orders *[]ShopifyOrder  `json:"orders"`
	Errors json.RawMessage `json:"errors,omitempty"`
}

// IsSuccess returns true if the body carries an orders page and no errors
func (r *ShopifyOrdersResponse) IsSuccess() bool {
	return len(r.Errors) == 0 && r.Orders != nil
}

// ShopifyOrder represents an order in the Shopify Admin REST API
type ShopifyOrder struct {
	ID            int64                 `json:"id"`
	OrderNumber   int64                 `json:"order_number"`
	Name          string                `json:"name"`
	CreatedAt     time.Time             `json:"created_at"`
	Customer      *ShopifyCustomer      `json:"customer"`
	ShippingLines []ShopifyShippingLine `json:"shipping_lines"`
	LineItems     []ShopifyLineItem     `json:"line_items"`
}

// ShopifyCustomer represents the customer attached to an order
type ShopifyCustomer struct {
	ID        int64   `json:"id"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// ShopifyShippingLine represents a shipping method chosen at checkout
type ShopifyShippingLine struct {
	Title string `json:"title"`
	Code  string `json:"code"`
}

// ShopifyLineItem represents a purchased product variant.
// product_id and variant_id are null for custom items.
type ShopifyLineItem struct {
	ID                  int64            `json:"id"`
	Name                string           `json:"name"`
	Title               string           `json:"title"`
	VariantTitle        *string          `json:"variant_title"`
	Quantity            int              `json:"quantity"`
	FulfillableQuantity *int             `json:"fulfillable_quantity"`
	ProductID           *int64           `json:"product_id"`
	VariantID           *int64           `json:"variant_id"`
	Price               *decimal.Decimal `json:"price"`
}
