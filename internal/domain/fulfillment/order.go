package fulfillment

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// GuestCustomerName is shown for orders placed without a customer record
const GuestCustomerName = "Guest"

// Customer is the buyer attached to an order
type Customer struct {
	FirstName string
	LastName  string
}

// ShippingLine describes one shipping method selected for an order
type ShippingLine struct {
	Title string
	Code  string
}

// LineItem is a single purchased product/variant inside an order
type LineItem struct {
	Name                string
	Title               string
	VariantTitle        string
	Quantity            int
	FulfillableQuantity int
	ProductID           int64
	VariantID           int64 // zero when the item has no variant
	Price               decimal.Decimal
}

// EffectiveQuantity returns the fulfillable quantity, falling back to the
// ordered quantity when the storefront reports none.
func (li LineItem) EffectiveQuantity() int {
	if li.FulfillableQuantity != 0 {
		return li.FulfillableQuantity
	}
	return li.Quantity
}

// AggregationKey identifies the sellable unit: variant first, then product.
func (li LineItem) AggregationKey() int64 {
	if li.VariantID != 0 {
		return li.VariantID
	}
	return li.ProductID
}

// Order is an open, unfulfilled storefront order
type Order struct {
	ID            int64
	OrderNumber   int64
	Name          string
	Customer      *Customer
	CreatedAt     time.Time
	ShippingLines []ShippingLine
	LineItems     []LineItem
}

// CustomerName returns "First Last", or GuestCustomerName when the order has
// no customer or the customer has no name on file.
func (o *Order) CustomerName() string {
	if o.Customer == nil {
		return GuestCustomerName
	}
	name := strings.TrimSpace(o.Customer.FirstName + " " + o.Customer.LastName)
	if name == "" {
		return GuestCustomerName
	}
	return name
}

// IsExpress reports whether any shipping line title mentions "express"
func (o *Order) IsExpress() bool {
	for _, line := range o.ShippingLines {
		if containsFold(line.Title, "express") {
			return true
		}
	}
	return false
}

// containsFold is a Unicode-aware case-insensitive strings.Contains.
func containsFold(s, substr string) bool {
	if s == "" {
		return false
	}
	// Casers are stateful, so each call gets its own.
	return strings.Contains(cases.Fold().String(s), cases.Fold().String(substr))
}
