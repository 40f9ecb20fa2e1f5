package fulfillment

import "context"

// OrderSource retrieves every open, unfulfilled order from the storefront.
// Implementations return either the complete list or an error, never a
// partial result.
type OrderSource interface {
	FetchUnfulfilledOrders(ctx context.Context) ([]Order, error)
}
