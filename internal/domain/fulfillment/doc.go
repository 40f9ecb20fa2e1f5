// Package fulfillment holds the read-only order model used to plan packing work:
// unfulfilled orders pulled from the storefront, their line items, the static
// bundle catalog and the rules that classify and expand them.
//
// Nothing in this package performs I/O. Orders arrive through the OrderSource
// port, implemented by the storefront adapters in infrastructure/ecommerce.
package fulfillment
