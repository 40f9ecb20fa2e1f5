package packing

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/spicebox/packing-summary/internal/domain/fulfillment"
)

// BuildPackingSummary totals the effective quantity of every line item across
// orders, keyed by variant (or product when there is no variant). Items with
// no effective quantity are skipped. Display fields and bundle expansion come
// from the first line item seen for a key; contributing orders are listed in
// encounter order. The result is sorted by quantity, highest first, and keys
// with equal quantities keep their encounter order.
func BuildPackingSummary(orders []fulfillment.Order, catalog *fulfillment.BundleCatalog) []SummaryItem {
	items := make([]SummaryItem, 0)
	index := make(map[int64]int)

	for i := range orders {
		order := &orders[i]
		ref := OrderRef{
			OrderNumber:  order.OrderNumber,
			OrderName:    order.Name,
			CustomerName: order.CustomerName(),
			IsExpress:    order.IsExpress(),
		}

		for _, li := range order.LineItems {
			qty := li.EffectiveQuantity()
			if qty <= 0 {
				continue
			}

			key := li.AggregationKey()
			if pos, ok := index[key]; ok {
				items[pos].Quantity += qty
				items[pos].Orders = append(items[pos].Orders, ref)
				continue
			}

			bundle := catalog.Resolve(li.Title, li.VariantTitle)
			index[key] = len(items)
			items = append(items, SummaryItem{
				Name:         li.Name,
				Title:        li.Title,
				VariantTitle: optionalString(li.VariantTitle),
				Quantity:     qty,
				ProductID:    optionalID(li.ProductID),
				VariantID:    optionalID(li.VariantID),
				IsBundle:     bundle.IsBundle,
				BundleName:   bundle.BundleName,
				Items:        bundle.Components,
				Orders:       []OrderRef{ref},
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Quantity > items[j].Quantity
	})
	return items
}

// BuildOrdersView lists each order with its packable line items. Express
// orders come first, then higher order numbers; otherwise upstream order is
// kept.
func BuildOrdersView(orders []fulfillment.Order, catalog *fulfillment.BundleCatalog) []OrderView {
	views := make([]OrderView, 0, len(orders))

	for i := range orders {
		order := &orders[i]
		view := OrderView{
			ID:           order.ID,
			OrderNumber:  order.OrderNumber,
			OrderName:    order.Name,
			CustomerName: order.CustomerName(),
			IsExpress:    order.IsExpress(),
			Items:        make([]OrderItem, 0, len(order.LineItems)),
			CreatedAt:    order.CreatedAt,
		}

		subtotal := decimal.Zero
		for _, li := range order.LineItems {
			qty := li.EffectiveQuantity()
			if qty <= 0 {
				continue
			}
			bundle := catalog.Resolve(li.Title, li.VariantTitle)
			view.Items = append(view.Items, OrderItem{
				Name:         li.Name,
				Title:        li.Title,
				VariantTitle: optionalString(li.VariantTitle),
				Quantity:     qty,
				Price:        li.Price.StringFixed(2),
				IsBundle:     bundle.IsBundle,
				BundleName:   bundle.BundleName,
				Items:        bundle.Components,
			})
			view.ItemCount += qty
			subtotal = subtotal.Add(li.Price.Mul(decimal.NewFromInt(int64(qty))))
		}
		view.Subtotal = subtotal.StringFixed(2)

		views = append(views, view)
	}

	sort.SliceStable(views, func(i, j int) bool {
		if views[i].IsExpress != views[j].IsExpress {
			return views[i].IsExpress
		}
		return views[i].OrderNumber > views[j].OrderNumber
	})
	return views
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}
