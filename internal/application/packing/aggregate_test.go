package packing

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spicebox/packing-summary/internal/domain/fulfillment"
)

func lineItem(title string, variantID int64, qty int) fulfillment.LineItem {
	return fulfillment.LineItem{
		Name:                title,
		Title:               title,
		Quantity:            qty,
		FulfillableQuantity: qty,
		ProductID:           variantID / 10,
		VariantID:           variantID,
		Price:               decimal.RequireFromString("5.00"),
	}
}

func testOrder(number int64, express bool, items ...fulfillment.LineItem) fulfillment.Order {
	order := fulfillment.Order{
		ID:          number * 100,
		OrderNumber: number,
		Name:        fmt.Sprintf("#%d", number),
		Customer:    &fulfillment.Customer{FirstName: "Priya", LastName: "Shah"},
		CreatedAt:   time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
		LineItems:   items,
	}
	if express {
		order.ShippingLines = []fulfillment.ShippingLine{{Title: "Express Shipping"}}
	} else {
		order.ShippingLines = []fulfillment.ShippingLine{{Title: "Standard"}}
	}
	return order
}

func quantities(items []SummaryItem) map[string]int {
	out := make(map[string]int, len(items))
	for _, item := range items {
		out[item.Title] = item.Quantity
	}
	return out
}

// ---------------------------------------------------------------------------
// Packing Summary
// ---------------------------------------------------------------------------

func TestBuildPackingSummary_SumsAndSortsByQuantity(t *testing.T) {
	orders := []fulfillment.Order{
		testOrder(100, false, lineItem("A", 10, 3), lineItem("B", 20, 4)),
		testOrder(101, true, lineItem("C", 30, 7), lineItem("B", 20, 6)),
	}

	items := BuildPackingSummary(orders, fulfillment.DefaultBundleCatalog())

	require.Len(t, items, 3)
	assert.Equal(t, "B", items[0].Title)
	assert.Equal(t, 10, items[0].Quantity)
	assert.Equal(t, "C", items[1].Title)
	assert.Equal(t, 7, items[1].Quantity)
	assert.Equal(t, "A", items[2].Title)
	assert.Equal(t, 3, items[2].Quantity)

	require.Len(t, items[0].Orders, 2)
	assert.Equal(t, OrderRef{OrderNumber: 100, OrderName: "#100", CustomerName: "Priya Shah", IsExpress: false}, items[0].Orders[0])
	assert.Equal(t, OrderRef{OrderNumber: 101, OrderName: "#101", CustomerName: "Priya Shah", IsExpress: true}, items[0].Orders[1])
}

func TestBuildPackingSummary_StableForEqualQuantities(t *testing.T) {
	orders := []fulfillment.Order{
		testOrder(1, false, lineItem("First", 10, 2), lineItem("Second", 20, 5), lineItem("Third", 30, 2)),
	}

	items := BuildPackingSummary(orders, nil)

	require.Len(t, items, 3)
	assert.Equal(t, []string{"Second", "First", "Third"}, []string{items[0].Title, items[1].Title, items[2].Title})
}

func TestBuildPackingSummary_EffectiveQuantity(t *testing.T) {
	tests := []struct {
		name        string
		quantity    int
		fulfillable int
		want        int
		included    bool
	}{
		{name: "fulfillable wins", quantity: 5, fulfillable: 2, want: 2, included: true},
		{name: "zero fulfillable falls back", quantity: 4, fulfillable: 0, want: 4, included: true},
		{name: "nothing to pack", quantity: 0, fulfillable: 0, included: false},
		{name: "negative fulfillable excluded", quantity: 3, fulfillable: -1, included: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			li := lineItem("Turmeric", 10, 0)
			li.Quantity = tt.quantity
			li.FulfillableQuantity = tt.fulfillable

			items := BuildPackingSummary([]fulfillment.Order{testOrder(1, false, li)}, nil)
			if !tt.included {
				assert.Empty(t, items)
				return
			}
			require.Len(t, items, 1)
			assert.Equal(t, tt.want, items[0].Quantity)
		})
	}
}

func TestBuildPackingSummary_KeysByVariantThenProduct(t *testing.T) {
	jar := lineItem("Garam Masala", 0, 1)
	jar.ProductID, jar.VariantID, jar.VariantTitle = 7, 71, "Jar"
	pouch := lineItem("Garam Masala", 0, 2)
	pouch.ProductID, pouch.VariantID, pouch.VariantTitle = 7, 72, "Pouch"
	noVariantA := lineItem("Spoon", 0, 1)
	noVariantA.ProductID, noVariantA.VariantID = 9, 0
	noVariantB := lineItem("Spoon", 0, 3)
	noVariantB.ProductID, noVariantB.VariantID = 9, 0

	items := BuildPackingSummary([]fulfillment.Order{
		testOrder(1, false, jar, noVariantA),
		testOrder(2, false, pouch, noVariantB),
	}, nil)

	require.Len(t, items, 3)
	assert.Equal(t, 4, items[0].Quantity)
	assert.Equal(t, "Spoon", items[0].Title)
	assert.Nil(t, items[0].VariantID)
	require.NotNil(t, items[0].ProductID)
	assert.Equal(t, int64(9), *items[0].ProductID)

	require.NotNil(t, items[1].VariantID)
	assert.Equal(t, int64(72), *items[1].VariantID)
	require.NotNil(t, items[2].VariantID)
	assert.Equal(t, int64(71), *items[2].VariantID)
}

func TestBuildPackingSummary_FirstOccurrenceWinsDisplay(t *testing.T) {
	first := lineItem("Turmeric Powder", 10, 1)
	first.Name = "Turmeric Powder - 65g"
	later := lineItem("Turmeric Powder (renamed)", 10, 2)
	later.Name = "Turmeric Powder (renamed) - 65g"

	items := BuildPackingSummary([]fulfillment.Order{
		testOrder(1, false, first),
		testOrder(2, false, later),
	}, nil)

	require.Len(t, items, 1)
	assert.Equal(t, "Turmeric Powder - 65g", items[0].Name)
	assert.Equal(t, "Turmeric Powder", items[0].Title)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestBuildPackingSummary_BundleExpansion(t *testing.T) {
	pouchKit := lineItem("Indian Cooking Essentials Kit", 110, 1)
	pouchKit.VariantTitle = "Pouch"
	jarKit := lineItem("Indian Cooking Essentials Kit", 120, 2)
	jarKit.VariantTitle = "Jar"

	items := BuildPackingSummary([]fulfillment.Order{testOrder(1, false, pouchKit, jarKit)}, fulfillment.DefaultBundleCatalog())

	require.Len(t, items, 2)
	jar, pouch := items[0], items[1]

	assert.True(t, pouch.IsBundle)
	assert.Equal(t, "Indian Cooking Essentials Kit", pouch.BundleName)
	require.Len(t, pouch.Items, 5)
	for _, component := range pouch.Items {
		assert.Contains(t, component, "(pouch)")
	}
	assert.Equal(t, "Turmeric Powder (pouch)", pouch.Items[0])

	require.Len(t, jar.Items, 5)
	assert.Equal(t, "Dhana Jeera Powder (jar)", jar.Items[4])
}

func TestBuildPackingSummary_GuestCustomer(t *testing.T) {
	order := testOrder(7, false, lineItem("A", 10, 1))
	order.Customer = nil

	items := BuildPackingSummary([]fulfillment.Order{order}, nil)

	require.Len(t, items, 1)
	assert.Equal(t, fulfillment.GuestCustomerName, items[0].Orders[0].CustomerName)
}

func TestBuildPackingSummary_QuantityEqualsSumOfContributions(t *testing.T) {
	var orders []fulfillment.Order
	want := map[string]int{}
	for n := int64(1); n <= 30; n++ {
		qtyA := int(n % 4)
		qtyB := int(n%3) + 1
		orders = append(orders, testOrder(n, n%5 == 0, lineItem("A", 10, qtyA), lineItem("B", 20, qtyB)))
		want["A"] += qtyA
		want["B"] += qtyB
	}

	assert.Equal(t, want, quantities(BuildPackingSummary(orders, nil)))
}

func TestBuildPackingSummary_Empty(t *testing.T) {
	items := BuildPackingSummary(nil, nil)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

// ---------------------------------------------------------------------------
// Orders View
// ---------------------------------------------------------------------------

func TestBuildOrdersView_ExpressFirstThenOrderNumberDesc(t *testing.T) {
	orders := []fulfillment.Order{
		testOrder(100, false, lineItem("A", 10, 1)),
		testOrder(105, true, lineItem("A", 10, 1)),
		testOrder(102, true, lineItem("A", 10, 1)),
	}

	views := BuildOrdersView(orders, nil)

	require.Len(t, views, 3)
	assert.Equal(t, []int64{105, 102, 100}, []int64{views[0].OrderNumber, views[1].OrderNumber, views[2].OrderNumber})
}

func TestBuildOrdersView_StandardOrdersByNumber(t *testing.T) {
	orders := []fulfillment.Order{
		testOrder(3, false),
		testOrder(9, false),
		testOrder(5, true),
		testOrder(1, false),
	}

	views := BuildOrdersView(orders, nil)

	assert.Equal(t, []int64{5, 9, 3, 1}, []int64{views[0].OrderNumber, views[1].OrderNumber, views[2].OrderNumber, views[3].OrderNumber})
}

func TestBuildOrdersView_ItemsAndTotals(t *testing.T) {
	kit := lineItem("Indian Cooking Essentials Kit", 110, 2)
	kit.VariantTitle = "Small Pouch"
	kit.Price = decimal.RequireFromString("24.99")
	spent := lineItem("Cloves", 30, 0)
	spent.Quantity = 0
	loose := lineItem("Cloves", 40, 3)
	loose.Price = decimal.RequireFromString("4.5")

	order := testOrder(1042, true, kit, spent, loose)
	order.Customer = &fulfillment.Customer{FirstName: "Asha"}

	views := BuildOrdersView([]fulfillment.Order{order}, fulfillment.DefaultBundleCatalog())

	require.Len(t, views, 1)
	view := views[0]
	assert.Equal(t, int64(104200), view.ID)
	assert.Equal(t, "#1042", view.OrderName)
	assert.Equal(t, "Asha", view.CustomerName)
	assert.True(t, view.IsExpress)
	assert.Equal(t, 5, view.ItemCount)
	assert.Equal(t, "63.48", view.Subtotal)
	assert.Equal(t, order.CreatedAt, view.CreatedAt)

	require.Len(t, view.Items, 2, "zero-quantity line excluded")
	assert.True(t, view.Items[0].IsBundle)
	assert.Equal(t, "24.99", view.Items[0].Price)
	assert.Equal(t, "Garam Masala (pouch)", view.Items[0].Items[1])
	require.NotNil(t, view.Items[0].VariantTitle)
	assert.Equal(t, "Small Pouch", *view.Items[0].VariantTitle)

	assert.False(t, view.Items[1].IsBundle)
	assert.Empty(t, view.Items[1].Items)
	assert.Nil(t, view.Items[1].VariantTitle)
	assert.Equal(t, "4.50", view.Items[1].Price)
}

func TestBuildOrdersView_OrderWithoutPackableItems(t *testing.T) {
	spent := lineItem("A", 10, 0)
	spent.Quantity = 0

	views := BuildOrdersView([]fulfillment.Order{testOrder(1, false, spent)}, nil)

	require.Len(t, views, 1)
	assert.Empty(t, views[0].Items)
	assert.NotNil(t, views[0].Items)
	assert.Equal(t, 0, views[0].ItemCount)
	assert.Equal(t, "0.00", views[0].Subtotal)
}
