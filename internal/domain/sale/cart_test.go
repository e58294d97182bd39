package sale

import (
	"testing"

	"github.com/inventra/frontend/internal/domain/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(id, name string, price string) catalog.Product {
	return catalog.Product{
		ID:           id,
		SKU:          "SKU-" + id,
		Name:         name,
		Unit:         "pcs",
		SellingPrice: decimal.RequireFromString(price),
		IsActive:     true,
	}
}

func TestCartAdd(t *testing.T) {
	t.Run("adding the same product twice merges into one line", func(t *testing.T) {
		cart := NewCart()
		p := testProduct("p1", "Cola", "12.50")

		cart.Add(p)
		cart.Add(p)

		require.Equal(t, 1, cart.Len())
		assert.Equal(t, 2, cart.Lines()[0].Quantity)
	})

	t.Run("distinct products keep insertion order", func(t *testing.T) {
		cart := NewCart()
		cart.Add(testProduct("p1", "Cola", "12.50"))
		cart.Add(testProduct("p2", "Chips", "8.00"))
		cart.Add(testProduct("p1", "Cola", "12.50"))

		lines := cart.Lines()
		require.Len(t, lines, 2)
		assert.Equal(t, "p1", lines[0].ProductID)
		assert.Equal(t, "p2", lines[1].ProductID)
	})

	t.Run("unit price is snapshotted at add time", func(t *testing.T) {
		cart := NewCart()
		p := testProduct("p1", "Cola", "100")
		cart.Add(p)

		// Simulate a catalog price change after the product was added.
		p.SellingPrice = decimal.RequireFromString("120")
		cart.Add(p)

		line := cart.Lines()[0]
		assert.True(t, line.UnitPrice.Equal(decimal.RequireFromString("100")),
			"cart must keep the price captured at add time, got %s", line.UnitPrice)
		assert.Equal(t, 2, line.Quantity)
	})
}

func TestCartSetQuantity(t *testing.T) {
	t.Run("zero removes the line entirely", func(t *testing.T) {
		cart := NewCart()
		cart.Add(testProduct("p1", "Cola", "12.50"))

		cart.SetQuantity("p1", 0)

		assert.True(t, cart.IsEmpty())
	})

	t.Run("negative quantity leaves the cart unchanged", func(t *testing.T) {
		cart := NewCart()
		cart.Add(testProduct("p1", "Cola", "12.50"))

		cart.SetQuantity("p1", -3)

		require.Equal(t, 1, cart.Len())
		assert.Equal(t, 1, cart.Lines()[0].Quantity)
	})

	t.Run("positive quantity replaces the line quantity", func(t *testing.T) {
		cart := NewCart()
		cart.Add(testProduct("p1", "Cola", "12.50"))

		cart.SetQuantity("p1", 7)

		assert.Equal(t, 7, cart.Lines()[0].Quantity)
	})

	t.Run("unknown product id is a no-op", func(t *testing.T) {
		cart := NewCart()
		cart.Add(testProduct("p1", "Cola", "12.50"))

		cart.SetQuantity("missing", 5)

		require.Equal(t, 1, cart.Len())
		assert.Equal(t, 1, cart.Lines()[0].Quantity)
	})
}

func TestCartSetQuantityInput(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		wantQty int
		removed bool
	}{
		{name: "valid integer", raw: "4", wantQty: 4},
		{name: "zero removes line", raw: "0", removed: true},
		{name: "negative ignored", raw: "-2", wantQty: 1},
		{name: "non-numeric ignored", raw: "abc", wantQty: 1},
		{name: "decimal ignored", raw: "2.5", wantQty: 1},
		{name: "empty ignored", raw: "", wantQty: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cart := NewCart()
			cart.Add(testProduct("p1", "Cola", "12.50"))

			cart.SetQuantityInput("p1", tc.raw)

			if tc.removed {
				assert.True(t, cart.IsEmpty())
				return
			}
			require.Equal(t, 1, cart.Len())
			assert.Equal(t, tc.wantQty, cart.Lines()[0].Quantity)
		})
	}
}

func TestCartRemove(t *testing.T) {
	cart := NewCart()
	cart.Add(testProduct("p1", "Cola", "12.50"))
	cart.Add(testProduct("p2", "Chips", "8.00"))

	cart.Remove("p1")
	require.Equal(t, 1, cart.Len())
	assert.Equal(t, "p2", cart.Lines()[0].ProductID)

	// Removing an absent product is a no-op.
	cart.Remove("p1")
	assert.Equal(t, 1, cart.Len())
}

func TestCartTotal(t *testing.T) {
	cart := NewCart()
	assert.True(t, cart.Total().IsZero())

	cola := testProduct("p1", "Cola", "12.50")
	chips := testProduct("p2", "Chips", "8.00")

	cart.Add(cola)
	cart.Add(cola)
	cart.Add(chips)
	assert.True(t, cart.Total().Equal(decimal.RequireFromString("33.00")),
		"got %s", cart.Total())

	// Total is recomputed fresh after every mutation.
	cart.SetQuantity("p2", 3)
	assert.True(t, cart.Total().Equal(decimal.RequireFromString("49.00")),
		"got %s", cart.Total())

	cart.Remove("p1")
	assert.True(t, cart.Total().Equal(decimal.RequireFromString("24.00")),
		"got %s", cart.Total())
}

func TestLineSubtotal(t *testing.T) {
	l := Line{UnitPrice: decimal.RequireFromString("3.25"), Quantity: 4}
	assert.True(t, l.Subtotal().Equal(decimal.RequireFromString("13.00")))
}
