package sale

import (
	"strconv"

	"github.com/inventra/frontend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// Line is one product entry in an in-progress, unsaved sale. UnitPrice is
// snapshotted from the catalog when the product is first added; a later
// catalog price change never alters an in-progress sale.
type Line struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

// Subtotal returns unitPrice * quantity for this line.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is an ordered collection of lines, insertion order preserved.
// At most one line exists per product id and every quantity is positive;
// a line dropped to zero is removed, never kept at zero.
//
// A Cart is owned by a single checkout session and is not safe for
// concurrent use; the cart store serializes access per session.
type Cart struct {
	lines []Line
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// Add merges product p into the cart: an existing line for p gets its
// quantity incremented by one, otherwise a new line with quantity 1 is
// appended carrying a snapshot of p's current selling price.
func (c *Cart) Add(p catalog.Product) {
	for i := range c.lines {
		if c.lines[i].ProductID == p.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		SKU:       p.SKU,
		Unit:      p.Unit,
		UnitPrice: p.SellingPrice,
		Quantity:  1,
	})
}

// SetQuantity replaces the quantity of the line for productID. A negative
// quantity is ignored, zero removes the line, and a missing line is a no-op.
func (c *Cart) SetQuantity(productID string, qty int) {
	if qty < 0 {
		return
	}
	if qty == 0 {
		c.Remove(productID)
		return
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = qty
			return
		}
	}
}

// SetQuantityInput applies a quantity edit arriving as raw form input.
// Anything that does not parse as a non-negative integer leaves the cart
// unchanged, with no error surfaced.
func (c *Cart) SetQuantityInput(productID, raw string) {
	qty, err := strconv.Atoi(raw)
	if err != nil {
		return
	}
	c.SetQuantity(productID, qty)
}

// Remove deletes the line for productID if present.
func (c *Cart) Remove(productID string) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear removes all lines.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Total recomputes the grand total over the current lines on every call;
// it is never cached separately from the lines.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
