package domain

// CartLine pairs a product with the quantity currently selected. Price and
// name are captured at add time so a line renders the same even if the
// catalog refreshes underneath it.
type CartLine struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"quantity"`
}

// Cart holds the active selection. At most one line exists per product id;
// insertion order is preserved for display. Mutations are pure in-memory
// updates, persistence is the owning service's job.
type Cart struct {
	lines []CartLine
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// RestoreCart rebuilds a cart from previously persisted lines. Lines with a
// quantity below one are dropped, and duplicate product ids are merged.
func RestoreCart(lines []CartLine) *Cart {
	cart := NewCart()
	for _, line := range lines {
		if line.Quantity < 1 {
			continue
		}
		if i := cart.find(line.ProductID); i >= 0 {
			cart.lines[i].Quantity += line.Quantity
			continue
		}
		cart.lines = append(cart.lines, line)
	}
	return cart
}

// AddItem increments the quantity for the product's line, inserting a new
// line with quantity one when none exists.
func (c *Cart) AddItem(p Product) {
	if i := c.find(p.ID); i >= 0 {
		c.lines[i].Quantity++
		return
	}
	c.lines = append(c.lines, CartLine{
		ProductID:  p.ID,
		Name:       p.Name,
		PriceCents: p.PriceCents,
		Quantity:   1,
	})
}

// SetQuantity replaces the quantity for the given product id. A quantity
// below one removes the line. Absent ids are a no-op.
func (c *Cart) SetQuantity(id string, quantity int) {
	if quantity < 1 {
		c.RemoveItem(id)
		return
	}
	if i := c.find(id); i >= 0 {
		c.lines[i].Quantity = quantity
	}
}

// RemoveItem deletes the line for the given product id if present.
func (c *Cart) RemoveItem(id string) {
	i := c.find(id)
	if i < 0 {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len reports the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// TotalCents recomputes the cart total from the current lines. It is never
// cached; an empty cart totals zero.
func (c *Cart) TotalCents() int64 {
	var total int64
	for _, line := range c.lines {
		total += line.PriceCents * int64(line.Quantity)
	}
	return total
}

func (c *Cart) find(id string) int {
	for i, line := range c.lines {
		if line.ProductID == id {
			return i
		}
	}
	return -1
}
