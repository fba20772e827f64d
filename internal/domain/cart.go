package domain

import "time"

// CartItem is one product entry in a cart. The product is snapshotted at add
// time so later catalog edits don't silently reprice an open cart.
// AdditionalPrice is the per-unit surcharge of the selected variation options.
type CartItem struct {
	Product            Product           `json:"product"`
	Quantity           int               `json:"quantity"`
	SelectedVariations map[string]string `json:"selected_variations,omitempty"` // variation_id -> option_id
	AdditionalPrice    int64             `json:"additional_price,omitempty"`
}

// Cart is the customer's selection prior to checkout, keyed by product ID.
// Items always hold quantity > 0; dropping to zero removes the entry.
type Cart struct {
	CartID    string     `json:"cart_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// AddItem merges the quantity into an existing entry for the same product, or
// appends a new one. No upper bound is enforced.
func (c *Cart) AddItem(p Product, quantity int, selected map[string]string, additionalPrice int64) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.Items {
		if c.Items[i].Product.ProductID == p.ProductID {
			c.Items[i].Quantity += quantity
			c.touch()
			return
		}
	}
	c.Items = append(c.Items, CartItem{
		Product:            p,
		Quantity:           quantity,
		SelectedVariations: selected,
		AdditionalPrice:    additionalPrice,
	})
	c.touch()
}

// RemoveItem deletes the entry for the product. No-op when absent.
func (c *Cart) RemoveItem(productID string) {
	for i := range c.Items {
		if c.Items[i].Product.ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.touch()
			return
		}
	}
}

// UpdateQuantity overwrites the quantity of the entry. A quantity <= 0 removes
// the entry entirely.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.Items {
		if c.Items[i].Product.ProductID == productID {
			c.Items[i].Quantity = quantity
			c.touch()
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
	c.touch()
}

// Total is the sum of (unit price + variation surcharge) x quantity, in centavos.
func (c *Cart) Total() int64 {
	var total int64
	for _, it := range c.Items {
		total += (it.Product.Price + it.AdditionalPrice) * int64(it.Quantity)
	}
	return total
}

// ItemCount is the sum of all quantities.
func (c *Cart) ItemCount() int {
	var n int
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now().UTC()
}
