package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is a single cart line. Name, price, and image are snapshotted
// from the product at add time so the cart stays renderable even if the
// catalog row changes underneath it.
type Item struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"imageUrl"`
	Quantity  int             `json:"quantity"`
}

// Cart is the server-side cart aggregate. Lines keep insertion order:
// the slice is the source of truth and lookups scan it, which is fine
// at cart sizes.
type Cart struct {
	StoreID   *uuid.UUID `json:"storeId,omitempty"`
	StoreName string     `json:"storeName,omitempty"`
	Items     []Item     `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{Items: []Item{}}
}

// AddItem increments the quantity of an existing line or appends a new
// line with quantity 1.
func (c *Cart) AddItem(productID uuid.UUID, name string, price decimal.Decimal, imageURL string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity++
			return
		}
	}
	c.Items = append(c.Items, Item{
		ProductID: productID,
		Name:      name,
		Price:     price,
		ImageURL:  imageURL,
		Quantity:  1,
	})
}

// UpdateQuantity sets the quantity of an existing line. A quantity of
// zero or less removes the line. Unknown product IDs are a no-op.
func (c *Cart) UpdateQuantity(productID uuid.UUID, quantity int) {
	for i := range c.Items {
		if c.Items[i].ProductID != productID {
			continue
		}
		if quantity <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		} else {
			c.Items[i].Quantity = quantity
		}
		return
	}
}

// RemoveItem deletes a line. Removing an absent line is a no-op.
func (c *Cart) RemoveItem(productID uuid.UUID) {
	c.UpdateQuantity(productID, 0)
}

// Find returns the line for the product, or nil.
func (c *Cart) Find(productID uuid.UUID) *Item {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// TotalItems is the sum of line quantities.
func (c *Cart) TotalItems() int {
	total := 0
	for i := range c.Items {
		total += c.Items[i].Quantity
	}
	return total
}

// TotalPrice is the exact sum of price times quantity across lines.
// Rounding to two decimals happens only at the JSON boundary.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		qty := decimal.NewFromInt(int64(c.Items[i].Quantity))
		total = total.Add(c.Items[i].Price.Mul(qty))
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// HasStore reports whether a store has been selected.
func (c *Cart) HasStore() bool {
	return c.StoreID != nil
}

// SetStore selects the store the cart shops from. Switching to a
// different store drops the existing lines, since an order is placed
// against a single store.
func (c *Cart) SetStore(storeID uuid.UUID, storeName string) {
	if c.StoreID != nil && *c.StoreID == storeID {
		c.StoreName = storeName
		return
	}
	id := storeID
	c.StoreID = &id
	c.StoreName = storeName
	c.Items = []Item{}
}

// Clear resets the cart to its empty state, keeping no store selection.
func (c *Cart) Clear() {
	c.StoreID = nil
	c.StoreName = ""
	c.Items = []Item{}
}
