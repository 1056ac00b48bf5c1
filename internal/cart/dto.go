package cart

import (
	"github.com/google/uuid"
)

// ItemDTO is the JSON projection of a cart line. Money renders as a
// fixed two-decimal string.
type ItemDTO struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	ImageURL  string    `json:"imageUrl"`
	Quantity  int       `json:"quantity"`
	LineTotal string    `json:"lineTotal"`
}

// CartDTO is the JSON projection of the whole cart.
type CartDTO struct {
	StoreID    *uuid.UUID `json:"storeId,omitempty"`
	StoreName  string     `json:"storeName,omitempty"`
	Items      []ItemDTO  `json:"items"`
	TotalItems int        `json:"totalItems"`
	TotalPrice string     `json:"totalPrice"`
}

// ToDTO renders the aggregate for transport, rounding money to two
// decimals at this boundary only.
func ToDTO(c *Cart) *CartDTO {
	if c == nil {
		c = New()
	}
	items := make([]ItemDTO, 0, len(c.Items))
	for i := range c.Items {
		line := c.Items[i]
		items = append(items, ItemDTO{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price.StringFixed(2),
			ImageURL:  line.ImageURL,
			Quantity:  line.Quantity,
			LineTotal: line.Price.Mul(decimalFromInt(line.Quantity)).StringFixed(2),
		})
	}
	return &CartDTO{
		StoreID:    c.StoreID,
		StoreName:  c.StoreName,
		Items:      items,
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice().StringFixed(2),
	}
}
