package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/geocart/geocart-backend/pkg/db/models"
	"github.com/geocart/geocart-backend/pkg/enums"
)

// OrderItemDTO is the JSON projection of an order line snapshot.
type OrderItemDTO struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	UnitPrice string    `json:"unitPrice"`
	Quantity  int       `json:"quantity"`
}

// OrderDTO is the JSON projection of an order.
type OrderDTO struct {
	ID            uuid.UUID           `json:"id"`
	OrderNumber   string              `json:"orderNumber"`
	StoreID       uuid.UUID           `json:"storeId"`
	StoreName     string              `json:"storeName"`
	Status        enums.OrderStatus   `json:"status"`
	PaymentMethod enums.PaymentMethod `json:"paymentMethod"`
	Total         string              `json:"total"`
	Items         []OrderItemDTO      `json:"items"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// HistoryPage is a cursor-paginated slice of order history.
type HistoryPage struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor string     `json:"nextCursor,omitempty"`
}

// FromModel converts a persisted order into its DTO form.
func FromModel(order *models.Order) *OrderDTO {
	if order == nil {
		return nil
	}
	items := make([]OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemDTO{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice.StringFixed(2),
			Quantity:  item.Quantity,
		})
	}
	return &OrderDTO{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		StoreID:       order.StoreID,
		StoreName:     order.StoreName,
		Status:        order.Status,
		PaymentMethod: order.PaymentMethod,
		Total:         order.Total.StringFixed(2),
		Items:         items,
		CreatedAt:     order.CreatedAt,
	}
}
