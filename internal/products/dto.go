package products

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/geocart/geocart-backend/pkg/db/models"
)

// ProductDTO is the transport projection of a product. StoreName is
// populated from the preloaded store row.
type ProductDTO struct {
	ID        uuid.UUID       `json:"id"`
	StoreID   uuid.UUID       `json:"storeId"`
	StoreName string          `json:"storeName,omitempty"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"imageUrl"`
}

// CreateProductInput captures the fields accepted on product creation.
type CreateProductInput struct {
	StoreID  uuid.UUID       `json:"storeId" validate:"required"`
	Name     string          `json:"name" validate:"required,min=1,max=160"`
	Price    decimal.Decimal `json:"price" validate:"required"`
	ImageURL string          `json:"imageUrl" validate:"required,url"`
}

// FromModel converts a persisted product into its DTO form.
func FromModel(product *models.Product) *ProductDTO {
	if product == nil {
		return nil
	}
	dto := &ProductDTO{
		ID:       product.ID,
		StoreID:  product.StoreID,
		Name:     product.Name,
		Price:    product.Price,
		ImageURL: product.ImageURL,
	}
	if product.Store != nil {
		dto.StoreName = product.Store.Name
	}
	return dto
}
