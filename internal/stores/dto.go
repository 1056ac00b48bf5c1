package stores

import (
	"github.com/google/uuid"

	"github.com/geocart/geocart-backend/pkg/db/models"
)

// StoreDTO is the transport projection of a store. DistanceKm is only
// populated on nearby queries.
type StoreDTO struct {
	ID         uuid.UUID    `json:"id"`
	Name       string       `json:"name"`
	Lat        float64      `json:"lat"`
	Lon        float64      `json:"lon"`
	Address    *string      `json:"address,omitempty"`
	Categories []string     `json:"categories,omitempty"`
	Products   []ProductRef `json:"products,omitempty"`
	DistanceKm *float64     `json:"distanceKm,omitempty"`
}

// ProductRef is the slim product view embedded in store payloads.
type ProductRef struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Price    string    `json:"price"`
	ImageURL string    `json:"imageUrl"`
}

// CreateStoreInput captures the fields accepted on store creation.
type CreateStoreInput struct {
	Name       string   `json:"name" validate:"required,min=1,max=160"`
	Lat        float64  `json:"lat" validate:"required"`
	Lon        float64  `json:"lon" validate:"required"`
	Address    *string  `json:"address,omitempty" validate:"omitempty,max=300"`
	Categories []string `json:"categories,omitempty" validate:"omitempty,max=16,dive,min=1,max=60"`
}

// FromModel converts a persisted store into its DTO form.
func FromModel(store *models.Store) *StoreDTO {
	if store == nil {
		return nil
	}
	dto := &StoreDTO{
		ID:         store.ID,
		Name:       store.Name,
		Lat:        store.Lat,
		Lon:        store.Lon,
		Address:    store.Address,
		Categories: store.Categories,
	}
	if len(store.Products) > 0 {
		dto.Products = make([]ProductRef, 0, len(store.Products))
		for _, p := range store.Products {
			dto.Products = append(dto.Products, ProductRef{
				ID:       p.ID,
				Name:     p.Name,
				Price:    p.Price.StringFixed(2),
				ImageURL: p.ImageURL,
			})
		}
	}
	return dto
}
