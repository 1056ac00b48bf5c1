package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/geocart/geocart-backend/pkg/geo"
)

// Store represents a physical shop listed on the marketplace.
type Store struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name       string         `gorm:"column:name;not null"`
	Lat        float64        `gorm:"column:lat;type:numeric(9,6);not null"`
	Lon        float64        `gorm:"column:lon;type:numeric(9,6);not null"`
	Address    *string        `gorm:"column:address"`
	Categories pq.StringArray `gorm:"column:categories;type:text[]"`
	Products   []Product      `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// Location returns the store position as a coordinate pair.
func (s Store) Location() geo.Coordinate {
	return geo.Coordinate{Lat: s.Lat, Lon: s.Lon}
}
