package shop

import (
	"github.com/shopdash/backend/internal/domain/shared"
	"github.com/shopdash/backend/internal/domain/shared/valueobject"
)

// Shop is a marketplace storefront. The checkout engine only needs its
// registered coordinates for delivery-distance pricing; everything else is
// managed by the back-office collaborator.
type Shop struct {
	shared.BaseEntity
	OwnerID   uint    `gorm:"not null;index"`
	Name      string  `gorm:"not null"`
	Address   string
	Latitude  float64 `gorm:"not null;default:0"`
	Longitude float64 `gorm:"not null;default:0"`
	Open      bool    `gorm:"not null;default:true"`
}

// Location returns the shop's registered coordinates
func (s *Shop) Location() valueobject.GeoPoint {
	return valueobject.GeoPoint{Latitude: s.Latitude, Longitude: s.Longitude}
}
