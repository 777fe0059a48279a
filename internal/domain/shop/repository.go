package shop

import (
	"context"

	"github.com/shopdash/backend/internal/domain/shared/valueobject"
)

// Repository defines persistence operations for shops
type Repository interface {
	FindByID(ctx context.Context, id uint) (*Shop, error)

	// GetLocation returns the shop's registered coordinates
	GetLocation(ctx context.Context, id uint) (valueobject.GeoPoint, error)
}
