package persistence

import (
	"context"
	"errors"

	"github.com/shopdash/backend/internal/domain/shared"
	"github.com/shopdash/backend/internal/domain/shared/valueobject"
	"github.com/shopdash/backend/internal/domain/shop"
	"gorm.io/gorm"
)

// GormShopRepository implements shop.Repository using GORM
type GormShopRepository struct {
	db *gorm.DB
}

// NewGormShopRepository creates a new GormShopRepository
func NewGormShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: db}
}

// FindByID finds a shop by its ID
func (r *GormShopRepository) FindByID(ctx context.Context, id uint) (*shop.Shop, error) {
	var s shop.Shop
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetLocation returns the shop's registered coordinates
func (r *GormShopRepository) GetLocation(ctx context.Context, id uint) (valueobject.GeoPoint, error) {
	var s shop.Shop
	if err := r.db.WithContext(ctx).
		Select("latitude", "longitude").
		First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return valueobject.GeoPoint{}, shared.ErrNotFound
		}
		return valueobject.GeoPoint{}, err
	}
	return s.Location(), nil
}

var _ shop.Repository = (*GormShopRepository)(nil)
