package persistence

import (
	"context"

	"github.com/shopdash/backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByIDs fetches all referenced products in one batch. IDs with no
// matching row are simply absent from the result.
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uint) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}

	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByShop lists products for a shop, paginated
func (r *GormProductRepository) FindByShop(ctx context.Context, shopID uint, page, pageSize int) ([]catalog.Product, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("shop_id = ?", shopID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("id").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// DecrementStock atomically subtracts quantity from a product's stock,
// flooring at zero. A single UPDATE so concurrent checkouts cannot interleave
// a read-then-write and oversell below zero.
func (r *GormProductRepository) DecrementStock(ctx context.Context, productID uint, quantity int64) error {
	return r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("id = ?", productID).
		Update("stock", gorm.Expr("GREATEST(stock - ?, 0)", quantity)).
		Error
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
