package persistence

import (
	"context"
	"errors"

	"github.com/shopdash/backend/internal/domain/catalog"
	"github.com/shopdash/backend/internal/domain/ordering"
	"github.com/shopdash/backend/internal/domain/promotion"
	"github.com/shopdash/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOrderRepository implements ordering.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Commit persists the order header and its items, decrements stock per line
// and increments the coupon usage counter inside one transaction. Any failure
// rolls everything back; a coupon at max uses fails with ErrExhausted.
func (r *GormOrderRepository) Commit(ctx context.Context, order *ordering.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Create writes the header and, via the association, the items
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for _, item := range order.Items {
			if err := tx.Model(&catalog.Product{}).
				Where("id = ?", item.ProductID).
				Update("stock", gorm.Expr("GREATEST(stock - ?, 0)", int64(item.Quantity))).
				Error; err != nil {
				return err
			}
		}

		if order.UsedCoupon() {
			result := tx.Model(&promotion.Coupon{}).
				Where("code = ? AND uses < max_uses", order.CouponCode).
				Update("uses", gorm.Expr("uses + 1"))
			if result.Error != nil {
				return result.Error
			}
			// Guard failed: a concurrent checkout consumed the last use
			// between quoting and commit.
			if result.RowsAffected == 0 {
				return promotion.ErrExhausted
			}
		}

		return nil
	})
}

// FindByID finds an order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uint) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByCustomer lists a customer's orders newest first, paginated
func (r *GormOrderRepository) FindByCustomer(ctx context.Context, customerID uint, page, pageSize int) ([]ordering.Order, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&ordering.Order{}).
		Where("customer_id = ?", customerID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []ordering.Order
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Preload("Items").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

var _ ordering.Repository = (*GormOrderRepository)(nil)
