package persistence

import (
	"context"
	"errors"

	"github.com/shopdash/backend/internal/domain/promotion"
	"github.com/shopdash/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCouponRepository implements promotion.CouponRepository using GORM
type GormCouponRepository struct {
	db *gorm.DB
}

// NewGormCouponRepository creates a new GormCouponRepository
func NewGormCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

// FindByCode looks up a code scoped to a shop
func (r *GormCouponRepository) FindByCode(ctx context.Context, code string, shopID uint) (*promotion.Coupon, error) {
	var coupon promotion.Coupon
	if err := r.db.WithContext(ctx).
		Where("code = ? AND shop_id = ?", code, shopID).
		First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &coupon, nil
}

// ExistsForOtherShop reports whether the code exists for any shop other than
// the given one
func (r *GormCouponRepository) ExistsForOtherShop(ctx context.Context, code string, shopID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&promotion.Coupon{}).
		Where("code = ? AND shop_id <> ?", code, shopID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// IncrementUse atomically increments the usage counter, guarded by
// uses < max_uses. The guard lives in the WHERE clause so two concurrent
// checkouts cannot both consume the last use; the loser sees zero rows
// affected and gets promotion.ErrExhausted.
func (r *GormCouponRepository) IncrementUse(ctx context.Context, code string) error {
	result := r.db.WithContext(ctx).
		Model(&promotion.Coupon{}).
		Where("code = ? AND uses < max_uses", code).
		Update("uses", gorm.Expr("uses + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return promotion.ErrExhausted
	}
	return nil
}

var _ promotion.CouponRepository = (*GormCouponRepository)(nil)
