package promotion

import (
	"github.com/shopdash/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DiscountType represents how a coupon's value is applied
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "PERCENTAGE"
	DiscountTypeFlat       DiscountType = "FLAT"
)

// IsValid checks if the type is a known DiscountType
func (t DiscountType) IsValid() bool {
	switch t {
	case DiscountTypePercentage, DiscountTypeFlat:
		return true
	}
	return false
}

// Coupon is a shop-scoped promotional code with a redemption counter.
// Created by shop staff (out of scope here); Uses is incremented exactly once
// per successfully committed order that referenced the code, and never
// decremented. The invariant uses <= max_uses is enforced by the storage
// layer's conditional increment.
type Coupon struct {
	shared.BaseEntity
	Code          string          `gorm:"uniqueIndex;not null"`
	ShopID        uint            `gorm:"not null;index"`
	DiscountType  DiscountType    `gorm:"not null"`
	DiscountValue decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MinAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Uses          int             `gorm:"not null;default:0"`
	MaxUses       int             `gorm:"not null;default:1"`
	Public        bool            `gorm:"not null;default:false"`
}

// Redeemable reports whether the coupon can still be used
func (c *Coupon) Redeemable() bool {
	return c.Uses < c.MaxUses
}

// MeetsMinimum reports whether a subtotal satisfies the min-spend threshold
func (c *Coupon) MeetsMinimum(subtotal decimal.Decimal) bool {
	return subtotal.GreaterThanOrEqual(c.MinAmount)
}

// DiscountFor computes the discount amount for a subtotal, clamped so the
// result never exceeds the subtotal.
func (c *Coupon) DiscountFor(subtotal decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch c.DiscountType {
	case DiscountTypePercentage:
		discount = subtotal.Mul(c.DiscountValue).Div(decimal.NewFromInt(100))
	case DiscountTypeFlat:
		discount = c.DiscountValue
	default:
		return decimal.Zero
	}

	if discount.GreaterThan(subtotal) {
		return subtotal
	}
	if discount.IsNegative() {
		return decimal.Zero
	}
	return discount
}
