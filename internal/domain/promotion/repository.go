package promotion

import (
	"context"

	"github.com/shopdash/backend/internal/domain/shared"
)

// ErrExhausted is returned by the conditional increment when the coupon has
// already reached its maximum uses. Concurrent checkouts race on this; exactly
// one wins per remaining use.
var ErrExhausted = shared.NewDomainError("COUPON_EXHAUSTED", "Coupon has reached its maximum uses")

// CouponRepository defines persistence operations for the coupon ledger
type CouponRepository interface {
	// FindByCode looks up a code scoped to a shop
	FindByCode(ctx context.Context, code string, shopID uint) (*Coupon, error)

	// ExistsForOtherShop reports whether the code exists for any shop other
	// than the given one. Lets callers distinguish a typo from a coupon used
	// in the wrong shop context.
	ExistsForOtherShop(ctx context.Context, code string, shopID uint) (bool, error)

	// IncrementUse atomically increments the usage counter, guarded by
	// uses < max_uses. Returns ErrExhausted when the guard fails.
	IncrementUse(ctx context.Context, code string) error
}
