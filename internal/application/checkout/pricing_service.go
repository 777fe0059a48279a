package checkout

import (
	"context"
	"errors"

	"github.com/shopdash/backend/internal/domain/catalog"
	"github.com/shopdash/backend/internal/domain/checkout"
	"github.com/shopdash/backend/internal/domain/platform"
	"github.com/shopdash/backend/internal/domain/promotion"
	"github.com/shopdash/backend/internal/domain/shared"
	shopdomain "github.com/shopdash/backend/internal/domain/shop"
	"github.com/shopdash/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// unknownProductName marks cart lines whose product no longer exists in the
// catalog. Such lines are priced at zero instead of failing the quote, which
// keeps quoting resilient to stale carts; callers detect the gap through the
// zeroed price and stock.
const unknownProductName = "Unknown"

// PricingService turns a client cart into a priced, validated quote. It is
// side-effect-free and idempotent: identical inputs reproduce identical
// output unless backing data changed concurrently.
type PricingService struct {
	products catalog.ProductRepository
	shops    shopdomain.Repository
	coupons  promotion.CouponRepository
	settings platform.SettingsRepository
	log      *zap.Logger
}

// NewPricingService creates a new PricingService
func NewPricingService(
	products catalog.ProductRepository,
	shops shopdomain.Repository,
	coupons promotion.CouponRepository,
	settings platform.SettingsRepository,
	log *zap.Logger,
) *PricingService {
	return &PricingService{
		products: products,
		shops:    shops,
		coupons:  coupons,
		settings: settings,
		log:      log,
	}
}

// Quote prices a cart for a shop and delivery address. Errors are from the
// checkout taxonomy: cart and coupon problems are user-facing, data-access
// failures surface as opaque database errors.
func (s *PricingService) Quote(ctx context.Context, req QuoteRequest) (*checkout.Quote, error) {
	quote, _, err := s.quoteWithSettings(ctx, req)
	return quote, err
}

// quoteWithSettings additionally returns the settings snapshot used, so order
// commit can derive the delivery ETA without a second settings read.
func (s *PricingService) quoteWithSettings(ctx context.Context, req QuoteRequest) (*checkout.Quote, platform.Settings, error) {
	if err := checkout.ValidateCart(req.Lines); err != nil {
		return nil, platform.Settings{}, err
	}

	ids := make([]uint, 0, len(req.Lines))
	for _, line := range req.Lines {
		ids = append(ids, line.ProductID)
	}

	// The four lookups have no data dependency on each other; issue them in
	// parallel under the request context.
	var (
		products  []catalog.Product
		settings  platform.Settings
		shopLoc   valueobject.GeoPoint
		coupon    *promotion.Coupon
		couponErr *checkout.Error
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		products, err = s.products.FindByIDs(gctx, ids)
		if err != nil {
			s.log.Error("catalog lookup failed", zap.Uints("product_ids", ids), zap.Error(err))
			return checkout.NewDataError(err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		settings, err = s.settings.Load(gctx)
		if err != nil {
			s.log.Error("settings lookup failed", zap.Error(err))
			return checkout.NewDataError(err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		shopLoc, err = s.shops.GetLocation(gctx, req.ShopID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return checkout.NewCartError("shop not found")
			}
			s.log.Error("shop location lookup failed", zap.Uint("shop_id", req.ShopID), zap.Error(err))
			return checkout.NewDataError(err)
		}
		return nil
	})

	if req.CouponCode != "" {
		g.Go(func() error {
			var err error
			coupon, couponErr, err = s.resolveCoupon(gctx, req.CouponCode, req.ShopID)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, platform.Settings{}, err
	}

	// Subtotal-independent coupon rejections surface only after all lookups
	// succeeded, so a database failure never masquerades as a coupon error.
	if couponErr != nil {
		return nil, platform.Settings{}, couponErr
	}

	lines := enrichLines(req.Lines, products)
	subtotal := checkout.Subtotal(lines)

	discount := decimal.Zero
	if coupon != nil {
		if !coupon.MeetsMinimum(subtotal) {
			return nil, platform.Settings{}, checkout.NewCouponError(
				"minimum spend of %s not met", coupon.MinAmount.StringFixed(2))
		}
		discount = coupon.DiscountFor(subtotal)
	}

	distanceKm := shopLoc.DistanceKm(req.DeliveryLocation)
	if maxKm := settings.MaxDeliveryDistanceKm(); maxKm > 0 && distanceKm > maxKm {
		return nil, platform.Settings{}, checkout.NewCartError(
			"delivery not available beyond %g km", maxKm)
	}
	deliveryFee := decimal.NewFromFloat(distanceKm).Mul(settings.DeliveryChargePerKm())

	platformFee := settings.PlatformFee()
	totals := checkout.ComputeTotals(subtotal, platformFee, deliveryFee, discount, settings.TaxRatePercent())

	return &checkout.Quote{
		Lines:          lines,
		Subtotal:       subtotal,
		PlatformFee:    platformFee,
		DeliveryFee:    deliveryFee,
		Tax:            totals.Tax,
		DiscountAmount: discount,
		Total:          totals.Total,
	}, settings, nil
}

// resolveCoupon looks up a code scoped to the shop and classifies failures:
// wrong-shop codes and unknown codes produce distinct messages so the client
// can tell a typo from a wrong shop context. Redeemability is checked here;
// the min-spend check needs the subtotal and happens later.
func (s *PricingService) resolveCoupon(ctx context.Context, code string, shopID uint) (*promotion.Coupon, *checkout.Error, error) {
	coupon, err := s.coupons.FindByCode(ctx, code, shopID)
	if err == nil {
		if !coupon.Redeemable() {
			return nil, checkout.NewCouponError("coupon has reached its max uses"), nil
		}
		return coupon, nil, nil
	}

	if !errors.Is(err, shared.ErrNotFound) {
		s.log.Error("coupon lookup failed", zap.String("code", code), zap.Error(err))
		return nil, nil, checkout.NewDataError(err)
	}

	elsewhere, err := s.coupons.ExistsForOtherShop(ctx, code, shopID)
	if err != nil {
		s.log.Error("coupon cross-shop lookup failed", zap.String("code", code), zap.Error(err))
		return nil, nil, checkout.NewDataError(err)
	}
	if elsewhere {
		return nil, checkout.NewCouponError("coupon is not valid for this shop"), nil
	}
	return nil, checkout.NewCouponError("invalid coupon code"), nil
}

// enrichLines joins cart lines with their catalog rows. Missing products are
// deliberately priced at zero rather than rejected.
func enrichLines(cart []checkout.CartLine, products []catalog.Product) []checkout.EnrichedLine {
	byID := make(map[uint]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]checkout.EnrichedLine, 0, len(cart))
	for _, cl := range cart {
		line := checkout.EnrichedLine{
			ProductID: cl.ProductID,
			Name:      unknownProductName,
			Quantity:  cl.Quantity,
			UnitPrice: decimal.Zero,
			Stock:     0,
		}
		if p, ok := byID[cl.ProductID]; ok {
			line.Name = p.Name
			line.UnitPrice = p.DiscountedUnitPrice()
			line.Stock = p.Stock
		}
		lines = append(lines, line)
	}
	return lines
}
