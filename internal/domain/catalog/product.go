package catalog

import (
	"github.com/shopdash/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product is the catalog entry the checkout engine reads for enrichment.
// Catalog CRUD (creation, image upload, category management) lives with the
// back-office collaborator; checkout only reads products and decrements stock
// at order commit.
type Product struct {
	shared.BaseEntity
	ShopID          uint            `gorm:"not null;index"`
	CategoryID      uint            `gorm:"index"`
	Name            string          `gorm:"not null"`
	Description     string
	Price           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Stock           int64           `gorm:"not null;default:0"`
}

// DiscountedUnitPrice returns the effective unit price after the catalog
// discount, if one is set. A zero or negative discount leaves the price as is.
func (p *Product) DiscountedUnitPrice() decimal.Decimal {
	if p.DiscountPercent.IsPositive() {
		factor := decimal.NewFromInt(1).Sub(p.DiscountPercent.Div(decimal.NewFromInt(100)))
		return p.Price.Mul(factor)
	}
	return p.Price
}
