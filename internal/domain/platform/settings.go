package platform

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Setting keys as stored in the platform key/value table. The historical
// names are kept for data compatibility with the existing settings rows.
const (
	KeyPlatformFee           = "platform_fee"
	KeyDeliveryChargePerKm   = "del_charge_per_km"
	KeyTaxRatePercent        = "tax_rate_percent"
	KeyMaxDeliveryDistance   = "max_del_distance"
	KeyEstimatedDeliveryTime = "estimated_delivery_time" // seconds; feeds ETA, not pricing
)

// DefaultEstimatedDeliveryTime is used when no estimated_delivery_time row
// exists (25 minutes).
const DefaultEstimatedDeliveryTime = 1500 * time.Second

// Setting is one row of the platform key/value tunables table
type Setting struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"not null"`
}

// Settings is an immutable snapshot of the platform tunables, loaded once per
// request. Accessors are typed and default to zero when a key is absent so
// pricing never fails outright on missing configuration.
type Settings struct {
	values map[string]decimal.Decimal
}

// NewSettings builds a snapshot from raw key/value rows. Values that fail to
// parse as decimals are treated as absent.
func NewSettings(rows []Setting) Settings {
	values := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		if d, err := decimal.NewFromString(row.Value); err == nil {
			values[row.Key] = d
		}
	}
	return Settings{values: values}
}

func (s Settings) get(key string) decimal.Decimal {
	return s.values[key]
}

// PlatformFee returns the flat per-order platform fee
func (s Settings) PlatformFee() decimal.Decimal {
	return s.get(KeyPlatformFee)
}

// DeliveryChargePerKm returns the delivery rate per kilometer
func (s Settings) DeliveryChargePerKm() decimal.Decimal {
	return s.get(KeyDeliveryChargePerKm)
}

// TaxRatePercent returns the tax rate applied to the post-discount,
// post-fee amount
func (s Settings) TaxRatePercent() decimal.Decimal {
	return s.get(KeyTaxRatePercent)
}

// MaxDeliveryDistanceKm returns the hard delivery radius. Zero disables the
// distance check entirely.
func (s Settings) MaxDeliveryDistanceKm() float64 {
	f, _ := s.get(KeyMaxDeliveryDistance).Float64()
	return f
}

// EstimatedDeliveryTime returns the configured ETA offset, defaulting to 25
// minutes when unset or non-positive.
func (s Settings) EstimatedDeliveryTime() time.Duration {
	d, ok := s.values[KeyEstimatedDeliveryTime]
	if !ok || !d.IsPositive() {
		return DefaultEstimatedDeliveryTime
	}
	return time.Duration(d.IntPart()) * time.Second
}

// SettingsRepository loads the platform tunables
type SettingsRepository interface {
	// Load reads all settings rows into one snapshot
	Load(ctx context.Context) (Settings, error)
}
