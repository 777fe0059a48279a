package persistence

import (
	"context"

	"github.com/shopdash/backend/internal/domain/platform"
	"gorm.io/gorm"
)

// GormSettingsRepository implements platform.SettingsRepository using GORM
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// Load reads all settings rows into one snapshot
func (r *GormSettingsRepository) Load(ctx context.Context) (platform.Settings, error) {
	var rows []platform.Setting
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return platform.Settings{}, err
	}
	return platform.NewSettings(rows), nil
}

var _ platform.SettingsRepository = (*GormSettingsRepository)(nil)
