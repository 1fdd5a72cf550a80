package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/settings"
	"gorm.io/gorm"
)

// GormSettingsRepository implements settings.Repository using GORM
type GormSettingsRepository struct {
	db *gorm.DB
}

var _ settings.Repository = (*GormSettingsRepository)(nil)

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

func (r *GormSettingsRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) (*settings.TenantSettings, error) {
	var s settings.TenantSettings
	if err := conn(ctx, r.db).Scopes(tenantScope(tenantID)).First(&s).Error; err != nil {
		return nil, notFound(err, "settings")
	}
	return &s, nil
}

func (r *GormSettingsRepository) Save(ctx context.Context, s *settings.TenantSettings) error {
	return conn(ctx, r.db).Save(s).Error
}
