// Package directory resolves tenant contact addresses from the local
// read-side copy of the identity system's data.
package directory

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"quarters/internal/infrastructure/persistence/models"
)

type GormDirectory struct {
	db *gorm.DB
}

func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

// TenantAddress returns the tenant's email, or empty when no contact row
// exists. A missing contact is not an error: the caller skips the
// notification rather than failing the pipeline.
func (d *GormDirectory) TenantAddress(ctx context.Context, tenantID uint) (string, error) {
	var model models.TenantContactModel
	err := d.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to look up tenant contact: %w", err)
	}
	return model.Email, nil
}
