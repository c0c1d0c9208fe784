package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"quarters/internal/domain/workorder"
	"quarters/internal/infrastructure/persistence/mappers"
	"quarters/internal/infrastructure/persistence/models"
	"quarters/internal/shared/db"
	apperrors "quarters/internal/shared/errors"
)

type PhotoRepository struct {
	db     *gorm.DB
	mapper mappers.WorkOrderMapper
}

func NewPhotoRepository(database *gorm.DB) *PhotoRepository {
	return &PhotoRepository{
		db:     database,
		mapper: mappers.NewWorkOrderMapper(),
	}
}

func (r *PhotoRepository) Create(ctx context.Context, photo *workorder.Photo) error {
	model := r.mapper.PhotoToModel(photo)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create photo: %w", err)
	}
	return photo.SetID(model.ID)
}

func (r *PhotoRepository) FindByID(ctx context.Context, id uint) (*workorder.Photo, error) {
	var model models.PhotoModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("photo not found")
		}
		return nil, fmt.Errorf("failed to find photo: %w", err)
	}
	return r.mapper.PhotoToDomain(&model)
}

func (r *PhotoRepository) ListByWorkOrderID(ctx context.Context, workOrderID uint) ([]*workorder.Photo, error) {
	var rows []models.PhotoModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("work_order_id = ?", workOrderID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}

	photos := make([]*workorder.Photo, 0, len(rows))
	for i := range rows {
		photo, err := r.mapper.PhotoToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}
	return photos, nil
}

// Delete reports whether a row was removed: when two detach requests race,
// only one sees true and the loser can answer not_found.
func (r *PhotoRepository) Delete(ctx context.Context, id uint) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Delete(&models.PhotoModel{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete photo: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
