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

type WorkOrderRepository struct {
	db     *gorm.DB
	mapper mappers.WorkOrderMapper
}

func NewWorkOrderRepository(database *gorm.DB) *WorkOrderRepository {
	return &WorkOrderRepository{
		db:     database,
		mapper: mappers.NewWorkOrderMapper(),
	}
}

func (r *WorkOrderRepository) Create(ctx context.Context, wo *workorder.WorkOrder) error {
	model := r.mapper.ToModel(wo)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create work order: %w", err)
	}
	return wo.SetID(model.ID)
}

func (r *WorkOrderRepository) FindByID(ctx context.Context, id uint) (*workorder.WorkOrder, error) {
	var model models.WorkOrderModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("work order %d not found", id))
		}
		return nil, fmt.Errorf("failed to find work order: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *WorkOrderRepository) List(ctx context.Context, filter workorder.Filter) ([]*workorder.WorkOrder, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db).Model(&models.WorkOrderModel{})

	if filter.TenantID != nil {
		tx = tx.Where("tenant_id = ?", *filter.TenantID)
	}
	if filter.Status != nil {
		tx = tx.Where("status = ?", filter.Status.String())
	}
	if filter.Priority != nil {
		tx = tx.Where("priority = ?", filter.Priority.String())
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count work orders: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var rows []models.WorkOrderModel
	if err := tx.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list work orders: %w", err)
	}

	orders := make([]*workorder.WorkOrder, 0, len(rows))
	for i := range rows {
		wo, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, wo)
	}
	return orders, total, nil
}

// Update writes the aggregate back under compare-and-swap: the row must
// still carry the version the aggregate was loaded with. Zero rows affected
// means another writer won and the caller gets a conflict.
func (r *WorkOrderRepository) Update(ctx context.Context, wo *workorder.WorkOrder, loadedVersion int) error {
	model := r.mapper.ToModel(wo)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.WorkOrderModel{}).
		Where("id = ? AND version = ?", model.ID, loadedVersion).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update work order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewConflictError("work order was modified concurrently, please retry")
	}
	return nil
}
