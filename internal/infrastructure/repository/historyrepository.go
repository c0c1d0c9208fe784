package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"quarters/internal/domain/workorder"
	"quarters/internal/infrastructure/persistence/mappers"
	"quarters/internal/infrastructure/persistence/models"
	"quarters/internal/shared/db"
)

// HistoryRepository persists the append-only audit ledger. Rows are never
// updated or deleted.
type HistoryRepository struct {
	db     *gorm.DB
	mapper mappers.WorkOrderMapper
}

func NewHistoryRepository(database *gorm.DB) *HistoryRepository {
	return &HistoryRepository{
		db:     database,
		mapper: mappers.NewWorkOrderMapper(),
	}
}

func (r *HistoryRepository) CreateBatch(ctx context.Context, entries []workorder.HistoryEntry) error {
	if len(entries) == 0 {
		return nil
	}

	rows := make([]*models.HistoryModel, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, r.mapper.HistoryToModel(e))
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(rows).Error; err != nil {
		return fmt.Errorf("failed to create history entries: %w", err)
	}
	return nil
}

func (r *HistoryRepository) ListByWorkOrderID(ctx context.Context, workOrderID uint) ([]workorder.HistoryEntry, error) {
	var rows []models.HistoryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("work_order_id = ?", workOrderID).
		Order("changed_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	entries := make([]workorder.HistoryEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, r.mapper.HistoryToDomain(&rows[i]))
	}
	return entries, nil
}
