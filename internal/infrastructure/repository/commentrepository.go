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

type CommentRepository struct {
	db     *gorm.DB
	mapper mappers.WorkOrderMapper
}

func NewCommentRepository(database *gorm.DB) *CommentRepository {
	return &CommentRepository{
		db:     database,
		mapper: mappers.NewWorkOrderMapper(),
	}
}

func (r *CommentRepository) Create(ctx context.Context, comment *workorder.Comment) error {
	model := r.mapper.CommentToModel(comment)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return comment.SetID(model.ID)
}

func (r *CommentRepository) ListByWorkOrderID(ctx context.Context, workOrderID uint, includeInternal bool) ([]*workorder.Comment, error) {
	tx := db.GetTxFromContext(ctx, r.db).
		Where("work_order_id = ?", workOrderID)

	if !includeInternal {
		tx = tx.Where("is_internal = ?", false)
	}

	var rows []models.CommentModel
	if err := tx.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	comments := make([]*workorder.Comment, 0, len(rows))
	for i := range rows {
		comment, err := r.mapper.CommentToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, nil
}
