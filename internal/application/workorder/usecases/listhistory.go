package usecases

import (
	"context"

	"quarters/internal/application/workorder/dto"
	"quarters/internal/domain/workorder"
	"quarters/internal/shared/authorization"
	"quarters/internal/shared/errors"
	"quarters/internal/shared/logger"
)

type ListHistoryQuery struct {
	Actor       authorization.Actor
	WorkOrderID uint
}

type ListHistoryUseCase struct {
	workOrderRepo workorder.Repository
	historyRepo   workorder.HistoryRepository
	logger        logger.Interface
}

func NewListHistoryUseCase(
	workOrderRepo workorder.Repository,
	historyRepo workorder.HistoryRepository,
	logger logger.Interface,
) *ListHistoryUseCase {
	return &ListHistoryUseCase{
		workOrderRepo: workOrderRepo,
		historyRepo:   historyRepo,
		logger:        logger,
	}
}

func (uc *ListHistoryUseCase) Execute(ctx context.Context, query ListHistoryQuery) ([]*dto.HistoryEntryDTO, error) {
	if query.WorkOrderID == 0 {
		return nil, errors.NewValidationError("work order ID is required")
	}

	wo, err := uc.workOrderRepo.FindByID(ctx, query.WorkOrderID)
	if err != nil {
		return nil, err
	}

	if !workorder.NewAccess(query.Actor, wo).CanView() {
		return nil, errors.NewForbiddenError("no access to this work order")
	}

	entries, err := uc.historyRepo.ListByWorkOrderID(ctx, wo.ID())
	if err != nil {
		uc.logger.Errorw("failed to list history", "work_order_id", wo.ID(), "error", err)
		return nil, errors.NewInternalError("failed to list history")
	}

	result := make([]*dto.HistoryEntryDTO, 0, len(entries))
	for _, e := range entries {
		result = append(result, dto.FromHistoryEntry(e))
	}
	return result, nil
}
