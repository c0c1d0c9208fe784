package usecases

import (
	"context"

	"quarters/internal/application/workorder/dto"
	"quarters/internal/domain/shared/events"
	"quarters/internal/domain/workorder"
	"quarters/internal/shared/authorization"
	"quarters/internal/shared/db"
	"quarters/internal/shared/errors"
	"quarters/internal/shared/logger"
)

type ApproveQuoteCommand struct {
	Actor       authorization.Actor
	WorkOrderID uint
}

type ApproveQuoteUseCase struct {
	lifecycleDeps
}

func NewApproveQuoteUseCase(
	workOrderRepo workorder.Repository,
	historyRepo workorder.HistoryRepository,
	txManager db.TransactionManager,
	publisher events.EventPublisher,
	logger logger.Interface,
) *ApproveQuoteUseCase {
	return &ApproveQuoteUseCase{lifecycleDeps{
		workOrderRepo: workOrderRepo,
		historyRepo:   historyRepo,
		txManager:     txManager,
		publisher:     publisher,
		logger:        logger,
	}}
}

func (uc *ApproveQuoteUseCase) Execute(ctx context.Context, cmd ApproveQuoteCommand) (*dto.WorkOrderDTO, error) {
	uc.logger.Infow("approving quote", "work_order_id", cmd.WorkOrderID, "actor_id", cmd.Actor.ID)

	if cmd.WorkOrderID == 0 {
		return nil, errors.NewValidationError("work order ID is required")
	}

	wo, err := uc.runTransition(ctx, cmd.WorkOrderID, func(_ context.Context, wo *workorder.WorkOrder) error {
		return wo.ApproveQuote(cmd.Actor)
	})
	if err != nil {
		uc.logger.Errorw("failed to approve quote", "work_order_id", cmd.WorkOrderID, "error", err)
		return nil, err
	}

	uc.logger.Infow("quote approved", "work_order_id", wo.ID())
	return dto.FromWorkOrder(wo, cmd.Actor), nil
}
