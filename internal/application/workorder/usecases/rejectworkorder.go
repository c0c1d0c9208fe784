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

type RejectWorkOrderCommand struct {
	Actor       authorization.Actor
	WorkOrderID uint
	Reason      string
}

type RejectWorkOrderUseCase struct {
	lifecycleDeps
}

func NewRejectWorkOrderUseCase(
	workOrderRepo workorder.Repository,
	historyRepo workorder.HistoryRepository,
	txManager db.TransactionManager,
	publisher events.EventPublisher,
	logger logger.Interface,
) *RejectWorkOrderUseCase {
	return &RejectWorkOrderUseCase{lifecycleDeps{
		workOrderRepo: workOrderRepo,
		historyRepo:   historyRepo,
		txManager:     txManager,
		publisher:     publisher,
		logger:        logger,
	}}
}

func (uc *RejectWorkOrderUseCase) Execute(ctx context.Context, cmd RejectWorkOrderCommand) (*dto.WorkOrderDTO, error) {
	uc.logger.Infow("rejecting work order", "work_order_id", cmd.WorkOrderID, "actor_id", cmd.Actor.ID)

	if cmd.WorkOrderID == 0 {
		return nil, errors.NewValidationError("work order ID is required")
	}

	wo, err := uc.runTransition(ctx, cmd.WorkOrderID, func(_ context.Context, wo *workorder.WorkOrder) error {
		return wo.Reject(cmd.Actor, cmd.Reason)
	})
	if err != nil {
		uc.logger.Errorw("failed to reject work order", "work_order_id", cmd.WorkOrderID, "error", err)
		return nil, err
	}

	uc.logger.Infow("work order rejected", "work_order_id", wo.ID())
	return dto.FromWorkOrder(wo, cmd.Actor), nil
}
