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

type StartWorkCommand struct {
	Actor       authorization.Actor
	WorkOrderID uint
}

type StartWorkUseCase struct {
	lifecycleDeps
}

func NewStartWorkUseCase(
	workOrderRepo workorder.Repository,
	historyRepo workorder.HistoryRepository,
	txManager db.TransactionManager,
	publisher events.EventPublisher,
	logger logger.Interface,
) *StartWorkUseCase {
	return &StartWorkUseCase{lifecycleDeps{
		workOrderRepo: workOrderRepo,
		historyRepo:   historyRepo,
		txManager:     txManager,
		publisher:     publisher,
		logger:        logger,
	}}
}

func (uc *StartWorkUseCase) Execute(ctx context.Context, cmd StartWorkCommand) (*dto.WorkOrderDTO, error) {
	uc.logger.Infow("starting work", "work_order_id", cmd.WorkOrderID, "actor_id", cmd.Actor.ID)

	if cmd.WorkOrderID == 0 {
		return nil, errors.NewValidationError("work order ID is required")
	}

	wo, err := uc.runTransition(ctx, cmd.WorkOrderID, func(_ context.Context, wo *workorder.WorkOrder) error {
		return wo.Start(cmd.Actor)
	})
	if err != nil {
		uc.logger.Errorw("failed to start work", "work_order_id", cmd.WorkOrderID, "error", err)
		return nil, err
	}

	uc.logger.Infow("work started", "work_order_id", wo.ID())
	return dto.FromWorkOrder(wo, cmd.Actor), nil
}
