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

type SignOffWorkOrderCommand struct {
	Actor       authorization.Actor
	WorkOrderID uint
	Feedback    string
	Rating      *int
	Signature   string
}

type SignOffWorkOrderUseCase struct {
	lifecycleDeps
}

func NewSignOffWorkOrderUseCase(
	workOrderRepo workorder.Repository,
	historyRepo workorder.HistoryRepository,
	txManager db.TransactionManager,
	publisher events.EventPublisher,
	logger logger.Interface,
) *SignOffWorkOrderUseCase {
	return &SignOffWorkOrderUseCase{lifecycleDeps{
		workOrderRepo: workOrderRepo,
		historyRepo:   historyRepo,
		txManager:     txManager,
		publisher:     publisher,
		logger:        logger,
	}}
}

func (uc *SignOffWorkOrderUseCase) Execute(ctx context.Context, cmd SignOffWorkOrderCommand) (*dto.WorkOrderDTO, error) {
	uc.logger.Infow("signing off work order", "work_order_id", cmd.WorkOrderID, "actor_id", cmd.Actor.ID)

	if cmd.WorkOrderID == 0 {
		return nil, errors.NewValidationError("work order ID is required")
	}

	wo, err := uc.runTransition(ctx, cmd.WorkOrderID, func(_ context.Context, wo *workorder.WorkOrder) error {
		return wo.SignOff(cmd.Actor, cmd.Feedback, cmd.Rating, cmd.Signature)
	})
	if err != nil {
		uc.logger.Errorw("failed to sign off work order", "work_order_id", cmd.WorkOrderID, "error", err)
		return nil, err
	}

	uc.logger.Infow("work order signed off", "work_order_id", wo.ID())
	return dto.FromWorkOrder(wo, cmd.Actor), nil
}
