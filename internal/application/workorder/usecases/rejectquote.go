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

type RejectQuoteCommand struct {
	Actor       authorization.Actor
	WorkOrderID uint
	Reason      string
}

type RejectQuoteUseCase struct {
	lifecycleDeps
}

func NewRejectQuoteUseCase(
	workOrderRepo workorder.Repository,
	historyRepo workorder.HistoryRepository,
	txManager db.TransactionManager,
	publisher events.EventPublisher,
	logger logger.Interface,
) *RejectQuoteUseCase {
	return &RejectQuoteUseCase{lifecycleDeps{
		workOrderRepo: workOrderRepo,
		historyRepo:   historyRepo,
		txManager:     txManager,
		publisher:     publisher,
		logger:        logger,
	}}
}

func (uc *RejectQuoteUseCase) Execute(ctx context.Context, cmd RejectQuoteCommand) (*dto.WorkOrderDTO, error) {
	uc.logger.Infow("rejecting quote", "work_order_id", cmd.WorkOrderID, "actor_id", cmd.Actor.ID)

	if cmd.WorkOrderID == 0 {
		return nil, errors.NewValidationError("work order ID is required")
	}

	wo, err := uc.runTransition(ctx, cmd.WorkOrderID, func(_ context.Context, wo *workorder.WorkOrder) error {
		return wo.RejectQuote(cmd.Actor, cmd.Reason)
	})
	if err != nil {
		uc.logger.Errorw("failed to reject quote", "work_order_id", cmd.WorkOrderID, "error", err)
		return nil, err
	}

	uc.logger.Infow("quote rejected", "work_order_id", wo.ID())
	return dto.FromWorkOrder(wo, cmd.Actor), nil
}
