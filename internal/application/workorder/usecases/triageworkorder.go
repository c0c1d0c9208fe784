package usecases

import (
	"context"

	"quarters/internal/application/workorder/dto"
	"quarters/internal/domain/shared/events"
	"quarters/internal/domain/workorder"
	vo "quarters/internal/domain/workorder/valueobjects"
	"quarters/internal/shared/authorization"
	"quarters/internal/shared/db"
	"quarters/internal/shared/errors"
	"quarters/internal/shared/logger"
)

type TriageWorkOrderCommand struct {
	Actor             authorization.Actor
	WorkOrderID       uint
	JobSize           string
	QuotedAmountCents *int64
	QuoteNotes        string
}

// TriageWorkOrderUseCase is the staff classification step: small jobs are
// approved on the spot, large jobs get a quote for the tenant to answer.
type TriageWorkOrderUseCase struct {
	lifecycleDeps
}

func NewTriageWorkOrderUseCase(
	workOrderRepo workorder.Repository,
	historyRepo workorder.HistoryRepository,
	txManager db.TransactionManager,
	publisher events.EventPublisher,
	logger logger.Interface,
) *TriageWorkOrderUseCase {
	return &TriageWorkOrderUseCase{lifecycleDeps{
		workOrderRepo: workOrderRepo,
		historyRepo:   historyRepo,
		txManager:     txManager,
		publisher:     publisher,
		logger:        logger,
	}}
}

func (uc *TriageWorkOrderUseCase) Execute(ctx context.Context, cmd TriageWorkOrderCommand) (*dto.WorkOrderDTO, error) {
	uc.logger.Infow("triaging work order", "work_order_id", cmd.WorkOrderID, "job_size", cmd.JobSize, "actor_id", cmd.Actor.ID)

	if cmd.WorkOrderID == 0 {
		return nil, errors.NewValidationError("work order ID is required")
	}
	size, err := vo.NewJobSize(cmd.JobSize)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	wo, err := uc.runTransition(ctx, cmd.WorkOrderID, func(_ context.Context, wo *workorder.WorkOrder) error {
		return wo.Classify(cmd.Actor, size, cmd.QuotedAmountCents, cmd.QuoteNotes)
	})
	if err != nil {
		uc.logger.Errorw("failed to triage work order", "work_order_id", cmd.WorkOrderID, "error", err)
		return nil, err
	}

	uc.logger.Infow("work order triaged", "work_order_id", wo.ID(), "status", wo.Status())
	return dto.FromWorkOrder(wo, cmd.Actor), nil
}
