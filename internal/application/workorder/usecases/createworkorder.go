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

type CreateWorkOrderCommand struct {
	Actor       authorization.Actor
	UnitID      *uint
	Title       string
	Description string
	Location    string
	Priority    string
}

type CreateWorkOrderUseCase struct {
	workOrderRepo workorder.Repository
	txManager     db.TransactionManager
	publisher     events.EventPublisher
	logger        logger.Interface
}

func NewCreateWorkOrderUseCase(
	workOrderRepo workorder.Repository,
	txManager db.TransactionManager,
	publisher events.EventPublisher,
	logger logger.Interface,
) *CreateWorkOrderUseCase {
	return &CreateWorkOrderUseCase{
		workOrderRepo: workOrderRepo,
		txManager:     txManager,
		publisher:     publisher,
		logger:        logger,
	}
}

func (uc *CreateWorkOrderUseCase) Execute(ctx context.Context, cmd CreateWorkOrderCommand) (*dto.WorkOrderDTO, error) {
	uc.logger.Infow("creating work order", "tenant_id", cmd.Actor.ID, "title", cmd.Title)

	priority := vo.PriorityMedium
	if cmd.Priority != "" {
		p, err := vo.NewPriority(cmd.Priority)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		priority = p
	}

	wo, err := workorder.NewWorkOrder(cmd.Actor, cmd.UnitID, cmd.Title, cmd.Description, cmd.Location, priority)
	if err != nil {
		uc.logger.Errorw("invalid create work order command", "error", err)
		return nil, err
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		return uc.workOrderRepo.Create(txCtx, wo)
	})
	if err != nil {
		uc.logger.Errorw("failed to persist work order", "tenant_id", cmd.Actor.ID, "error", err)
		return nil, errors.NewInternalError("failed to create work order")
	}

	wo.RecordCreatedEvent(cmd.Actor.ID)
	if err := uc.publisher.PublishAll(wo.PullEvents()); err != nil {
		uc.logger.Warnw("failed to publish created event", "work_order_id", wo.ID(), "error", err)
	}

	uc.logger.Infow("work order created", "work_order_id", wo.ID(), "tenant_id", wo.TenantID())
	return dto.FromWorkOrder(wo, cmd.Actor), nil
}
