package usecases

import (
	"context"

	"quarters/internal/application/workorder/dto"
	"quarters/internal/domain/workorder"
	vo "quarters/internal/domain/workorder/valueobjects"
	"quarters/internal/shared/authorization"
	"quarters/internal/shared/db"
	"quarters/internal/shared/errors"
	"quarters/internal/shared/logger"
)

// UpdateWorkOrderCommand carries a partial edit: nil fields are untouched.
type UpdateWorkOrderCommand struct {
	Actor       authorization.Actor
	WorkOrderID uint
	Title       *string
	Description *string
	Location    *string
	Priority    *string
}

// UpdateWorkOrderUseCase applies descriptive field edits. Edits that change
// nothing are genuine no-ops: no update statement is issued, so updated_at
// and the version stay put and the history ledger gains no entry.
type UpdateWorkOrderUseCase struct {
	workOrderRepo workorder.Repository
	historyRepo   workorder.HistoryRepository
	txManager     db.TransactionManager
	logger        logger.Interface
}

func NewUpdateWorkOrderUseCase(
	workOrderRepo workorder.Repository,
	historyRepo workorder.HistoryRepository,
	txManager db.TransactionManager,
	logger logger.Interface,
) *UpdateWorkOrderUseCase {
	return &UpdateWorkOrderUseCase{
		workOrderRepo: workOrderRepo,
		historyRepo:   historyRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

func (uc *UpdateWorkOrderUseCase) Execute(ctx context.Context, cmd UpdateWorkOrderCommand) (*dto.WorkOrderDTO, error) {
	uc.logger.Infow("updating work order", "work_order_id", cmd.WorkOrderID, "actor_id", cmd.Actor.ID)

	if cmd.WorkOrderID == 0 {
		return nil, errors.NewValidationError("work order ID is required")
	}
	if cmd.Title == nil && cmd.Description == nil && cmd.Location == nil && cmd.Priority == nil {
		return nil, errors.NewValidationError("no fields to update")
	}

	var result *workorder.WorkOrder
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		wo, err := uc.workOrderRepo.FindByID(txCtx, cmd.WorkOrderID)
		if err != nil {
			return err
		}
		loadedVersion := wo.Version()

		if cmd.Title != nil {
			if err := wo.UpdateTitle(cmd.Actor, *cmd.Title); err != nil {
				return err
			}
		}
		if cmd.Description != nil {
			if err := wo.UpdateDescription(cmd.Actor, *cmd.Description); err != nil {
				return err
			}
		}
		if cmd.Location != nil {
			if err := wo.UpdateLocation(cmd.Actor, *cmd.Location); err != nil {
				return err
			}
		}
		if cmd.Priority != nil {
			priority, err := vo.NewPriority(*cmd.Priority)
			if err != nil {
				return errors.NewValidationError(err.Error())
			}
			if err := wo.ChangePriority(cmd.Actor, priority); err != nil {
				return err
			}
		}

		// All edits were value-equal: nothing to write.
		if wo.Version() == loadedVersion {
			result = wo
			return nil
		}

		if err := uc.workOrderRepo.Update(txCtx, wo, loadedVersion); err != nil {
			return err
		}
		if entries := wo.PullHistory(); len(entries) > 0 {
			if err := uc.historyRepo.CreateBatch(txCtx, entries); err != nil {
				return err
			}
		}
		result = wo
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to update work order", "work_order_id", cmd.WorkOrderID, "error", err)
		return nil, err
	}

	uc.logger.Infow("work order updated", "work_order_id", result.ID(), "version", result.Version())
	return dto.FromWorkOrder(result, cmd.Actor), nil
}
