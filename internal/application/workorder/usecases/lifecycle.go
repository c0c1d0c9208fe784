package usecases

import (
	"context"

	"quarters/internal/domain/shared/events"
	"quarters/internal/domain/workorder"
	"quarters/internal/shared/db"
	"quarters/internal/shared/logger"
)

// lifecycleDeps bundles what every transition use case needs: the aggregate
// transitions inside one transaction together with its history entries, and
// the lifecycle events publish only after the transaction commits so a
// failed write never produces a notification.
type lifecycleDeps struct {
	workOrderRepo workorder.Repository
	historyRepo   workorder.HistoryRepository
	txManager     db.TransactionManager
	publisher     events.EventPublisher
	logger        logger.Interface
}

// runTransition loads the aggregate, applies mutate, and persists the result
// under the version it was loaded with. A version miss surfaces as a conflict
// from the repository; callers retry by reissuing the request.
func (d lifecycleDeps) runTransition(ctx context.Context, workOrderID uint, mutate func(txCtx context.Context, wo *workorder.WorkOrder) error) (*workorder.WorkOrder, error) {
	var (
		wo          *workorder.WorkOrder
		pendingEvts []events.DomainEvent
	)

	err := d.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		loaded, err := d.workOrderRepo.FindByID(txCtx, workOrderID)
		if err != nil {
			return err
		}
		loadedVersion := loaded.Version()

		if err := mutate(txCtx, loaded); err != nil {
			return err
		}

		if err := d.workOrderRepo.Update(txCtx, loaded, loadedVersion); err != nil {
			return err
		}
		if entries := loaded.PullHistory(); len(entries) > 0 {
			if err := d.historyRepo.CreateBatch(txCtx, entries); err != nil {
				return err
			}
		}

		wo = loaded
		pendingEvts = loaded.PullEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(pendingEvts) > 0 {
		if err := d.publisher.PublishAll(pendingEvts); err != nil {
			// Notification delivery is not part of the transition's contract.
			d.logger.Warnw("failed to publish lifecycle events", "work_order_id", workOrderID, "error", err)
		}
	}

	return wo, nil
}
