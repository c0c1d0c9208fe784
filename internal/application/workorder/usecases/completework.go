package usecases

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"quarters/internal/application/workorder/dto"
	"quarters/internal/domain/shared/events"
	"quarters/internal/domain/workorder"
	vo "quarters/internal/domain/workorder/valueobjects"
	"quarters/internal/shared/authorization"
	"quarters/internal/shared/db"
	"quarters/internal/shared/errors"
	"quarters/internal/shared/logger"
	"quarters/internal/shared/validation"
)

type CompleteWorkCommand struct {
	Actor       authorization.Actor
	WorkOrderID uint
	Notes       string

	// Optional completion photo, validated and stored before the transition
	// commits so the photo row and the status change land atomically.
	PhotoContent io.Reader
	PhotoCaption string
}

type CompleteWorkUseCase struct {
	lifecycleDeps
	photoRepo workorder.PhotoRepository
	storage   FileStorage
}

func NewCompleteWorkUseCase(
	workOrderRepo workorder.Repository,
	historyRepo workorder.HistoryRepository,
	photoRepo workorder.PhotoRepository,
	storage FileStorage,
	txManager db.TransactionManager,
	publisher events.EventPublisher,
	logger logger.Interface,
) *CompleteWorkUseCase {
	return &CompleteWorkUseCase{
		lifecycleDeps: lifecycleDeps{
			workOrderRepo: workOrderRepo,
			historyRepo:   historyRepo,
			txManager:     txManager,
			publisher:     publisher,
			logger:        logger,
		},
		photoRepo: photoRepo,
		storage:   storage,
	}
}

func (uc *CompleteWorkUseCase) Execute(ctx context.Context, cmd CompleteWorkCommand) (*dto.WorkOrderDTO, error) {
	uc.logger.Infow("completing work", "work_order_id", cmd.WorkOrderID, "actor_id", cmd.Actor.ID)

	if cmd.WorkOrderID == 0 {
		return nil, errors.NewValidationError("work order ID is required")
	}

	var storedPath string
	if cmd.PhotoContent != nil {
		content, ext, err := validation.ValidateAttachment(cmd.PhotoContent)
		if err != nil {
			return nil, err
		}
		filename := fmt.Sprintf("completion.%s", ext)
		prefix := fmt.Sprintf("work-orders/%d", cmd.WorkOrderID)
		storedPath, err = uc.storage.Save(bytes.NewReader(content), filename, prefix)
		if err != nil {
			uc.logger.Errorw("failed to store completion photo", "work_order_id", cmd.WorkOrderID, "error", err)
			return nil, errors.NewInternalError("failed to store completion photo")
		}
	}

	wo, err := uc.runTransition(ctx, cmd.WorkOrderID, func(txCtx context.Context, wo *workorder.WorkOrder) error {
		if err := wo.Complete(cmd.Actor, cmd.Notes); err != nil {
			return err
		}
		if storedPath == "" {
			return nil
		}
		photo, err := workorder.NewPhoto(wo.ID(), cmd.Actor.ID, storedPath, vo.PhotoKindCompletion, cmd.PhotoCaption)
		if err != nil {
			return err
		}
		return uc.photoRepo.Create(txCtx, photo)
	})
	if err != nil {
		if storedPath != "" {
			if delErr := uc.storage.Delete(storedPath); delErr != nil {
				uc.logger.Warnw("failed to clean up stored photo after aborted completion", "path", storedPath, "error", delErr)
			}
		}
		uc.logger.Errorw("failed to complete work", "work_order_id", cmd.WorkOrderID, "error", err)
		return nil, err
	}

	uc.logger.Infow("work completed", "work_order_id", wo.ID())
	return dto.FromWorkOrder(wo, cmd.Actor), nil
}
