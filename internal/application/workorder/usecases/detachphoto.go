package usecases

import (
	"context"

	"quarters/internal/domain/workorder"
	"quarters/internal/shared/authorization"
	"quarters/internal/shared/errors"
	"quarters/internal/shared/logger"
)

type DetachPhotoCommand struct {
	Actor   authorization.Actor
	PhotoID uint
}

// DetachPhotoUseCase removes a photo. The database row is deleted first;
// when two requests race, exactly one observes the delete and the loser
// gets not_found. Blob removal is best-effort afterwards, so an orphaned
// file is possible but an orphaned row is not.
type DetachPhotoUseCase struct {
	workOrderRepo workorder.Repository
	photoRepo     workorder.PhotoRepository
	storage       FileStorage
	logger        logger.Interface
}

func NewDetachPhotoUseCase(
	workOrderRepo workorder.Repository,
	photoRepo workorder.PhotoRepository,
	storage FileStorage,
	logger logger.Interface,
) *DetachPhotoUseCase {
	return &DetachPhotoUseCase{
		workOrderRepo: workOrderRepo,
		photoRepo:     photoRepo,
		storage:       storage,
		logger:        logger,
	}
}

func (uc *DetachPhotoUseCase) Execute(ctx context.Context, cmd DetachPhotoCommand) error {
	uc.logger.Infow("detaching photo", "photo_id", cmd.PhotoID, "actor_id", cmd.Actor.ID)

	if cmd.PhotoID == 0 {
		return errors.NewValidationError("photo ID is required")
	}

	photo, err := uc.photoRepo.FindByID(ctx, cmd.PhotoID)
	if err != nil {
		return err
	}

	wo, err := uc.workOrderRepo.FindByID(ctx, photo.WorkOrderID())
	if err != nil {
		return err
	}

	access := workorder.NewAccess(cmd.Actor, wo)
	if !access.CanView() {
		return errors.NewForbiddenError("no access to this work order")
	}
	if !access.CanDeletePhoto(photo) {
		return errors.NewForbiddenError("no rights to remove this photo")
	}

	deleted, err := uc.photoRepo.Delete(ctx, photo.ID())
	if err != nil {
		uc.logger.Errorw("failed to delete photo record", "photo_id", photo.ID(), "error", err)
		return errors.NewInternalError("failed to remove photo")
	}
	if !deleted {
		// A concurrent request removed it between lookup and delete.
		return errors.NewNotFoundError("photo not found")
	}

	if err := uc.storage.Delete(photo.Path()); err != nil {
		uc.logger.Warnw("failed to delete photo blob", "photo_id", photo.ID(), "path", photo.Path(), "error", err)
	}

	uc.logger.Infow("photo detached", "photo_id", photo.ID(), "work_order_id", wo.ID())
	return nil
}
