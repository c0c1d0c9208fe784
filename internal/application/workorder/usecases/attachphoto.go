package usecases

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"quarters/internal/application/workorder/dto"
	"quarters/internal/domain/workorder"
	vo "quarters/internal/domain/workorder/valueobjects"
	"quarters/internal/shared/authorization"
	"quarters/internal/shared/errors"
	"quarters/internal/shared/logger"
	"quarters/internal/shared/validation"
)

type AttachPhotoCommand struct {
	Actor       authorization.Actor
	WorkOrderID uint
	Kind        string
	Caption     string
	Content     io.Reader
}

// AttachPhotoUseCase validates and stores an uploaded photo, then records it
// against the work order. Validation happens entirely before the first byte
// reaches storage; a rejected upload leaves no trace.
type AttachPhotoUseCase struct {
	workOrderRepo workorder.Repository
	photoRepo     workorder.PhotoRepository
	storage       FileStorage
	logger        logger.Interface
}

func NewAttachPhotoUseCase(
	workOrderRepo workorder.Repository,
	photoRepo workorder.PhotoRepository,
	storage FileStorage,
	logger logger.Interface,
) *AttachPhotoUseCase {
	return &AttachPhotoUseCase{
		workOrderRepo: workOrderRepo,
		photoRepo:     photoRepo,
		storage:       storage,
		logger:        logger,
	}
}

func (uc *AttachPhotoUseCase) Execute(ctx context.Context, cmd AttachPhotoCommand) (*dto.PhotoDTO, error) {
	uc.logger.Infow("attaching photo", "work_order_id", cmd.WorkOrderID, "kind", cmd.Kind, "actor_id", cmd.Actor.ID)

	if cmd.WorkOrderID == 0 {
		return nil, errors.NewValidationError("work order ID is required")
	}
	if cmd.Content == nil {
		return nil, errors.NewValidationError("photo content is required")
	}
	kind, err := vo.NewPhotoKind(cmd.Kind)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	wo, err := uc.workOrderRepo.FindByID(ctx, cmd.WorkOrderID)
	if err != nil {
		return nil, err
	}

	access := workorder.NewAccess(cmd.Actor, wo)
	if !access.CanView() {
		return nil, errors.NewForbiddenError("no access to this work order")
	}
	if !access.CanAttachPhoto(kind) {
		return nil, errors.NewForbiddenError("no rights to attach this kind of photo")
	}
	if wo.Status().IsTerminal() {
		return nil, errors.NewInvalidTransitionError("cannot attach photos to a closed work order")
	}

	content, ext, err := validation.ValidateAttachment(cmd.Content)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("%s.%s", kind, ext)
	prefix := fmt.Sprintf("work-orders/%d", wo.ID())
	path, err := uc.storage.Save(bytes.NewReader(content), filename, prefix)
	if err != nil {
		uc.logger.Errorw("failed to store photo", "work_order_id", wo.ID(), "error", err)
		return nil, errors.NewInternalError("failed to store photo")
	}

	photo, err := workorder.NewPhoto(wo.ID(), cmd.Actor.ID, path, kind, cmd.Caption)
	if err != nil {
		return nil, err
	}
	if err := uc.photoRepo.Create(ctx, photo); err != nil {
		if delErr := uc.storage.Delete(path); delErr != nil {
			uc.logger.Warnw("failed to clean up stored photo after failed create", "path", path, "error", delErr)
		}
		uc.logger.Errorw("failed to record photo", "work_order_id", wo.ID(), "error", err)
		return nil, errors.NewInternalError("failed to record photo")
	}

	uc.logger.Infow("photo attached", "work_order_id", wo.ID(), "photo_id", photo.ID())
	return dto.FromPhoto(photo, uc.storage.URLFor), nil
}
