package usecases

import (
	"context"

	"quarters/internal/application/workorder/dto"
	"quarters/internal/domain/workorder"
	"quarters/internal/shared/authorization"
	"quarters/internal/shared/errors"
	"quarters/internal/shared/logger"
	"quarters/internal/shared/services/markdown"
)

type AddCommentCommand struct {
	Actor       authorization.Actor
	WorkOrderID uint
	Body        string
	IsInternal  bool
}

type AddCommentUseCase struct {
	workOrderRepo workorder.Repository
	commentRepo   workorder.CommentRepository
	markdownSvc   markdown.Service
	logger        logger.Interface
}

func NewAddCommentUseCase(
	workOrderRepo workorder.Repository,
	commentRepo workorder.CommentRepository,
	markdownSvc markdown.Service,
	logger logger.Interface,
) *AddCommentUseCase {
	return &AddCommentUseCase{
		workOrderRepo: workOrderRepo,
		commentRepo:   commentRepo,
		markdownSvc:   markdownSvc,
		logger:        logger,
	}
}

func (uc *AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (*dto.CommentDTO, error) {
	uc.logger.Infow("adding comment", "work_order_id", cmd.WorkOrderID, "actor_id", cmd.Actor.ID)

	if cmd.WorkOrderID == 0 {
		return nil, errors.NewValidationError("work order ID is required")
	}

	wo, err := uc.workOrderRepo.FindByID(ctx, cmd.WorkOrderID)
	if err != nil {
		return nil, err
	}

	access := workorder.NewAccess(cmd.Actor, wo)
	if !access.CanView() {
		return nil, errors.NewForbiddenError("no access to this work order")
	}

	// Internal notes are a staff-only channel.
	if cmd.IsInternal && !access.IsStaff {
		return nil, errors.NewForbiddenError("only staff can add internal notes")
	}

	comment, err := workorder.NewComment(wo.ID(), cmd.Actor.ID, cmd.Body, cmd.IsInternal)
	if err != nil {
		return nil, err
	}

	if err := uc.commentRepo.Create(ctx, comment); err != nil {
		uc.logger.Errorw("failed to create comment", "work_order_id", wo.ID(), "error", err)
		return nil, errors.NewInternalError("failed to add comment")
	}

	bodyHTML, err := uc.markdownSvc.ToHTMLSanitized(comment.Body())
	if err != nil {
		uc.logger.Warnw("failed to render comment markdown", "comment_id", comment.ID(), "error", err)
		bodyHTML = ""
	}

	uc.logger.Infow("comment added", "work_order_id", wo.ID(), "comment_id", comment.ID())
	return dto.FromComment(comment, bodyHTML), nil
}
