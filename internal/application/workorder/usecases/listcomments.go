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

type ListCommentsQuery struct {
	Actor       authorization.Actor
	WorkOrderID uint
}

// ListCommentsUseCase returns the order's discussion thread. Internal staff
// notes are filtered out for tenant readers at the query level, never
// client-side.
type ListCommentsUseCase struct {
	workOrderRepo workorder.Repository
	commentRepo   workorder.CommentRepository
	markdownSvc   markdown.Service
	logger        logger.Interface
}

func NewListCommentsUseCase(
	workOrderRepo workorder.Repository,
	commentRepo workorder.CommentRepository,
	markdownSvc markdown.Service,
	logger logger.Interface,
) *ListCommentsUseCase {
	return &ListCommentsUseCase{
		workOrderRepo: workOrderRepo,
		commentRepo:   commentRepo,
		markdownSvc:   markdownSvc,
		logger:        logger,
	}
}

func (uc *ListCommentsUseCase) Execute(ctx context.Context, query ListCommentsQuery) ([]*dto.CommentDTO, error) {
	if query.WorkOrderID == 0 {
		return nil, errors.NewValidationError("work order ID is required")
	}

	wo, err := uc.workOrderRepo.FindByID(ctx, query.WorkOrderID)
	if err != nil {
		return nil, err
	}

	access := workorder.NewAccess(query.Actor, wo)
	if !access.CanView() {
		return nil, errors.NewForbiddenError("no access to this work order")
	}

	comments, err := uc.commentRepo.ListByWorkOrderID(ctx, wo.ID(), access.IsStaff)
	if err != nil {
		uc.logger.Errorw("failed to list comments", "work_order_id", wo.ID(), "error", err)
		return nil, errors.NewInternalError("failed to list comments")
	}

	result := make([]*dto.CommentDTO, 0, len(comments))
	for _, c := range comments {
		bodyHTML, err := uc.markdownSvc.ToHTMLSanitized(c.Body())
		if err != nil {
			uc.logger.Warnw("failed to render comment markdown", "comment_id", c.ID(), "error", err)
			bodyHTML = ""
		}
		result = append(result, dto.FromComment(c, bodyHTML))
	}
	return result, nil
}
