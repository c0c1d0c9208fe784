package usecases

import (
	"context"

	"quarters/internal/application/workorder/dto"
	"quarters/internal/domain/workorder"
	"quarters/internal/shared/authorization"
	"quarters/internal/shared/errors"
	"quarters/internal/shared/logger"
)

type GetWorkOrderQuery struct {
	Actor       authorization.Actor
	WorkOrderID uint
}

type GetWorkOrderResult struct {
	WorkOrder *dto.WorkOrderDTO
	Photos    []*dto.PhotoDTO
}

type GetWorkOrderUseCase struct {
	workOrderRepo workorder.Repository
	photoRepo     workorder.PhotoRepository
	storage       FileStorage
	logger        logger.Interface
}

func NewGetWorkOrderUseCase(
	workOrderRepo workorder.Repository,
	photoRepo workorder.PhotoRepository,
	storage FileStorage,
	logger logger.Interface,
) *GetWorkOrderUseCase {
	return &GetWorkOrderUseCase{
		workOrderRepo: workOrderRepo,
		photoRepo:     photoRepo,
		storage:       storage,
		logger:        logger,
	}
}

func (uc *GetWorkOrderUseCase) Execute(ctx context.Context, query GetWorkOrderQuery) (*GetWorkOrderResult, error) {
	if query.WorkOrderID == 0 {
		return nil, errors.NewValidationError("work order ID is required")
	}

	wo, err := uc.workOrderRepo.FindByID(ctx, query.WorkOrderID)
	if err != nil {
		return nil, err
	}

	if !workorder.NewAccess(query.Actor, wo).CanView() {
		return nil, errors.NewForbiddenError("no access to this work order")
	}

	photos, err := uc.photoRepo.ListByWorkOrderID(ctx, wo.ID())
	if err != nil {
		uc.logger.Errorw("failed to list photos", "work_order_id", wo.ID(), "error", err)
		return nil, errors.NewInternalError("failed to load work order photos")
	}

	photoDTOs := make([]*dto.PhotoDTO, 0, len(photos))
	for _, p := range photos {
		photoDTOs = append(photoDTOs, dto.FromPhoto(p, uc.storage.URLFor))
	}

	return &GetWorkOrderResult{
		WorkOrder: dto.FromWorkOrder(wo, query.Actor),
		Photos:    photoDTOs,
	}, nil
}
