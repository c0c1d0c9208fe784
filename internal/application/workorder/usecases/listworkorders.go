package usecases

import (
	"context"

	"quarters/internal/application/workorder/dto"
	"quarters/internal/domain/workorder"
	vo "quarters/internal/domain/workorder/valueobjects"
	"quarters/internal/shared/authorization"
	"quarters/internal/shared/errors"
	"quarters/internal/shared/logger"
)

type ListWorkOrdersQuery struct {
	Actor    authorization.Actor
	Status   string
	Priority string
	TenantID *uint
	Page     int
	PageSize int
}

type ListWorkOrdersResult struct {
	Items    []*dto.WorkOrderDTO
	Total    int64
	Page     int
	PageSize int
}

type ListWorkOrdersUseCase struct {
	workOrderRepo workorder.Repository
	logger        logger.Interface
}

func NewListWorkOrdersUseCase(workOrderRepo workorder.Repository, logger logger.Interface) *ListWorkOrdersUseCase {
	return &ListWorkOrdersUseCase{workOrderRepo: workOrderRepo, logger: logger}
}

func (uc *ListWorkOrdersUseCase) Execute(ctx context.Context, query ListWorkOrdersQuery) (*ListWorkOrdersResult, error) {
	if query.Actor.IsZero() {
		return nil, errors.NewUnauthenticatedError("no actor resolved for request")
	}

	filter := workorder.Filter{
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	if query.Status != "" {
		status, err := vo.NewStatus(query.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}
	if query.Priority != "" {
		priority, err := vo.NewPriority(query.Priority)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Priority = &priority
	}

	// Tenants only ever see their own orders; the filter is forced here
	// regardless of what the request asked for. Staff may scope by tenant.
	if query.Actor.IsStaff() {
		filter.TenantID = query.TenantID
	} else {
		tenantID := query.Actor.ID
		filter.TenantID = &tenantID
	}

	orders, total, err := uc.workOrderRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list work orders", "error", err)
		return nil, errors.NewInternalError("failed to list work orders")
	}

	items := make([]*dto.WorkOrderDTO, 0, len(orders))
	for _, wo := range orders {
		items = append(items, dto.FromWorkOrder(wo, query.Actor))
	}

	return &ListWorkOrdersResult{
		Items:    items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}
