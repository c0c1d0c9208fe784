package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quarters/internal/domain/workorder"
	vo "quarters/internal/domain/workorder/valueobjects"
	"quarters/internal/shared/errors"
)

func TestListWorkOrders_TenantScopeForced(t *testing.T) {
	var captured workorder.Filter
	repo := &mockWorkOrderRepository{
		ListFunc: func(ctx context.Context, filter workorder.Filter) ([]*workorder.WorkOrder, int64, error) {
			captured = filter
			return nil, 0, nil
		},
	}
	uc := NewListWorkOrdersUseCase(repo, &mockLogger{})

	// A tenant asking for another tenant's orders still gets their own scope.
	foreign := uint(99)
	_, err := uc.Execute(context.Background(), ListWorkOrdersQuery{Actor: testTenant, TenantID: &foreign})
	require.NoError(t, err)
	require.NotNil(t, captured.TenantID)
	assert.Equal(t, testTenant.ID, *captured.TenantID)
}

func TestListWorkOrders_StaffMayScopeByTenant(t *testing.T) {
	var captured workorder.Filter
	repo := &mockWorkOrderRepository{
		ListFunc: func(ctx context.Context, filter workorder.Filter) ([]*workorder.WorkOrder, int64, error) {
			captured = filter
			return nil, 0, nil
		},
	}
	uc := NewListWorkOrdersUseCase(repo, &mockLogger{})

	_, err := uc.Execute(context.Background(), ListWorkOrdersQuery{Actor: testAdmin})
	require.NoError(t, err)
	assert.Nil(t, captured.TenantID)

	tenantID := uint(10)
	_, err = uc.Execute(context.Background(), ListWorkOrdersQuery{Actor: testAdmin, TenantID: &tenantID})
	require.NoError(t, err)
	require.NotNil(t, captured.TenantID)
	assert.Equal(t, tenantID, *captured.TenantID)
}

func TestListWorkOrders_Filters(t *testing.T) {
	var captured workorder.Filter
	repo := &mockWorkOrderRepository{
		ListFunc: func(ctx context.Context, filter workorder.Filter) ([]*workorder.WorkOrder, int64, error) {
			captured = filter
			return []*workorder.WorkOrder{orderAt(t, vo.StatusPending)}, 1, nil
		},
	}
	uc := NewListWorkOrdersUseCase(repo, &mockLogger{})

	result, err := uc.Execute(context.Background(), ListWorkOrdersQuery{
		Actor:    testAdmin,
		Status:   "pending",
		Priority: "medium",
		Page:     2,
		PageSize: 50,
	})
	require.NoError(t, err)
	require.NotNil(t, captured.Status)
	assert.Equal(t, vo.StatusPending, *captured.Status)
	require.NotNil(t, captured.Priority)
	assert.Equal(t, vo.PriorityMedium, *captured.Priority)
	assert.Equal(t, 2, captured.Page)
	assert.Equal(t, 50, captured.PageSize)
	assert.Equal(t, int64(1), result.Total)
	require.Len(t, result.Items, 1)
}

func TestListWorkOrders_InvalidStatusFilter(t *testing.T) {
	uc := NewListWorkOrdersUseCase(&mockWorkOrderRepository{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), ListWorkOrdersQuery{Actor: testAdmin, Status: "open"})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestListWorkOrders_PaginationDefaults(t *testing.T) {
	var captured workorder.Filter
	repo := &mockWorkOrderRepository{
		ListFunc: func(ctx context.Context, filter workorder.Filter) ([]*workorder.WorkOrder, int64, error) {
			captured = filter
			return nil, 0, nil
		},
	}
	uc := NewListWorkOrdersUseCase(repo, &mockLogger{})

	_, err := uc.Execute(context.Background(), ListWorkOrdersQuery{Actor: testAdmin, Page: 0, PageSize: 1000})
	require.NoError(t, err)
	assert.Equal(t, 1, captured.Page)
	assert.Equal(t, 20, captured.PageSize)
}

func TestGetWorkOrder_NonOwnerForbidden(t *testing.T) {
	wo := orderAt(t, vo.StatusPending)
	uc := NewGetWorkOrderUseCase(repoWith(wo), &mockPhotoRepository{}, &mockFileStorage{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), GetWorkOrderQuery{Actor: testOther, WorkOrderID: 1})
	require.Error(t, err)
	assert.True(t, errors.IsForbiddenError(err))

	result, err := uc.Execute(context.Background(), GetWorkOrderQuery{Actor: testTenant, WorkOrderID: 1})
	require.NoError(t, err)
	assert.Equal(t, uint(1), result.WorkOrder.ID)
}
