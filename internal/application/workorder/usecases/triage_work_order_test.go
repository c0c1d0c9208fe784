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

func newTriageUseCase(wo *workorder.WorkOrder) (*TriageWorkOrderUseCase, *mockWorkOrderRepository, *mockHistoryRepository, *mockPublisher) {
	repo := repoWith(wo)
	history := &mockHistoryRepository{}
	publisher := &mockPublisher{}
	uc := NewTriageWorkOrderUseCase(repo, history, &mockTxManager{}, publisher, &mockLogger{})
	return uc, repo, history, publisher
}

func TestTriageWorkOrder_SmallJob(t *testing.T) {
	wo := orderAt(t, vo.StatusPending)
	uc, repo, history, publisher := newTriageUseCase(wo)

	var updated bool
	repo.UpdateFunc = func(ctx context.Context, got *workorder.WorkOrder, loadedVersion int) error {
		updated = true
		assert.Equal(t, 1, loadedVersion)
		return nil
	}

	result, err := uc.Execute(context.Background(), TriageWorkOrderCommand{
		Actor:       testStaff,
		WorkOrderID: 1,
		JobSize:     "small",
	})
	require.NoError(t, err)
	assert.True(t, updated)
	assert.Equal(t, "approved", result.Status)
	require.Len(t, publisher.Published, 1)
	assert.Equal(t, workorder.EventApproved, publisher.Published[0].GetEventType())
	require.Len(t, history.Saved, 1)
	assert.Equal(t, workorder.FieldStatus, history.Saved[0].Field())
}

func TestTriageWorkOrder_LargeJobWithQuote(t *testing.T) {
	wo := orderAt(t, vo.StatusPending)
	uc, _, _, publisher := newTriageUseCase(wo)

	result, err := uc.Execute(context.Background(), TriageWorkOrderCommand{
		Actor:             testStaff,
		WorkOrderID:       1,
		JobSize:           "large",
		QuotedAmountCents: int64Ptr(45000),
		QuoteNotes:        "Parts plus labor",
	})
	require.NoError(t, err)
	assert.Equal(t, "quote_provided", result.Status)
	require.NotNil(t, result.QuotedAmountCents)
	assert.Equal(t, int64(45000), *result.QuotedAmountCents)

	require.Len(t, publisher.Published, 1)
	evt, ok := publisher.Published[0].(workorder.LifecycleEvent)
	require.True(t, ok)
	assert.Equal(t, int64(45000), evt.QuotedAmountCents)
}

func TestTriageWorkOrder_LargeJobMissingQuote(t *testing.T) {
	wo := orderAt(t, vo.StatusPending)
	uc, repo, history, publisher := newTriageUseCase(wo)

	var updated bool
	repo.UpdateFunc = func(ctx context.Context, got *workorder.WorkOrder, loadedVersion int) error {
		updated = true
		return nil
	}

	_, err := uc.Execute(context.Background(), TriageWorkOrderCommand{
		Actor:       testStaff,
		WorkOrderID: 1,
		JobSize:     "large",
	})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	// The failed transition must leave no trace.
	assert.False(t, updated)
	assert.Empty(t, history.Saved)
	assert.Empty(t, publisher.Published)
	assert.Equal(t, vo.StatusPending, wo.Status())
}

func TestTriageWorkOrder_TenantForbidden(t *testing.T) {
	wo := orderAt(t, vo.StatusPending)
	uc, _, _, publisher := newTriageUseCase(wo)

	_, err := uc.Execute(context.Background(), TriageWorkOrderCommand{
		Actor:       testTenant,
		WorkOrderID: 1,
		JobSize:     "small",
	})
	require.Error(t, err)
	assert.True(t, errors.IsForbiddenError(err))
	assert.Empty(t, publisher.Published)
}

func TestTriageWorkOrder_InvalidJobSize(t *testing.T) {
	wo := orderAt(t, vo.StatusPending)
	uc, _, _, _ := newTriageUseCase(wo)

	_, err := uc.Execute(context.Background(), TriageWorkOrderCommand{
		Actor:       testStaff,
		WorkOrderID: 1,
		JobSize:     "medium",
	})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestTriageWorkOrder_VersionConflictSurfaces(t *testing.T) {
	wo := orderAt(t, vo.StatusPending)
	uc, repo, _, publisher := newTriageUseCase(wo)

	repo.UpdateFunc = func(ctx context.Context, got *workorder.WorkOrder, loadedVersion int) error {
		return errors.NewConflictError("work order was modified concurrently")
	}

	_, err := uc.Execute(context.Background(), TriageWorkOrderCommand{
		Actor:       testStaff,
		WorkOrderID: 1,
		JobSize:     "small",
	})
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
	assert.Empty(t, publisher.Published)
}
