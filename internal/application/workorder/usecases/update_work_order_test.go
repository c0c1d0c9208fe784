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

func strPtr(s string) *string { return &s }

func TestUpdateWorkOrder_OwnerEditsWhilePending(t *testing.T) {
	wo := orderAt(t, vo.StatusPending)
	history := &mockHistoryRepository{}
	uc := NewUpdateWorkOrderUseCase(repoWith(wo), history, &mockTxManager{}, &mockLogger{})

	result, err := uc.Execute(context.Background(), UpdateWorkOrderCommand{
		Actor:       testTenant,
		WorkOrderID: 1,
		Title:       strPtr("Leaking kitchen tap"),
		Priority:    strPtr("high"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Leaking kitchen tap", result.Title)
	assert.Equal(t, "high", result.Priority)
	require.Len(t, history.Saved, 2)
	assert.Equal(t, workorder.FieldTitle, history.Saved[0].Field())
	assert.Equal(t, workorder.FieldPriority, history.Saved[1].Field())
}

func TestUpdateWorkOrder_NoOpEditWritesNothing(t *testing.T) {
	wo := orderAt(t, vo.StatusPending)
	repo := repoWith(wo)
	history := &mockHistoryRepository{}

	var updated bool
	repo.UpdateFunc = func(ctx context.Context, got *workorder.WorkOrder, loadedVersion int) error {
		updated = true
		return nil
	}
	uc := NewUpdateWorkOrderUseCase(repo, history, &mockTxManager{}, &mockLogger{})

	before := wo.UpdatedAt()
	result, err := uc.Execute(context.Background(), UpdateWorkOrderCommand{
		Actor:       testTenant,
		WorkOrderID: 1,
		Title:       strPtr("Leaking tap"), // unchanged value
	})
	require.NoError(t, err)
	assert.False(t, updated)
	assert.Empty(t, history.Saved)
	assert.Equal(t, before.Format("2006-01-02T15:04:05.000"), wo.UpdatedAt().Format("2006-01-02T15:04:05.000"))
	assert.Equal(t, 1, result.Version)
}

func TestUpdateWorkOrder_TenantLockedAfterTriage(t *testing.T) {
	wo := orderAt(t, vo.StatusApproved)
	uc := NewUpdateWorkOrderUseCase(repoWith(wo), &mockHistoryRepository{}, &mockTxManager{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), UpdateWorkOrderCommand{
		Actor:       testTenant,
		WorkOrderID: 1,
		Title:       strPtr("New title"),
	})
	require.Error(t, err)
	assert.True(t, errors.IsForbiddenError(err))

	// Staff are not locked out.
	result, err := uc.Execute(context.Background(), UpdateWorkOrderCommand{
		Actor:       testAdmin,
		WorkOrderID: 1,
		Title:       strPtr("New title"),
	})
	require.NoError(t, err)
	assert.Equal(t, "New title", result.Title)
}

func TestUpdateWorkOrder_EmptyCommand(t *testing.T) {
	uc := NewUpdateWorkOrderUseCase(&mockWorkOrderRepository{}, &mockHistoryRepository{}, &mockTxManager{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), UpdateWorkOrderCommand{Actor: testTenant, WorkOrderID: 1})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}
