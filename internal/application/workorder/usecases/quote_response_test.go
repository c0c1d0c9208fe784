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

func TestApproveQuote_OwnerAccepts(t *testing.T) {
	wo := orderAt(t, vo.StatusQuoteProvided)
	publisher := &mockPublisher{}
	uc := NewApproveQuoteUseCase(repoWith(wo), &mockHistoryRepository{}, &mockTxManager{}, publisher, &mockLogger{})

	result, err := uc.Execute(context.Background(), ApproveQuoteCommand{Actor: testTenant, WorkOrderID: 1})
	require.NoError(t, err)
	assert.Equal(t, "approved", result.Status)
	require.NotNil(t, result.QuoteApprovedAt)
	require.Len(t, publisher.Published, 1)
	assert.Equal(t, workorder.EventApproved, publisher.Published[0].GetEventType())
}

func TestApproveQuote_NonOwnerForbidden(t *testing.T) {
	wo := orderAt(t, vo.StatusQuoteProvided)
	uc := NewApproveQuoteUseCase(repoWith(wo), &mockHistoryRepository{}, &mockTxManager{}, &mockPublisher{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), ApproveQuoteCommand{Actor: testOther, WorkOrderID: 1})
	require.Error(t, err)
	assert.True(t, errors.IsForbiddenError(err))

	// Staff cannot answer on the tenant's behalf.
	_, err = uc.Execute(context.Background(), ApproveQuoteCommand{Actor: testAdmin, WorkOrderID: 1})
	require.Error(t, err)
	assert.True(t, errors.IsForbiddenError(err))
}

func TestApproveQuote_WrongState(t *testing.T) {
	wo := orderAt(t, vo.StatusPending)
	uc := NewApproveQuoteUseCase(repoWith(wo), &mockHistoryRepository{}, &mockTxManager{}, &mockPublisher{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), ApproveQuoteCommand{Actor: testTenant, WorkOrderID: 1})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidTransitionError(err))
}

func TestRejectQuote_Terminal(t *testing.T) {
	wo := orderAt(t, vo.StatusQuoteProvided)
	publisher := &mockPublisher{}
	uc := NewRejectQuoteUseCase(repoWith(wo), &mockHistoryRepository{}, &mockTxManager{}, publisher, &mockLogger{})

	result, err := uc.Execute(context.Background(), RejectQuoteCommand{Actor: testTenant, WorkOrderID: 1, Reason: "too expensive"})
	require.NoError(t, err)
	assert.Equal(t, "quote_rejected", result.Status)
	assert.Equal(t, "too expensive", result.QuoteRejectionReason)
	require.Len(t, publisher.Published, 1)
	assert.Equal(t, workorder.EventQuoteRejected, publisher.Published[0].GetEventType())

	// No way back in after the refusal.
	triage := NewTriageWorkOrderUseCase(repoWith(wo), &mockHistoryRepository{}, &mockTxManager{}, &mockPublisher{}, &mockLogger{})
	_, err = triage.Execute(context.Background(), TriageWorkOrderCommand{
		Actor: testStaff, WorkOrderID: 1, JobSize: "large", QuotedAmountCents: int64Ptr(30000),
	})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidTransitionError(err))
}
