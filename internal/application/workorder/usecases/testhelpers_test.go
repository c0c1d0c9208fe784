package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"quarters/internal/domain/workorder"
	vo "quarters/internal/domain/workorder/valueobjects"
	"quarters/internal/shared/authorization"
)

var (
	testTenant = authorization.Actor{ID: 10, Role: authorization.RoleTenant}
	testOther  = authorization.Actor{ID: 99, Role: authorization.RoleTenant}
	testStaff  = authorization.Actor{ID: 2, Role: authorization.RoleMaintenance}
	testAdmin  = authorization.Actor{ID: 1, Role: authorization.RoleAdmin}
)

func int64Ptr(v int64) *int64 { return &v }

// orderAt builds a persisted work order advanced to the given status.
func orderAt(t *testing.T, status vo.Status) *workorder.WorkOrder {
	t.Helper()

	wo, err := workorder.NewWorkOrder(testTenant, nil, "Leaking tap", "The kitchen tap drips constantly.", "Kitchen", vo.PriorityMedium)
	require.NoError(t, err)
	require.NoError(t, wo.SetID(1))

	switch status {
	case vo.StatusPending:
	case vo.StatusQuoteProvided:
		require.NoError(t, wo.Classify(testStaff, vo.JobSizeLarge, int64Ptr(45000), "parts and labor"))
	case vo.StatusQuoteRejected:
		require.NoError(t, wo.Classify(testStaff, vo.JobSizeLarge, int64Ptr(45000), ""))
		require.NoError(t, wo.RejectQuote(testTenant, "too expensive"))
	case vo.StatusApproved:
		require.NoError(t, wo.Classify(testStaff, vo.JobSizeSmall, nil, ""))
	case vo.StatusRejected:
		require.NoError(t, wo.Reject(testStaff, "not our responsibility"))
	case vo.StatusInProgress:
		require.NoError(t, wo.Classify(testStaff, vo.JobSizeSmall, nil, ""))
		require.NoError(t, wo.Start(testStaff))
	case vo.StatusCompleted:
		require.NoError(t, wo.Classify(testStaff, vo.JobSizeSmall, nil, ""))
		require.NoError(t, wo.Start(testStaff))
		require.NoError(t, wo.Complete(testStaff, "done"))
	case vo.StatusSignedOff:
		require.NoError(t, wo.Classify(testStaff, vo.JobSizeSmall, nil, ""))
		require.NoError(t, wo.Start(testStaff))
		require.NoError(t, wo.Complete(testStaff, "done"))
		require.NoError(t, wo.SignOff(testTenant, "", nil, ""))
	}

	wo.PullHistory()
	wo.PullEvents()
	return wo
}

// repoWith returns a repository mock serving the given aggregate.
func repoWith(wo *workorder.WorkOrder) *mockWorkOrderRepository {
	return &mockWorkOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*workorder.WorkOrder, error) {
			return wo, nil
		},
	}
}
