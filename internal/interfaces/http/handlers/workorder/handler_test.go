package workorder

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	workorderdto "quarters/internal/application/workorder/dto"
	"quarters/internal/application/workorder/usecases"
	"quarters/internal/interfaces/http/handlers/testutil"
	"quarters/internal/shared/authorization"
	"quarters/internal/shared/errors"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockCreateUC struct {
	result *workorderdto.WorkOrderDTO
	err    error
	got    usecases.CreateWorkOrderCommand
}

func (m *mockCreateUC) Execute(_ context.Context, cmd usecases.CreateWorkOrderCommand) (*workorderdto.WorkOrderDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockGetUC struct {
	result *usecases.GetWorkOrderResult
	err    error
}

func (m *mockGetUC) Execute(_ context.Context, _ usecases.GetWorkOrderQuery) (*usecases.GetWorkOrderResult, error) {
	return m.result, m.err
}

type mockListUC struct {
	result *usecases.ListWorkOrdersResult
	err    error
	got    usecases.ListWorkOrdersQuery
}

func (m *mockListUC) Execute(_ context.Context, query usecases.ListWorkOrdersQuery) (*usecases.ListWorkOrdersResult, error) {
	m.got = query
	return m.result, m.err
}

type mockUpdateUC struct {
	result *workorderdto.WorkOrderDTO
	err    error
}

func (m *mockUpdateUC) Execute(_ context.Context, _ usecases.UpdateWorkOrderCommand) (*workorderdto.WorkOrderDTO, error) {
	return m.result, m.err
}

type mockTriageUC struct {
	result *workorderdto.WorkOrderDTO
	err    error
	got    usecases.TriageWorkOrderCommand
}

func (m *mockTriageUC) Execute(_ context.Context, cmd usecases.TriageWorkOrderCommand) (*workorderdto.WorkOrderDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockApproveQuoteUC struct {
	result *workorderdto.WorkOrderDTO
	err    error
}

func (m *mockApproveQuoteUC) Execute(_ context.Context, _ usecases.ApproveQuoteCommand) (*workorderdto.WorkOrderDTO, error) {
	return m.result, m.err
}

type mockRejectQuoteUC struct {
	result *workorderdto.WorkOrderDTO
	err    error
}

func (m *mockRejectQuoteUC) Execute(_ context.Context, _ usecases.RejectQuoteCommand) (*workorderdto.WorkOrderDTO, error) {
	return m.result, m.err
}

type mockRejectUC struct {
	result *workorderdto.WorkOrderDTO
	err    error
	got    usecases.RejectWorkOrderCommand
}

func (m *mockRejectUC) Execute(_ context.Context, cmd usecases.RejectWorkOrderCommand) (*workorderdto.WorkOrderDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockStartUC struct {
	result *workorderdto.WorkOrderDTO
	err    error
}

func (m *mockStartUC) Execute(_ context.Context, _ usecases.StartWorkCommand) (*workorderdto.WorkOrderDTO, error) {
	return m.result, m.err
}

type mockCompleteUC struct {
	result *workorderdto.WorkOrderDTO
	err    error
	got    usecases.CompleteWorkCommand
}

func (m *mockCompleteUC) Execute(_ context.Context, cmd usecases.CompleteWorkCommand) (*workorderdto.WorkOrderDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockSignOffUC struct {
	result *workorderdto.WorkOrderDTO
	err    error
	got    usecases.SignOffWorkOrderCommand
}

func (m *mockSignOffUC) Execute(_ context.Context, cmd usecases.SignOffWorkOrderCommand) (*workorderdto.WorkOrderDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockAttachPhotoUC struct {
	result *workorderdto.PhotoDTO
	err    error
}

func (m *mockAttachPhotoUC) Execute(_ context.Context, _ usecases.AttachPhotoCommand) (*workorderdto.PhotoDTO, error) {
	return m.result, m.err
}

type mockDetachPhotoUC struct {
	err error
	got usecases.DetachPhotoCommand
}

func (m *mockDetachPhotoUC) Execute(_ context.Context, cmd usecases.DetachPhotoCommand) error {
	m.got = cmd
	return m.err
}

type mockAddCommentUC struct {
	result *workorderdto.CommentDTO
	err    error
}

func (m *mockAddCommentUC) Execute(_ context.Context, _ usecases.AddCommentCommand) (*workorderdto.CommentDTO, error) {
	return m.result, m.err
}

type mockListCommentsUC struct {
	result []*workorderdto.CommentDTO
	err    error
}

func (m *mockListCommentsUC) Execute(_ context.Context, _ usecases.ListCommentsQuery) ([]*workorderdto.CommentDTO, error) {
	return m.result, m.err
}

type mockListHistoryUC struct {
	result []*workorderdto.HistoryEntryDTO
	err    error
}

func (m *mockListHistoryUC) Execute(_ context.Context, _ usecases.ListHistoryQuery) ([]*workorderdto.HistoryEntryDTO, error) {
	return m.result, m.err
}

// =====================================================================
// Test helper
// =====================================================================

type testDeps struct {
	createUC       usecases.CreateWorkOrderExecutor
	getUC          usecases.GetWorkOrderExecutor
	listUC         usecases.ListWorkOrdersExecutor
	updateUC       usecases.UpdateWorkOrderExecutor
	triageUC       usecases.TriageWorkOrderExecutor
	approveQuoteUC usecases.ApproveQuoteExecutor
	rejectQuoteUC  usecases.RejectQuoteExecutor
	rejectUC       usecases.RejectWorkOrderExecutor
	startUC        usecases.StartWorkExecutor
	completeUC     usecases.CompleteWorkExecutor
	signOffUC      usecases.SignOffWorkOrderExecutor
	attachPhotoUC  usecases.AttachPhotoExecutor
	detachPhotoUC  usecases.DetachPhotoExecutor
	addCommentUC   usecases.AddCommentExecutor
	listCommentsUC usecases.ListCommentsExecutor
	listHistoryUC  usecases.ListHistoryExecutor
}

func newTestHandler(deps testDeps) *WorkOrderHandler {
	return NewWorkOrderHandler(
		deps.createUC,
		deps.getUC,
		deps.listUC,
		deps.updateUC,
		deps.triageUC,
		deps.approveQuoteUC,
		deps.rejectQuoteUC,
		deps.rejectUC,
		deps.startUC,
		deps.completeUC,
		deps.signOffUC,
		deps.attachPhotoUC,
		deps.detachPhotoUC,
		deps.addCommentUC,
		deps.listCommentsUC,
		deps.listHistoryUC,
	)
}

var (
	tenantActor = authorization.Actor{ID: 10, Role: authorization.RoleTenant}
	staffActor  = authorization.Actor{ID: 2, Role: authorization.RoleMaintenance}
)

// =====================================================================
// CreateWorkOrder
// =====================================================================

func TestWorkOrderHandler_CreateWorkOrder_Success(t *testing.T) {
	mockUC := &mockCreateUC{
		result: &workorderdto.WorkOrderDTO{ID: 1, TenantID: 10, Title: "Leaking faucet", Status: "pending"},
	}
	handler := newTestHandler(testDeps{createUC: mockUC})

	reqBody := CreateWorkOrderRequest{
		Title:       "Leaking faucet",
		Description: "Kitchen faucet drips constantly",
		Priority:    "medium",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/api/work-orders", reqBody)
	testutil.SetAuthContext(c, tenantActor)

	handler.CreateWorkOrder(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, tenantActor, mockUC.got.Actor)
	assert.Equal(t, "Leaking faucet", mockUC.got.Title)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
}

func TestWorkOrderHandler_CreateWorkOrder_BindError(t *testing.T) {
	handler := newTestHandler(testDeps{})

	// Missing required description
	reqBody := map[string]string{"title": "only title"}
	c, w := testutil.NewTestContext(http.MethodPost, "/api/work-orders", reqBody)
	testutil.SetAuthContext(c, tenantActor)

	handler.CreateWorkOrder(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.False(t, resp.Success)
}

func TestWorkOrderHandler_CreateWorkOrder_UseCaseError(t *testing.T) {
	mockUC := &mockCreateUC{err: errors.NewForbiddenError("only tenants can create work orders")}
	handler := newTestHandler(testDeps{createUC: mockUC})

	reqBody := CreateWorkOrderRequest{Title: "t", Description: "d"}
	c, w := testutil.NewTestContext(http.MethodPost, "/api/work-orders", reqBody)
	testutil.SetAuthContext(c, staffActor)

	handler.CreateWorkOrder(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

// =====================================================================
// GetWorkOrder
// =====================================================================

func TestWorkOrderHandler_GetWorkOrder_Success(t *testing.T) {
	mockUC := &mockGetUC{
		result: &usecases.GetWorkOrderResult{
			WorkOrder: &workorderdto.WorkOrderDTO{ID: 7, Status: "approved"},
		},
	}
	handler := newTestHandler(testDeps{getUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/api/work-orders/7", nil)
	testutil.SetAuthContext(c, tenantActor)
	testutil.SetURLParam(c, "id", "7")

	handler.GetWorkOrder(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWorkOrderHandler_GetWorkOrder_InvalidID(t *testing.T) {
	handler := newTestHandler(testDeps{})

	c, w := testutil.NewTestContext(http.MethodGet, "/api/work-orders/abc", nil)
	testutil.SetAuthContext(c, tenantActor)
	testutil.SetURLParam(c, "id", "abc")

	handler.GetWorkOrder(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWorkOrderHandler_GetWorkOrder_Forbidden(t *testing.T) {
	mockUC := &mockGetUC{err: errors.NewForbiddenError("you do not have access to this work order")}
	handler := newTestHandler(testDeps{getUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/api/work-orders/7", nil)
	testutil.SetAuthContext(c, tenantActor)
	testutil.SetURLParam(c, "id", "7")

	handler.GetWorkOrder(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

// =====================================================================
// ListWorkOrders
// =====================================================================

func TestWorkOrderHandler_ListWorkOrders_QueryParams(t *testing.T) {
	mockUC := &mockListUC{
		result: &usecases.ListWorkOrdersResult{Total: 0, Page: 2, PageSize: 5},
	}
	handler := newTestHandler(testDeps{listUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/api/work-orders", nil)
	testutil.SetAuthContext(c, staffActor)
	testutil.SetQueryParams(c, map[string]string{
		"status":    "pending",
		"priority":  "high",
		"tenant_id": "10",
		"page":      "2",
		"page_size": "5",
	})

	handler.ListWorkOrders(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pending", mockUC.got.Status)
	assert.Equal(t, "high", mockUC.got.Priority)
	require.NotNil(t, mockUC.got.TenantID)
	assert.Equal(t, uint(10), *mockUC.got.TenantID)
	assert.Equal(t, 2, mockUC.got.Page)
	assert.Equal(t, 5, mockUC.got.PageSize)
}

func TestWorkOrderHandler_ListWorkOrders_BadTenantID(t *testing.T) {
	handler := newTestHandler(testDeps{})

	c, w := testutil.NewTestContext(http.MethodGet, "/api/work-orders", nil)
	testutil.SetAuthContext(c, staffActor)
	testutil.SetQueryParams(c, map[string]string{"tenant_id": "nope"})

	handler.ListWorkOrders(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// =====================================================================
// TriageWorkOrder
// =====================================================================

func TestWorkOrderHandler_TriageWorkOrder_Success(t *testing.T) {
	mockUC := &mockTriageUC{
		result: &workorderdto.WorkOrderDTO{ID: 3, Status: "quote_provided"},
	}
	handler := newTestHandler(testDeps{triageUC: mockUC})

	amount := int64(45000)
	reqBody := TriageWorkOrderRequest{
		JobSize:           "large",
		QuotedAmountCents: &amount,
		QuoteNotes:        "Parts on order",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/api/work-orders/3/triage", reqBody)
	testutil.SetAuthContext(c, staffActor)
	testutil.SetURLParam(c, "id", "3")

	handler.TriageWorkOrder(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "large", mockUC.got.JobSize)
	require.NotNil(t, mockUC.got.QuotedAmountCents)
	assert.Equal(t, int64(45000), *mockUC.got.QuotedAmountCents)
}

func TestWorkOrderHandler_TriageWorkOrder_MissingJobSize(t *testing.T) {
	handler := newTestHandler(testDeps{})

	c, w := testutil.NewTestContext(http.MethodPost, "/api/work-orders/3/triage", map[string]string{})
	testutil.SetAuthContext(c, staffActor)
	testutil.SetURLParam(c, "id", "3")

	handler.TriageWorkOrder(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// =====================================================================
// RejectWorkOrder
// =====================================================================

func TestWorkOrderHandler_RejectWorkOrder_RequiresReason(t *testing.T) {
	handler := newTestHandler(testDeps{})

	c, w := testutil.NewTestContext(http.MethodPost, "/api/work-orders/3/reject", map[string]string{})
	testutil.SetAuthContext(c, staffActor)
	testutil.SetURLParam(c, "id", "3")

	handler.RejectWorkOrder(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWorkOrderHandler_RejectWorkOrder_Success(t *testing.T) {
	mockUC := &mockRejectUC{result: &workorderdto.WorkOrderDTO{ID: 3, Status: "rejected"}}
	handler := newTestHandler(testDeps{rejectUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/api/work-orders/3/reject",
		RejectWorkOrderRequest{Reason: "duplicate request"})
	testutil.SetAuthContext(c, staffActor)
	testutil.SetURLParam(c, "id", "3")

	handler.RejectWorkOrder(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "duplicate request", mockUC.got.Reason)
}

// =====================================================================
// CompleteWork
// =====================================================================

func TestWorkOrderHandler_CompleteWork_JSONBody(t *testing.T) {
	mockUC := &mockCompleteUC{result: &workorderdto.WorkOrderDTO{ID: 3, Status: "completed"}}
	handler := newTestHandler(testDeps{completeUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/api/work-orders/3/complete",
		CompleteWorkRequest{Notes: "Replaced washer and tested"})
	testutil.SetAuthContext(c, staffActor)
	testutil.SetURLParam(c, "id", "3")

	handler.CompleteWork(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Replaced washer and tested", mockUC.got.Notes)
	assert.Nil(t, mockUC.got.PhotoContent)
}

func TestWorkOrderHandler_CompleteWork_MissingNotes(t *testing.T) {
	handler := newTestHandler(testDeps{})

	c, w := testutil.NewTestContext(http.MethodPost, "/api/work-orders/3/complete", map[string]string{})
	testutil.SetAuthContext(c, staffActor)
	testutil.SetURLParam(c, "id", "3")

	handler.CompleteWork(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// =====================================================================
// SignOffWorkOrder
// =====================================================================

func TestWorkOrderHandler_SignOffWorkOrder_Success(t *testing.T) {
	mockUC := &mockSignOffUC{result: &workorderdto.WorkOrderDTO{ID: 3, Status: "signed_off"}}
	handler := newTestHandler(testDeps{signOffUC: mockUC})

	rating := 5
	c, w := testutil.NewTestContext(http.MethodPost, "/api/work-orders/3/sign-off",
		SignOffWorkOrderRequest{Signature: "J. Doe", Feedback: "Great work", Rating: &rating})
	testutil.SetAuthContext(c, tenantActor)
	testutil.SetURLParam(c, "id", "3")

	handler.SignOffWorkOrder(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mockUC.got.Rating)
	assert.Equal(t, 5, *mockUC.got.Rating)
	assert.Equal(t, "J. Doe", mockUC.got.Signature)
}

func TestWorkOrderHandler_SignOffWorkOrder_EmptyBody(t *testing.T) {
	mockUC := &mockSignOffUC{result: &workorderdto.WorkOrderDTO{ID: 3, Status: "signed_off"}}
	handler := newTestHandler(testDeps{signOffUC: mockUC})

	// Sign-off without feedback or rating is a plain acceptance
	c, w := testutil.NewTestContext(http.MethodPost, "/api/work-orders/3/sign-off", nil)
	testutil.SetAuthContext(c, tenantActor)
	testutil.SetURLParam(c, "id", "3")

	handler.SignOffWorkOrder(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, mockUC.got.Rating)
}

// =====================================================================
// DetachPhoto
// =====================================================================

func TestWorkOrderHandler_DetachPhoto_Success(t *testing.T) {
	mockUC := &mockDetachPhotoUC{}
	handler := newTestHandler(testDeps{detachPhotoUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodDelete, "/api/work-orders/photos/12", nil)
	testutil.SetAuthContext(c, tenantActor)
	testutil.SetURLParam(c, "photoId", "12")

	handler.DetachPhoto(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(12), mockUC.got.PhotoID)
}

func TestWorkOrderHandler_DetachPhoto_NotFound(t *testing.T) {
	mockUC := &mockDetachPhotoUC{err: errors.NewNotFoundError("photo not found")}
	handler := newTestHandler(testDeps{detachPhotoUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodDelete, "/api/work-orders/photos/12", nil)
	testutil.SetAuthContext(c, tenantActor)
	testutil.SetURLParam(c, "photoId", "12")

	handler.DetachPhoto(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// =====================================================================
// AddComment
// =====================================================================

func TestWorkOrderHandler_AddComment_Success(t *testing.T) {
	mockUC := &mockAddCommentUC{
		result: &workorderdto.CommentDTO{ID: 1, WorkOrderID: 3, Body: "On my way"},
	}
	handler := newTestHandler(testDeps{addCommentUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/api/work-orders/3/comments",
		AddCommentRequest{Body: "On my way"})
	testutil.SetAuthContext(c, staffActor)
	testutil.SetURLParam(c, "id", "3")

	handler.AddComment(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestWorkOrderHandler_AddComment_EmptyBody(t *testing.T) {
	handler := newTestHandler(testDeps{})

	c, w := testutil.NewTestContext(http.MethodPost, "/api/work-orders/3/comments", map[string]string{})
	testutil.SetAuthContext(c, staffActor)
	testutil.SetURLParam(c, "id", "3")

	handler.AddComment(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
