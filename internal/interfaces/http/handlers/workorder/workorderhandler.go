package workorder

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"quarters/internal/application/workorder/usecases"
	"quarters/internal/shared/errors"
	"quarters/internal/shared/logger"
	"quarters/internal/shared/utils"
)

type WorkOrderHandler struct {
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
	logger         logger.Interface
}

func NewWorkOrderHandler(
	createUC usecases.CreateWorkOrderExecutor,
	getUC usecases.GetWorkOrderExecutor,
	listUC usecases.ListWorkOrdersExecutor,
	updateUC usecases.UpdateWorkOrderExecutor,
	triageUC usecases.TriageWorkOrderExecutor,
	approveQuoteUC usecases.ApproveQuoteExecutor,
	rejectQuoteUC usecases.RejectQuoteExecutor,
	rejectUC usecases.RejectWorkOrderExecutor,
	startUC usecases.StartWorkExecutor,
	completeUC usecases.CompleteWorkExecutor,
	signOffUC usecases.SignOffWorkOrderExecutor,
	attachPhotoUC usecases.AttachPhotoExecutor,
	detachPhotoUC usecases.DetachPhotoExecutor,
	addCommentUC usecases.AddCommentExecutor,
	listCommentsUC usecases.ListCommentsExecutor,
	listHistoryUC usecases.ListHistoryExecutor,
) *WorkOrderHandler {
	return &WorkOrderHandler{
		createUC:       createUC,
		getUC:          getUC,
		listUC:         listUC,
		updateUC:       updateUC,
		triageUC:       triageUC,
		approveQuoteUC: approveQuoteUC,
		rejectQuoteUC:  rejectQuoteUC,
		rejectUC:       rejectUC,
		startUC:        startUC,
		completeUC:     completeUC,
		signOffUC:      signOffUC,
		attachPhotoUC:  attachPhotoUC,
		detachPhotoUC:  detachPhotoUC,
		addCommentUC:   addCommentUC,
		listCommentsUC: listCommentsUC,
		listHistoryUC:  listHistoryUC,
		logger:         logger.NewLogger(),
	}
}

// CreateWorkOrder handles POST /api/work-orders
func (h *WorkOrderHandler) CreateWorkOrder(c *gin.Context) {
	var req CreateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create work order", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), req.ToCommand(actorFrom(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Work order created successfully")
}

// GetWorkOrder handles GET /api/work-orders/:id
func (h *WorkOrderHandler) GetWorkOrder(c *gin.Context) {
	workOrderID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetWorkOrderQuery{
		Actor:       actorFrom(c),
		WorkOrderID: workOrderID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListWorkOrders handles GET /api/work-orders
func (h *WorkOrderHandler) ListWorkOrders(c *gin.Context) {
	req, err := parseListWorkOrdersRequest(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listUC.Execute(c.Request.Context(), req.ToQuery(actorFrom(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}

// UpdateWorkOrder handles PATCH /api/work-orders/:id
func (h *WorkOrderHandler) UpdateWorkOrder(c *gin.Context) {
	workOrderID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), req.ToCommand(actorFrom(c), workOrderID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Work order updated successfully", result)
}

// TriageWorkOrder handles POST /api/work-orders/:id/triage
func (h *WorkOrderHandler) TriageWorkOrder(c *gin.Context) {
	workOrderID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req TriageWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.triageUC.Execute(c.Request.Context(), usecases.TriageWorkOrderCommand{
		Actor:             actorFrom(c),
		WorkOrderID:       workOrderID,
		JobSize:           req.JobSize,
		QuotedAmountCents: req.QuotedAmountCents,
		QuoteNotes:        req.QuoteNotes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Work order triaged successfully", result)
}

// ApproveQuote handles POST /api/work-orders/:id/quote/approve
func (h *WorkOrderHandler) ApproveQuote(c *gin.Context) {
	workOrderID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.approveQuoteUC.Execute(c.Request.Context(), usecases.ApproveQuoteCommand{
		Actor:       actorFrom(c),
		WorkOrderID: workOrderID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Quote approved", result)
}

// RejectQuote handles POST /api/work-orders/:id/quote/reject
func (h *WorkOrderHandler) RejectQuote(c *gin.Context) {
	workOrderID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req RejectQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.rejectQuoteUC.Execute(c.Request.Context(), usecases.RejectQuoteCommand{
		Actor:       actorFrom(c),
		WorkOrderID: workOrderID,
		Reason:      req.Reason,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Quote rejected", result)
}

// RejectWorkOrder handles POST /api/work-orders/:id/reject
func (h *WorkOrderHandler) RejectWorkOrder(c *gin.Context) {
	workOrderID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req RejectWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.rejectUC.Execute(c.Request.Context(), usecases.RejectWorkOrderCommand{
		Actor:       actorFrom(c),
		WorkOrderID: workOrderID,
		Reason:      req.Reason,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Work order rejected", result)
}

// StartWork handles POST /api/work-orders/:id/start
func (h *WorkOrderHandler) StartWork(c *gin.Context) {
	workOrderID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.startUC.Execute(c.Request.Context(), usecases.StartWorkCommand{
		Actor:       actorFrom(c),
		WorkOrderID: workOrderID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Work started", result)
}

// CompleteWork handles POST /api/work-orders/:id/complete. A JSON body
// carries the notes alone; a multipart body may also carry a completion
// photo that lands atomically with the status change.
func (h *WorkOrderHandler) CompleteWork(c *gin.Context) {
	workOrderID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.CompleteWorkCommand{
		Actor:       actorFrom(c),
		WorkOrderID: workOrderID,
	}

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		cmd.Notes = c.PostForm("notes")
		cmd.PhotoCaption = c.PostForm("photo_caption")

		fileHeader, err := c.FormFile("photo")
		if err == nil {
			file, err := fileHeader.Open()
			if err != nil {
				utils.ErrorResponseWithError(c, errors.NewValidationError("failed to read uploaded photo"))
				return
			}
			defer file.Close()
			cmd.PhotoContent = file
		}
	} else {
		var req CompleteWorkRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
			return
		}
		cmd.Notes = req.Notes
	}

	result, err := h.completeUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Work completed", result)
}

// SignOffWorkOrder handles POST /api/work-orders/:id/sign-off
func (h *WorkOrderHandler) SignOffWorkOrder(c *gin.Context) {
	workOrderID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SignOffWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.signOffUC.Execute(c.Request.Context(), usecases.SignOffWorkOrderCommand{
		Actor:       actorFrom(c),
		WorkOrderID: workOrderID,
		Feedback:    req.Feedback,
		Rating:      req.Rating,
		Signature:   req.Signature,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Work order signed off", result)
}

// AttachPhoto handles POST /api/work-orders/:id/photos (multipart)
func (h *WorkOrderHandler) AttachPhoto(c *gin.Context) {
	workOrderID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("photo file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("failed to read uploaded photo"))
		return
	}
	defer file.Close()

	result, err := h.attachPhotoUC.Execute(c.Request.Context(), usecases.AttachPhotoCommand{
		Actor:       actorFrom(c),
		WorkOrderID: workOrderID,
		Kind:        c.DefaultPostForm("kind", "initial"),
		Caption:     c.PostForm("caption"),
		Content:     file,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Photo attached successfully")
}

// DetachPhoto handles DELETE /api/work-orders/photos/:photoId
func (h *WorkOrderHandler) DetachPhoto(c *gin.Context) {
	photoID, err := parseIDParam(c, "photoId")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.detachPhotoUC.Execute(c.Request.Context(), usecases.DetachPhotoCommand{
		Actor:   actorFrom(c),
		PhotoID: photoID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Photo removed", nil)
}

// AddComment handles POST /api/work-orders/:id/comments
func (h *WorkOrderHandler) AddComment(c *gin.Context) {
	workOrderID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.addCommentUC.Execute(c.Request.Context(), usecases.AddCommentCommand{
		Actor:       actorFrom(c),
		WorkOrderID: workOrderID,
		Body:        req.Body,
		IsInternal:  req.IsInternal,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Comment added successfully")
}

// ListComments handles GET /api/work-orders/:id/comments
func (h *WorkOrderHandler) ListComments(c *gin.Context) {
	workOrderID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listCommentsUC.Execute(c.Request.Context(), usecases.ListCommentsQuery{
		Actor:       actorFrom(c),
		WorkOrderID: workOrderID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListHistory handles GET /api/work-orders/:id/history
func (h *WorkOrderHandler) ListHistory(c *gin.Context) {
	workOrderID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listHistoryUC.Execute(c.Request.Context(), usecases.ListHistoryQuery{
		Actor:       actorFrom(c),
		WorkOrderID: workOrderID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
