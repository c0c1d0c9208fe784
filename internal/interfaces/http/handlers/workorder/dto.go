package workorder

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"quarters/internal/application/workorder/usecases"
	"quarters/internal/shared/authorization"
	"quarters/internal/shared/errors"
)

type CreateWorkOrderRequest struct {
	UnitID      *uint  `json:"unit_id,omitempty"`
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"required,max=5000"`
	Location    string `json:"location,omitempty" binding:"max=200"`
	Priority    string `json:"priority,omitempty"`
}

func (r *CreateWorkOrderRequest) ToCommand(actor authorization.Actor) usecases.CreateWorkOrderCommand {
	return usecases.CreateWorkOrderCommand{
		Actor:       actor,
		UnitID:      r.UnitID,
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Priority:    r.Priority,
	}
}

type UpdateWorkOrderRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Location    *string `json:"location,omitempty"`
	Priority    *string `json:"priority,omitempty"`
}

func (r *UpdateWorkOrderRequest) ToCommand(actor authorization.Actor, workOrderID uint) usecases.UpdateWorkOrderCommand {
	return usecases.UpdateWorkOrderCommand{
		Actor:       actor,
		WorkOrderID: workOrderID,
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Priority:    r.Priority,
	}
}

type TriageWorkOrderRequest struct {
	JobSize           string `json:"job_size" binding:"required"`
	QuotedAmountCents *int64 `json:"quoted_amount_cents,omitempty"`
	QuoteNotes        string `json:"quote_notes,omitempty"`
}

type RejectQuoteRequest struct {
	Reason string `json:"reason,omitempty" binding:"max=500"`
}

type RejectWorkOrderRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

type CompleteWorkRequest struct {
	Notes string `json:"notes" binding:"required,max=5000"`
}

type SignOffWorkOrderRequest struct {
	Signature string `json:"signature,omitempty" binding:"max=200"`
	Feedback  string `json:"feedback,omitempty" binding:"max=5000"`
	Rating    *int   `json:"rating,omitempty"`
}

type AddCommentRequest struct {
	Body       string `json:"body" binding:"required,max=10000"`
	IsInternal bool   `json:"is_internal"`
}

type ListWorkOrdersRequest struct {
	Page     int
	PageSize int
	Status   string
	Priority string
	TenantID *uint
}

func (r *ListWorkOrdersRequest) ToQuery(actor authorization.Actor) usecases.ListWorkOrdersQuery {
	return usecases.ListWorkOrdersQuery{
		Actor:    actor,
		Status:   r.Status,
		Priority: r.Priority,
		TenantID: r.TenantID,
		Page:     r.Page,
		PageSize: r.PageSize,
	}
}

func parseListWorkOrdersRequest(c *gin.Context) (*ListWorkOrdersRequest, error) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	req := &ListWorkOrdersRequest{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
	}

	if tenantIDStr := c.Query("tenant_id"); tenantIDStr != "" {
		tenantID, err := strconv.ParseUint(tenantIDStr, 10, 32)
		if err != nil {
			return nil, errors.NewValidationError("invalid tenant_id")
		}
		id := uint(tenantID)
		req.TenantID = &id
	}

	return req, nil
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid " + name)
	}
	return uint(id), nil
}

// contextKeyActor mirrors the key set by the auth middleware; kept here so
// the handler package does not import middleware.
const contextKeyActor = "actor"

func actorFrom(c *gin.Context) authorization.Actor {
	v, _ := c.Get(contextKeyActor)
	actor, _ := v.(authorization.Actor)
	return actor
}
