// Package dto defines the read models returned by work order use cases.
package dto

import (
	"time"

	"quarters/internal/domain/workorder"
	"quarters/internal/shared/authorization"
	"quarters/internal/shared/biztime"
)

// CapabilitiesDTO tells the client what the acting user may do with the
// order in its current state, so the UI never has to replicate the rules.
type CapabilitiesDTO struct {
	IsStaff       bool `json:"is_staff"`
	IsOwner       bool `json:"is_owner"`
	CanEditFields bool `json:"can_edit_fields"`
}

type WorkOrderDTO struct {
	ID          uint   `json:"id"`
	TenantID    uint   `json:"tenant_id"`
	UnitID      *uint  `json:"unit_id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location,omitempty"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`

	QuotedAmountCents    *int64  `json:"quoted_amount_cents,omitempty"`
	QuoteNotes           string  `json:"quote_notes,omitempty"`
	QuoteProvidedAt      *string `json:"quote_provided_at,omitempty"`
	QuoteApprovedAt      *string `json:"quote_approved_at,omitempty"`
	QuoteRejectedAt      *string `json:"quote_rejected_at,omitempty"`
	QuoteRejectionReason string  `json:"quote_rejection_reason,omitempty"`

	ApprovedAt      *string `json:"approved_at,omitempty"`
	ApprovedBy      *uint   `json:"approved_by,omitempty"`
	RejectedAt      *string `json:"rejected_at,omitempty"`
	RejectedBy      *uint   `json:"rejected_by,omitempty"`
	RejectionReason string  `json:"rejection_reason,omitempty"`

	StartedAt       *string `json:"started_at,omitempty"`
	CompletedAt     *string `json:"completed_at,omitempty"`
	CompletionNotes string  `json:"completion_notes,omitempty"`

	SignedOffAt     *string `json:"signed_off_at,omitempty"`
	TenantSignature string  `json:"tenant_signature,omitempty"`
	TenantFeedback  string  `json:"tenant_feedback,omitempty"`
	TenantRating    *int    `json:"tenant_rating,omitempty"`

	Version   int    `json:"version"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`

	Capabilities CapabilitiesDTO `json:"capabilities"`
}

type PhotoDTO struct {
	ID          uint   `json:"id"`
	WorkOrderID uint   `json:"work_order_id"`
	UploadedBy  uint   `json:"uploaded_by"`
	URL         string `json:"url"`
	Kind        string `json:"kind"`
	Caption     string `json:"caption,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type CommentDTO struct {
	ID          uint   `json:"id"`
	WorkOrderID uint   `json:"work_order_id"`
	UserID      uint   `json:"user_id"`
	Body        string `json:"body"`
	BodyHTML    string `json:"body_html,omitempty"`
	IsInternal  bool   `json:"is_internal"`
	CreatedAt   string `json:"created_at"`
}

type HistoryEntryDTO struct {
	ID          uint   `json:"id"`
	WorkOrderID uint   `json:"work_order_id"`
	Field       string `json:"field"`
	OldValue    string `json:"old_value"`
	NewValue    string `json:"new_value"`
	ChangedBy   uint   `json:"changed_by"`
	ChangedAt   string `json:"changed_at"`
}

// FromWorkOrder maps the aggregate to its read model, including the acting
// user's capabilities.
func FromWorkOrder(wo *workorder.WorkOrder, actor authorization.Actor) *WorkOrderDTO {
	access := workorder.NewAccess(actor, wo)
	return &WorkOrderDTO{
		ID:                   wo.ID(),
		TenantID:             wo.TenantID(),
		UnitID:               wo.UnitID(),
		Title:                wo.Title(),
		Description:          wo.Description(),
		Location:             wo.Location(),
		Priority:             wo.Priority().String(),
		Status:               wo.Status().String(),
		QuotedAmountCents:    wo.QuotedAmountCents(),
		QuoteNotes:           wo.QuoteNotes(),
		QuoteProvidedAt:      formatTimePtr(wo.QuoteProvidedAt()),
		QuoteApprovedAt:      formatTimePtr(wo.QuoteApprovedAt()),
		QuoteRejectedAt:      formatTimePtr(wo.QuoteRejectedAt()),
		QuoteRejectionReason: wo.QuoteRejectionReason(),
		ApprovedAt:           formatTimePtr(wo.ApprovedAt()),
		ApprovedBy:           wo.ApprovedBy(),
		RejectedAt:           formatTimePtr(wo.RejectedAt()),
		RejectedBy:           wo.RejectedBy(),
		RejectionReason:      wo.RejectionReason(),
		StartedAt:            formatTimePtr(wo.StartedAt()),
		CompletedAt:          formatTimePtr(wo.CompletedAt()),
		CompletionNotes:      wo.CompletionNotes(),
		SignedOffAt:          formatTimePtr(wo.SignedOffAt()),
		TenantSignature:      wo.TenantSignature(),
		TenantFeedback:       wo.TenantFeedback(),
		TenantRating:         wo.TenantRating(),
		Version:              wo.Version(),
		CreatedAt:            biztime.FormatRFC3339(wo.CreatedAt()),
		UpdatedAt:            biztime.FormatRFC3339(wo.UpdatedAt()),
		Capabilities: CapabilitiesDTO{
			IsStaff:       access.IsStaff,
			IsOwner:       access.IsOwner,
			CanEditFields: access.CanEditFields,
		},
	}
}

// FromPhoto maps a photo record; urlFor turns the stored path into a
// client-reachable URL.
func FromPhoto(p *workorder.Photo, urlFor func(path string) string) *PhotoDTO {
	return &PhotoDTO{
		ID:          p.ID(),
		WorkOrderID: p.WorkOrderID(),
		UploadedBy:  p.UploadedBy(),
		URL:         urlFor(p.Path()),
		Kind:        p.Kind().String(),
		Caption:     p.Caption(),
		CreatedAt:   biztime.FormatRFC3339(p.CreatedAt()),
	}
}

func FromComment(c *workorder.Comment, bodyHTML string) *CommentDTO {
	return &CommentDTO{
		ID:          c.ID(),
		WorkOrderID: c.WorkOrderID(),
		UserID:      c.UserID(),
		Body:        c.Body(),
		BodyHTML:    bodyHTML,
		IsInternal:  c.IsInternal(),
		CreatedAt:   biztime.FormatRFC3339(c.CreatedAt()),
	}
}

func FromHistoryEntry(h workorder.HistoryEntry) *HistoryEntryDTO {
	return &HistoryEntryDTO{
		ID:          h.ID(),
		WorkOrderID: h.WorkOrderID(),
		Field:       h.Field(),
		OldValue:    h.OldValue(),
		NewValue:    h.NewValue(),
		ChangedBy:   h.ChangedBy(),
		ChangedAt:   biztime.FormatRFC3339(h.ChangedAt()),
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := biztime.FormatRFC3339(*t)
	return &s
}
