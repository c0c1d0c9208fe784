package mappers

import (
	"fmt"
	"time"

	"quarters/internal/domain/workorder"
	vo "quarters/internal/domain/workorder/valueobjects"
	"quarters/internal/infrastructure/persistence/models"
)

// WorkOrderMapper handles the conversion between work order domain entities
// and persistence models.
type WorkOrderMapper interface {
	ToModel(wo *workorder.WorkOrder) *models.WorkOrderModel
	ToDomain(model *models.WorkOrderModel) (*workorder.WorkOrder, error)

	PhotoToModel(p *workorder.Photo) *models.PhotoModel
	PhotoToDomain(model *models.PhotoModel) (*workorder.Photo, error)

	CommentToModel(c *workorder.Comment) *models.CommentModel
	CommentToDomain(model *models.CommentModel) (*workorder.Comment, error)

	HistoryToModel(h workorder.HistoryEntry) *models.HistoryModel
	HistoryToDomain(model *models.HistoryModel) workorder.HistoryEntry
}

type WorkOrderMapperImpl struct{}

func NewWorkOrderMapper() WorkOrderMapper {
	return &WorkOrderMapperImpl{}
}

func (m *WorkOrderMapperImpl) ToModel(wo *workorder.WorkOrder) *models.WorkOrderModel {
	s := wo.ToSnapshot()
	return &models.WorkOrderModel{
		ID:                   s.ID,
		TenantID:             s.TenantID,
		UnitID:               s.UnitID,
		Title:                s.Title,
		Description:          s.Description,
		Location:             s.Location,
		Priority:             s.Priority.String(),
		Status:               s.Status.String(),
		QuotedAmountCents:    s.QuotedAmountCents,
		QuoteNotes:           s.QuoteNotes,
		QuoteProvidedAt:      millisPtr(s.QuoteProvidedAt),
		QuoteApprovedAt:      millisPtr(s.QuoteApprovedAt),
		QuoteRejectedAt:      millisPtr(s.QuoteRejectedAt),
		QuoteRejectionReason: s.QuoteRejectionReason,
		ApprovedAt:           millisPtr(s.ApprovedAt),
		ApprovedBy:           s.ApprovedBy,
		RejectedAt:           millisPtr(s.RejectedAt),
		RejectedBy:           s.RejectedBy,
		RejectionReason:      s.RejectionReason,
		StartedAt:            millisPtr(s.StartedAt),
		CompletedAt:          millisPtr(s.CompletedAt),
		CompletionNotes:      s.CompletionNotes,
		SignedOffAt:          millisPtr(s.SignedOffAt),
		TenantSignature:      s.TenantSignature,
		TenantFeedback:       s.TenantFeedback,
		TenantRating:         s.TenantRating,
		Version:              s.Version,
		CreatedAt:            s.CreatedAt.UnixMilli(),
		UpdatedAt:            s.UpdatedAt.UnixMilli(),
	}
}

func (m *WorkOrderMapperImpl) ToDomain(model *models.WorkOrderModel) (*workorder.WorkOrder, error) {
	status, err := vo.NewStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("work order %d: %w", model.ID, err)
	}
	priority, err := vo.NewPriority(model.Priority)
	if err != nil {
		return nil, fmt.Errorf("work order %d: %w", model.ID, err)
	}

	return workorder.ReconstructWorkOrder(workorder.Snapshot{
		ID:                   model.ID,
		TenantID:             model.TenantID,
		UnitID:               model.UnitID,
		Title:                model.Title,
		Description:          model.Description,
		Location:             model.Location,
		Priority:             priority,
		Status:               status,
		QuotedAmountCents:    model.QuotedAmountCents,
		QuoteNotes:           model.QuoteNotes,
		QuoteProvidedAt:      timePtr(model.QuoteProvidedAt),
		QuoteApprovedAt:      timePtr(model.QuoteApprovedAt),
		QuoteRejectedAt:      timePtr(model.QuoteRejectedAt),
		QuoteRejectionReason: model.QuoteRejectionReason,
		ApprovedAt:           timePtr(model.ApprovedAt),
		ApprovedBy:           model.ApprovedBy,
		RejectedAt:           timePtr(model.RejectedAt),
		RejectedBy:           model.RejectedBy,
		RejectionReason:      model.RejectionReason,
		StartedAt:            timePtr(model.StartedAt),
		CompletedAt:          timePtr(model.CompletedAt),
		CompletionNotes:      model.CompletionNotes,
		SignedOffAt:          timePtr(model.SignedOffAt),
		TenantSignature:      model.TenantSignature,
		TenantFeedback:       model.TenantFeedback,
		TenantRating:         model.TenantRating,
		Version:              model.Version,
		CreatedAt:            time.UnixMilli(model.CreatedAt).UTC(),
		UpdatedAt:            time.UnixMilli(model.UpdatedAt).UTC(),
	})
}

func (m *WorkOrderMapperImpl) PhotoToModel(p *workorder.Photo) *models.PhotoModel {
	return &models.PhotoModel{
		ID:          p.ID(),
		WorkOrderID: p.WorkOrderID(),
		UploadedBy:  p.UploadedBy(),
		Path:        p.Path(),
		Kind:        p.Kind().String(),
		Caption:     p.Caption(),
		CreatedAt:   p.CreatedAt().UnixMilli(),
	}
}

func (m *WorkOrderMapperImpl) PhotoToDomain(model *models.PhotoModel) (*workorder.Photo, error) {
	kind, err := vo.NewPhotoKind(model.Kind)
	if err != nil {
		return nil, fmt.Errorf("photo %d: %w", model.ID, err)
	}
	return workorder.ReconstructPhoto(
		model.ID,
		model.WorkOrderID,
		model.UploadedBy,
		model.Path,
		kind,
		model.Caption,
		time.UnixMilli(model.CreatedAt).UTC(),
	)
}

func (m *WorkOrderMapperImpl) CommentToModel(c *workorder.Comment) *models.CommentModel {
	return &models.CommentModel{
		ID:          c.ID(),
		WorkOrderID: c.WorkOrderID(),
		UserID:      c.UserID(),
		Body:        c.Body(),
		IsInternal:  c.IsInternal(),
		CreatedAt:   c.CreatedAt().UnixMilli(),
	}
}

func (m *WorkOrderMapperImpl) CommentToDomain(model *models.CommentModel) (*workorder.Comment, error) {
	return workorder.ReconstructComment(
		model.ID,
		model.WorkOrderID,
		model.UserID,
		model.Body,
		model.IsInternal,
		time.UnixMilli(model.CreatedAt).UTC(),
	)
}

func (m *WorkOrderMapperImpl) HistoryToModel(h workorder.HistoryEntry) *models.HistoryModel {
	return &models.HistoryModel{
		ID:          h.ID(),
		WorkOrderID: h.WorkOrderID(),
		Field:       h.Field(),
		OldValue:    h.OldValue(),
		NewValue:    h.NewValue(),
		ChangedBy:   h.ChangedBy(),
		ChangedAt:   h.ChangedAt().UnixMilli(),
	}
}

func (m *WorkOrderMapperImpl) HistoryToDomain(model *models.HistoryModel) workorder.HistoryEntry {
	return workorder.ReconstructHistoryEntry(
		model.ID,
		model.WorkOrderID,
		model.Field,
		model.OldValue,
		model.NewValue,
		model.ChangedBy,
		time.UnixMilli(model.ChangedAt).UTC(),
	)
}

func millisPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	v := t.UnixMilli()
	return &v
}

func timePtr(millis *int64) *time.Time {
	if millis == nil {
		return nil
	}
	t := time.UnixMilli(*millis).UTC()
	return &t
}
