package workorder

import (
	"fmt"
	"strings"
	"time"

	"quarters/internal/domain/shared/events"
	vo "quarters/internal/domain/workorder/valueobjects"
	"quarters/internal/shared/authorization"
	"quarters/internal/shared/biztime"
	apperrors "quarters/internal/shared/errors"
)

// WorkOrder is the aggregate root of the maintenance request lifecycle.
// All mutation goes through the transition methods below: each one re-derives
// the actor's capabilities, checks the status precondition, and only then
// mutates. On success the aggregate accumulates history entries and exactly
// one lifecycle event, which the caller persists and publishes atomically
// with the field changes. Failed transitions leave the aggregate untouched.
type WorkOrder struct {
	id       uint
	tenantID uint
	unitID   *uint

	title       string
	description string
	location    string
	priority    vo.Priority
	status      vo.Status

	quotedAmountCents    *int64
	quoteNotes           string
	quoteProvidedAt      *time.Time
	quoteApprovedAt      *time.Time
	quoteRejectedAt      *time.Time
	quoteRejectionReason string

	approvedAt      *time.Time
	approvedBy      *uint
	rejectedAt      *time.Time
	rejectedBy      *uint
	rejectionReason string

	startedAt       *time.Time
	completedAt     *time.Time
	completionNotes string

	signedOffAt     *time.Time
	tenantSignature string
	tenantFeedback  string
	tenantRating    *int

	version   int
	createdAt time.Time
	updatedAt time.Time

	pendingHistory []HistoryEntry
	pendingEvents  []events.DomainEvent
}

// Snapshot is the flat field set used to rebuild an aggregate from
// persistence and to write it back out.
type Snapshot struct {
	ID       uint
	TenantID uint
	UnitID   *uint

	Title       string
	Description string
	Location    string
	Priority    vo.Priority
	Status      vo.Status

	QuotedAmountCents    *int64
	QuoteNotes           string
	QuoteProvidedAt      *time.Time
	QuoteApprovedAt      *time.Time
	QuoteRejectedAt      *time.Time
	QuoteRejectionReason string

	ApprovedAt      *time.Time
	ApprovedBy      *uint
	RejectedAt      *time.Time
	RejectedBy      *uint
	RejectionReason string

	StartedAt       *time.Time
	CompletedAt     *time.Time
	CompletionNotes string

	SignedOffAt     *time.Time
	TenantSignature string
	TenantFeedback  string
	TenantRating    *int

	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewWorkOrder creates a pending work order owned by the creating tenant.
func NewWorkOrder(actor authorization.Actor, unitID *uint, title, description, location string, priority vo.Priority) (*WorkOrder, error) {
	if actor.IsZero() {
		return nil, apperrors.NewUnauthenticatedError("no actor resolved for request")
	}
	if !actor.Role.IsTenant() {
		return nil, apperrors.NewForbiddenError("only tenants can create work orders")
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}
	if len(location) > 200 {
		return nil, apperrors.NewValidationError("location exceeds maximum length of 200 characters")
	}
	if !priority.IsValid() {
		return nil, apperrors.NewValidationError("invalid priority")
	}

	now := biztime.NowUTC()
	return &WorkOrder{
		tenantID:    actor.ID,
		unitID:      unitID,
		title:       title,
		description: description,
		location:    location,
		priority:    priority,
		status:      vo.StatusPending,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructWorkOrder rebuilds an aggregate from its persisted state.
func ReconstructWorkOrder(s Snapshot) (*WorkOrder, error) {
	if s.ID == 0 {
		return nil, fmt.Errorf("work order ID cannot be zero")
	}
	if s.TenantID == 0 {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if !s.Status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", s.Status)
	}
	if !s.Priority.IsValid() {
		return nil, fmt.Errorf("invalid priority: %s", s.Priority)
	}

	return &WorkOrder{
		id:                   s.ID,
		tenantID:             s.TenantID,
		unitID:               s.UnitID,
		title:                s.Title,
		description:          s.Description,
		location:             s.Location,
		priority:             s.Priority,
		status:               s.Status,
		quotedAmountCents:    s.QuotedAmountCents,
		quoteNotes:           s.QuoteNotes,
		quoteProvidedAt:      s.QuoteProvidedAt,
		quoteApprovedAt:      s.QuoteApprovedAt,
		quoteRejectedAt:      s.QuoteRejectedAt,
		quoteRejectionReason: s.QuoteRejectionReason,
		approvedAt:           s.ApprovedAt,
		approvedBy:           s.ApprovedBy,
		rejectedAt:           s.RejectedAt,
		rejectedBy:           s.RejectedBy,
		rejectionReason:      s.RejectionReason,
		startedAt:            s.StartedAt,
		completedAt:          s.CompletedAt,
		completionNotes:      s.CompletionNotes,
		signedOffAt:          s.SignedOffAt,
		tenantSignature:      s.TenantSignature,
		tenantFeedback:       s.TenantFeedback,
		tenantRating:         s.TenantRating,
		version:              s.Version,
		createdAt:            s.CreatedAt,
		updatedAt:            s.UpdatedAt,
	}, nil
}

// ToSnapshot exports the aggregate's persisted state.
func (w *WorkOrder) ToSnapshot() Snapshot {
	return Snapshot{
		ID:                   w.id,
		TenantID:             w.tenantID,
		UnitID:               w.unitID,
		Title:                w.title,
		Description:          w.description,
		Location:             w.location,
		Priority:             w.priority,
		Status:               w.status,
		QuotedAmountCents:    w.quotedAmountCents,
		QuoteNotes:           w.quoteNotes,
		QuoteProvidedAt:      w.quoteProvidedAt,
		QuoteApprovedAt:      w.quoteApprovedAt,
		QuoteRejectedAt:      w.quoteRejectedAt,
		QuoteRejectionReason: w.quoteRejectionReason,
		ApprovedAt:           w.approvedAt,
		ApprovedBy:           w.approvedBy,
		RejectedAt:           w.rejectedAt,
		RejectedBy:           w.rejectedBy,
		RejectionReason:      w.rejectionReason,
		StartedAt:            w.startedAt,
		CompletedAt:          w.completedAt,
		CompletionNotes:      w.completionNotes,
		SignedOffAt:          w.signedOffAt,
		TenantSignature:      w.tenantSignature,
		TenantFeedback:       w.tenantFeedback,
		TenantRating:         w.tenantRating,
		Version:              w.version,
		CreatedAt:            w.createdAt,
		UpdatedAt:            w.updatedAt,
	}
}

func (w *WorkOrder) ID() uint                   { return w.id }
func (w *WorkOrder) TenantID() uint             { return w.tenantID }
func (w *WorkOrder) UnitID() *uint              { return w.unitID }
func (w *WorkOrder) Title() string              { return w.title }
func (w *WorkOrder) Description() string        { return w.description }
func (w *WorkOrder) Location() string           { return w.location }
func (w *WorkOrder) Priority() vo.Priority      { return w.priority }
func (w *WorkOrder) Status() vo.Status          { return w.status }
func (w *WorkOrder) QuotedAmountCents() *int64  { return w.quotedAmountCents }
func (w *WorkOrder) QuoteNotes() string         { return w.quoteNotes }
func (w *WorkOrder) QuoteProvidedAt() *time.Time { return w.quoteProvidedAt }
func (w *WorkOrder) QuoteApprovedAt() *time.Time { return w.quoteApprovedAt }
func (w *WorkOrder) QuoteRejectedAt() *time.Time { return w.quoteRejectedAt }
func (w *WorkOrder) QuoteRejectionReason() string { return w.quoteRejectionReason }
func (w *WorkOrder) ApprovedAt() *time.Time     { return w.approvedAt }
func (w *WorkOrder) ApprovedBy() *uint          { return w.approvedBy }
func (w *WorkOrder) RejectedAt() *time.Time     { return w.rejectedAt }
func (w *WorkOrder) RejectedBy() *uint          { return w.rejectedBy }
func (w *WorkOrder) RejectionReason() string    { return w.rejectionReason }
func (w *WorkOrder) StartedAt() *time.Time      { return w.startedAt }
func (w *WorkOrder) CompletedAt() *time.Time    { return w.completedAt }
func (w *WorkOrder) CompletionNotes() string    { return w.completionNotes }
func (w *WorkOrder) SignedOffAt() *time.Time    { return w.signedOffAt }
func (w *WorkOrder) TenantSignature() string    { return w.tenantSignature }
func (w *WorkOrder) TenantFeedback() string     { return w.tenantFeedback }
func (w *WorkOrder) TenantRating() *int         { return w.tenantRating }
func (w *WorkOrder) Version() int               { return w.version }
func (w *WorkOrder) CreatedAt() time.Time       { return w.createdAt }
func (w *WorkOrder) UpdatedAt() time.Time       { return w.updatedAt }

func (w *WorkOrder) SetID(id uint) error {
	if w.id != 0 {
		return fmt.Errorf("work order ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("work order ID cannot be zero")
	}
	w.id = id
	return nil
}

// RecordCreatedEvent records the creation event. Called after the aggregate
// has been persisted and has an ID.
func (w *WorkOrder) RecordCreatedEvent(actorID uint) {
	w.recordEvent(newLifecycleEvent(EventCreated, w, actorID, w.createdAt))
}

// Classify is staff triage of a pending work order. Small jobs are approved
// immediately; large jobs require a strictly positive quote and move to
// quote_provided, awaiting the tenant's response.
func (w *WorkOrder) Classify(actor authorization.Actor, size vo.JobSize, quotedAmountCents *int64, quoteNotes string) error {
	if err := w.requireStaff(actor); err != nil {
		return err
	}
	if !size.IsValid() {
		return apperrors.NewValidationError("invalid job size")
	}

	switch size {
	case vo.JobSizeSmall:
		if err := w.transitionTo(vo.StatusApproved, actor.ID); err != nil {
			return err
		}
		now := biztime.NowUTC()
		w.approvedAt = &now
		approvedBy := actor.ID
		w.approvedBy = &approvedBy
		w.recordEvent(newLifecycleEvent(EventApproved, w, actor.ID, now))
		return nil

	default: // large
		if quotedAmountCents == nil || *quotedAmountCents <= 0 {
			return apperrors.NewValidationError("quote amount required")
		}
		if err := w.transitionTo(vo.StatusQuoteProvided, actor.ID); err != nil {
			return err
		}
		now := biztime.NowUTC()
		amount := *quotedAmountCents
		w.quotedAmountCents = &amount
		w.quoteNotes = quoteNotes
		w.quoteProvidedAt = &now

		evt := newLifecycleEvent(EventQuoteProvided, w, actor.ID, now)
		evt.QuotedAmountCents = amount
		evt.QuoteNotes = quoteNotes
		w.recordEvent(evt)
		return nil
	}
}

// ApproveQuote is the owning tenant's acceptance of a provided quote.
// Downstream steps are identical to a directly approved small job.
func (w *WorkOrder) ApproveQuote(actor authorization.Actor) error {
	if err := w.requireOwner(actor); err != nil {
		return err
	}
	if err := w.transitionTo(vo.StatusApproved, actor.ID); err != nil {
		return err
	}

	now := biztime.NowUTC()
	w.quoteApprovedAt = &now
	w.recordEvent(newLifecycleEvent(EventApproved, w, actor.ID, now))
	return nil
}

// RejectQuote is the owning tenant's refusal of a provided quote. The order
// becomes terminally quote_rejected; staff cannot re-quote it.
func (w *WorkOrder) RejectQuote(actor authorization.Actor, reason string) error {
	if err := w.requireOwner(actor); err != nil {
		return err
	}
	if err := w.transitionTo(vo.StatusQuoteRejected, actor.ID); err != nil {
		return err
	}

	now := biztime.NowUTC()
	w.quoteRejectedAt = &now
	w.quoteRejectionReason = reason

	evt := newLifecycleEvent(EventQuoteRejected, w, actor.ID, now)
	evt.Reason = reason
	w.recordEvent(evt)
	return nil
}

// Reject is staff's refusal of a pending work order.
func (w *WorkOrder) Reject(actor authorization.Actor, reason string) error {
	if err := w.requireStaff(actor); err != nil {
		return err
	}
	if strings.TrimSpace(reason) == "" {
		return apperrors.NewValidationError("rejection reason is required")
	}
	if err := w.transitionTo(vo.StatusRejected, actor.ID); err != nil {
		return err
	}

	now := biztime.NowUTC()
	w.rejectedAt = &now
	rejectedBy := actor.ID
	w.rejectedBy = &rejectedBy
	w.rejectionReason = reason

	evt := newLifecycleEvent(EventRejected, w, actor.ID, now)
	evt.Reason = reason
	w.recordEvent(evt)
	return nil
}

// Start moves an approved work order into execution.
func (w *WorkOrder) Start(actor authorization.Actor) error {
	if err := w.requireStaff(actor); err != nil {
		return err
	}
	if err := w.transitionTo(vo.StatusInProgress, actor.ID); err != nil {
		return err
	}

	now := biztime.NowUTC()
	w.startedAt = &now
	w.recordEvent(newLifecycleEvent(EventStarted, w, actor.ID, now))
	return nil
}

// Complete finishes execution. Completion notes are mandatory; an optional
// completion photo is attached separately by the caller.
func (w *WorkOrder) Complete(actor authorization.Actor, notes string) error {
	if err := w.requireStaff(actor); err != nil {
		return err
	}
	if strings.TrimSpace(notes) == "" {
		return apperrors.NewValidationError("completion notes are required")
	}
	if err := w.transitionTo(vo.StatusCompleted, actor.ID); err != nil {
		return err
	}

	now := biztime.NowUTC()
	w.completedAt = &now
	w.completionNotes = notes

	evt := newLifecycleEvent(EventCompleted, w, actor.ID, now)
	evt.CompletionNotes = notes
	w.recordEvent(evt)
	return nil
}

// SignOff is the owning tenant's final acceptance of completed work.
// An out-of-range rating is rejected, never clamped: silently clamping
// would hide a client bug.
func (w *WorkOrder) SignOff(actor authorization.Actor, feedback string, rating *int, signature string) error {
	if err := w.requireOwner(actor); err != nil {
		return err
	}
	if rating != nil && (*rating < 1 || *rating > 5) {
		return apperrors.NewValidationError("rating must be between 1 and 5")
	}
	if err := w.transitionTo(vo.StatusSignedOff, actor.ID); err != nil {
		return err
	}

	now := biztime.NowUTC()
	w.signedOffAt = &now
	w.tenantFeedback = feedback
	w.tenantSignature = signature
	if rating != nil {
		r := *rating
		w.tenantRating = &r
	}

	evt := newLifecycleEvent(EventSignedOff, w, actor.ID, now)
	if rating != nil {
		evt.Rating = *rating
	}
	w.recordEvent(evt)
	return nil
}

// UpdateTitle edits the title. A value-equal edit is a no-op: no history
// entry is written and updated_at stays unchanged.
func (w *WorkOrder) UpdateTitle(actor authorization.Actor, title string) error {
	if err := w.requireEditRights(actor); err != nil {
		return err
	}
	if err := validateTitle(title); err != nil {
		return err
	}
	if w.title == title {
		return nil
	}

	w.recordChange(FieldTitle, w.title, title, actor.ID)
	w.title = title
	w.touch()
	return nil
}

// UpdateDescription edits the description with the same no-op guard as UpdateTitle.
func (w *WorkOrder) UpdateDescription(actor authorization.Actor, description string) error {
	if err := w.requireEditRights(actor); err != nil {
		return err
	}
	if err := validateDescription(description); err != nil {
		return err
	}
	if w.description == description {
		return nil
	}

	w.recordChange(FieldDescription, w.description, description, actor.ID)
	w.description = description
	w.touch()
	return nil
}

// UpdateLocation edits the location with the same no-op guard as UpdateTitle.
func (w *WorkOrder) UpdateLocation(actor authorization.Actor, location string) error {
	if err := w.requireEditRights(actor); err != nil {
		return err
	}
	if len(location) > 200 {
		return apperrors.NewValidationError("location exceeds maximum length of 200 characters")
	}
	if w.location == location {
		return nil
	}

	w.recordChange(FieldLocation, w.location, location, actor.ID)
	w.location = location
	w.touch()
	return nil
}

// ChangePriority edits the priority with the same no-op guard as UpdateTitle.
func (w *WorkOrder) ChangePriority(actor authorization.Actor, priority vo.Priority) error {
	if err := w.requireEditRights(actor); err != nil {
		return err
	}
	if !priority.IsValid() {
		return apperrors.NewValidationError("invalid priority")
	}
	if w.priority == priority {
		return nil
	}

	w.recordChange(FieldPriority, w.priority.String(), priority.String(), actor.ID)
	w.priority = priority
	w.touch()
	return nil
}

// PullHistory returns and clears history entries accumulated since the last pull.
func (w *WorkOrder) PullHistory() []HistoryEntry {
	entries := w.pendingHistory
	w.pendingHistory = nil
	return entries
}

// PullEvents returns and clears lifecycle events accumulated since the last pull.
func (w *WorkOrder) PullEvents() []events.DomainEvent {
	evts := w.pendingEvents
	w.pendingEvents = nil
	return evts
}

// transitionTo applies the status change after checking the transition table.
// Terminal states reject everything; the status change itself is audited in
// the history ledger.
func (w *WorkOrder) transitionTo(newStatus vo.Status, actorID uint) error {
	if w.status.IsTerminal() {
		return apperrors.NewInvalidTransitionError(
			fmt.Sprintf("work order is %s and accepts no further transitions", w.status))
	}
	if !w.status.CanTransitionTo(newStatus) {
		return apperrors.NewInvalidTransitionError(
			fmt.Sprintf("cannot transition from %s to %s", w.status, newStatus))
	}

	w.recordChange(FieldStatus, w.status.String(), newStatus.String(), actorID)
	w.status = newStatus
	w.touch()
	return nil
}

func (w *WorkOrder) requireStaff(actor authorization.Actor) error {
	if actor.IsZero() {
		return apperrors.NewUnauthenticatedError("no actor resolved for request")
	}
	if !actor.Role.IsStaff() {
		return apperrors.NewForbiddenError("staff role required")
	}
	return nil
}

func (w *WorkOrder) requireOwner(actor authorization.Actor) error {
	if actor.IsZero() {
		return apperrors.NewUnauthenticatedError("no actor resolved for request")
	}
	if actor.ID != w.tenantID {
		return apperrors.NewForbiddenError("only the owning tenant can perform this action")
	}
	return nil
}

func (w *WorkOrder) requireEditRights(actor authorization.Actor) error {
	if actor.IsZero() {
		return apperrors.NewUnauthenticatedError("no actor resolved for request")
	}
	if !NewAccess(actor, w).CanEditFields {
		return apperrors.NewForbiddenError("no edit rights on this work order")
	}
	return nil
}

func (w *WorkOrder) recordChange(field, oldValue, newValue string, actorID uint) {
	w.pendingHistory = append(w.pendingHistory, HistoryEntry{
		workOrderID: w.id,
		field:       field,
		oldValue:    oldValue,
		newValue:    newValue,
		changedBy:   actorID,
		changedAt:   biztime.NowUTC(),
	})
}

func (w *WorkOrder) recordEvent(evt LifecycleEvent) {
	w.pendingEvents = append(w.pendingEvents, evt)
}

func (w *WorkOrder) touch() {
	w.updatedAt = biztime.NowUTC()
	w.version++
}

func validateTitle(title string) error {
	if len(title) == 0 {
		return apperrors.NewValidationError("title is required")
	}
	if len(title) > 200 {
		return apperrors.NewValidationError("title exceeds maximum length of 200 characters")
	}
	return nil
}

func validateDescription(description string) error {
	if len(description) == 0 {
		return apperrors.NewValidationError("description is required")
	}
	if len(description) > 5000 {
		return apperrors.NewValidationError("description exceeds maximum length of 5000 characters")
	}
	return nil
}
