package workorder

import (
	"strconv"
	"time"

	"quarters/internal/domain/shared/events"
)

// Event types emitted by the work order lifecycle. Every successful transition
// emits exactly one of these; failed transitions emit nothing.
const (
	EventCreated       = "workorder.created"
	EventApproved      = "workorder.approved"
	EventQuoteProvided = "workorder.quote_provided"
	EventQuoteRejected = "workorder.quote_rejected"
	EventRejected      = "workorder.rejected"
	EventStarted       = "workorder.started"
	EventCompleted     = "workorder.completed"
	EventSignedOff     = "workorder.signed_off"
)

// LifecycleEvent carries enough data for the notification dispatcher to render
// a message without re-reading the aggregate.
type LifecycleEvent struct {
	events.BaseEvent
	WorkOrderID uint
	TenantID    uint
	Title       string
	ActorID     uint

	// Transition-specific payload; zero-valued when not applicable.
	QuotedAmountCents int64
	QuoteNotes        string
	Reason            string
	CompletionNotes   string
	Rating            int
}

func newLifecycleEvent(eventType string, wo *WorkOrder, actorID uint, occurredAt time.Time) LifecycleEvent {
	return LifecycleEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: strconv.FormatUint(uint64(wo.id), 10),
			EventType:   eventType,
			OccurredAt:  occurredAt,
		},
		WorkOrderID: wo.id,
		TenantID:    wo.tenantID,
		Title:       wo.title,
		ActorID:     actorID,
	}
}
