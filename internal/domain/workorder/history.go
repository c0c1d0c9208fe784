package workorder

import (
	"fmt"
	"time"
)

// HistoryEntry is an immutable audit record of a single field mutation.
// Entries are append-only: never updated, never deleted, retained for at
// least the lifetime of the owning work order.
type HistoryEntry struct {
	id          uint
	workOrderID uint
	field       string
	oldValue    string
	newValue    string
	changedBy   uint
	changedAt   time.Time
}

// Audited field names as they appear in the ledger.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldLocation    = "location"
	FieldPriority    = "priority"
	FieldStatus      = "status"
)

func NewHistoryEntry(workOrderID uint, field, oldValue, newValue string, changedBy uint, changedAt time.Time) (HistoryEntry, error) {
	if workOrderID == 0 {
		return HistoryEntry{}, fmt.Errorf("work order ID is required")
	}
	if field == "" {
		return HistoryEntry{}, fmt.Errorf("field name is required")
	}
	if changedBy == 0 {
		return HistoryEntry{}, fmt.Errorf("changed by actor ID is required")
	}

	return HistoryEntry{
		workOrderID: workOrderID,
		field:       field,
		oldValue:    oldValue,
		newValue:    newValue,
		changedBy:   changedBy,
		changedAt:   changedAt,
	}, nil
}

func ReconstructHistoryEntry(id, workOrderID uint, field, oldValue, newValue string, changedBy uint, changedAt time.Time) HistoryEntry {
	return HistoryEntry{
		id:          id,
		workOrderID: workOrderID,
		field:       field,
		oldValue:    oldValue,
		newValue:    newValue,
		changedBy:   changedBy,
		changedAt:   changedAt,
	}
}

func (h HistoryEntry) ID() uint            { return h.id }
func (h HistoryEntry) WorkOrderID() uint   { return h.workOrderID }
func (h HistoryEntry) Field() string       { return h.field }
func (h HistoryEntry) OldValue() string    { return h.oldValue }
func (h HistoryEntry) NewValue() string    { return h.newValue }
func (h HistoryEntry) ChangedBy() uint     { return h.changedBy }
func (h HistoryEntry) ChangedAt() time.Time { return h.changedAt }
