package valueobjects

import "fmt"

// Status is the work order lifecycle discriminator. The transition table is
// closed: anything not listed is illegal, and terminal statuses have no
// outgoing edges at all.
type Status string

const (
	StatusPending       Status = "pending"
	StatusQuoteProvided Status = "quote_provided"
	StatusQuoteRejected Status = "quote_rejected"
	StatusApproved      Status = "approved"
	StatusRejected      Status = "rejected"
	StatusInProgress    Status = "in_progress"
	StatusCompleted     Status = "completed"
	StatusSignedOff     Status = "signed_off"
)

var validStatuses = map[Status]bool{
	StatusPending:       true,
	StatusQuoteProvided: true,
	StatusQuoteRejected: true,
	StatusApproved:      true,
	StatusRejected:      true,
	StatusInProgress:    true,
	StatusCompleted:     true,
	StatusSignedOff:     true,
}

var statusTransitions = map[Status][]Status{
	StatusPending: {
		StatusApproved,
		StatusQuoteProvided,
		StatusRejected,
	},
	StatusQuoteProvided: {
		StatusApproved,
		StatusQuoteRejected,
	},
	StatusApproved: {
		StatusInProgress,
	},
	StatusInProgress: {
		StatusCompleted,
	},
	StatusCompleted: {
		StatusSignedOff,
	},
	// rejected, quote_rejected, signed_off: terminal
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return validStatuses[s]
}

func (s Status) CanTransitionTo(newStatus Status) bool {
	allowed, ok := statusTransitions[s]
	if !ok {
		return false
	}

	for _, next := range allowed {
		if next == newStatus {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is defined from s.
func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusQuoteRejected || s == StatusSignedOff
}

func (s Status) IsPending() bool {
	return s == StatusPending
}

func (s Status) IsQuoteProvided() bool {
	return s == StatusQuoteProvided
}

func (s Status) IsApproved() bool {
	return s == StatusApproved
}

func (s Status) IsInProgress() bool {
	return s == StatusInProgress
}

func (s Status) IsCompleted() bool {
	return s == StatusCompleted
}

func (s Status) IsSignedOff() bool {
	return s == StatusSignedOff
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid work order status: %s", s)
	}
	return status, nil
}
