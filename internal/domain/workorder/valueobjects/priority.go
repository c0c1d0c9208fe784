package valueobjects

import "fmt"

type Priority string

const (
	PriorityLow       Priority = "low"
	PriorityMedium    Priority = "medium"
	PriorityHigh      Priority = "high"
	PriorityEmergency Priority = "emergency"
)

var validPriorities = map[Priority]bool{
	PriorityLow:       true,
	PriorityMedium:    true,
	PriorityHigh:      true,
	PriorityEmergency: true,
}

func (p Priority) String() string {
	return string(p)
}

func (p Priority) IsValid() bool {
	return validPriorities[p]
}

func (p Priority) IsEmergency() bool {
	return p == PriorityEmergency
}

func NewPriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority: %s", s)
	}
	return p, nil
}
