package workorder

import (
	"fmt"
	"time"

	"quarters/internal/shared/biztime"
)

// Comment is an append-only discussion entry on a work order. Comments are
// never edited or deleted. Internal comments are visible to staff only.
type Comment struct {
	id          uint
	workOrderID uint
	userID      uint
	body        string
	isInternal  bool
	createdAt   time.Time
}

func NewComment(workOrderID, userID uint, body string, isInternal bool) (*Comment, error) {
	if workOrderID == 0 {
		return nil, fmt.Errorf("work order ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("comment cannot be empty")
	}
	if len(body) > 5000 {
		return nil, fmt.Errorf("comment exceeds maximum length of 5000 characters")
	}

	return &Comment{
		workOrderID: workOrderID,
		userID:      userID,
		body:        body,
		isInternal:  isInternal,
		createdAt:   biztime.NowUTC(),
	}, nil
}

func ReconstructComment(id, workOrderID, userID uint, body string, isInternal bool, createdAt time.Time) (*Comment, error) {
	if id == 0 {
		return nil, fmt.Errorf("comment ID cannot be zero")
	}
	if workOrderID == 0 {
		return nil, fmt.Errorf("work order ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	return &Comment{
		id:          id,
		workOrderID: workOrderID,
		userID:      userID,
		body:        body,
		isInternal:  isInternal,
		createdAt:   createdAt,
	}, nil
}

func (c *Comment) ID() uint             { return c.id }
func (c *Comment) WorkOrderID() uint    { return c.workOrderID }
func (c *Comment) UserID() uint         { return c.userID }
func (c *Comment) Body() string         { return c.body }
func (c *Comment) IsInternal() bool     { return c.isInternal }
func (c *Comment) CreatedAt() time.Time { return c.createdAt }

func (c *Comment) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("comment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("comment ID cannot be zero")
	}
	c.id = id
	return nil
}
