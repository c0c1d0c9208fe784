package workorder

import (
	"fmt"
	"time"

	vo "quarters/internal/domain/workorder/valueobjects"
	"quarters/internal/shared/biztime"
)

// Photo is an attachment record for a work order. The blob itself lives with
// the storage collaborator; the record only holds the returned path.
type Photo struct {
	id          uint
	workOrderID uint
	uploadedBy  uint
	path        string
	kind        vo.PhotoKind
	caption     string
	createdAt   time.Time
}

func NewPhoto(workOrderID, uploadedBy uint, path string, kind vo.PhotoKind, caption string) (*Photo, error) {
	if workOrderID == 0 {
		return nil, fmt.Errorf("work order ID is required")
	}
	if uploadedBy == 0 {
		return nil, fmt.Errorf("uploader ID is required")
	}
	if path == "" {
		return nil, fmt.Errorf("photo path is required")
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid photo kind")
	}
	if len(caption) > 500 {
		return nil, fmt.Errorf("caption exceeds maximum length of 500 characters")
	}

	return &Photo{
		workOrderID: workOrderID,
		uploadedBy:  uploadedBy,
		path:        path,
		kind:        kind,
		caption:     caption,
		createdAt:   biztime.NowUTC(),
	}, nil
}

func ReconstructPhoto(id, workOrderID, uploadedBy uint, path string, kind vo.PhotoKind, caption string, createdAt time.Time) (*Photo, error) {
	if id == 0 {
		return nil, fmt.Errorf("photo ID cannot be zero")
	}
	if workOrderID == 0 {
		return nil, fmt.Errorf("work order ID is required")
	}

	return &Photo{
		id:          id,
		workOrderID: workOrderID,
		uploadedBy:  uploadedBy,
		path:        path,
		kind:        kind,
		caption:     caption,
		createdAt:   createdAt,
	}, nil
}

func (p *Photo) ID() uint             { return p.id }
func (p *Photo) WorkOrderID() uint    { return p.workOrderID }
func (p *Photo) UploadedBy() uint     { return p.uploadedBy }
func (p *Photo) Path() string         { return p.path }
func (p *Photo) Kind() vo.PhotoKind   { return p.kind }
func (p *Photo) Caption() string      { return p.caption }
func (p *Photo) CreatedAt() time.Time { return p.createdAt }

func (p *Photo) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("photo ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("photo ID cannot be zero")
	}
	p.id = id
	return nil
}
