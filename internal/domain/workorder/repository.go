package workorder

import (
	"context"

	vo "quarters/internal/domain/workorder/valueobjects"
)

// Filter narrows work order listings. Nil fields mean "any". TenantID is
// forced by the application layer for tenant actors so a tenant can never
// list past their own orders.
type Filter struct {
	TenantID *uint
	Status   *vo.Status
	Priority *vo.Priority
	Page     int
	PageSize int
}

// Repository persists work order aggregates.
//
// Update applies a compare-and-swap on the version column: it matches the
// version the aggregate was loaded with and returns a conflict error when
// another writer got there first. Callers retry by reloading.
type Repository interface {
	Create(ctx context.Context, wo *WorkOrder) error
	FindByID(ctx context.Context, id uint) (*WorkOrder, error)
	List(ctx context.Context, filter Filter) ([]*WorkOrder, int64, error)
	Update(ctx context.Context, wo *WorkOrder, loadedVersion int) error
}

// PhotoRepository persists photo attachment records. Delete reports whether
// a row was actually removed so a concurrent double-detach can be detected.
type PhotoRepository interface {
	Create(ctx context.Context, photo *Photo) error
	FindByID(ctx context.Context, id uint) (*Photo, error)
	ListByWorkOrderID(ctx context.Context, workOrderID uint) ([]*Photo, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

// CommentRepository persists discussion threads on work orders.
type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	ListByWorkOrderID(ctx context.Context, workOrderID uint, includeInternal bool) ([]*Comment, error)
}

// HistoryRepository persists the append-only audit ledger.
type HistoryRepository interface {
	CreateBatch(ctx context.Context, entries []HistoryEntry) error
	ListByWorkOrderID(ctx context.Context, workOrderID uint) ([]HistoryEntry, error)
}
