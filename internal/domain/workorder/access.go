package workorder

import (
	vo "quarters/internal/domain/workorder/valueobjects"
	"quarters/internal/shared/authorization"
)

// Access is the set of capability flags derived from an actor and a work
// order. Every mutating operation re-derives these flags server-side;
// anything the UI computes is advisory only.
type Access struct {
	IsStaff       bool
	IsOwner       bool
	CanEditFields bool
}

// NewAccess derives the capability flags for actor against wo.
func NewAccess(actor authorization.Actor, wo *WorkOrder) Access {
	isStaff := actor.Role.IsStaff()
	isOwner := actor.ID == wo.TenantID()

	return Access{
		IsStaff:       isStaff,
		IsOwner:       isOwner,
		CanEditFields: isStaff || (isOwner && wo.Status().IsPending()),
	}
}

// CanAttachPhoto reports whether the actor may attach a photo of the given
// kind. Staff attach any kind at any non-terminal stage; the owning tenant
// attaches initial photos while the order is still editable.
func (a Access) CanAttachPhoto(kind vo.PhotoKind) bool {
	if a.IsStaff {
		return true
	}
	return a.IsOwner && a.CanEditFields && kind.IsInitial()
}

// CanDeletePhoto reports whether the actor may detach the given photo.
func (a Access) CanDeletePhoto(photo *Photo) bool {
	return a.IsStaff || (a.IsOwner && a.CanEditFields)
}

// CanView reports whether the actor may read the work order at all.
// Staff see everything; tenants see only their own orders.
func (a Access) CanView() bool {
	return a.IsStaff || a.IsOwner
}
