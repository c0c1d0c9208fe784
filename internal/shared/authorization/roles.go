// Package authorization defines the portal's roles and the acting identity.
// An Actor carries only what the auth collaborator supplies: an id and a role.
package authorization

type Role string

const (
	RoleTenant      Role = "tenant"
	RoleMaintenance Role = "maintenance"
	RoleAdmin       Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	return r == RoleTenant || r == RoleMaintenance || r == RoleAdmin
}

// IsStaff reports whether the role may perform triage, rejection, start,
// and completion of work orders.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleMaintenance
}

func (r Role) IsTenant() bool {
	return r == RoleTenant
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func NewRole(s string) (Role, bool) {
	role := Role(s)
	return role, role.IsValid()
}

// Actor is the authenticated identity performing an operation. It is resolved
// fully by the HTTP layer before any use case runs; core code never consults
// ambient session state.
type Actor struct {
	ID   uint
	Role Role
}

func (a Actor) IsStaff() bool {
	return a.Role.IsStaff()
}

// IsZero reports whether no identity was resolved for the request.
func (a Actor) IsZero() bool {
	return a.ID == 0
}
