package identity

import "strings"

type Role string

const (
	RoleBuyer   Role = "buyer"
	RoleSeller  Role = "seller"
	RoleSupport Role = "support"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleSupport, RoleAdmin:
		return true
	}
	return false
}

// Roles is the set of roles granted to one user for one request.
type Roles map[Role]struct{}

// ParseRoles builds a role set from a comma-separated claim string,
// dropping anything unrecognized.
func ParseRoles(s string) Roles {
	out := Roles{}
	for _, p := range strings.Split(s, ",") {
		r := Role(strings.TrimSpace(strings.ToLower(p)))
		if r.Valid() {
			out[r] = struct{}{}
		}
	}
	return out
}

func (rs Roles) Has(r Role) bool {
	_, ok := rs[r]
	return ok
}

// Staff = operational roles allowed to drive order status transitions.
func (rs Roles) Staff() bool {
	return rs.Has(RoleSupport) || rs.Has(RoleAdmin)
}

// StaffRole returns the role recorded on audit entries written by this
// actor. Admin wins over support when both are granted.
func (rs Roles) StaffRole() Role {
	if rs.Has(RoleAdmin) {
		return RoleAdmin
	}
	if rs.Has(RoleSupport) {
		return RoleSupport
	}
	return RoleBuyer
}

// Actor is the authenticated party behind a request. The session layer is
// expected to have resolved user id and role claims already; this package
// only types them.
type Actor struct {
	UserID string
	Roles  Roles
}

func (a Actor) Staff() bool { return a.Roles.Staff() }
