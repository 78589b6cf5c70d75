package permission

import "github.com/kovrae/admingate/session"

// AdminRoleName is the role name that grants unconditional access under the
// role-based strategy.
const AdminRoleName = "admin"

// Roles is the alternate strategy: deny by default, allow when the
// profile's role sequence contains a role named admin or any role whose
// permission set carries the requested action. It requires roles to embed
// their permission records, a shape the type-based profile model does not
// deliver.
type Roles struct{}

// NewRoles creates the role-based strategy.
func NewRoles() *Roles {
	return &Roles{}
}

// Allows walks the profile's roles in order.
func (*Roles) Allows(p *session.Profile, action string) bool {
	if p == nil {
		return false
	}
	for _, role := range p.Roles {
		if role.Name == AdminRoleName {
			return true
		}
		for _, perm := range role.Permissions {
			if perm == action {
				return true
			}
		}
	}
	return false
}
