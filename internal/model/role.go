package model

// Role identifies the capability set of a user. Kept as a typed string so
// role checks are exhaustive comparisons instead of free-form strings.
type Role string

const (
	RoleAdmin            Role = "Admin"
	RoleInventoryManager Role = "InventoryManager"
	RoleSales            Role = "Sales"
)

// RegistrableRoles are the roles a user may self-register with.
// Admin accounts are only created by another Admin.
var RegistrableRoles = []Role{RoleSales, RoleInventoryManager}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleInventoryManager, RoleSales:
		return true
	}
	return false
}

// In reports whether r is a member of allowed. An empty allowed set
// authorizes nobody.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}
