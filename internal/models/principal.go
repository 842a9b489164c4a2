package models

// Principal is the authenticated identity a request acts as: a username
// plus the set of roles granted to it. Role checks are capability
// methods on the typed set, never string comparisons.
type Principal struct {
	Username string
	roles    map[RoleName]struct{}
}

func NewPrincipal(username string, roles ...RoleName) Principal {
	set := make(map[RoleName]struct{}, len(roles))
	for _, r := range roles {
		if IsValidRoleName(r) {
			set[r] = struct{}{}
		}
	}
	return Principal{Username: username, roles: set}
}

func (p Principal) HasRole(r RoleName) bool {
	_, ok := p.roles[r]
	return ok
}

func (p Principal) IsAdmin() bool {
	return p.HasRole(RoleAdmin)
}

func (p Principal) IsUser() bool {
	return p.HasRole(RoleUser)
}

// IsReadOnly reports whether the principal is barred from all mutation.
// It wins over every other role, including ADMIN.
func (p Principal) IsReadOnly() bool {
	return p.HasRole(RoleReadOnly)
}

func (p Principal) CanModify() bool {
	return !p.IsReadOnly()
}

// Roles returns the granted role names in seed order.
func (p Principal) Roles() []RoleName {
	out := make([]RoleName, 0, len(p.roles))
	for _, r := range AllRoleNames() {
		if p.HasRole(r) {
			out = append(out, r)
		}
	}
	return out
}

// Owns reports whether the principal created the given row.
func (p Principal) Owns(createdBy string) bool {
	return createdBy != "" && createdBy == p.Username
}
