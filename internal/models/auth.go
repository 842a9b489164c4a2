package models

// Role is a shared reference row; the three rows are seeded at startup
// and never deleted by user actions.
type Role struct {
	Base
	Name RoleName `gorm:"uniqueIndex;not null" json:"name" validate:"required,role_name"`
}

type User struct {
	Base
	Username string `gorm:"uniqueIndex;not null;size:50" json:"username" validate:"required,min=3,max=50"`
	Password string `gorm:"not null" json:"-"`
	Enabled  bool   `gorm:"not null;default:true" json:"enabled"`
	Roles    []Role `gorm:"many2many:user_roles" json:"roles,omitempty"`
}

// Principal derives the request-scoped identity from a loaded user row.
func (u *User) Principal() Principal {
	names := make([]RoleName, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return NewPrincipal(u.Username, names...)
}

// HasRole reports whether the loaded role set contains name.
func (u *User) HasRole(name RoleName) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}
