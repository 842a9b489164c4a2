package services

import (
	"filmledger/internal/apperrors"
	"filmledger/internal/models"
)

// requireMutable is the first gate on every mutation: read-only wins
// over every other role, including ADMIN.
func requireMutable(p models.Principal) error {
	if p.IsReadOnly() {
		return apperrors.PermissionDenied("Read-only users cannot modify data")
	}
	return nil
}

// requireOwnerOrAdmin authorizes a mutation of an owned row. The
// read-only gate must already have passed.
func requireOwnerOrAdmin(p models.Principal, createdBy, action string) error {
	if p.IsAdmin() {
		return nil
	}
	if !p.Owns(createdBy) {
		return apperrors.PermissionDenied("You don't have permission to %s", action)
	}
	return nil
}

// scopedToOwn reports whether list results must be narrowed to the
// principal's own rows. Admins see everything; a principal holding
// neither USER nor ADMIN (the read-only case) also sees everything —
// visibility scoping only applies to plain contributors.
func scopedToOwn(p models.Principal) bool {
	return p.IsUser() && !p.IsAdmin()
}
