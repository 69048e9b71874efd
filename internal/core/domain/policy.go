package domain

// Principal is the identity resolved by the access guard for the current
// request. It is re-read from the user store on every request, so role
// changes and deletions take effect immediately rather than at token expiry.
type Principal struct {
	ID       int64
	Username string
	Role     Role
}

// CanManageUsers gates user administration (list, create, delete, toggle).
func (p Principal) CanManageUsers() bool {
	return p.Role == RoleAdmin
}

// CanAccessUser allows admins to reach any account and everyone else only
// their own.
func (p Principal) CanAccessUser(targetID int64) bool {
	return p.Role == RoleAdmin || p.ID == targetID
}

// CanManageCatalog gates mutations on authors, books and loans.
func (p Principal) CanManageCatalog() bool {
	return p.Role == RoleAdmin || p.Role == RoleLibrarian
}
