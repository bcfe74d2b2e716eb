// Package identity models the acting user and the permissions the booking
// and cashbox operations check before mutating anything.
package identity

import "github.com/google/uuid"

type Permission string

const (
	PermManageReservations Permission = "manage_reservations"
	PermCreateSales        Permission = "create_sales"
	PermManageCashbox      Permission = "manage_cashbox"
	PermManageConfig       Permission = "manage_config"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCashier  Role = "cashier"
	RoleOperator Role = "operator"
	RoleViewer   Role = "viewer"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleCashier, RoleOperator, RoleViewer:
		return true
	default:
		return false
	}
}

// PermissionSet is an explicit grant set. The Role to PermissionSet mapping
// is built once at bootstrap and injected; there is no process-wide default.
type PermissionSet map[Permission]bool

func NewPermissionSet(perms ...Permission) PermissionSet {
	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		set[p] = true
	}
	return set
}

func (s PermissionSet) Has(p Permission) bool {
	return s != nil && s[p]
}

// Grants maps roles to their permission sets. Lookups on unknown roles
// return an empty set, so permission checks fail closed.
type Grants map[Role]PermissionSet

// DefaultGrants mirrors the shipped role matrix; deployments can override it
// via configuration.
func DefaultGrants() Grants {
	return Grants{
		RoleAdmin: NewPermissionSet(
			PermManageReservations, PermCreateSales, PermManageCashbox, PermManageConfig,
		),
		RoleCashier:  NewPermissionSet(PermCreateSales, PermManageCashbox),
		RoleOperator: NewPermissionSet(PermManageReservations, PermCreateSales),
		RoleViewer:   NewPermissionSet(),
	}
}

func (g Grants) For(role Role) PermissionSet {
	if set, ok := g[role]; ok {
		return set
	}
	return PermissionSet{}
}

// Actor is the authenticated user attached to a request.
type Actor struct {
	ID          uuid.UUID
	Username    string
	Role        Role
	Permissions PermissionSet
}

func (a Actor) Can(p Permission) bool {
	return a.Permissions.Has(p)
}
