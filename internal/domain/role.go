package domain

import "strings"

// Role enumerates the authorities known to the mesh. The enum is the
// source of truth; the ROLE_ wire prefix exists only in tokens and
// security contexts.
type Role string

const (
	RoleUser    Role = "USER"
	RoleAdmin   Role = "ADMIN"
	RoleService Role = "SERVICE"
)

const roleWirePrefix = "ROLE_"

// Authority returns the wire representation, e.g. "ROLE_USER".
func (r Role) Authority() string {
	return roleWirePrefix + string(r)
}

// RoleFromAuthority parses a wire authority string back into a Role.
// Unknown authorities are preserved as-is so a newer token does not
// lose claims when read by an older service.
func RoleFromAuthority(authority string) Role {
	return Role(strings.TrimPrefix(authority, roleWirePrefix))
}

// Authorities converts a role slice to wire strings, preserving order.
func Authorities(roles []Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = r.Authority()
	}
	return out
}

// RolesFromAuthorities converts wire strings back to roles, preserving order.
func RolesFromAuthorities(authorities []string) []Role {
	out := make([]Role, len(authorities))
	for i, a := range authorities {
		out[i] = RoleFromAuthority(a)
	}
	return out
}
