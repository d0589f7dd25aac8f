package domain

import (
	"fmt"
	"strings"
)

// Role enumerates the platform roles carried in access tokens.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleUser    Role = "USER"
)

// AuthorityPrefix is prepended to a role name to form its authority.
const AuthorityPrefix = "ROLE_"

// ParseRole maps a role claim to a known Role, ignoring case and surrounding spaces.
func ParseRole(value string) (Role, error) {
	switch role := Role(strings.ToUpper(strings.TrimSpace(value))); role {
	case RoleAdmin, RoleManager, RoleUser:
		return role, nil
	default:
		return "", fmt.Errorf("unknown role %q", value)
	}
}

// Authority returns the granted authority derived from the role, e.g. ROLE_ADMIN.
func (r Role) Authority() string {
	return AuthorityPrefix + strings.ToUpper(string(r))
}

func (r Role) String() string {
	return string(r)
}
