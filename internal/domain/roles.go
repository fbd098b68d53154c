package domain

import "strings"

type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

func IsValidRole(r string) bool {
	return r == string(RoleUser) || r == string(RoleModerator) || r == string(RoleAdmin)
}

// RolePolicy decides which role a newly registered account receives.
type RolePolicy string

const (
	// RolePolicyFixed ignores the caller and always assigns the default role.
	RolePolicyFixed RolePolicy = "fixed"
	// RolePolicyRequested honours a valid caller-supplied role.
	RolePolicyRequested RolePolicy = "requested"
)

func IsValidRolePolicy(p string) bool {
	return p == string(RolePolicyFixed) || p == string(RolePolicyRequested)
}

// ResolveRole applies policy to a requested role. An empty request always
// yields the default role.
func ResolveRole(policy RolePolicy, defaultRole, requested string) (string, error) {
	requested = strings.TrimSpace(requested)
	if policy != RolePolicyRequested || requested == "" {
		return defaultRole, nil
	}
	requested = strings.ToLower(requested)
	if !IsValidRole(requested) {
		return "", ErrInvalidRole(requested)
	}
	return requested, nil
}
