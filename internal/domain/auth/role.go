package auth

import (
	"strings"

	"github.com/google/uuid"
)

// Role is the caller's role inside a tenant, as asserted by the identity provider.
type Role string

const (
	RolePlatformAdmin Role = "PLATFORM_ADMIN"
	RoleOwner         Role = "OWNER"
	RoleManager       Role = "MANAGER"
	// RoleCollaborator may only see orders through its own responsibilities.
	RoleCollaborator Role = "COLLABORATOR"
)

var knownRoles = []Role{RolePlatformAdmin, RoleOwner, RoleManager, RoleCollaborator}

func ParseRole(raw string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(raw)))
	for _, k := range knownRoles {
		if r == k {
			return r, true
		}
	}
	return "", false
}

// Restricted reports whether the role is limited to its own assignments.
func (r Role) Restricted() bool {
	return r == RoleCollaborator
}

// Allowed reports whether role is one of required. An empty required set denies.
func Allowed(role Role, required []Role) bool {
	for _, r := range required {
		if r == role {
			return true
		}
	}
	return false
}

// Principal is the resolved caller of a request.
type Principal struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
	Role     Role
}

// ViewAs returns the user id the read paths must scope to, or nil for
// unrestricted roles. A restricted principal without a user id scopes to
// uuid.Nil, which matches no responsibility.
func (p Principal) ViewAs() *uuid.UUID {
	if !p.Role.Restricted() {
		return nil
	}
	id := p.UserID
	return &id
}
