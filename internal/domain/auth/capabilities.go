package auth

// Capability names an action on the orders surface.
type Capability string

const (
	CapOrderWrite       Capability = "order.write"
	CapOrderRead        Capability = "order.read"
	CapItemStatusUpdate Capability = "order.item_status"
	CapDashboardRead    Capability = "dashboard.read"
	CapAdminDashboard   Capability = "dashboard.admin"
)

var capabilities = map[Capability][]Role{
	CapOrderWrite:       {RoleOwner, RoleManager},
	CapOrderRead:        {RoleOwner, RoleManager, RoleCollaborator},
	CapItemStatusUpdate: {RoleOwner, RoleManager, RoleCollaborator},
	CapDashboardRead:    {RoleOwner, RoleManager, RoleCollaborator},
	CapAdminDashboard:   {RolePlatformAdmin},
}

// RolesFor returns the roles granted a capability. Unknown capabilities grant nothing.
func RolesFor(c Capability) []Role {
	roles := capabilities[c]
	out := make([]Role, len(roles))
	copy(out, roles)
	return out
}

func Can(role Role, c Capability) bool {
	return Allowed(role, capabilities[c])
}
