package models

// Alignment is the team a role belongs to
type Alignment string

const (
	// AlignmentTown is the uninformed majority
	AlignmentTown Alignment = "town"

	// AlignmentMafia is the informed minority
	AlignmentMafia Alignment = "mafia"
)

// Capability is the night action a role may perform
type Capability string

const (
	// CapabilityNone means the role has no night action
	CapabilityNone Capability = "none"

	// CapabilityEliminate marks a participant for elimination at night
	CapabilityEliminate Capability = "eliminate"

	// CapabilityProtect shields a participant from elimination at night
	CapabilityProtect Capability = "protect"

	// CapabilityInspect reveals whether a participant is mafia-aligned
	CapabilityInspect Capability = "inspect"
)

// Role is a dealt identity binding a team and a night capability
type Role struct {
	// Name is the display name of the role
	Name string

	// Alignment is the team the role wins with
	Alignment Alignment

	// Capability is the role's night action, if any
	Capability Capability

	// Description is shown to the player when the role is dealt
	Description string
}

// The four canonical roles.
var (
	RoleCivilian = Role{
		Name:        "Civilian",
		Alignment:   AlignmentTown,
		Capability:  CapabilityNone,
		Description: "Survive and find the mafia",
	}

	RoleMafia = Role{
		Name:        "Mafia",
		Alignment:   AlignmentMafia,
		Capability:  CapabilityEliminate,
		Description: "Eliminate the town",
	}

	RoleDoctor = Role{
		Name:        "Doctor",
		Alignment:   AlignmentTown,
		Capability:  CapabilityProtect,
		Description: "Save one person each night",
	}

	RoleSheriff = Role{
		Name:        "Sheriff",
		Alignment:   AlignmentTown,
		Capability:  CapabilityInspect,
		Description: "Investigate one person each night",
	}
)

// RoleByName resolves a canonical role from its display name.
func RoleByName(name string) *Role {
	switch name {
	case RoleCivilian.Name:
		return &RoleCivilian
	case RoleMafia.Name:
		return &RoleMafia
	case RoleDoctor.Name:
		return &RoleDoctor
	case RoleSheriff.Name:
		return &RoleSheriff
	default:
		return nil
	}
}
