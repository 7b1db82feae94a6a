package domain

import "github.com/google/uuid"

type Role string

const (
	RoleContractor Role = "CONTRACTOR"
	RoleManager    Role = "MANAGER"
	RoleAdmin      Role = "ADMIN"

	// RoleSystem marks background actors. It is never stored on a user.
	RoleSystem Role = "SYSTEM"
)

func (r Role) Valid() bool {
	switch r {
	case RoleContractor, RoleManager, RoleAdmin:
		return true
	default:
		return false
	}
}

// Principal is the already authenticated caller of an operation.
type Principal struct {
	UserID   uuid.UUID
	Role     Role
	VendorID *string
}

// CanProcess reports whether the principal may approve or reject leave.
func (p Principal) CanProcess() bool {
	return p.Role == RoleManager || p.Role == RoleAdmin
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) IsSystem() bool {
	return p.Role == RoleSystem
}

// SystemPrincipal acts on behalf of actorID from a background process, so
// audit entries still name a real user.
func SystemPrincipal(actorID uuid.UUID) Principal {
	return Principal{UserID: actorID, Role: RoleSystem}
}

// CanView reports whether the principal may read a resource owned by ownerID.
func (p Principal) CanView(ownerID uuid.UUID) bool {
	return p.UserID == ownerID || p.CanProcess()
}

// Identity is what a verified token says about its bearer.
type Identity struct {
	Subject string
	Email   string
	Name    string
}
