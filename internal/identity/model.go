package identity

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleNormal     Role = "normal"
	RoleClient     Role = "client"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// Privileged reports whether the role may enter the admin console.
// Anything unknown or stale counts as unprivileged.
func (r Role) Privileged() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

func (r Role) Valid() bool {
	switch r {
	case RoleNormal, RoleClient, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	Phone        string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StagedClient is a pre-account registration record awaiting promotion.
// The staged password is never carried onto the promoted account.
type StagedClient struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     string
	Age       int
	Location  string
	Password  string
	CreatedAt time.Time
}

// Resolved is the identity attached to a request after the role lookup.
type Resolved struct {
	ID    uuid.UUID
	Email string
	Role  Role
}
