package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role enumerates the access roles a user may hold.
// The core services never consult roles; gating happens in middleware.
type Role string

const (
	RoleManager    Role = "MANAGER"
	RoleDispatcher Role = "DISPATCHER"
	RoleSafety     Role = "SAFETY"
	RoleFinance    Role = "FINANCE"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleManager, RoleDispatcher, RoleSafety, RoleFinance:
		return true
	}
	return false
}

// User is an operator account. PasswordHash is never serialized.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
