package models

import (
	"time"

	"github.com/google/uuid"
)

// Roles mirror the user_roles table. A user has at most one role; a user
// without a role row has no access to anything.
const (
	RoleAdmin     = "admin"
	RoleGestor    = "gestor"
	RoleComercial = "comercial"
	RoleAnalista  = "analista"
)

// Modules that can be granted through user_permissions.allowed_modules.
const (
	ModuleDashboard  = "dashboard"
	ModuleCRM        = "crm"
	ModuleClients    = "clients"
	ModuleObjectives = "objectives"
	ModuleStrategy   = "strategy"
	ModuleSettings   = "settings"
	ModuleAdmin      = "admin"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserProfile is a user joined with its role and permission rows, as served
// to the admin user-management screens.
type UserProfile struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Role           string    `json:"role,omitempty"`
	AllowedModules []string  `json:"allowed_modules"`
	AllowedSpaces  []string  `json:"allowed_spaces"`
}

type SignupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

type UpdatePermissionsRequest struct {
	AllowedModules []string `json:"allowed_modules"`
	AllowedSpaces  []string `json:"allowed_spaces"`
}
