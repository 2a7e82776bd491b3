package repositories

import "catalog/internal/models"

// ReferenceRepository provides access to the immutable reference tables:
// login types and roles. Both are seeded once and only ever read afterwards.
type ReferenceRepository interface {
	GetLoginTypes() ([]models.LoginType, error)
	GetLoginTypeBySource(source string) (*models.LoginType, error)
	GetRoles() ([]models.Role, error)
	GetRoleByPermission(permission models.Permission) (*models.Role, error)
	// EnsureLoginType and EnsureRole create the row if absent; used by the
	// startup seeding path only.
	EnsureLoginType(source string) (*models.LoginType, error)
	EnsureRole(permission models.Permission) (*models.Role, error)
}
