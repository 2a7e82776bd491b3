package models

import "gorm.io/gorm"

// Permission is a closed set of recognized permission levels.
type Permission string

const (
	// PermissionAdmin is required to create/edit/delete categories.
	PermissionAdmin Permission = "admin"
	// PermissionContrib is required to create/edit/delete items.
	PermissionContrib Permission = "contrib"
)

// Role is a named permission level. Immutable reference data, seeded at startup.
type Role struct {
	ID         string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Permission Permission `json:"permission" gorm:"uniqueIndex;type:varchar(40)" validate:"required"`
	gorm.Model            // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// Capability is the resolved permission pair for the current session.
// An anonymous session, or a user with no stored roles, yields both flags false.
type Capability struct {
	Admin   bool `json:"admin"`
	Contrib bool `json:"contrib"`
}

// Has reports whether the capability set grants the given permission.
func (c Capability) Has(p Permission) bool {
	switch p {
	case PermissionAdmin:
		return c.Admin
	case PermissionContrib:
		return c.Contrib
	}
	return false
}

// ResolveCapability scans a role collection and produces the capability set.
func ResolveCapability(roles []Role) Capability {
	var caps Capability
	for _, role := range roles {
		switch role.Permission {
		case PermissionAdmin:
			caps.Admin = true
		case PermissionContrib:
			caps.Contrib = true
		}
	}
	return caps
}
