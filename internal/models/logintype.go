package models

import "gorm.io/gorm"

// LoginType identifies an external identity-provider source (e.g. "google").
// Rows are seeded at startup and never modified afterwards.
type LoginType struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Source     string `json:"source" gorm:"uniqueIndex;type:varchar(40)" validate:"required,min=2,max=40"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
