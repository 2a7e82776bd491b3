package models

import "gorm.io/gorm"

// Category is a top-level grouping of catalog items. Names are globally
// unique. A category exclusively owns its items: deleting it removes them too.
type Category struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string `json:"name" gorm:"uniqueIndex;type:varchar(80)" validate:"required,min=1,max=80"`
	Description string `json:"description" gorm:"type:text" validate:"required,max=2000"`
	CreatedBy   string `json:"created_by" gorm:"type:varchar(36)"`
	UpdatedBy   string `json:"last_update_by" gorm:"type:varchar(36)"`
	Items       []Item `json:"-" gorm:"foreignKey:CategoryID"`
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
