package models

import "gorm.io/gorm"

// Item is a single catalog entry belonging to exactly one category. The
// (category, name) pair is unique: the same item name may recur in different
// categories but never within one.
type Item struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string `json:"name" gorm:"uniqueIndex:idx_item_category_name;type:varchar(80)" validate:"required,min=1,max=80"`
	Description string `json:"description" gorm:"type:text" validate:"required,max=2000"`
	CategoryID  string `json:"category_id" gorm:"uniqueIndex:idx_item_category_name;type:varchar(36)" validate:"required"`
	CreatedBy   string `json:"created_by" gorm:"type:varchar(36)"`
	UpdatedBy   string `json:"last_update_by" gorm:"type:varchar(36)"`
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
