package models

import "gorm.io/gorm"

// User represents a person who has authenticated at least once through an
// external identity provider. The (email, login-type) pair is unique: the same
// email under different providers is a distinct user. Users are created on
// first login, refreshed (name/picture) on subsequent logins, never deleted.
type User struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" gorm:"type:varchar(128)" validate:"omitempty,max=128"`
	Picture     string    `json:"picture" gorm:"type:varchar(256)" validate:"omitempty,max=256"`
	Email       string    `json:"email" gorm:"uniqueIndex:idx_user_email_logintype;type:varchar(256)" validate:"required,email"`
	LoginTypeID string    `json:"logintype_id" gorm:"uniqueIndex:idx_user_email_logintype;type:varchar(36)" validate:"required"`
	LoginType   LoginType `json:"-" gorm:"foreignKey:LoginTypeID"`
	Roles       []Role    `json:"-" gorm:"many2many:user_role_association"`
	gorm.Model            // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
