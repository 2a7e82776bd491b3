package models

import "time"

// The JSON read endpoints serialize entities through these explicit DTOs
// rather than the persisted structs directly, so a newly persisted column is
// never exposed by accident. Field order follows the persistence column order.

// LoginTypeDTO is the JSON shape of a LoginType row.
type LoginTypeDTO struct {
	ID      string    `json:"id"`
	Source  string    `json:"source"`
	Created time.Time `json:"created"`
}

// RoleDTO is the JSON shape of a Role row.
type RoleDTO struct {
	ID         string     `json:"id"`
	Permission Permission `json:"permission"`
}

// UserDTO is the JSON shape of a User row.
type UserDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Picture     string    `json:"picture"`
	Email       string    `json:"email"`
	Created     time.Time `json:"created"`
	LoginTypeID string    `json:"logintype_id"`
}

// CategoryDTO is the JSON shape of a Category row.
type CategoryDTO struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	CreatedBy    string    `json:"created_by"`
	Created      time.Time `json:"created"`
	LastUpdateBy string    `json:"last_update_by"`
	Updated      time.Time `json:"updated"`
}

// ItemDTO is the JSON shape of an Item row.
type ItemDTO struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	CreatedBy    string    `json:"created_by"`
	Created      time.Time `json:"created"`
	LastUpdateBy string    `json:"last_update_by"`
	Updated      time.Time `json:"updated"`
	CategoryID   string    `json:"category_id"`
}

// DTO maps a LoginType row to its JSON shape.
func (lt *LoginType) DTO() LoginTypeDTO {
	return LoginTypeDTO{ID: lt.ID, Source: lt.Source, Created: lt.CreatedAt}
}

// DTO maps a Role row to its JSON shape.
func (r *Role) DTO() RoleDTO {
	return RoleDTO{ID: r.ID, Permission: r.Permission}
}

// DTO maps a User row to its JSON shape.
func (u *User) DTO() UserDTO {
	return UserDTO{
		ID:          u.ID,
		Name:        u.Name,
		Picture:     u.Picture,
		Email:       u.Email,
		Created:     u.CreatedAt,
		LoginTypeID: u.LoginTypeID,
	}
}

// DTO maps a Category row to its JSON shape.
func (c *Category) DTO() CategoryDTO {
	return CategoryDTO{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		CreatedBy:    c.CreatedBy,
		Created:      c.CreatedAt,
		LastUpdateBy: c.UpdatedBy,
		Updated:      c.UpdatedAt,
	}
}

// DTO maps an Item row to its JSON shape.
func (i *Item) DTO() ItemDTO {
	return ItemDTO{
		ID:           i.ID,
		Name:         i.Name,
		Description:  i.Description,
		CreatedBy:    i.CreatedBy,
		Created:      i.CreatedAt,
		LastUpdateBy: i.UpdatedBy,
		Updated:      i.UpdatedAt,
		CategoryID:   i.CategoryID,
	}
}

// CategoryDTOs maps a slice of categories.
func CategoryDTOs(categories []Category) []CategoryDTO {
	out := make([]CategoryDTO, 0, len(categories))
	for i := range categories {
		out = append(out, categories[i].DTO())
	}
	return out
}

// ItemDTOs maps a slice of items.
func ItemDTOs(items []Item) []ItemDTO {
	out := make([]ItemDTO, 0, len(items))
	for i := range items {
		out = append(out, items[i].DTO())
	}
	return out
}

// UserDTOs maps a slice of users.
func UserDTOs(users []User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for i := range users {
		out = append(out, users[i].DTO())
	}
	return out
}

// LoginTypeDTOs maps a slice of login types.
func LoginTypeDTOs(loginTypes []LoginType) []LoginTypeDTO {
	out := make([]LoginTypeDTO, 0, len(loginTypes))
	for i := range loginTypes {
		out = append(out, loginTypes[i].DTO())
	}
	return out
}

// RoleDTOs maps a slice of roles.
func RoleDTOs(roles []Role) []RoleDTO {
	out := make([]RoleDTO, 0, len(roles))
	for i := range roles {
		out = append(out, roles[i].DTO())
	}
	return out
}
