package repositories

import (
	"fmt"

	"catalog/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMReferenceRepository is a GORM implementation of ReferenceRepository.
type GORMReferenceRepository struct {
	db *gorm.DB
}

// NewGORMReferenceRepository creates a new instance of GORMReferenceRepository.
func NewGORMReferenceRepository(db *gorm.DB) *GORMReferenceRepository {
	return &GORMReferenceRepository{
		db: db,
	}
}

// GetLoginTypes retrieves all login types.
func (r *GORMReferenceRepository) GetLoginTypes() ([]models.LoginType, error) {
	var loginTypes []models.LoginType
	if err := r.db.Order("source").Find(&loginTypes).Error; err != nil {
		return nil, fmt.Errorf("failed to get login types: %w", translate(err))
	}
	return loginTypes, nil
}

// GetLoginTypeBySource retrieves a login type by its unique source name.
func (r *GORMReferenceRepository) GetLoginTypeBySource(source string) (*models.LoginType, error) {
	var loginType models.LoginType
	if err := r.db.First(&loginType, "source = ?", source).Error; err != nil {
		return nil, fmt.Errorf("login type %q: %w", source, translate(err))
	}
	return &loginType, nil
}

// GetRoles retrieves all roles.
func (r *GORMReferenceRepository) GetRoles() ([]models.Role, error) {
	var roles []models.Role
	if err := r.db.Order("permission").Find(&roles).Error; err != nil {
		return nil, fmt.Errorf("failed to get roles: %w", translate(err))
	}
	return roles, nil
}

// GetRoleByPermission retrieves a role by its unique permission name.
func (r *GORMReferenceRepository) GetRoleByPermission(permission models.Permission) (*models.Role, error) {
	var role models.Role
	if err := r.db.First(&role, "permission = ?", permission).Error; err != nil {
		return nil, fmt.Errorf("role %q: %w", permission, translate(err))
	}
	return &role, nil
}

// EnsureLoginType creates the login type if it does not exist yet.
func (r *GORMReferenceRepository) EnsureLoginType(source string) (*models.LoginType, error) {
	loginType := models.LoginType{ID: uuid.New().String(), Source: source}
	err := r.db.Where("source = ?", source).FirstOrCreate(&loginType).Error
	if err != nil {
		return nil, fmt.Errorf("failed to ensure login type %q: %w", source, translate(err))
	}
	return &loginType, nil
}

// EnsureRole creates the role if it does not exist yet.
func (r *GORMReferenceRepository) EnsureRole(permission models.Permission) (*models.Role, error) {
	role := models.Role{ID: uuid.New().String(), Permission: permission}
	err := r.db.Where("permission = ?", permission).FirstOrCreate(&role).Error
	if err != nil {
		return nil, fmt.Errorf("failed to ensure role %q: %w", permission, translate(err))
	}
	return &role, nil
}
