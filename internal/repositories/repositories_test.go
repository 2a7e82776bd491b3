package repositories_test

import (
	"fmt"
	"testing"

	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB opens a per-test in-memory SQLite database with the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	err = db.AutoMigrate(
		&models.LoginType{},
		&models.Role{},
		&models.User{},
		&models.Category{},
		&models.Item{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func TestCategoryNameUniqueness(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMCategoryRepository(db)

	err := repo.Create(&models.Category{Name: "Soccer", Description: "ball game"})
	assert.NoError(t, err)

	// Same name again: conflict, nothing written
	err = repo.Create(&models.Category{Name: "Soccer", Description: "another"})
	assert.ErrorIs(t, err, repositories.ErrConflict)

	var count int64
	db.Model(&models.Category{}).Where("name = ?", "Soccer").Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestItemNameUniquePerCategory(t *testing.T) {
	db := openTestDB(t)
	categories := repositories.NewGORMCategoryRepository(db)
	items := repositories.NewGORMItemRepository(db)

	soccer := &models.Category{Name: "Soccer", Description: "ball game"}
	hockey := &models.Category{Name: "Hockey", Description: "ice game"}
	assert.NoError(t, categories.Create(soccer))
	assert.NoError(t, categories.Create(hockey))

	assert.NoError(t, items.Create(&models.Item{Name: "Cleats", Description: "shoes", CategoryID: soccer.ID}))

	// Same name within the same category: conflict
	err := items.Create(&models.Item{Name: "Cleats", Description: "again", CategoryID: soccer.ID})
	assert.ErrorIs(t, err, repositories.ErrConflict)

	// Same name under a different category: allowed
	assert.NoError(t, items.Create(&models.Item{Name: "Cleats", Description: "skates", CategoryID: hockey.ID}))
}

func TestCategoryDeleteCascadeScope(t *testing.T) {
	db := openTestDB(t)
	categories := repositories.NewGORMCategoryRepository(db)
	items := repositories.NewGORMItemRepository(db)

	soccer := &models.Category{Name: "Soccer", Description: "ball game"}
	hockey := &models.Category{Name: "Hockey", Description: "ice game"}
	assert.NoError(t, categories.Create(soccer))
	assert.NoError(t, categories.Create(hockey))

	assert.NoError(t, items.Create(&models.Item{Name: "Cleats", Description: "shoes", CategoryID: soccer.ID}))
	assert.NoError(t, items.Create(&models.Item{Name: "Ball", Description: "round", CategoryID: soccer.ID}))
	assert.NoError(t, items.Create(&models.Item{Name: "Stick", Description: "long", CategoryID: hockey.ID}))

	assert.NoError(t, categories.DeleteCascade(soccer))

	// The deleted category's items are gone
	soccerItems, err := items.GetByCategory(soccer.ID)
	assert.NoError(t, err)
	assert.Empty(t, soccerItems)

	// Other categories' items are untouched
	hockeyItems, err := items.GetByCategory(hockey.ID)
	assert.NoError(t, err)
	assert.Len(t, hockeyItems, 1)

	_, err = categories.GetByName("Soccer")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCategoryNameReusableAfterDelete(t *testing.T) {
	db := openTestDB(t)
	categories := repositories.NewGORMCategoryRepository(db)
	items := repositories.NewGORMItemRepository(db)

	soccer := &models.Category{Name: "Soccer", Description: "ball game"}
	assert.NoError(t, categories.Create(soccer))
	assert.NoError(t, items.Create(&models.Item{Name: "Cleats", Description: "shoes", CategoryID: soccer.ID}))

	assert.NoError(t, categories.DeleteCascade(soccer))

	// The name frees up: uniqueness only applies to existing rows
	replacement := &models.Category{Name: "Soccer", Description: "new ball game"}
	assert.NoError(t, categories.Create(replacement))
	assert.NotEqual(t, soccer.ID, replacement.ID)

	loaded, err := categories.GetByName("Soccer")
	assert.NoError(t, err)
	assert.Equal(t, "new ball game", loaded.Description)

	// The replacement starts empty; the old items did not come back
	replacementItems, err := items.GetByCategory(replacement.ID)
	assert.NoError(t, err)
	assert.Empty(t, replacementItems)
}

func TestItemKeyReusableAfterDelete(t *testing.T) {
	db := openTestDB(t)
	categories := repositories.NewGORMCategoryRepository(db)
	items := repositories.NewGORMItemRepository(db)

	soccer := &models.Category{Name: "Soccer", Description: "ball game"}
	assert.NoError(t, categories.Create(soccer))

	cleats := &models.Item{Name: "Cleats", Description: "shoes", CategoryID: soccer.ID}
	assert.NoError(t, items.Create(cleats))
	assert.NoError(t, items.Delete(cleats.ID))

	// The (category, name) pair frees up after the delete
	replacement := &models.Item{Name: "Cleats", Description: "new shoes", CategoryID: soccer.ID}
	assert.NoError(t, items.Create(replacement))

	loaded, err := items.GetByName(soccer.ID, "Cleats")
	assert.NoError(t, err)
	assert.Equal(t, "new shoes", loaded.Description)
}

func TestUserEmailUniquePerLoginType(t *testing.T) {
	db := openTestDB(t)
	refs := repositories.NewGORMReferenceRepository(db)
	users := repositories.NewGORMUserRepository(db)

	google, err := refs.EnsureLoginType("google")
	assert.NoError(t, err)
	facebook, err := refs.EnsureLoginType("facebook")
	assert.NoError(t, err)

	assert.NoError(t, users.Create(&models.User{Name: "A", Email: "a@x.com", LoginTypeID: google.ID}))

	// Same pair again: conflict
	err = users.Create(&models.User{Name: "A2", Email: "a@x.com", LoginTypeID: google.ID})
	assert.ErrorIs(t, err, repositories.ErrConflict)

	// Same email under a different provider is a distinct user
	assert.NoError(t, users.Create(&models.User{Name: "A3", Email: "a@x.com", LoginTypeID: facebook.ID}))
}

func TestUserRolesRoundTrip(t *testing.T) {
	db := openTestDB(t)
	refs := repositories.NewGORMReferenceRepository(db)
	users := repositories.NewGORMUserRepository(db)

	google, err := refs.EnsureLoginType("google")
	assert.NoError(t, err)
	admin, err := refs.EnsureRole(models.PermissionAdmin)
	assert.NoError(t, err)
	contrib, err := refs.EnsureRole(models.PermissionContrib)
	assert.NoError(t, err)

	user := &models.User{
		Name:        "A",
		Email:       "a@x.com",
		LoginTypeID: google.ID,
		Roles:       []models.Role{*contrib, *admin},
	}
	assert.NoError(t, users.Create(user))

	loaded, err := users.GetByEmailAndLoginType("a@x.com", google.ID)
	assert.NoError(t, err)
	assert.Len(t, loaded.Roles, 2)
	assert.Equal(t, models.Capability{Admin: true, Contrib: true}, models.ResolveCapability(loaded.Roles))

	// Name/picture refresh must not disturb the role associations
	loaded.Name = "A renamed"
	assert.NoError(t, users.Update(loaded))
	reloaded, err := users.GetByEmailAndLoginType("a@x.com", google.ID)
	assert.NoError(t, err)
	assert.Equal(t, "A renamed", reloaded.Name)
	assert.Len(t, reloaded.Roles, 2)
}

func TestEnsureReferenceDataIdempotent(t *testing.T) {
	db := openTestDB(t)
	refs := repositories.NewGORMReferenceRepository(db)

	first, err := refs.EnsureLoginType("google")
	assert.NoError(t, err)
	second, err := refs.EnsureLoginType("google")
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	r1, err := refs.EnsureRole(models.PermissionAdmin)
	assert.NoError(t, err)
	r2, err := refs.EnsureRole(models.PermissionAdmin)
	assert.NoError(t, err)
	assert.Equal(t, r1.ID, r2.ID)

	roles, err := refs.GetRoles()
	assert.NoError(t, err)
	assert.Len(t, roles, 1)
}
