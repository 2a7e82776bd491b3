package handlers

import (
	"errors"
	"fmt"
	"log"

	"catalog/internal/middleware"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// categoryForm is the submitted payload for category create/edit. Category
// carries the confirmation value on edit (the original category's name).
type categoryForm struct {
	Name        string `form:"name" validate:"required,min=1,max=80"`
	Description string `form:"desc" validate:"required,max=2000"`
	Category    string `form:"category"`
}

// CategoryHandler handles HTTP requests for categories. Mutations require the
// admin capability, enforced by middleware before any handler runs.
type CategoryHandler struct {
	categoryService *services.CategoryService
	itemService     *services.ItemService
	authService     *services.AuthService
	store           *session.Store
	validate        *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService *services.CategoryService, itemService *services.ItemService, authService *services.AuthService, store *session.Store) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		itemService:     itemService,
		authService:     authService,
		store:           store,
		validate:        validator.New(),
	}
}

// RegisterRoutes registers the static category routes. Must run before any
// /catalog/:category routes are registered.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	adminGate := middleware.RoleRequired(h.store, h.authService, models.PermissionAdmin)

	router.Get("/catalog/category/new/", adminGate, h.HandleNewForm)
	router.Post("/catalog/category/new/", adminGate, h.HandleCreate)
	router.Get("/categories.json", h.HandleCategoriesJSON)
	router.Get("/catalog/categories/json/", h.HandleCategoriesJSON)
}

// RegisterResourceRoutes registers the per-category routes. Registration
// order matters in Fiber: these come after every static /catalog/... route
// and before the /catalog/:category/:item routes.
func (h *CategoryHandler) RegisterResourceRoutes(router fiber.Router) {
	adminGate := middleware.RoleRequired(h.store, h.authService, models.PermissionAdmin)

	router.Get("/catalog/:category/json/", h.HandleCategoryJSON)
	router.Get("/catalog/:category/edit/", adminGate, h.HandleEditForm)
	router.Post("/catalog/:category/edit/", adminGate, h.HandleEdit)
	router.Get("/catalog/:category/delete/", adminGate, h.HandleDeleteForm)
	router.Post("/catalog/:category/delete/", adminGate, h.HandleDelete)
	router.Get("/catalog/:category/", h.HandleInfo)
}

// HandleInfo serves the category detail view. Anonymous-accessible.
func (h *CategoryHandler) HandleInfo(c *fiber.Ctx) error {
	name := c.Params("category")
	source, email := sessionIdentity(c, h.store)
	caps := h.authService.SessionCapabilities(source, email)

	category, items, err := h.itemService.GetByCategory(name)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Category %s not found", name),
			})
		}
		log.Printf("Error loading category %s: %v", name, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load category",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"roles":    caps,
		"category": category.DTO(),
		"items":    models.ItemDTOs(items),
	})
}

// HandleNewForm serves the create form data.
func (h *CategoryHandler) HandleNewForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Submit name and desc to create a category",
	})
}

// HandleCreate creates a new category.
func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	var form categoryForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing category form: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(form); err != nil {
		return validationError(c, err)
	}

	user := middleware.CurrentUser(c)
	if _, err := h.categoryService.Create(form.Name, form.Description, user); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return flashHome(c, h.store, "Cannot Add, Category with chosen NAME already exists...")
		}
		log.Printf("Error creating category %q: %v", form.Name, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create category",
			"error":   err.Error(),
		})
	}

	return flashHome(c, h.store, "Catalog CATEGORY added successfully!")
}

// HandleEditForm serves the edit form data for an existing category.
func (h *CategoryHandler) HandleEditForm(c *fiber.Ctx) error {
	name := c.Params("category")
	category, err := h.categoryService.GetByName(name)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Category %s not found", name),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load category",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"category": category.DTO()})
}

// HandleEdit replaces name/description of a category. The posted category
// field must re-resolve to the category being edited, otherwise nothing is
// written.
func (h *CategoryHandler) HandleEdit(c *fiber.Ctx) error {
	name := c.Params("category")

	var form categoryForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing category form: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(form); err != nil {
		return validationError(c, err)
	}

	user := middleware.CurrentUser(c)
	updated, err := h.categoryService.Update(name, form.Name, form.Description, form.Category, user)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Category %s not found", name),
			})
		case errors.Is(err, services.ErrConfirmationMismatch):
			// Confirmation did not resolve to the loaded category; no
			// mutation happened.
			return flashHome(c, h.store, "")
		case errors.Is(err, repositories.ErrConflict):
			return flashHome(c, h.store, "Cannot Edit: Category Name already exists...")
		}
		log.Printf("Error editing category %q: %v", name, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not edit category",
			"error":   err.Error(),
		})
	}

	return flashHome(c, h.store, fmt.Sprintf("Edited category %s successfully!", updated.Name))
}

// HandleDeleteForm serves the delete confirmation data.
func (h *CategoryHandler) HandleDeleteForm(c *fiber.Ctx) error {
	return h.HandleEditForm(c)
}

// HandleDelete removes a category and all its items after the posted name
// confirmation matches.
func (h *CategoryHandler) HandleDelete(c *fiber.Ctx) error {
	name := c.Params("category")
	confirm := c.FormValue("name")

	if err := h.categoryService.Delete(name, confirm); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Category %s not found", name),
			})
		case errors.Is(err, services.ErrConfirmationMismatch):
			return flashHome(c, h.store, "")
		}
		log.Printf("Error deleting category %q: %v", name, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete category",
			"error":   err.Error(),
		})
	}

	return flashHome(c, h.store, fmt.Sprintf("Deleted %s successfully!", name))
}

// HandleCategoriesJSON serves all categories as JSON.
func (h *CategoryHandler) HandleCategoriesJSON(c *fiber.Ctx) error {
	categories, err := h.categoryService.GetAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve categories",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"Categories": models.CategoryDTOs(categories)})
}

// HandleCategoryJSON serves a single category as JSON.
func (h *CategoryHandler) HandleCategoryJSON(c *fiber.Ctx) error {
	name := c.Params("category")
	category, err := h.categoryService.GetByName(name)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Category %s not found", name),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve category",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"Category": []models.CategoryDTO{category.DTO()}})
}
