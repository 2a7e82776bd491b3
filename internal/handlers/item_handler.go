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

// itemForm is the submitted payload for item create/edit. Category is the
// category selector from the form, re-resolved by name server-side.
type itemForm struct {
	Name        string `form:"name" validate:"required,min=1,max=80"`
	Description string `form:"desc" validate:"required,max=2000"`
	Category    string `form:"category" validate:"required"`
}

// ItemHandler handles HTTP requests for items. Mutations require the contrib
// capability, enforced by middleware before any handler runs.
type ItemHandler struct {
	itemService     *services.ItemService
	categoryService *services.CategoryService
	authService     *services.AuthService
	store           *session.Store
	validate        *validator.Validate
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemService *services.ItemService, categoryService *services.CategoryService, authService *services.AuthService, store *session.Store) *ItemHandler {
	return &ItemHandler{
		itemService:     itemService,
		categoryService: categoryService,
		authService:     authService,
		store:           store,
		validate:        validator.New(),
	}
}

// RegisterRoutes registers the static item routes. Must run before any
// /catalog/:category routes are registered.
func (h *ItemHandler) RegisterRoutes(router fiber.Router) {
	contribGate := middleware.RoleRequired(h.store, h.authService, models.PermissionContrib)

	router.Get("/catalog/item/new/", contribGate, h.HandleNewForm)
	router.Post("/catalog/item/new/", contribGate, h.HandleCreate)
	router.Get("/items.json", h.HandleItemsJSON)
	router.Get("/catalog/items/json/", h.HandleItemsJSON)
}

// RegisterResourceRoutes registers the per-item routes. The all-parameter
// /catalog/:category/:item routes are registered last so the static-tail
// routes keep precedence.
func (h *ItemHandler) RegisterResourceRoutes(router fiber.Router) {
	contribGate := middleware.RoleRequired(h.store, h.authService, models.PermissionContrib)

	router.Get("/catalog/:category/items/json/", h.HandleCategoryItemsJSON)
	router.Get("/catalog/:category/items/", h.HandleCategoryItems)
	router.Get("/catalog/:category/:item/json/", h.HandleItemJSON)
	router.Get("/catalog/:category/:item/edit/", contribGate, h.HandleEditForm)
	router.Post("/catalog/:category/:item/edit/", contribGate, h.HandleEdit)
	router.Get("/catalog/:category/:item/delete/", contribGate, h.HandleDeleteForm)
	router.Post("/catalog/:category/:item/delete/", contribGate, h.HandleDelete)
	router.Get("/catalog/:category/:item/", h.HandleInfo)
}

// HandleCategoryItems lists a category's items. Anonymous-accessible.
func (h *ItemHandler) HandleCategoryItems(c *fiber.Ctx) error {
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
		log.Printf("Error loading items of category %s: %v", name, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load items",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"roles":    caps,
		"category": category.DTO(),
		"items":    models.ItemDTOs(items),
	})
}

// HandleInfo serves the item detail view. Anonymous-accessible.
func (h *ItemHandler) HandleInfo(c *fiber.Ctx) error {
	categoryName := c.Params("category")
	itemName := c.Params("item")
	source, email := sessionIdentity(c, h.store)
	caps := h.authService.SessionCapabilities(source, email)

	item, err := h.itemService.Get(categoryName, itemName)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Item %s not found in category %s", itemName, categoryName),
			})
		}
		log.Printf("Error loading item %s/%s: %v", categoryName, itemName, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load item",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"roles": caps,
		"item":  item.DTO(),
	})
}

// HandleNewForm serves the create form data: the selectable categories.
func (h *ItemHandler) HandleNewForm(c *fiber.Ctx) error {
	categories, err := h.categoryService.GetAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load categories",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"categories": models.CategoryDTOs(categories)})
}

// HandleCreate creates a new item under the category selected in the form.
func (h *ItemHandler) HandleCreate(c *fiber.Ctx) error {
	var form itemForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing item form: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(form); err != nil {
		return validationError(c, err)
	}

	user := middleware.CurrentUser(c)
	if _, err := h.itemService.Create(form.Category, form.Name, form.Description, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Category %s not found", form.Category),
			})
		case errors.Is(err, repositories.ErrConflict):
			return flashHome(c, h.store, "Cannot Add, ITEM Name/Chosen Category combination already exists...")
		}
		log.Printf("Error creating item %q: %v", form.Name, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create item",
			"error":   err.Error(),
		})
	}

	return flashHome(c, h.store, "Catalog ITEM added successfully!")
}

// HandleEditForm serves the edit form data for an existing item.
func (h *ItemHandler) HandleEditForm(c *fiber.Ctx) error {
	categoryName := c.Params("category")
	itemName := c.Params("item")

	item, err := h.itemService.Get(categoryName, itemName)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Item %s not found in category %s", itemName, categoryName),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load item",
			"error":   err.Error(),
		})
	}

	categories, err := h.categoryService.GetAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load categories",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"item":       item.DTO(),
		"categories": models.CategoryDTOs(categories),
	})
}

// HandleEdit replaces name/description of an item. The posted category
// selector must re-resolve to the item's current category, otherwise nothing
// is written.
func (h *ItemHandler) HandleEdit(c *fiber.Ctx) error {
	categoryName := c.Params("category")
	itemName := c.Params("item")

	var form itemForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing item form: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(form); err != nil {
		return validationError(c, err)
	}

	user := middleware.CurrentUser(c)
	updated, err := h.itemService.Update(categoryName, itemName, form.Name, form.Description, form.Category, user)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Item %s not found in category %s", itemName, categoryName),
			})
		case errors.Is(err, services.ErrConfirmationMismatch):
			// Selected category does not match the item's category; no
			// mutation happened.
			return flashHome(c, h.store, "")
		case errors.Is(err, repositories.ErrConflict):
			return flashHome(c, h.store, "Cannot Edit: Item Name/Chosen Category combination already exists...")
		}
		log.Printf("Error editing item %s/%s: %v", categoryName, itemName, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not edit item",
			"error":   err.Error(),
		})
	}

	return flashHome(c, h.store, fmt.Sprintf("Edited %s successfully!", updated.Name))
}

// HandleDeleteForm serves the delete confirmation data.
func (h *ItemHandler) HandleDeleteForm(c *fiber.Ctx) error {
	return h.HandleEditForm(c)
}

// HandleDelete removes an item after the posted name and category
// confirmations match.
func (h *ItemHandler) HandleDelete(c *fiber.Ctx) error {
	categoryName := c.Params("category")
	itemName := c.Params("item")
	confirmName := c.FormValue("name")
	confirmCategory := c.FormValue("category")

	if err := h.itemService.Delete(categoryName, itemName, confirmName, confirmCategory); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Item %s not found in category %s", itemName, categoryName),
			})
		case errors.Is(err, services.ErrConfirmationMismatch):
			return flashHome(c, h.store, "")
		}
		log.Printf("Error deleting item %s/%s: %v", categoryName, itemName, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete item",
			"error":   err.Error(),
		})
	}

	return flashHome(c, h.store, fmt.Sprintf("Deleted %s successfully!", itemName))
}

// HandleItemsJSON serves every item as JSON, most recent first.
func (h *ItemHandler) HandleItemsJSON(c *fiber.Ctx) error {
	items, err := h.itemService.GetAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve items",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"Items": models.ItemDTOs(items)})
}

// HandleCategoryItemsJSON serves one category with its items as JSON.
func (h *ItemHandler) HandleCategoryItemsJSON(c *fiber.Ctx) error {
	name := c.Params("category")
	category, items, err := h.itemService.GetByCategory(name)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Category %s not found", name),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve items",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"CategItems": []fiber.Map{{
		"Category": category.DTO(),
		"Items":    models.ItemDTOs(items),
	}}})
}

// HandleItemJSON serves a single item as JSON.
func (h *ItemHandler) HandleItemJSON(c *fiber.Ctx) error {
	categoryName := c.Params("category")
	itemName := c.Params("item")

	item, err := h.itemService.Get(categoryName, itemName)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Item %s not found in category %s", itemName, categoryName),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve item",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"Item": []models.ItemDTO{item.DTO()}})
}
