package handlers

import (
	"log"

	"catalog/internal/middleware"
	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// CatalogHandler serves the read-only aggregate views. All of them are
// anonymous-accessible; the capability flags in the response only drive which
// UI affordances a client shows, the mutating routes enforce authorization
// themselves.
type CatalogHandler struct {
	catalogService *services.CatalogService
	authService    *services.AuthService
	store          *session.Store
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService *services.CatalogService, authService *services.AuthService, store *session.Store) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		authService:    authService,
		store:          store,
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleHome)
	router.Get("/catalog/", h.HandleHome)
	router.Get("/catalog/full/", h.HandleFull)
	router.Get("/catalog.json", h.HandleCatalogJSON)
}

// HandleHome serves the home view: all categories plus the latest items.
func (h *CatalogHandler) HandleHome(c *fiber.Ctx) error {
	source, email := sessionIdentity(c, h.store)
	caps := h.authService.SessionCapabilities(source, email)

	categories, latest, err := h.catalogService.Home()
	if err != nil {
		log.Printf("Error loading home view: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load catalog",
			"error":   err.Error(),
		})
	}

	var flash []string
	if sess, err := h.store.Get(c); err == nil {
		flash = middleware.DrainFlash(sess)
		if err := sess.Save(); err != nil {
			log.Printf("Failed to save session after draining flash: %v", err)
		}
	}

	return c.JSON(fiber.Map{
		"roles":        caps,
		"categories":   models.CategoryDTOs(categories),
		"latest_items": models.ItemDTOs(latest),
		"flash":        flash,
	})
}

// HandleFull serves the full catalog view with every item.
func (h *CatalogHandler) HandleFull(c *fiber.Ctx) error {
	source, email := sessionIdentity(c, h.store)
	caps := h.authService.SessionCapabilities(source, email)

	categories, items, err := h.catalogService.Full()
	if err != nil {
		log.Printf("Error loading full catalog view: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load catalog",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"roles":      caps,
		"categories": models.CategoryDTOs(categories),
		"all_items":  models.ItemDTOs(items),
	})
}

// HandleCatalogJSON serves the combined catalog document.
func (h *CatalogHandler) HandleCatalogJSON(c *fiber.Ctx) error {
	entries, err := h.catalogService.Document()
	if err != nil {
		log.Printf("Error building catalog document: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not build catalog document",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"Catalog": entries})
}
