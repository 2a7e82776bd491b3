package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/session"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"catalog/internal/handlers"
	"catalog/internal/models"
	"catalog/internal/oauth"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/pkg/events"

	"github.com/spf13/viper"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "") // PostgreSQL DSN; empty falls back to local SQLite
	viper.SetDefault("SQLITE_PATH", "catalog.db")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("RABBITMQ_URL", "") // empty disables catalog event publishing
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")

	// --- Database ---
	db, err := openDatabase(viper.GetString("DATABASE_DSN"), viper.GetString("SQLITE_PATH"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// --- Identity provider ---
	provider := oauth.NewGoogleProvider(oauth.GoogleConfig{
		ClientID:     viper.GetString("GOOGLE_CLIENT_ID"),
		ClientSecret: viper.GetString("GOOGLE_CLIENT_SECRET"),
	})

	// --- Catalog event publisher (optional) ---
	var publisher services.EventPublisher
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		mqClient, err := events.NewClient(events.Config{URL: mqURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient
	} else {
		log.Println("RABBITMQ_URL not set, catalog event publishing disabled.")
	}

	// --- Application ---
	app, err := newApp(db, provider, publisher)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// openDatabase connects to PostgreSQL when a DSN is configured, otherwise to
// a local SQLite file. TranslateError makes driver-specific duplicate-key
// errors surface as gorm.ErrDuplicatedKey for the repositories.
func openDatabase(dsn, sqlitePath string) (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}
	if dsn != "" {
		return gorm.Open(postgres.Open(dsn), cfg)
	}
	return gorm.Open(sqlite.Open(sqlitePath), cfg)
}

// newApp migrates the schema, seeds the reference data and wires
// repositories, services and handlers into a Fiber app.
func newApp(db *gorm.DB, provider oauth.Provider, publisher services.EventPublisher) (*fiber.App, error) {
	err := db.AutoMigrate(
		&models.LoginType{},
		&models.Role{},
		&models.User{},
		&models.Category{},
		&models.Item{},
	)
	if err != nil {
		return nil, err
	}

	// --- Initialize Repositories ---
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	itemRepo := repositories.NewGORMItemRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)
	refRepo := repositories.NewGORMReferenceRepository(db)

	if err := seedReferenceData(refRepo); err != nil {
		return nil, err
	}

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, refRepo, provider)
	categoryService := services.NewCategoryService(categoryRepo, publisher)
	itemService := services.NewItemService(itemRepo, categoryRepo, publisher)
	catalogService := services.NewCatalogService(categoryRepo, itemRepo)

	// --- Initialize Handlers ---
	store := session.New()
	catalogHandler := handlers.NewCatalogHandler(catalogService, authService, store)
	authHandler := handlers.NewAuthHandler(authService, store)
	categoryHandler := handlers.NewCategoryHandler(categoryService, itemService, authService, store)
	itemHandler := handlers.NewItemHandler(itemService, categoryService, authService, store)

	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger

	// --- Routes ---
	// Fiber matches routes in registration order, so all static paths under
	// /catalog must be registered before the parameterized resource routes.
	catalogHandler.RegisterRoutes(app)
	authHandler.RegisterRoutes(app)
	categoryHandler.RegisterRoutes(app)
	itemHandler.RegisterRoutes(app)
	categoryHandler.RegisterResourceRoutes(app)
	itemHandler.RegisterResourceRoutes(app)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app, nil
}

// seedReferenceData ensures the immutable reference rows exist: the known
// identity-provider source and the two recognized roles.
func seedReferenceData(refRepo repositories.ReferenceRepository) error {
	if _, err := refRepo.EnsureLoginType("google"); err != nil {
		return err
	}
	for _, permission := range []models.Permission{models.PermissionAdmin, models.PermissionContrib} {
		if _, err := refRepo.EnsureRole(permission); err != nil {
			return err
		}
	}
	return nil
}
