package handlers

import (
	"fmt"
	"log"

	"catalog/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// flashHome queues a flash message (if any) and redirects to the home view.
func flashHome(c *fiber.Ctx, store *session.Store, message string) error {
	sess, err := store.Get(c)
	if err != nil {
		log.Printf("Failed to load session for flash: %v", err)
	} else {
		if message != "" {
			middleware.AddFlash(sess, message)
		}
		if err := sess.Save(); err != nil {
			log.Printf("Failed to save session flash: %v", err)
		}
	}
	return c.Redirect("/catalog/", fiber.StatusFound)
}

// sessionIdentity reads the (login-type, email) pair off the session. Both
// are empty for anonymous visitors.
func sessionIdentity(c *fiber.Ctx, store *session.Store) (source, email string) {
	sess, err := store.Get(c)
	if err != nil {
		log.Printf("Failed to load session: %v", err)
		return "", ""
	}
	source, _ = sess.Get(middleware.KeyLoginType).(string)
	email, _ = sess.Get(middleware.KeyEmail).(string)
	return source, email
}

// validationError renders validator failures as a field→message map.
func validationError(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
