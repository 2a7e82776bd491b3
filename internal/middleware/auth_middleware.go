package middleware

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Session keys holding the authenticated identity and related state.
const (
	KeyState       = "state"
	KeyAccessToken = "access_token"
	KeyProviderID  = "provider_id"
	KeyUsername    = "username"
	KeyPicture     = "picture"
	KeyEmail       = "email"
	KeyLoginType   = "login_type"
)

// Locals keys set by RoleRequired for downstream handlers.
const (
	LocalUser         = "current_user"
	LocalCapabilities = "capabilities"
)

// RoleRequired is a Fiber middleware gating mutating routes. An anonymous
// session is redirected to the login page; an authenticated session lacking
// the required role gets a flash warning and a 403 without the handler ever
// running. This is a hard gate on both the GET form and the POST mutation.
func RoleRequired(store *session.Store, authService *services.AuthService, required models.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			log.Printf("Failed to load session: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not load session",
			})
		}

		email, _ := sess.Get(KeyEmail).(string)
		source, _ := sess.Get(KeyLoginType).(string)
		if email == "" {
			return c.Redirect("/login/", fiber.StatusFound)
		}

		user, err := authService.CurrentUser(source, email)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				// Session carries an email we no longer recognize.
				return c.Redirect("/login/", fiber.StatusFound)
			}
			log.Printf("Failed to resolve session user %s: %v", email, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not resolve session user",
			})
		}

		caps := authService.Capabilities(user)
		if !caps.Has(required) {
			AddFlash(sess, fmt.Sprintf("You need %s privileges for this action!", strings.ToUpper(string(required))))
			if err := sess.Save(); err != nil {
				log.Printf("Failed to save session flash: %v", err)
			}
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": fmt.Sprintf("%s privileges required", string(required)),
			})
		}

		c.Locals(LocalUser, user)
		c.Locals(LocalCapabilities, caps)
		return c.Next()
	}
}

// CurrentUser returns the user resolved by RoleRequired, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(LocalUser).(*models.User)
	return user
}
