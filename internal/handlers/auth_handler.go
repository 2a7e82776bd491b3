package handlers

import (
	"errors"
	"fmt"
	"log"

	"catalog/internal/middleware"
	"catalog/internal/models"
	"catalog/internal/oauth"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

// googleSource is the login-type tag for the Google provider.
const googleSource = "google"

// AuthHandler handles the login page, the OAuth callback/disconnect pair,
// logout, and the user/reference read endpoints.
type AuthHandler struct {
	authService *services.AuthService
	store       *session.Store
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, store *session.Store) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		store:       store,
	}
}

// RegisterRoutes registers the authentication and user routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/login/", h.HandleShowLogin)
	router.Get("/catalog/login/", h.HandleShowLogin)
	router.Post("/oauth/google/connect", h.HandleGoogleConnect)
	router.Get("/oauth/google/disconnect", h.HandleGoogleDisconnect)
	router.Get("/logout/", h.HandleLogout)
	router.Get("/catalog/logout/", h.HandleLogout)
	router.Get("/users/", h.HandleUsers)
	router.Get("/users.json", h.HandleUsersJSON)
	router.Get("/catalog/users/json/", h.HandleUsersJSON)
	router.Get("/login-types.json", h.HandleLoginTypesJSON)
	router.Get("/catalog/login-types/json/", h.HandleLoginTypesJSON)
	router.Get("/roles.json", h.HandleRolesJSON)
	router.Get("/catalog/roles/json/", h.HandleRolesJSON)
}

// HandleShowLogin issues a fresh CSRF state token into the session and hands
// it to the client for the provider round-trip.
func (h *AuthHandler) HandleShowLogin(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		log.Printf("Failed to load session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load session",
		})
	}

	state := uuid.New().String()
	sess.Set(middleware.KeyState, state)
	if err := sess.Save(); err != nil {
		log.Printf("Failed to save session state: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save session",
		})
	}

	return c.JSON(fiber.Map{"state": state})
}

// HandleGoogleConnect is the OAuth callback: validates the CSRF state
// round-trip, exchanges the posted authorization code, verifies the token and
// stores the resulting identity into the session.
func (h *AuthHandler) HandleGoogleConnect(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		log.Printf("Failed to load session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load session",
		})
	}

	storedState, _ := sess.Get(middleware.KeyState).(string)
	if storedState == "" || c.Query("state") != storedState {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid state parameter",
		})
	}

	code := string(c.Body())
	identity, user, err := h.authService.ConnectWithCode(c.Context(), googleSource, code)
	if err != nil {
		switch {
		case errors.Is(err, oauth.ErrExchangeFailed):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Failed to upgrade the authorization code.",
			})
		case errors.Is(err, services.ErrSubjectMismatch):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Token's user ID doesn't match given user ID.",
			})
		case errors.Is(err, services.ErrAudienceMismatch):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Token's client ID doesn't match the app.",
			})
		case errors.Is(err, oauth.ErrTokenInfo):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to verify the access token.",
			})
		}
		log.Printf("Error during provider login: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Login failed",
			"error":   err.Error(),
		})
	}

	// Same subject already holds this session: nothing to update.
	storedToken, _ := sess.Get(middleware.KeyAccessToken).(string)
	storedSubject, _ := sess.Get(middleware.KeyProviderID).(string)
	if storedToken != "" && storedSubject == identity.SubjectID {
		return c.JSON(fiber.Map{"message": "Current user is already connected."})
	}

	sess.Set(middleware.KeyAccessToken, identity.AccessToken)
	sess.Set(middleware.KeyProviderID, identity.SubjectID)
	sess.Set(middleware.KeyUsername, identity.Profile.Name)
	sess.Set(middleware.KeyPicture, identity.Profile.Picture)
	sess.Set(middleware.KeyEmail, identity.Profile.Email)
	sess.Set(middleware.KeyLoginType, googleSource)
	middleware.AddFlash(sess, fmt.Sprintf("You are now logged in as %s", identity.Profile.Name))
	if err := sess.Save(); err != nil {
		log.Printf("Failed to save session after login: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save session",
		})
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("You are now logged in as %s", identity.Profile.Name),
		"user":    user.DTO(),
	})
}

// HandleGoogleDisconnect revokes the stored access token and clears the
// session. The session is cleared even when the revoke fails, otherwise the
// user could never log out.
func (h *AuthHandler) HandleGoogleDisconnect(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		log.Printf("Failed to load session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load session",
		})
	}

	accessToken, _ := sess.Get(middleware.KeyAccessToken).(string)
	if accessToken == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Current user not connected.",
		})
	}

	revokeErr := h.authService.Disconnect(c.Context(), accessToken)
	h.clearSession(sess)
	if err := sess.Save(); err != nil {
		log.Printf("Failed to save session after disconnect: %v", err)
	}

	if revokeErr != nil {
		log.Printf("Failed to revoke token with provider: %v", revokeErr)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Failed to revoke token for the given user.",
		})
	}
	return c.JSON(fiber.Map{"message": "Successfully disconnected."})
}

// HandleLogout disconnects from the provider if a login is present, then
// redirects home.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		log.Printf("Failed to load session: %v", err)
		return c.Redirect("/catalog/", fiber.StatusFound)
	}

	loginType, _ := sess.Get(middleware.KeyLoginType).(string)
	if loginType == "" {
		middleware.AddFlash(sess, "You are not logged in...")
		if err := sess.Save(); err != nil {
			log.Printf("Failed to save session flash: %v", err)
		}
		return c.Redirect("/catalog/", fiber.StatusFound)
	}

	if loginType == googleSource {
		if accessToken, _ := sess.Get(middleware.KeyAccessToken).(string); accessToken != "" {
			if err := h.authService.Disconnect(c.Context(), accessToken); err != nil {
				log.Printf("Failed to revoke token on logout: %v", err)
			}
		}
	}
	// Other providers would be handled here as they are added.

	h.clearSession(sess)
	if err := sess.Save(); err != nil {
		log.Printf("Failed to save session after logout: %v", err)
	}
	return c.Redirect("/catalog/", fiber.StatusFound)
}

// clearSession removes every identity-related session key.
func (h *AuthHandler) clearSession(sess *session.Session) {
	for _, key := range []string{
		middleware.KeyState,
		middleware.KeyAccessToken,
		middleware.KeyProviderID,
		middleware.KeyUsername,
		middleware.KeyPicture,
		middleware.KeyEmail,
		middleware.KeyLoginType,
	} {
		sess.Delete(key)
	}
}

// HandleUsers serves the user list view.
func (h *AuthHandler) HandleUsers(c *fiber.Ctx) error {
	users, err := h.authService.Users()
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve users",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"users": models.UserDTOs(users)})
}

// HandleUsersJSON serves all users as JSON.
func (h *AuthHandler) HandleUsersJSON(c *fiber.Ctx) error {
	users, err := h.authService.Users()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve users",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"Users": models.UserDTOs(users)})
}

// HandleLoginTypesJSON serves the seeded login types as JSON.
func (h *AuthHandler) HandleLoginTypesJSON(c *fiber.Ctx) error {
	loginTypes, err := h.authService.LoginTypes()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve login types",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"LoginTypes": models.LoginTypeDTOs(loginTypes)})
}

// HandleRolesJSON serves the seeded roles as JSON.
func (h *AuthHandler) HandleRolesJSON(c *fiber.Ctx) error {
	roles, err := h.authService.Roles()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve roles",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"Roles": models.RoleDTOs(roles)})
}
