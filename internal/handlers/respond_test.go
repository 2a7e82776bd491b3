package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestValidationErrorHandlesNonStructInput(t *testing.T) {
	app := fiber.New()
	validate := validator.New()
	// Validating a non-struct yields *validator.InvalidValidationError, not
	// ValidationErrors; the response must still be a plain 400.
	app.Get("/check", func(c *fiber.Ctx) error {
		return validationError(c, validate.Struct(42))
	})

	req := httptest.NewRequest(http.MethodGet, "/check", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
