package response

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/YasinKhilji/ims-project/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperr.ErrValidation, fiber.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("%w: quantity must be positive", apperr.ErrValidation), fiber.StatusBadRequest},
		{"invalid credentials", apperr.ErrInvalidCredentials, fiber.StatusUnauthorized},
		{"forbidden", apperr.ErrForbidden, fiber.StatusForbidden},
		{"not found", apperr.ErrOrderNotFound, fiber.StatusNotFound},
		{"conflict", apperr.ErrOrderAlreadyFinal, fiber.StatusConflict},
		{"insufficient stock", apperr.ErrInsufficientStock, fiber.StatusConflict},
		{"backend", apperr.ErrBackend, fiber.StatusInternalServerError},
		{"unknown", fmt.Errorf("boom"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return FromError(c, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestBackendErrorsDoNotLeakDetail(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return FromError(c, fmt.Errorf("%w: pq: connection refused", apperr.ErrBackend))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	var body Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, "internal server error", body.Error)
	assert.NotContains(t, body.Error, "connection refused")
}
