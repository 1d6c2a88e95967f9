package rayid_test

import (
	"net/http/httptest"
	"testing"

	"brother-bridge/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	app := fiber.New()
	app.Use(rayid.New())

	var seen string
	app.Get("/", func(c *fiber.Ctx) error {
		seen, _ = c.Locals("ray_id").(string)
		return c.SendStatus(fiber.StatusOK)
	})

	t.Run("GeneratesID", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil), 2000)
		assert.NoError(t, err)
		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, resp.Header.Get(rayid.HeaderName))
	})

	t.Run("HonorsIncomingID", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(rayid.HeaderName, "upstream-123")

		resp, err := app.Test(req, 2000)
		assert.NoError(t, err)
		assert.Equal(t, "upstream-123", seen)
		assert.Equal(t, "upstream-123", resp.Header.Get(rayid.HeaderName))
	})
}
