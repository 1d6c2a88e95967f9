package status

import (
	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for health checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the status routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/status", h.HandleStatus)
}

// HandleStatus runs all health checks and returns the aggregated report.
// Always answers 200; the status field carries the verdict so monitoring
// can alert on degradation without treating the probe itself as down.
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(h.service.Check(c.Context()))
}
