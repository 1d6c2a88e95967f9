package machines

import (
	"errors"

	"brother-bridge/core/logger"
	"brother-bridge/feature/machines/models"
	"brother-bridge/feature/machines/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler handles HTTP requests for the machine registry.
type Handler struct {
	service *Service
	planner *reconcile.Planner
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, planner *reconcile.Planner) *Handler {
	return &Handler{service: service, planner: planner}
}

// RegisterRoutes registers the machine routes. The static routes must
// come before the :id wildcard.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/machines")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleCreate)
	group.Get("/schema", h.HandleSchema)
	group.Get("/discover", h.HandleDiscover)
	group.Post("/discover/apply", h.HandleDiscoverApply)
	group.Get("/:id", h.HandleGet)
	group.Put("/:id", h.HandleUpdate)
	group.Delete("/:id", h.HandleDelete)
}

// HandleDiscover returns the reconcile plan for attached USB printers.
// The plan is read-only; nothing changes until apply is called.
func (h *Handler) HandleDiscover(c *fiber.Ctx) error {
	plan, err := h.planner.Plan(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(plan)
}

// HandleDiscoverApply executes the current reconcile plan.
func (h *Handler) HandleDiscoverApply(c *fiber.Ctx) error {
	plan, err := h.planner.Plan(c.Context())
	if err != nil {
		return h.fail(c, err)
	}

	applied, err := h.planner.Apply(c.Context(), plan)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{"applied": applied, "plan": plan})
}

// HandleSchema returns the settings schema for machine forms.
func (h *Handler) HandleSchema(c *fiber.Ctx) error {
	return c.JSON(Schema())
}

// HandleList returns all registered machines.
func (h *Handler) HandleList(c *fiber.Ctx) error {
	machines, err := h.service.List(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(machines)
}

// HandleGet returns one machine by id or slug.
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	m, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(m)
}

// HandleCreate registers a new machine.
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var req models.MachineRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	m, err := h.service.Create(c.Context(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

// HandleUpdate applies settings changes to a machine.
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	var req models.MachineRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	m, err := h.service.Update(c.Context(), c.Params("id"), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(m)
}

// HandleDelete removes a machine.
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// fail maps service errors onto HTTP status codes.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	var verr ErrValidation
	switch {
	case errors.As(err, &verr):
		status = fiber.StatusBadRequest
	case errors.Is(err, gorm.ErrRecordNotFound):
		status = fiber.StatusNotFound
	}

	if status == fiber.StatusInternalServerError {
		l := logger.WithRayID(h.service.logger, c)
		l.Error("machine request failed", zap.Error(err))
	}

	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
