package printing

import (
	"bytes"
	"errors"

	"brother-bridge/core/logger"
	"brother-bridge/feature/machines"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler handles HTTP requests for printing.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the printing routes. The test-print route
// lives under /machines because it acts on a machine, but the print
// pipeline (locking, job records, archiving) is owned here.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/print/:machine", h.HandlePrint)
	app.Post("/machines/:machine/test", h.HandleTestPrint)

	jobs := app.Group("/jobs")
	jobs.Get("/", h.HandleListJobs)
	jobs.Get("/:id", h.HandleGetJob)
	jobs.Get("/:id/artifact", h.HandleArtifact)
}

// HandlePrint accepts a PNG or JPEG body and prints it on the machine.
func (h *Handler) HandlePrint(c *fiber.Ctx) error {
	img, err := DecodeImage(bytes.NewReader(c.Body()))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	job, err := h.service.Print(c.Context(), c.Params("machine"), img)
	return h.respond(c, job, err)
}

// HandleTestPrint prints the built-in test label on the machine.
func (h *Handler) HandleTestPrint(c *fiber.Ctx) error {
	job, err := h.service.TestPrint(c.Context(), c.Params("machine"))
	return h.respond(c, job, err)
}

// HandleListJobs returns recent print jobs.
func (h *Handler) HandleListJobs(c *fiber.Ctx) error {
	jobs, err := h.service.ListJobs(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(jobs)
}

// HandleGetJob returns one print job.
func (h *Handler) HandleGetJob(c *fiber.Ctx) error {
	job, err := h.service.GetJob(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(job)
}

// HandleArtifact streams the archived label image of a job.
func (h *Handler) HandleArtifact(c *fiber.Ctx) error {
	obj, err := h.service.Artifact(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	c.Set("Content-Type", "image/png")
	return c.SendStream(obj)
}

// respond renders a print outcome. A failed job still returns the job
// record so the caller sees both the status and the verbatim error.
func (h *Handler) respond(c *fiber.Ctx, job any, err error) error {
	if err == nil {
		return c.Status(fiber.StatusCreated).JSON(job)
	}

	var verr machines.ErrValidation
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	l := logger.WithRayID(h.service.logger, c)
	l.Error("print failed", zap.Error(err))

	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
		"error": err.Error(),
		"job":   job,
	})
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	l := logger.WithRayID(h.service.logger, c)
	l.Error("print job request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
