package handlers

import (
	"log"

	"auralog/internal/jobs"

	"github.com/gofiber/fiber/v2"
)

// JobsAdminHandler exposes pipeline job status and manual replay to
// superadmins.
type JobsAdminHandler struct {
	scheduler *jobs.JobScheduler
}

// NewJobsAdminHandler creates a new jobs admin handler
func NewJobsAdminHandler(scheduler *jobs.JobScheduler) *JobsAdminHandler {
	return &JobsAdminHandler{scheduler: scheduler}
}

// List returns the registered jobs and their next run times
// GET /api/admin/jobs
func (h *JobsAdminHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"jobs": h.scheduler.Status(),
	})
}

// Run triggers a job immediately
// POST /api/admin/jobs/:name/run
func (h *JobsAdminHandler) Run(c *fiber.Ctx) error {
	name := c.Params("name")

	if err := h.scheduler.RunNow(name); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	log.Printf("🔧 [ADMIN] Job %s triggered by %v", name, c.Locals("user_id"))
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"triggered": name,
	})
}
