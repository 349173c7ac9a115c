package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/kribhq/krib/internal/api/v1/services"
	"github.com/kribhq/krib/internal/db/models"
)

// JobHandler handles HTTP requests for job operations
type JobHandler struct {
	jobs *services.JobService
}

// NewJobHandler creates a new job handler instance
func NewJobHandler(jobs *services.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// CreateJob handles the request to create a new job
func (h *JobHandler) CreateJob(c *fiber.Ctx) error {
	var job models.Job
	if err := c.BodyParser(&job); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidBody,
		})
	}
	// The job number is generated on create when omitted, so only the
	// client-supplied fields are checked here.
	if job.ContractorID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "contractor_id is required",
		})
	}
	if job.EstimatedDuration <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "estimated_duration must be positive",
		})
	}
	if err := job.CrewRequirements.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	created, err := h.jobs.CreateJob(c.Context(), &job)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetJob returns a job by numeric ID, or by job number via ?number=KRB-...
func (h *JobHandler) GetJob(c *fiber.Ctx) error {
	if number := c.Query("number"); number != "" {
		job, err := h.jobs.GetJobByNumber(c.Context(), number)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(job)
	}

	id := paramUint(c, "id")
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidJobID,
		})
	}
	job, err := h.jobs.GetJob(c.Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(job)
}

// ListJobs returns jobs matching the query filters
func (h *JobHandler) ListJobs(c *fiber.Ctx) error {
	opts, err := listOptions(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var jobs []models.Job
	if contractorID := uint(c.QueryInt("contractor_id")); contractorID != 0 {
		jobs, err = h.jobs.ListContractorJobs(c.Context(), contractorID, opts)
	} else {
		jobs, err = h.jobs.ListJobs(c.Context(), opts)
	}
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

// UpdateJobStatus transitions a job to a new status
func (h *JobHandler) UpdateJobStatus(c *fiber.Ctx) error {
	id := paramUint(c, "id")
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidJobID,
		})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidBody,
		})
	}
	status, err := models.ParseJobStatus(req.Status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := h.jobs.UpdateJobStatus(c.Context(), id, status); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "job status updated",
		"status":  status,
	})
}

// AssignTechs sets the technicians working a job
func (h *JobHandler) AssignTechs(c *fiber.Ctx) error {
	id := paramUint(c, "id")
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidJobID,
		})
	}

	var req struct {
		TechIDs []uint `json:"tech_ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidBody,
		})
	}

	job, err := h.jobs.AssignTechs(c.Context(), id, req.TechIDs)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(job)
}

// RecordPreferences stores the customer's scheduling hints on a job
func (h *JobHandler) RecordPreferences(c *fiber.Ctx) error {
	id := paramUint(c, "id")
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidJobID,
		})
	}

	body := c.Body()
	if !json.Valid(body) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidBody,
		})
	}

	if err := h.jobs.RecordCustomerPreferences(c.Context(), id, json.RawMessage(body)); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "customer preferences recorded",
	})
}
