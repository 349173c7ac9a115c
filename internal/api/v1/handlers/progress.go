package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/kribhq/krib/internal/api/v1/services"
)

// ProgressHandler handles HTTP requests for multi-day progress tracking
type ProgressHandler struct {
	progress *services.ProgressService
}

// NewProgressHandler creates a new progress handler instance
func NewProgressHandler(progress *services.ProgressService) *ProgressHandler {
	return &ProgressHandler{progress: progress}
}

// SubmitDailyReport records an end-of-day report for a multi-day job
func (h *ProgressHandler) SubmitDailyReport(c *fiber.Ctx) error {
	jobID := paramUint(c, "id")
	if jobID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidJobID,
		})
	}

	var report services.DailyReport
	if err := c.BodyParser(&report); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidBody,
		})
	}

	record, err := h.progress.SubmitDailyReport(c.Context(), jobID, report)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

// ListProgress returns all daily progress records for a job
func (h *ProgressHandler) ListProgress(c *fiber.Ctx) error {
	jobID := paramUint(c, "id")
	if jobID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidJobID,
		})
	}

	records, err := h.progress.ListProgress(c.Context(), jobID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"records": records,
		"count":   len(records),
	})
}

// GetHandoff returns the end-of-day handoff for a specific work day
func (h *ProgressHandler) GetHandoff(c *fiber.Ctx) error {
	jobID := paramUint(c, "id")
	if jobID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidJobID,
		})
	}
	day, err := strconv.Atoi(c.Params("day"))
	if err != nil || day < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidDay,
		})
	}

	handoff, err := h.progress.HandoffForDay(c.Context(), jobID, day)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(handoff)
}

// ListHandoffs returns all handoffs for a job in day order
func (h *ProgressHandler) ListHandoffs(c *fiber.Ctx) error {
	jobID := paramUint(c, "id")
	if jobID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidJobID,
		})
	}

	handoffs, err := h.progress.ListHandoffs(c.Context(), jobID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"handoffs": handoffs,
		"count":    len(handoffs),
	})
}

// PreviewBlocks returns the schedule blocks a job would occupy if work
// started on the given date
func (h *ProgressHandler) PreviewBlocks(c *fiber.Ctx) error {
	jobID := paramUint(c, "id")
	if jobID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidJobID,
		})
	}
	start := c.Query("start")
	if start == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "start query parameter is required",
		})
	}

	blocks, err := h.progress.PreviewBlocks(c.Context(), jobID, start)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"blocks": blocks,
		"count":  len(blocks),
	})
}
