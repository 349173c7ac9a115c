package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kribhq/krib/internal/api/v1/services"
	"github.com/kribhq/krib/internal/db/models"
	"github.com/kribhq/krib/internal/scheduling"
)

// AvailabilityHandler handles HTTP requests for technician availability and
// time off
type AvailabilityHandler struct {
	availability *services.AvailabilityService
}

// NewAvailabilityHandler creates a new availability handler instance
func NewAvailabilityHandler(availability *services.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// GetDayAvailability answers whether a technician is free on a given date
func (h *AvailabilityHandler) GetDayAvailability(c *fiber.Ctx) error {
	techID := paramUint(c, "techID")
	if techID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidTechID,
		})
	}
	date := c.Query("date")
	if date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "date query parameter is required",
		})
	}

	avail, err := h.availability.TechAvailability(c.Context(), techID, date)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(avail)
}

// GetWeekAvailability returns a seven-day availability view starting at the
// given date
func (h *AvailabilityHandler) GetWeekAvailability(c *fiber.Ctx) error {
	techID := paramUint(c, "techID")
	if techID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidTechID,
		})
	}
	start := c.Query("start")
	if start == "" {
		start = scheduling.FromTime(c.Context().Time()).String()
	}

	week, err := h.availability.WeekAvailability(c.Context(), techID, start)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"tech_id": techID,
		"start":   start,
		"days":    week,
	})
}

// ListTimeOff returns a technician's time off entries
func (h *AvailabilityHandler) ListTimeOff(c *fiber.Ctx) error {
	techID := paramUint(c, "techID")
	if techID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidTechID,
		})
	}

	entries, err := h.availability.ListTimeOff(c.Context(), techID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"entries": entries,
		"count":   len(entries),
	})
}

// CreateTimeOff records a new time off entry for a technician
func (h *AvailabilityHandler) CreateTimeOff(c *fiber.Ctx) error {
	techID := paramUint(c, "techID")
	if techID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidTechID,
		})
	}

	var entry models.TimeOffEntry
	if err := c.BodyParser(&entry); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidBody,
		})
	}
	entry.TechID = techID
	if err := entry.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := h.availability.CreateTimeOff(c.Context(), &entry); err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// DeleteTimeOff removes a technician's time off entry
func (h *AvailabilityHandler) DeleteTimeOff(c *fiber.Ctx) error {
	techID := paramUint(c, "techID")
	if techID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidTechID,
		})
	}
	entryID := c.Params("entryID")
	if entryID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidEntryID,
		})
	}

	if err := h.availability.RemoveTimeOff(c.Context(), techID, entryID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "time off entry removed",
	})
}

// ReplaceTimeOff swaps a time off entry for a corrected one in one step
func (h *AvailabilityHandler) ReplaceTimeOff(c *fiber.Ctx) error {
	techID := paramUint(c, "techID")
	if techID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidTechID,
		})
	}
	entryID := c.Params("entryID")
	if entryID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidEntryID,
		})
	}

	var entry models.TimeOffEntry
	if err := c.BodyParser(&entry); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidBody,
		})
	}
	entry.TechID = techID
	if err := entry.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := h.availability.ReplaceTimeOff(c.Context(), techID, entryID, &entry); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(entry)
}
