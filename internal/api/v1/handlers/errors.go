package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/kribhq/krib/internal/api/v1/services"
)

// Shared error messages returned by the handlers.
const (
	ErrMsgInvalidBody     = "Invalid request body"
	ErrMsgInvalidJobID    = "job id is required"
	ErrMsgInvalidTechID   = "tech id is required"
	ErrMsgInvalidSlotID   = "slot id is required"
	ErrMsgInvalidEntryID  = "time off entry id is required"
	ErrMsgInvalidDay      = "day number must be a positive integer"
	ErrMsgJobNotFound     = "job not found"
	ErrMsgEntryNotFound   = "time off entry not found"
	ErrMsgHandoffNotFound = "handoff not found"
)

// serviceError maps service layer failures onto HTTP responses. Validation
// and state machine errors are the client's fault; anything unrecognized is a
// server error.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, services.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, services.ErrNoSlots),
		errors.Is(err, services.ErrTooManySlots),
		errors.Is(err, services.ErrSlotNotOffered),
		errors.Is(err, services.ErrSlotDateBlocked),
		errors.Is(err, services.ErrSlotOutsideWindow),
		errors.Is(err, services.ErrNotMultiDay),
		errors.Is(err, services.ErrReportOutOfOrder):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
