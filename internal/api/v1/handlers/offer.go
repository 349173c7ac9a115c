package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kribhq/krib/internal/api/v1/services"
)

// OfferHandler handles HTTP requests for slot offer operations
type OfferHandler struct {
	offers *services.OfferService
}

// NewOfferHandler creates a new offer handler instance
func NewOfferHandler(offers *services.OfferService) *OfferHandler {
	return &OfferHandler{offers: offers}
}

// CreateOffer sends a batch of proposed slots to the customer. Re-offering
// supersedes any slots still pending from the previous batch.
func (h *OfferHandler) CreateOffer(c *fiber.Ctx) error {
	jobID := paramUint(c, "id")
	if jobID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidJobID,
		})
	}

	var req struct {
		Slots   []services.SlotRequest `json:"slots"`
		Message string                 `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidBody,
		})
	}

	job, err := h.offers.CreateOffer(c.Context(), jobID, req.Slots, req.Message)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(job)
}

// AcceptSlot accepts one offered slot on behalf of the customer
func (h *OfferHandler) AcceptSlot(c *fiber.Ctx) error {
	jobID := paramUint(c, "id")
	if jobID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidJobID,
		})
	}
	slotID := c.Params("slotID")
	if slotID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidSlotID,
		})
	}

	job, err := h.offers.AcceptSlot(c.Context(), jobID, slotID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(job)
}

// RequestNewTimes flags that none of the offered slots work for the customer
func (h *OfferHandler) RequestNewTimes(c *fiber.Ctx) error {
	jobID := paramUint(c, "id")
	if jobID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidJobID,
		})
	}

	if err := h.offers.RequestNewTimes(c.Context(), jobID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "new times requested",
	})
}

// SuggestSlots proposes candidate slots the contractor could offer
func (h *OfferHandler) SuggestSlots(c *fiber.Ctx) error {
	jobID := paramUint(c, "id")
	if jobID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidJobID,
		})
	}
	count := c.QueryInt("count", 3)

	slots, err := h.offers.SuggestSlots(c.Context(), jobID, count)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"suggestions": slots,
	})
}
