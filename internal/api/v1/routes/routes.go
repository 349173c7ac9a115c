package v1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kribhq/krib/internal/api/v1/handlers"
)

// Handlers bundles the handler set wired into the router
type Handlers struct {
	Job          *handlers.JobHandler
	Offer        *handlers.OfferHandler
	Availability *handlers.AvailabilityHandler
	Progress     *handlers.ProgressHandler
}

// SetupRoutes configures all the v1 routes
func SetupRoutes(router fiber.Router, h Handlers) {
	// Job routes
	jobs := router.Group("/jobs")
	jobs.Post("/", h.Job.CreateJob).Name("jobs.create")
	jobs.Get("/", h.Job.ListJobs).Name("jobs.list")
	jobs.Get("/:id", h.Job.GetJob).Name("jobs.get")
	jobs.Put("/:id/status", h.Job.UpdateJobStatus).Name("jobs.status")
	jobs.Put("/:id/techs", h.Job.AssignTechs).Name("jobs.techs")
	jobs.Put("/:id/preferences", h.Job.RecordPreferences).Name("jobs.preferences")

	// Slot offer routes
	jobs.Post("/:id/offers", h.Offer.CreateOffer).Name("offers.create")
	jobs.Post("/:id/offers/:slotID/accept", h.Offer.AcceptSlot).Name("offers.accept")
	jobs.Post("/:id/offers/request-new-times", h.Offer.RequestNewTimes).Name("offers.request-new-times")
	jobs.Get("/:id/offers/suggestions", h.Offer.SuggestSlots).Name("offers.suggestions")

	// Progress routes
	jobs.Post("/:id/progress", h.Progress.SubmitDailyReport).Name("progress.submit")
	jobs.Get("/:id/progress", h.Progress.ListProgress).Name("progress.list")
	jobs.Get("/:id/progress/blocks", h.Progress.PreviewBlocks).Name("progress.blocks")
	jobs.Get("/:id/handoffs", h.Progress.ListHandoffs).Name("handoffs.list")
	jobs.Get("/:id/handoffs/:day", h.Progress.GetHandoff).Name("handoffs.get")

	// Technician availability and time off routes
	techs := router.Group("/techs")
	techs.Get("/:techID/availability", h.Availability.GetDayAvailability).Name("availability.day")
	techs.Get("/:techID/availability/week", h.Availability.GetWeekAvailability).Name("availability.week")
	techs.Get("/:techID/time-off", h.Availability.ListTimeOff).Name("timeoff.list")
	techs.Post("/:techID/time-off", h.Availability.CreateTimeOff).Name("timeoff.create")
	techs.Delete("/:techID/time-off/:entryID", h.Availability.DeleteTimeOff).Name("timeoff.delete")
	techs.Put("/:techID/time-off/:entryID", h.Availability.ReplaceTimeOff).Name("timeoff.replace")
}

// Register registers the v1 routes
func Register(app *fiber.App, h Handlers) {
	v1Group := app.Group("/api/v1")
	SetupRoutes(v1Group, h)
}
