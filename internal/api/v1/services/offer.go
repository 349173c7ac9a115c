package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kribhq/krib/internal/db/models"
	"github.com/kribhq/krib/internal/db/repos"
	"github.com/kribhq/krib/internal/logger"
	"github.com/kribhq/krib/internal/scheduling"
)

// OfferWindowDays is the rolling window of upcoming days a contractor may
// propose, counted in offerable days. Sundays are excluded by policy and do
// not count against the window.
const OfferWindowDays = 14

// SlotRequest is one candidate window as submitted by the contractor: a
// calendar date plus clock times. The time picker upstream works in
// half-hour steps, but that is a UI constraint; the negotiator only enforces
// ordering and range.
type SlotRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// OfferService manages the proposal/response cycle for appointment windows
type OfferService struct {
	jobs         *repos.JobRepository
	prefs        *repos.PreferencesRepository
	availability *AvailabilityService

	now func() time.Time
}

// NewOfferService creates a new offer service instance
func NewOfferService(jobs *repos.JobRepository, prefs *repos.PreferencesRepository, availability *AvailabilityService) *OfferService {
	return &OfferService{
		jobs:         jobs,
		prefs:        prefs,
		availability: availability,
		now:          time.Now,
	}
}

// CreateOffer proposes a batch of 1-5 appointment windows to the customer.
// All policy checks run before any write. A prior unanswered batch is
// superseded, not deleted: its open slots flip to superseded and remain on
// the job. The write transitions the job to slots_offered and clears the
// customer's requested-new-times flag.
func (s *OfferService) CreateOffer(ctx context.Context, jobID uint, slots []SlotRequest, message string) (*models.Job, error) {
	if len(slots) == 0 {
		return nil, ErrNoSlots
	}
	if len(slots) > models.MaxOfferedSlots {
		return nil, ErrTooManySlots
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(job.Status, models.JobStatusSlotsOffered) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, job.Status, models.JobStatusSlotsOffered)
	}

	now := s.now().UTC()
	window := offerableDates(scheduling.FromTime(now), OfferWindowDays)

	batch := make(models.OfferedSlots, 0, len(slots))
	for _, req := range slots {
		slot, err := s.buildSlot(ctx, job, req, window, now)
		if err != nil {
			return nil, err
		}
		batch = append(batch, *slot)
	}

	// Supersede the prior batch in place.
	for i := range job.OfferedSlots {
		if !job.OfferedSlots[i].Status.Terminal() {
			job.OfferedSlots[i].Status = models.SlotStatusSuperseded
		}
	}
	job.OfferedSlots = append(job.OfferedSlots, batch...)
	job.OfferedAt = &now
	job.OfferedMessage = message
	job.RequestedNewTimes = false
	job.Status = models.JobStatusSlotsOffered
	job.OfferSummary = legacyOfferSummary(batch, message, now)

	if err := s.jobs.Save(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *OfferService) buildSlot(ctx context.Context, job *models.Job, req SlotRequest, window map[scheduling.CalendarDate]bool, now time.Time) (*models.OfferedSlot, error) {
	date, err := scheduling.ParseCalendarDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid slot date: %w", err)
	}
	if !window[date] {
		return nil, fmt.Errorf("%w: %s", ErrSlotOutsideWindow, date)
	}

	startMin, err := scheduling.ClockToMinutes(req.StartTime)
	if err != nil {
		return nil, err
	}
	endMin, err := scheduling.ClockToMinutes(req.EndTime)
	if err != nil {
		return nil, err
	}

	blocked, err := s.availability.BlockedDates(ctx, job.AssignedTechIDs, date)
	if err != nil {
		return nil, err
	}
	// Assignment order keeps the reported tech stable when several are out.
	for _, techID := range job.AssignedTechIDs {
		if res, ok := blocked[techID]; ok {
			return nil, fmt.Errorf("%w: tech %d is on %s on %s", ErrSlotDateBlocked, techID, res.Reason, date)
		}
	}

	slot := &models.OfferedSlot{
		ID:        uuid.NewString(),
		Start:     date.At(startMin, time.UTC),
		End:       date.At(endMin, time.UTC),
		Status:    models.SlotStatusOffered,
		OfferedAt: now,
	}
	if err := slot.Validate(); err != nil {
		return nil, err
	}
	return slot, nil
}

// AcceptSlot records the customer's selection. The chosen slot becomes
// accepted and every open sibling in the batch is explicitly declined. The
// job transitions to scheduled; multi-day jobs get their per-day schedule
// blocks generated from the accepted date.
func (s *OfferService) AcceptSlot(ctx context.Context, jobID uint, slotID string) (*models.Job, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(job.Status, models.JobStatusScheduled) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, job.Status, models.JobStatusScheduled)
	}

	slot := job.OfferedSlots.Find(slotID)
	if slot == nil {
		return nil, fmt.Errorf("slot %s not found on job %d", slotID, jobID)
	}
	if slot.Status != models.SlotStatusOffered {
		return nil, fmt.Errorf("%w: slot is %s", ErrSlotNotOffered, slot.Status)
	}

	slot.Status = models.SlotStatusAccepted
	for i := range job.OfferedSlots {
		if job.OfferedSlots[i].ID != slotID && job.OfferedSlots[i].Status == models.SlotStatusOffered {
			job.OfferedSlots[i].Status = models.SlotStatusDeclined
		}
	}

	startDate := scheduling.FromTime(slot.Start)
	job.Status = models.JobStatusScheduled
	job.ScheduledDate = startDate.String()
	job.ScheduledTime = slot.Start.Format("15:04")
	if job.ScheduledTimezone == "" {
		job.ScheduledTimezone = "UTC"
	}

	if job.IsMultiDay {
		prefs, err := s.prefs.GetByContractor(ctx, job.ContractorID)
		if err != nil {
			return nil, fmt.Errorf("failed to load scheduling preferences: %w", err)
		}
		job.ScheduleBlocks = toModelBlocks(
			scheduling.GenerateScheduleBlocks(startDate, job.EstimatedDuration, prefs.Policy()))
	}

	if err := s.jobs.Save(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// RequestNewTimes flags that the customer wants different windows. The job
// stays in slots_offered until the contractor re-offers.
func (s *OfferService) RequestNewTimes(ctx context.Context, jobID uint) error {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job.Status != models.JobStatusSlotsOffered {
		return fmt.Errorf("%w: job is %s", ErrInvalidTransition, job.Status)
	}
	job.RequestedNewTimes = true
	return s.jobs.Save(ctx, job)
}

// SuggestSlots pre-populates candidate windows: the next count offerable
// days on which no assigned technician is blocked, each with the standard
// morning window. Purely a convenience for the contractor's offer form.
func (s *OfferService) SuggestSlots(ctx context.Context, jobID uint, count int) ([]SlotRequest, error) {
	if count <= 0 || count > models.MaxOfferedSlots {
		count = 3
	}
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	var out []SlotRequest
	date := scheduling.FromTime(s.now().UTC()).AddDays(1)
	for scanned := 0; len(out) < count && scanned < OfferWindowDays*2; scanned++ {
		if date.Weekday() != time.Sunday {
			blocked, err := s.availability.BlockedDates(ctx, job.AssignedTechIDs, date)
			if err != nil {
				return nil, err
			}
			if len(blocked) == 0 {
				out = append(out, SlotRequest{Date: date.String(), StartTime: "09:00", EndTime: "12:00"})
			}
		}
		date = date.AddDays(1)
	}
	return out, nil
}

// ExpireStaleOffers retires offer batches whose response deadline has
// passed: open slots flip to expired and the job drops back to
// pending_schedule. The deadline honors per-contractor offer TTLs. Returns
// the number of jobs expired.
func (s *OfferService) ExpireStaleOffers(ctx context.Context, now time.Time) (int, error) {
	jobs, err := s.jobs.ListStaleOffers(ctx, now)
	if err != nil {
		return 0, err
	}

	expired := 0
	for i := range jobs {
		job := &jobs[i]
		if job.OfferedAt == nil {
			continue
		}
		prefs, err := s.prefs.GetByContractor(ctx, job.ContractorID)
		if err != nil {
			return expired, err
		}
		if now.Before(job.OfferedAt.Add(prefs.OfferTTL())) {
			continue
		}

		for j := range job.OfferedSlots {
			if !job.OfferedSlots[j].Status.Terminal() {
				job.OfferedSlots[j].Status = models.SlotStatusExpired
			}
		}
		job.Status = models.JobStatusPendingSchedule
		if err := s.jobs.Save(ctx, job); err != nil {
			return expired, err
		}
		expired++
		logger.InfoWithFields("offer batch expired", map[string]interface{}{
			"job_id":     job.ID,
			"job_number": job.JobNumber,
			"offered_at": job.OfferedAt,
		})
	}
	return expired, nil
}

// offerableDates builds the set of dates a contractor may propose: the next
// n days counting from today, skipping Sundays.
func offerableDates(today scheduling.CalendarDate, n int) map[scheduling.CalendarDate]bool {
	window := make(map[scheduling.CalendarDate]bool, n)
	date := today
	for len(window) < n {
		if date.Weekday() != time.Sunday {
			window[date] = true
		}
		date = date.AddDays(1)
	}
	return window
}

// legacyOfferSummary renders the older flat offer shape still read by
// downstream consumers of the job feed.
func legacyOfferSummary(batch models.OfferedSlots, message string, offeredAt time.Time) []byte {
	type legacySlot struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}
	summary := struct {
		OfferedAt string       `json:"offeredAt"`
		Message   string       `json:"message,omitempty"`
		Slots     []legacySlot `json:"slots"`
	}{
		OfferedAt: offeredAt.Format(time.RFC3339),
		Message:   message,
	}
	for _, s := range batch {
		summary.Slots = append(summary.Slots, legacySlot{
			Start: s.Start.Format(time.RFC3339),
			End:   s.End.Format(time.RFC3339),
		})
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return nil
	}
	return raw
}

func toModelBlocks(blocks []scheduling.ScheduleBlock) models.ScheduleBlocks {
	out := make(models.ScheduleBlocks, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, models.ScheduleBlock{
			Date:      b.Date.String(),
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
			Minutes:   b.Minutes,
		})
	}
	return out
}
