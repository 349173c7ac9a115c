package services

import (
	"context"
	"fmt"

	"github.com/kribhq/krib/internal/db/models"
	"github.com/kribhq/krib/internal/db/repos"
	"github.com/kribhq/krib/internal/logger"
	"github.com/kribhq/krib/internal/scheduling"
)

// DailyReport is the lead technician's end-of-day submission for one
// working day of a multi-day job. The forward-looking fields feed the
// handoff and are advisory free text.
type DailyReport struct {
	Date            string   `json:"date"`
	CrewIDs         []uint   `json:"crew_ids"`
	LeadTechID      uint     `json:"lead_tech_id"`
	HoursWorked     float64  `json:"hours_worked"`
	PercentComplete int      `json:"percent_complete"`
	WorkCompleted   []string `json:"work_completed"`
	Issues          []string `json:"issues,omitempty"`

	WorkRemaining   []string `json:"work_remaining,omitempty"`
	MaterialsNeeded []string `json:"materials_needed,omitempty"`
	SafetyNotes     string   `json:"safety_notes,omitempty"`
	CustomerNotes   string   `json:"customer_notes,omitempty"`
	NextCrewIDs     []uint   `json:"next_crew_ids,omitempty"`
}

// ProgressService tracks day-by-day completion of multi-day jobs
type ProgressService struct {
	jobs     *repos.JobRepository
	progress *repos.ProgressRepository
	prefs    *repos.PreferencesRepository
}

// NewProgressService creates a new progress service instance
func NewProgressService(jobs *repos.JobRepository, progress *repos.ProgressRepository, prefs *repos.PreferencesRepository) *ProgressService {
	return &ProgressService{jobs: jobs, progress: progress, prefs: prefs}
}

// PreviewBlocks returns the per-day segmentation a job would receive if it
// started on the given date, without persisting anything.
func (s *ProgressService) PreviewBlocks(ctx context.Context, jobID uint, start string) ([]scheduling.ScheduleBlock, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	startDate, err := scheduling.ParseCalendarDate(start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	prefs, err := s.prefs.GetByContractor(ctx, job.ContractorID)
	if err != nil {
		return nil, err
	}
	return scheduling.GenerateScheduleBlocks(startDate, job.EstimatedDuration, prefs.Policy()), nil
}

// SubmitDailyReport records one working day's completion handoff. The
// progress record and its end-of-day handoff are written in a single
// transaction; a duplicate submission for an already-reported day is
// rejected, keeping day numbers contiguous. Reaching 100% completes the job.
func (s *ProgressService) SubmitDailyReport(ctx context.Context, jobID uint, report DailyReport) (*models.DailyProgressRecord, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !job.IsMultiDay {
		return nil, ErrNotMultiDay
	}
	if job.Status != models.JobStatusScheduled && job.Status != models.JobStatusInProgress {
		return nil, fmt.Errorf("%w: job is %s", ErrInvalidTransition, job.Status)
	}
	if len(report.WorkCompleted) == 0 {
		return nil, fmt.Errorf("at least one work completed item is required")
	}

	date, err := scheduling.ParseCalendarDate(report.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid report date: %w", err)
	}

	prefs, err := s.prefs.GetByContractor(ctx, job.ContractorID)
	if err != nil {
		return nil, err
	}
	if !prefs.Policy().IsWorkingDay(date) {
		return nil, fmt.Errorf("%s is not a working day", date)
	}

	dayNumber := 1
	last, err := s.progress.LastRecord(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if last != nil {
		if date <= scheduling.CalendarDate(last.Date) {
			return nil, fmt.Errorf("%w: day %d was reported for %s", ErrReportOutOfOrder, last.DayNumber, last.Date)
		}
		dayNumber = last.DayNumber + 1
	}

	status := models.ProgressStatusInProgress
	if report.PercentComplete >= 100 {
		status = models.ProgressStatusCompleted
	}

	record := &models.DailyProgressRecord{
		JobID:           jobID,
		Date:            date.String(),
		DayNumber:       dayNumber,
		CrewIDs:         models.UintSlice(report.CrewIDs),
		LeadTechID:      report.LeadTechID,
		HoursWorked:     report.HoursWorked,
		PercentComplete: report.PercentComplete,
		WorkCompleted:   models.StringSlice(report.WorkCompleted),
		Issues:          models.StringSlice(report.Issues),
		Status:          status,
	}
	handoff := &models.HandoffRecord{
		JobID:              jobID,
		Type:               models.HandoffTypeEndOfDay,
		Date:               date.String(),
		DayNumber:          dayNumber,
		LeadTechID:         report.LeadTechID,
		FromCrewIDs:        models.UintSlice(report.CrewIDs),
		ToCrewIDs:          models.UintSlice(report.NextCrewIDs),
		WorkCompletedToday: models.StringSlice(report.WorkCompleted),
		WorkRemaining:      models.StringSlice(report.WorkRemaining),
		Issues:             models.StringSlice(report.Issues),
		MaterialsNeeded:    models.StringSlice(report.MaterialsNeeded),
		SafetyNotes:        report.SafetyNotes,
		CustomerNotes:      report.CustomerNotes,
	}

	if err := s.progress.CreateWithHandoff(ctx, record, handoff); err != nil {
		return nil, err
	}

	nextStatus := models.JobStatusInProgress
	if report.PercentComplete >= 100 {
		nextStatus = models.JobStatusCompleted
	}
	if job.Status != nextStatus {
		if err := s.jobs.UpdateStatus(ctx, jobID, nextStatus); err != nil {
			return nil, err
		}
	}

	logger.InfoWithFields("daily report recorded", map[string]interface{}{
		"job_id":           jobID,
		"day_number":       dayNumber,
		"percent_complete": report.PercentComplete,
	})
	return record, nil
}

// ListProgress returns all daily progress records for a job in day order.
func (s *ProgressService) ListProgress(ctx context.Context, jobID uint) ([]models.DailyProgressRecord, error) {
	return s.progress.ListByJob(ctx, jobID)
}

// HandoffForDay returns the end-of-day handoff read by the crew starting
// the following day's segment.
func (s *ProgressService) HandoffForDay(ctx context.Context, jobID uint, dayNumber int) (*models.HandoffRecord, error) {
	return s.progress.GetHandoff(ctx, jobID, dayNumber)
}

// ListHandoffs returns all handoffs for a job in day order.
func (s *ProgressService) ListHandoffs(ctx context.Context, jobID uint) ([]models.HandoffRecord, error) {
	return s.progress.ListHandoffs(ctx, jobID)
}
