package services

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/kribhq/krib/internal/db/models"
)

type ProgressServiceTestSuite struct {
	ServiceTestSuite
}

// scheduleMultiDayJob drives a 1000-minute job through offer and accept so
// progress reporting starts from a scheduled job. Work begins Friday
// 2025-06-06.
func (s *ProgressServiceTestSuite) scheduleMultiDayJob() *models.Job {
	s.freezeClock()
	job := s.createTestJob(1000)

	offered, err := s.offerSvc.CreateOffer(s.ctx, job.ID, []SlotRequest{
		{Date: "2025-06-06", StartTime: "08:00", EndTime: "12:00"},
	}, "")
	s.Require().NoError(err)

	scheduled, err := s.offerSvc.AcceptSlot(s.ctx, job.ID, offered.OfferedSlots[0].ID)
	s.Require().NoError(err)
	return scheduled
}

func (s *ProgressServiceTestSuite) report(date string, percent int) DailyReport {
	return DailyReport{
		Date:            date,
		CrewIDs:         []uint{1, 2},
		LeadTechID:      1,
		HoursWorked:     8,
		PercentComplete: percent,
		WorkCompleted:   []string{"framing"},
		WorkRemaining:   []string{"drywall"},
	}
}

func (s *ProgressServiceTestSuite) TestSubmitDailyReport() {
	job := s.scheduleMultiDayJob()

	record, err := s.progressSvc.SubmitDailyReport(s.ctx, job.ID, s.report("2025-06-06", 40))
	s.Require().NoError(err)
	s.Require().Equal(1, record.DayNumber)
	s.Require().Equal(models.ProgressStatusInProgress, record.Status)

	updated, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Require().Equal(models.JobStatusInProgress, updated.Status)

	// The matching handoff exists and carries the forward-looking fields.
	handoff, err := s.progressSvc.HandoffForDay(s.ctx, job.ID, 1)
	s.Require().NoError(err)
	s.Require().Equal(models.HandoffTypeEndOfDay, handoff.Type)
	s.Require().Equal(models.StringSlice{"drywall"}, handoff.WorkRemaining)
}

func (s *ProgressServiceTestSuite) TestDayNumbersAreContiguousAcrossWeekend() {
	job := s.scheduleMultiDayJob()

	r1, err := s.progressSvc.SubmitDailyReport(s.ctx, job.ID, s.report("2025-06-06", 40))
	s.Require().NoError(err)
	s.Require().Equal(1, r1.DayNumber)

	// Monday follows Friday as day 2: weekends don't consume day numbers.
	r2, err := s.progressSvc.SubmitDailyReport(s.ctx, job.ID, s.report("2025-06-09", 80))
	s.Require().NoError(err)
	s.Require().Equal(2, r2.DayNumber)

	records, err := s.progressSvc.ListProgress(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Require().Len(records, 2)
}

func (s *ProgressServiceTestSuite) TestRejectsWeekendReport() {
	job := s.scheduleMultiDayJob()

	// 2025-06-07 is a Saturday.
	_, err := s.progressSvc.SubmitDailyReport(s.ctx, job.ID, s.report("2025-06-07", 40))
	s.Require().Error(err)
}

func (s *ProgressServiceTestSuite) TestRejectsDuplicateAndOutOfOrderDays() {
	job := s.scheduleMultiDayJob()

	_, err := s.progressSvc.SubmitDailyReport(s.ctx, job.ID, s.report("2025-06-06", 40))
	s.Require().NoError(err)

	// Same day again.
	_, err = s.progressSvc.SubmitDailyReport(s.ctx, job.ID, s.report("2025-06-06", 50))
	s.Require().ErrorIs(err, ErrReportOutOfOrder)

	// A date before the last report.
	_, err = s.progressSvc.SubmitDailyReport(s.ctx, job.ID, s.report("2025-06-05", 50))
	s.Require().ErrorIs(err, ErrReportOutOfOrder)
}

func (s *ProgressServiceTestSuite) TestRejectsMissingWorkItems() {
	job := s.scheduleMultiDayJob()

	report := s.report("2025-06-06", 40)
	report.WorkCompleted = nil
	_, err := s.progressSvc.SubmitDailyReport(s.ctx, job.ID, report)
	s.Require().Error(err)

	records, err := s.progressSvc.ListProgress(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Require().Empty(records)
}

func (s *ProgressServiceTestSuite) TestHundredPercentCompletesJob() {
	job := s.scheduleMultiDayJob()

	_, err := s.progressSvc.SubmitDailyReport(s.ctx, job.ID, s.report("2025-06-06", 60))
	s.Require().NoError(err)

	record, err := s.progressSvc.SubmitDailyReport(s.ctx, job.ID, s.report("2025-06-09", 100))
	s.Require().NoError(err)
	s.Require().Equal(models.ProgressStatusCompleted, record.Status)

	done, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Require().Equal(models.JobStatusCompleted, done.Status)

	// No further reports once the job completed.
	_, err = s.progressSvc.SubmitDailyReport(s.ctx, job.ID, s.report("2025-06-10", 100))
	s.Require().ErrorIs(err, ErrInvalidTransition)
}

func (s *ProgressServiceTestSuite) TestRejectsSingleDayJob() {
	s.freezeClock()
	job := s.createTestJob(240)

	offered, err := s.offerSvc.CreateOffer(s.ctx, job.ID, []SlotRequest{
		{Date: "2025-06-03", StartTime: "09:00", EndTime: "12:00"},
	}, "")
	s.Require().NoError(err)
	_, err = s.offerSvc.AcceptSlot(s.ctx, job.ID, offered.OfferedSlots[0].ID)
	s.Require().NoError(err)

	_, err = s.progressSvc.SubmitDailyReport(s.ctx, job.ID, s.report("2025-06-03", 100))
	s.Require().ErrorIs(err, ErrNotMultiDay)
}

func (s *ProgressServiceTestSuite) TestPreviewBlocks() {
	job := s.scheduleMultiDayJob()

	blocks, err := s.progressSvc.PreviewBlocks(s.ctx, job.ID, "2025-06-06")
	s.Require().NoError(err)
	s.Require().Len(blocks, 3)

	_, err = s.progressSvc.PreviewBlocks(s.ctx, job.ID, "soon")
	s.Require().Error(err)
}

func TestProgressServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProgressServiceTestSuite))
}
