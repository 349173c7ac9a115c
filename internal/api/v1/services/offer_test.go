package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/kribhq/krib/internal/db/models"
)

type OfferServiceTestSuite struct {
	ServiceTestSuite
}

func (s *OfferServiceTestSuite) offerSlots() []SlotRequest {
	// Tuesday and Wednesday following the frozen Monday clock.
	return []SlotRequest{
		{Date: "2025-06-03", StartTime: "09:00", EndTime: "12:00"},
		{Date: "2025-06-04", StartTime: "13:00", EndTime: "16:00"},
	}
}

func (s *OfferServiceTestSuite) TestCreateOffer() {
	s.freezeClock()
	job := s.createTestJob(240)

	updated, err := s.offerSvc.CreateOffer(s.ctx, job.ID, s.offerSlots(), "Either afternoon works for us")
	s.Require().NoError(err)

	s.Require().Equal(models.JobStatusSlotsOffered, updated.Status)
	s.Require().Len(updated.OfferedSlots, 2)
	s.Require().Equal(models.SlotStatusOffered, updated.OfferedSlots[0].Status)
	s.Require().NotEmpty(updated.OfferedSlots[0].ID)
	s.Require().Equal(
		time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC),
		updated.OfferedSlots[0].Start)
	s.Require().Equal(
		time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC),
		updated.OfferedSlots[0].End)
	s.Require().NotNil(updated.OfferedAt)
	s.Require().False(updated.RequestedNewTimes)
	s.Require().NotEmpty(updated.OfferSummary)
}

func (s *OfferServiceTestSuite) TestCreateOfferRejectsBatchSize() {
	s.freezeClock()
	job := s.createTestJob(240)

	_, err := s.offerSvc.CreateOffer(s.ctx, job.ID, nil, "")
	s.Require().ErrorIs(err, ErrNoSlots)

	six := make([]SlotRequest, 6)
	for i := range six {
		six[i] = SlotRequest{Date: "2025-06-03", StartTime: "09:00", EndTime: "10:00"}
	}
	_, err = s.offerSvc.CreateOffer(s.ctx, job.ID, six, "")
	s.Require().ErrorIs(err, ErrTooManySlots)

	// Rejected before any persistence: the job is untouched.
	fresh, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Require().Equal(models.JobStatusPendingSchedule, fresh.Status)
	s.Require().Empty(fresh.OfferedSlots)
}

func (s *OfferServiceTestSuite) TestCreateOfferRejectsSunday() {
	s.freezeClock()
	job := s.createTestJob(240)

	// 2025-06-08 is a Sunday.
	_, err := s.offerSvc.CreateOffer(s.ctx, job.ID, []SlotRequest{
		{Date: "2025-06-08", StartTime: "09:00", EndTime: "12:00"},
	}, "")
	s.Require().ErrorIs(err, ErrSlotOutsideWindow)

	// Far-future dates fall outside the rolling window too.
	_, err = s.offerSvc.CreateOffer(s.ctx, job.ID, []SlotRequest{
		{Date: "2025-09-01", StartTime: "09:00", EndTime: "12:00"},
	}, "")
	s.Require().ErrorIs(err, ErrSlotOutsideWindow)
}

func (s *OfferServiceTestSuite) TestCreateOfferRejectsInvertedWindow() {
	s.freezeClock()
	job := s.createTestJob(240)

	_, err := s.offerSvc.CreateOffer(s.ctx, job.ID, []SlotRequest{
		{Date: "2025-06-03", StartTime: "12:00", EndTime: "09:00"},
	}, "")
	s.Require().Error(err)
}

func (s *OfferServiceTestSuite) TestCreateOfferHonorsTimeOff() {
	s.freezeClock()
	job := s.createTestJob(240)

	_, err := s.jobSvc.AssignTechs(s.ctx, job.ID, []uint{42})
	s.Require().NoError(err)
	s.createApprovedTimeOff(42, "2025-06-03", "2025-06-03")

	_, err = s.offerSvc.CreateOffer(s.ctx, job.ID, []SlotRequest{
		{Date: "2025-06-03", StartTime: "09:00", EndTime: "12:00"},
	}, "")
	s.Require().ErrorIs(err, ErrSlotDateBlocked)

	// The day after the leave is fine.
	_, err = s.offerSvc.CreateOffer(s.ctx, job.ID, []SlotRequest{
		{Date: "2025-06-04", StartTime: "09:00", EndTime: "12:00"},
	}, "")
	s.Require().NoError(err)
}

func (s *OfferServiceTestSuite) TestBlockedSlotNamesFirstAssignedTech() {
	s.freezeClock()
	job := s.createTestJob(240)

	_, err := s.jobSvc.AssignTechs(s.ctx, job.ID, []uint{42, 7})
	s.Require().NoError(err)
	s.createApprovedTimeOff(42, "2025-06-03", "2025-06-03")
	s.createApprovedTimeOff(7, "2025-06-03", "2025-06-03")

	_, err = s.offerSvc.CreateOffer(s.ctx, job.ID, []SlotRequest{
		{Date: "2025-06-03", StartTime: "09:00", EndTime: "12:00"},
	}, "")
	s.Require().ErrorIs(err, ErrSlotDateBlocked)
	s.Require().ErrorContains(err, "tech 42")
}

func (s *OfferServiceTestSuite) TestReofferSupersedesPriorBatch() {
	s.freezeClock()
	job := s.createTestJob(240)

	first, err := s.offerSvc.CreateOffer(s.ctx, job.ID, s.offerSlots(), "")
	s.Require().NoError(err)
	firstIDs := []string{first.OfferedSlots[0].ID, first.OfferedSlots[1].ID}

	s.Require().NoError(s.offerSvc.RequestNewTimes(s.ctx, job.ID))

	second, err := s.offerSvc.CreateOffer(s.ctx, job.ID, []SlotRequest{
		{Date: "2025-06-05", StartTime: "09:00", EndTime: "12:00"},
	}, "How about Thursday instead")
	s.Require().NoError(err)

	s.Require().False(second.RequestedNewTimes)
	s.Require().Len(second.OfferedSlots, 3)
	for _, id := range firstIDs {
		s.Require().Equal(models.SlotStatusSuperseded, second.OfferedSlots.Find(id).Status)
	}

	// A superseded slot can no longer be accepted.
	_, err = s.offerSvc.AcceptSlot(s.ctx, job.ID, firstIDs[0])
	s.Require().ErrorIs(err, ErrSlotNotOffered)
}

func (s *OfferServiceTestSuite) TestAcceptSlot() {
	s.freezeClock()
	job := s.createTestJob(240)

	offered, err := s.offerSvc.CreateOffer(s.ctx, job.ID, s.offerSlots(), "")
	s.Require().NoError(err)

	accepted, err := s.offerSvc.AcceptSlot(s.ctx, job.ID, offered.OfferedSlots[0].ID)
	s.Require().NoError(err)

	s.Require().Equal(models.JobStatusScheduled, accepted.Status)
	s.Require().Equal(models.SlotStatusAccepted, accepted.OfferedSlots[0].Status)
	s.Require().Equal(models.SlotStatusDeclined, accepted.OfferedSlots[1].Status)
	s.Require().Equal("2025-06-03", accepted.ScheduledDate)
	s.Require().Equal("09:00", accepted.ScheduledTime)
	s.Require().Empty(accepted.ScheduleBlocks, "single-day jobs get no blocks")
}

func (s *OfferServiceTestSuite) TestAcceptSlotGeneratesBlocksForMultiDay() {
	s.freezeClock()
	// 1000 minutes: 480 + 480 + 40 across working days.
	job := s.createTestJob(1000)
	s.Require().True(job.IsMultiDay)

	// Offer Friday so the segmentation has to skip a weekend.
	offered, err := s.offerSvc.CreateOffer(s.ctx, job.ID, []SlotRequest{
		{Date: "2025-06-06", StartTime: "08:00", EndTime: "12:00"},
	}, "")
	s.Require().NoError(err)

	accepted, err := s.offerSvc.AcceptSlot(s.ctx, job.ID, offered.OfferedSlots[0].ID)
	s.Require().NoError(err)

	s.Require().Len(accepted.ScheduleBlocks, 3)
	s.Require().Equal("2025-06-06", accepted.ScheduleBlocks[0].Date)
	s.Require().Equal("2025-06-09", accepted.ScheduleBlocks[1].Date)
	s.Require().Equal("2025-06-10", accepted.ScheduleBlocks[2].Date)
	s.Require().Equal("08:40", accepted.ScheduleBlocks[2].EndTime)

	total := 0
	for _, b := range accepted.ScheduleBlocks {
		total += b.Minutes
	}
	s.Require().Equal(1000, total)
}

func (s *OfferServiceTestSuite) TestExpireStaleOffers() {
	s.freezeClock()
	job := s.createTestJob(240)

	offered, err := s.offerSvc.CreateOffer(s.ctx, job.ID, s.offerSlots(), "")
	s.Require().NoError(err)

	// Within the TTL nothing expires.
	n, err := s.offerSvc.ExpireStaleOffers(s.ctx, testNow.Add(time.Hour))
	s.Require().NoError(err)
	s.Require().Zero(n)

	// Past the default 72h TTL the batch is retired.
	n, err = s.offerSvc.ExpireStaleOffers(s.ctx, testNow.Add(80*time.Hour))
	s.Require().NoError(err)
	s.Require().Equal(1, n)

	expired, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Require().Equal(models.JobStatusPendingSchedule, expired.Status)
	for _, slot := range expired.OfferedSlots {
		s.Require().Equal(models.SlotStatusExpired, slot.Status)
	}

	// An expired slot cannot be accepted.
	_, err = s.offerSvc.AcceptSlot(s.ctx, job.ID, offered.OfferedSlots[0].ID)
	s.Require().Error(err)
}

func (s *OfferServiceTestSuite) TestSuggestSlots() {
	s.freezeClock()
	job := s.createTestJob(240)

	_, err := s.jobSvc.AssignTechs(s.ctx, job.ID, []uint{7})
	s.Require().NoError(err)
	// Tech 7 is out Tuesday through Thursday.
	s.createApprovedTimeOff(7, "2025-06-03", "2025-06-05")

	suggestions, err := s.offerSvc.SuggestSlots(s.ctx, job.ID, 3)
	s.Require().NoError(err)
	s.Require().Len(suggestions, 3)
	// Friday, Saturday, then Monday: Sunday is never suggested.
	s.Require().Equal("2025-06-06", suggestions[0].Date)
	s.Require().Equal("2025-06-07", suggestions[1].Date)
	s.Require().Equal("2025-06-09", suggestions[2].Date)
}

func TestOfferServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OfferServiceTestSuite))
}
