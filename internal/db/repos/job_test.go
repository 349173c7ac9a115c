package repos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/kribhq/krib/internal/db/models"
)

type JobRepositoryTestSuite struct {
	DBRepositoryTestSuite
}

func (s *JobRepositoryTestSuite) TestCreateJob() {
	job := s.createTestJob(480)
	s.Require().NotZero(job.ID)

	created, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Require().Equal(job.JobNumber, created.JobNumber)
	s.Require().Equal(models.JobStatusPendingSchedule, created.Status)
	s.Require().Equal(480, created.EstimatedDuration)
	s.Require().Equal(models.CrewRequirements{Required: 2, Minimum: 1, Maximum: 4}, created.CrewRequirements)
}

func (s *JobRepositoryTestSuite) TestCreateJobDefaults() {
	job := &models.Job{ContractorID: 1, EstimatedDuration: 120}
	s.Require().NoError(s.jobRepo.Create(s.ctx, job))

	created, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Require().NotEmpty(created.JobNumber)
	s.Require().Equal(models.JobStatusPendingSchedule, created.Status)
	s.Require().Equal(models.JobPriorityNormal, created.Priority)
}

func (s *JobRepositoryTestSuite) TestGetByJobNumber() {
	job := s.createTestJob(600)

	found, err := s.jobRepo.GetByJobNumber(s.ctx, job.JobNumber)
	s.Require().NoError(err)
	s.Require().Equal(job.ID, found.ID)

	_, err = s.jobRepo.GetByJobNumber(s.ctx, "KRB-DOES-NOT-EXIST")
	s.Require().Error(err)
}

func (s *JobRepositoryTestSuite) TestListFiltersByStatus() {
	s.createTestJob(480)
	offered := s.createTestJob(480)
	s.Require().NoError(s.jobRepo.UpdateStatus(s.ctx, offered.ID, models.JobStatusSlotsOffered))

	status := models.JobStatusSlotsOffered
	jobs, err := s.jobRepo.List(s.ctx, &models.ListOptions{JobStatus: &status})
	s.Require().NoError(err)
	s.Require().Len(jobs, 1)
	s.Require().Equal(offered.ID, jobs[0].ID)

	jobs, err = s.jobRepo.List(s.ctx, &models.ListOptions{})
	s.Require().NoError(err)
	s.Require().Len(jobs, 2)
}

func (s *JobRepositoryTestSuite) TestSavePersistsOfferState() {
	job := s.createTestJob(480)

	now := time.Now().UTC().Truncate(time.Second)
	job.Status = models.JobStatusSlotsOffered
	job.OfferedAt = &now
	job.OfferedMessage = "Two windows available this week"
	job.OfferedSlots = models.OfferedSlots{
		{ID: "slot-1", Start: now.Add(24 * time.Hour), End: now.Add(27 * time.Hour), Status: models.SlotStatusOffered, OfferedAt: now},
	}
	s.Require().NoError(s.jobRepo.Save(s.ctx, job))

	saved, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Require().Equal(models.JobStatusSlotsOffered, saved.Status)
	s.Require().Len(saved.OfferedSlots, 1)
	s.Require().Equal("slot-1", saved.OfferedSlots[0].ID)
	s.Require().Equal(models.SlotStatusOffered, saved.OfferedSlots[0].Status)

	// Clearing the customer flag persists a false value too.
	saved.RequestedNewTimes = true
	s.Require().NoError(s.jobRepo.Save(s.ctx, saved))
	saved.RequestedNewTimes = false
	s.Require().NoError(s.jobRepo.Save(s.ctx, saved))

	again, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Require().False(again.RequestedNewTimes)
}

func (s *JobRepositoryTestSuite) TestListStaleOffers() {
	fresh := s.createTestJob(480)
	stale := s.createTestJob(480)

	now := time.Now().UTC()
	old := now.Add(-100 * time.Hour)

	fresh.Status = models.JobStatusSlotsOffered
	fresh.OfferedAt = &now
	s.Require().NoError(s.jobRepo.Save(s.ctx, fresh))

	stale.Status = models.JobStatusSlotsOffered
	stale.OfferedAt = &old
	s.Require().NoError(s.jobRepo.Save(s.ctx, stale))

	jobs, err := s.jobRepo.ListStaleOffers(s.ctx, now.Add(-72*time.Hour))
	s.Require().NoError(err)
	s.Require().Len(jobs, 1)
	s.Require().Equal(stale.ID, jobs[0].ID)
}

func TestJobRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(JobRepositoryTestSuite))
}
