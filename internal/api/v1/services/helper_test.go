package services

import (
	"context"
	"fmt"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kribhq/krib/internal/db/models"
	"github.com/kribhq/krib/internal/db/repos"
)

// ServiceTestSuite wires the services against an in-memory database. The
// availability cache is disabled (nil Redis client) in tests.
type ServiceTestSuite struct {
	suite.Suite
	db  *gorm.DB
	ctx context.Context

	jobRepo      *repos.JobRepository
	timeOffRepo  *repos.TimeOffRepository
	progressRepo *repos.ProgressRepository
	prefsRepo    *repos.PreferencesRepository

	jobSvc      *JobService
	availSvc    *AvailabilityService
	offerSvc    *OfferService
	progressSvc *ProgressService

	jobSeq int
}

func (s *ServiceTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_json=1"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err, "Failed to create in-memory database")

	err = db.AutoMigrate(
		&models.Job{},
		&models.Technician{},
		&models.TimeOffEntry{},
		&models.SchedulingPreferences{},
		&models.DailyProgressRecord{},
		&models.HandoffRecord{},
	)
	require.NoError(s.T(), err, "Failed to run database migrations")

	s.db = db
	s.ctx = context.Background()

	s.jobRepo = repos.NewJobRepository(db)
	s.timeOffRepo = repos.NewTimeOffRepository(db)
	s.progressRepo = repos.NewProgressRepository(db)
	s.prefsRepo = repos.NewPreferencesRepository(db)

	s.jobSvc = NewJobService(s.jobRepo, s.prefsRepo)
	s.availSvc = NewAvailabilityService(s.timeOffRepo, nil)
	s.offerSvc = NewOfferService(s.jobRepo, s.prefsRepo, s.availSvc)
	s.progressSvc = NewProgressService(s.jobRepo, s.progressRepo, s.prefsRepo)
}

func (s *ServiceTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	if err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}
}

// freezeClock pins the offer service clock so offer windows are stable.
// 2025-06-02 is a Monday.
var testNow = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

func (s *ServiceTestSuite) freezeClock() {
	s.offerSvc.now = func() time.Time { return testNow }
}

func (s *ServiceTestSuite) createTestJob(duration int) *models.Job {
	s.jobSeq++
	job := &models.Job{
		JobNumber:         fmt.Sprintf("KRB-SVC-%04d", s.jobSeq),
		ContractorID:      1,
		CustomerID:        2,
		EstimatedDuration: duration,
	}
	created, err := s.jobSvc.CreateJob(s.ctx, job)
	s.Require().NoError(err)
	return created
}

func (s *ServiceTestSuite) createApprovedTimeOff(techID uint, start, end string) *models.TimeOffEntry {
	entry := &models.TimeOffEntry{
		TechID:    techID,
		StartDate: start,
		EndDate:   end,
		Type:      models.TimeOffTypeVacation,
		Status:    models.TimeOffStatusApproved,
	}
	s.Require().NoError(s.availSvc.CreateTimeOff(s.ctx, entry))
	return entry
}
