package repos

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
)

// DBRepositoryTestSuite provides a base test suite for repository tests
type DBRepositoryTestSuite struct {
	suite.Suite
	db           *gorm.DB
	ctx          context.Context
	jobRepo      *JobRepository
	timeOffRepo  *TimeOffRepository
	progressRepo *ProgressRepository
	techRepo     *TechnicianRepository
	prefsRepo    *PreferencesRepository

	jobSeq int
}

func (s *DBRepositoryTestSuite) SetupTest() {
	// Create new in-memory database with JSON support
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_json=1"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err, "Failed to create in-memory database")

	// Run migrations
	err = db.AutoMigrate(
		&models.Job{},
		&models.Technician{},
		&models.TimeOffEntry{},
		&models.SchedulingPreferences{},
		&models.DailyProgressRecord{},
		&models.HandoffRecord{},
	)
	require.NoError(s.T(), err, "Failed to run database migrations")

	// Initialize repositories
	s.db = db
	s.jobRepo = NewJobRepository(s.db)
	s.timeOffRepo = NewTimeOffRepository(s.db)
	s.progressRepo = NewProgressRepository(s.db)
	s.techRepo = NewTechnicianRepository(s.db)
	s.prefsRepo = NewPreferencesRepository(s.db)
	s.ctx = context.Background()
}

func (s *DBRepositoryTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	if err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}
}

// Helper methods for creating test data

func (s *DBRepositoryTestSuite) createTestJob(duration int) *models.Job {
	s.jobSeq++
	job := &models.Job{
		JobNumber:         fmt.Sprintf("KRB-TEST-%04d", s.jobSeq),
		ContractorID:      1,
		CustomerID:        2,
		Status:            models.JobStatusPendingSchedule,
		Priority:          models.JobPriorityNormal,
		Description:       "bathroom remodel",
		EstimatedDuration: duration,
		CrewRequirements:  models.CrewRequirements{Required: 2, Minimum: 1, Maximum: 4},
	}
	err := s.jobRepo.Create(s.ctx, job)
	s.Require().NoError(err)
	return job
}

func (s *DBRepositoryTestSuite) createTestTech() *models.Technician {
	tech := &models.Technician{
		ContractorID: 1,
		Name:         "Sam Ortega",
		Role:         models.TechnicianRoleLead,
		Active:       true,
	}
	err := s.techRepo.Create(s.ctx, tech)
	s.Require().NoError(err)
	return tech
}

func (s *DBRepositoryTestSuite) createTestTimeOff(techID uint, start, end string, status models.TimeOffStatus) *models.TimeOffEntry {
	entry := &models.TimeOffEntry{
		TechID:    techID,
		StartDate: start,
		EndDate:   end,
		Type:      models.TimeOffTypeVacation,
		Status:    status,
		CreatedAt: time.Now(),
		CreatedBy: techID,
	}
	err := s.timeOffRepo.Create(s.ctx, entry)
	s.Require().NoError(err)
	return entry
}
