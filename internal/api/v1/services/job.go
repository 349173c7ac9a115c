package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kribhq/krib/internal/db/models"
	"github.com/kribhq/krib/internal/db/repos"
)

// JobService provides business logic for job operations
type JobService struct {
	repo  *repos.JobRepository
	prefs *repos.PreferencesRepository
}

// NewJobService creates a new job service instance
func NewJobService(repo *repos.JobRepository, prefs *repos.PreferencesRepository) *JobService {
	return &JobService{repo: repo, prefs: prefs}
}

// CreateJob creates a new job. The multi-day flag is derived from the
// estimated duration against the contractor's daily capacity; crew size does
// not factor in.
func (s *JobService) CreateJob(ctx context.Context, job *models.Job) (*models.Job, error) {
	prefs, err := s.prefs.GetByContractor(ctx, job.ContractorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scheduling preferences: %w", err)
	}
	job.IsMultiDay = prefs.Policy().IsMultiDay(job.EstimatedDuration)

	return job, s.repo.Create(ctx, job)
}

// GetJob retrieves a job by its ID
func (s *JobService) GetJob(ctx context.Context, id uint) (*models.Job, error) {
	return s.repo.GetByID(ctx, id)
}

// GetJobByNumber retrieves a job by its human-readable job number
func (s *JobService) GetJobByNumber(ctx context.Context, jobNumber string) (*models.Job, error) {
	return s.repo.GetByJobNumber(ctx, jobNumber)
}

// ListJobs retrieves a paginated list of jobs
func (s *JobService) ListJobs(ctx context.Context, opts *models.ListOptions) ([]models.Job, error) {
	return s.repo.List(ctx, opts)
}

// ListContractorJobs retrieves a contractor's jobs
func (s *JobService) ListContractorJobs(ctx context.Context, contractorID uint, opts *models.ListOptions) ([]models.Job, error) {
	return s.repo.ListByContractor(ctx, contractorID, opts)
}

// UpdateJobStatus transitions a job's status, enforcing the state machine.
func (s *JobService) UpdateJobStatus(ctx context.Context, id uint, status models.JobStatus) error {
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !models.CanTransition(job.Status, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, job.Status, status)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

// AssignTechs sets the technicians claimed on a job. No exclusivity is
// enforced; a technician may hold any number of concurrent assignments.
func (s *JobService) AssignTechs(ctx context.Context, id uint, techIDs []uint) (*models.Job, error) {
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	job.AssignedTechIDs = models.UintSlice(techIDs)
	if err := s.repo.Save(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// RecordCustomerPreferences stores advisory scheduling hints verbatim. They
// are surfaced back to the contractor when building the next offer and are
// never validated or enforced.
func (s *JobService) RecordCustomerPreferences(ctx context.Context, id uint, prefs json.RawMessage) error {
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	job.CustomerPreferences = prefs
	return s.repo.Save(ctx, job)
}
