// Package repos provides database repositories for the scheduling entities
package repos

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/kribhq/krib/internal/db/models"
)

// JobRepository handles database operations for jobs
type JobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new instance of JobRepository
func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create creates a new job in the database
func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

// GetByID retrieves a job by ID from the database
func (r *JobRepository) GetByID(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	if err := r.db.WithContext(ctx).First(&job, id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// GetByJobNumber retrieves a job by its human-readable job number
func (r *JobRepository) GetByJobNumber(ctx context.Context, jobNumber string) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).
		Where(models.Job{JobNumber: jobNumber}).
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// List retrieves jobs with pagination and optional status filtering
func (r *JobRepository) List(ctx context.Context, opts *models.ListOptions) ([]models.Job, error) {
	var jobs []models.Job
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if opts != nil {
		opts.Normalize()
		if opts.JobStatus != nil {
			query = query.Where(models.JobStatusField+" = ?", *opts.JobStatus)
		}
		query = query.Limit(opts.Limit).Offset(opts.Offset)
	}
	err := query.Find(&jobs).Error
	return jobs, err
}

// ListByContractor retrieves a contractor's jobs with pagination
func (r *JobRepository) ListByContractor(ctx context.Context, contractorID uint, opts *models.ListOptions) ([]models.Job, error) {
	var jobs []models.Job
	query := r.db.WithContext(ctx).
		Where(models.Job{ContractorID: contractorID}).
		Order("created_at DESC")
	if opts != nil {
		opts.Normalize()
		if opts.JobStatus != nil {
			query = query.Where(models.JobStatusField+" = ?", *opts.JobStatus)
		}
		query = query.Limit(opts.Limit).Offset(opts.Offset)
	}
	err := query.Find(&jobs).Error
	return jobs, err
}

// Save persists the full job row, including cleared offer fields. Used by
// the services after mutating embedded slot batches in memory.
func (r *JobRepository) Save(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Save(job).Error
}

// UpdateStatus updates only the status of a job
func (r *JobRepository) UpdateStatus(ctx context.Context, id uint, status models.JobStatus) error {
	return r.db.WithContext(ctx).Model(&models.Job{}).
		Where("id = ?", id).
		Update(models.JobStatusField, status).Error
}

// ListStaleOffers retrieves jobs whose offer batch was made before the
// cutoff and has not yet received a customer response. Used by the expiry
// sweep.
func (r *JobRepository) ListStaleOffers(ctx context.Context, cutoff time.Time) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Where(models.JobStatusField+" = ?", models.JobStatusSlotsOffered).
		Where(models.JobOfferedAtField+" < ?", cutoff).
		Find(&jobs).Error
	return jobs, err
}
