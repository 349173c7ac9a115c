package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/kribhq/krib/internal/db/models"
)

// ProgressRepository handles database operations for multi-day job progress
type ProgressRepository struct {
	db *gorm.DB
}

// NewProgressRepository creates a new instance of ProgressRepository
func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// CreateWithHandoff creates a daily progress record and its end-of-day
// handoff in a single transaction so both exist or neither does. The unique
// (job_id, day_number) index rejects a duplicate submission for the same day.
func (r *ProgressRepository) CreateWithHandoff(ctx context.Context, record *models.DailyProgressRecord, handoff *models.HandoffRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		return tx.Create(handoff).Error
	})
}

// ListByJob retrieves all progress records for a job in day order
func (r *ProgressRepository) ListByJob(ctx context.Context, jobID uint) ([]models.DailyProgressRecord, error) {
	var records []models.DailyProgressRecord
	err := r.db.WithContext(ctx).
		Where(models.DailyProgressRecord{JobID: jobID}).
		Order("day_number").
		Find(&records).Error
	return records, err
}

// LastRecord retrieves the most recent progress record for a job, or nil
// when no day has been reported yet.
func (r *ProgressRepository) LastRecord(ctx context.Context, jobID uint) (*models.DailyProgressRecord, error) {
	var record models.DailyProgressRecord
	err := r.db.WithContext(ctx).
		Where(models.DailyProgressRecord{JobID: jobID}).
		Order("day_number DESC").
		First(&record).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetHandoff retrieves the handoff for a specific day of a job
func (r *ProgressRepository) GetHandoff(ctx context.Context, jobID uint, dayNumber int) (*models.HandoffRecord, error) {
	var handoff models.HandoffRecord
	err := r.db.WithContext(ctx).
		Where(models.HandoffRecord{JobID: jobID, DayNumber: dayNumber}).
		First(&handoff).Error
	if err != nil {
		return nil, err
	}
	return &handoff, nil
}

// ListHandoffs retrieves all handoffs for a job in day order
func (r *ProgressRepository) ListHandoffs(ctx context.Context, jobID uint) ([]models.HandoffRecord, error) {
	var handoffs []models.HandoffRecord
	err := r.db.WithContext(ctx).
		Where(models.HandoffRecord{JobID: jobID}).
		Order("day_number").
		Find(&handoffs).Error
	return handoffs, err
}
