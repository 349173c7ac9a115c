package repos

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/kribhq/krib/internal/db/models"
)

// TimeOffRepository handles database operations for time-off entries.
// Entries are always scoped to a single technician; there is no cross-tech
// bulk query.
type TimeOffRepository struct {
	db *gorm.DB
}

// NewTimeOffRepository creates a new instance of TimeOffRepository
func NewTimeOffRepository(db *gorm.DB) *TimeOffRepository {
	return &TimeOffRepository{db: db}
}

// Create creates a new time-off entry in the database
func (r *TimeOffRepository) Create(ctx context.Context, entry *models.TimeOffEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// GetByID retrieves an entry by its id, scoped to the owning technician
func (r *TimeOffRepository) GetByID(ctx context.Context, techID uint, id string) (*models.TimeOffEntry, error) {
	var entry models.TimeOffEntry
	err := r.db.WithContext(ctx).
		Where(models.TimeOffEntry{ID: id, TechID: techID}).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListByTech retrieves all entries for one technician
func (r *TimeOffRepository) ListByTech(ctx context.Context, techID uint) ([]models.TimeOffEntry, error) {
	var entries []models.TimeOffEntry
	err := r.db.WithContext(ctx).
		Where(models.TimeOffEntry{TechID: techID}).
		Order("start_date").
		Find(&entries).Error
	return entries, err
}

// Delete removes an entry, scoped to the owning technician
func (r *TimeOffRepository) Delete(ctx context.Context, techID uint, id string) error {
	result := r.db.WithContext(ctx).
		Where(models.TimeOffEntry{ID: id, TechID: techID}).
		Delete(&models.TimeOffEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Replace swaps an existing entry for a new one in a single transaction.
// There is no in-place mutation primitive for time off; corrections are
// remove-old/add-new.
func (r *TimeOffRepository) Replace(ctx context.Context, techID uint, oldID string, entry *models.TimeOffEntry) error {
	if entry.TechID != techID {
		return fmt.Errorf("replacement entry belongs to tech %d, not %d", entry.TechID, techID)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where(models.TimeOffEntry{ID: oldID, TechID: techID}).
			Delete(&models.TimeOffEntry{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(entry).Error
	})
}
