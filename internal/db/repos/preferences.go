package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kribhq/krib/internal/db/models"
)

// PreferencesRepository handles database operations for contractor
// scheduling preferences
type PreferencesRepository struct {
	db *gorm.DB
}

// NewPreferencesRepository creates a new instance of PreferencesRepository
func NewPreferencesRepository(db *gorm.DB) *PreferencesRepository {
	return &PreferencesRepository{db: db}
}

// GetByContractor retrieves a contractor's scheduling preferences. A
// contractor without a stored row gets the defaults.
func (r *PreferencesRepository) GetByContractor(ctx context.Context, contractorID uint) (*models.SchedulingPreferences, error) {
	var prefs models.SchedulingPreferences
	err := r.db.WithContext(ctx).
		Where(models.SchedulingPreferences{ContractorID: contractorID}).
		First(&prefs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		prefs = models.SchedulingPreferences{ContractorID: contractorID}
		// BeforeCreate fills the defaults without persisting here.
		if hookErr := prefs.BeforeCreate(nil); hookErr != nil {
			return nil, hookErr
		}
		return &prefs, nil
	}
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

// Upsert creates or replaces a contractor's scheduling preferences
func (r *PreferencesRepository) Upsert(ctx context.Context, prefs *models.SchedulingPreferences) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "contractor_id"}},
			UpdateAll: true,
		}).
		Create(prefs).Error
}
