package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/kribhq/krib/internal/db/models"
)

// TechnicianRepository handles database operations for technicians
type TechnicianRepository struct {
	db *gorm.DB
}

// NewTechnicianRepository creates a new instance of TechnicianRepository
func NewTechnicianRepository(db *gorm.DB) *TechnicianRepository {
	return &TechnicianRepository{db: db}
}

// Create creates a new technician in the database
func (r *TechnicianRepository) Create(ctx context.Context, tech *models.Technician) error {
	return r.db.WithContext(ctx).Create(tech).Error
}

// GetByID retrieves a technician by ID
func (r *TechnicianRepository) GetByID(ctx context.Context, id uint) (*models.Technician, error) {
	var tech models.Technician
	if err := r.db.WithContext(ctx).First(&tech, id).Error; err != nil {
		return nil, err
	}
	return &tech, nil
}

// ListByContractor retrieves all technicians on a contractor's crew
func (r *TechnicianRepository) ListByContractor(ctx context.Context, contractorID uint) ([]models.Technician, error) {
	var techs []models.Technician
	err := r.db.WithContext(ctx).
		Where(models.Technician{ContractorID: contractorID}).
		Order("name").
		Find(&techs).Error
	return techs, err
}
