package models

import (
	"fmt"

	"gorm.io/gorm"
)

// TechnicianRole represents a technician's role on a crew
type TechnicianRole string

// Technician role constants
const (
	TechnicianRoleLead       TechnicianRole = "lead"
	TechnicianRoleTechnician TechnicianRole = "technician"
	TechnicianRoleApprentice TechnicianRole = "apprentice"
)

// Technician is a contractor crew member. Time-off entries are scoped to a
// technician; a technician may hold any number of concurrent job assignments.
type Technician struct {
	gorm.Model
	ContractorID uint           `json:"contractor_id" gorm:"not null;index"`
	Name         string         `json:"name" gorm:"not null"`
	Email        string         `json:"email,omitempty"`
	Role         TechnicianRole `json:"role"`
	Active       bool           `json:"active" gorm:"not null;default:true"`
}

// Validate ensures that the technician data is valid
func (t *Technician) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("technician name cannot be empty")
	}
	if t.ContractorID == 0 {
		return fmt.Errorf("technician contractor id is required")
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new technician
func (t *Technician) BeforeCreate(_ *gorm.DB) error {
	if t.Role == "" {
		t.Role = TechnicianRoleTechnician
	}
	return t.Validate()
}
