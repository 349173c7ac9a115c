package models

import (
	"fmt"

	"gorm.io/gorm"
)

// ProgressStatus represents the state of one working day on a multi-day job
type ProgressStatus string

// Progress status constants
const (
	ProgressStatusInProgress ProgressStatus = "in_progress"
	ProgressStatusCompleted  ProgressStatus = "completed"
	ProgressStatusBlocked    ProgressStatus = "blocked"
)

// ParseProgressStatus converts a string to a ProgressStatus
func ParseProgressStatus(str string) (ProgressStatus, error) {
	switch ProgressStatus(str) {
	case ProgressStatusInProgress, ProgressStatusCompleted, ProgressStatusBlocked:
		return ProgressStatus(str), nil
	}
	return "", fmt.Errorf("invalid progress status: %s", str)
}

// HandoffTypeEndOfDay is the only handoff type currently produced.
const HandoffTypeEndOfDay = "end-of-day"

// DailyProgressRecord is one calendar workday of a multi-day job. Day
// numbers are 1-indexed, contiguous, and count working days only. Records
// are immutable once created; a correction is a new record.
type DailyProgressRecord struct {
	gorm.Model
	JobID           uint           `json:"job_id" gorm:"not null;index;uniqueIndex:idx_progress_job_day"`
	Date            string         `json:"date" gorm:"not null"` // YYYY-MM-DD
	DayNumber       int            `json:"day_number" gorm:"not null;uniqueIndex:idx_progress_job_day"`
	CrewIDs         UintSlice      `json:"crew_ids" gorm:"type:jsonb"`
	LeadTechID      uint           `json:"lead_tech_id" gorm:"not null"`
	HoursWorked     float64        `json:"hours_worked"`
	PercentComplete int            `json:"percent_complete" gorm:"not null"`
	WorkCompleted   StringSlice    `json:"work_completed" gorm:"type:jsonb"`
	Issues          StringSlice    `json:"issues,omitempty" gorm:"type:jsonb"`
	Status          ProgressStatus `json:"status" gorm:"not null"`
}

// Validate ensures that the record data is valid
func (r *DailyProgressRecord) Validate() error {
	if r.JobID == 0 {
		return fmt.Errorf("progress record job id is required")
	}
	if r.DayNumber < 1 {
		return fmt.Errorf("day number must be 1 or greater")
	}
	if r.PercentComplete < 0 || r.PercentComplete > 100 {
		return fmt.Errorf("percent complete must be between 0 and 100")
	}
	if len(r.WorkCompleted) == 0 {
		return fmt.Errorf("at least one work completed item is required")
	}
	if _, err := ParseProgressStatus(string(r.Status)); err != nil {
		return err
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new record
func (r *DailyProgressRecord) BeforeCreate(_ *gorm.DB) error {
	if r.Status == "" {
		r.Status = ProgressStatusInProgress
	}
	return r.Validate()
}

// HandoffRecord is the end-of-day note passed from the crew finishing one
// segment of a multi-day job to the crew starting the next. Created in the
// same transaction as its DailyProgressRecord and never mutated afterwards.
// The forward-looking fields are advisory free text for the next crew.
type HandoffRecord struct {
	gorm.Model
	JobID      uint   `json:"job_id" gorm:"not null;index;uniqueIndex:idx_handoff_job_day"`
	Type       string `json:"type" gorm:"not null"`
	Date       string `json:"date" gorm:"not null"` // YYYY-MM-DD
	DayNumber  int    `json:"day_number" gorm:"not null;uniqueIndex:idx_handoff_job_day"`
	LeadTechID uint   `json:"lead_tech_id" gorm:"not null"`

	FromCrewIDs UintSlice `json:"from_crew_ids" gorm:"type:jsonb"`
	ToCrewIDs   UintSlice `json:"to_crew_ids,omitempty" gorm:"type:jsonb"`

	WorkCompletedToday StringSlice `json:"work_completed_today" gorm:"type:jsonb"`
	WorkRemaining      StringSlice `json:"work_remaining,omitempty" gorm:"type:jsonb"`
	Issues             StringSlice `json:"issues,omitempty" gorm:"type:jsonb"`
	MaterialsNeeded    StringSlice `json:"materials_needed,omitempty" gorm:"type:jsonb"`
	SafetyNotes        string      `json:"safety_notes,omitempty" gorm:"type:text"`
	CustomerNotes      string      `json:"customer_notes,omitempty" gorm:"type:text"`
}

// BeforeCreate is a GORM hook that runs before creating a new handoff
func (h *HandoffRecord) BeforeCreate(_ *gorm.DB) error {
	if h.Type == "" {
		h.Type = HandoffTypeEndOfDay
	}
	if h.JobID == 0 {
		return fmt.Errorf("handoff job id is required")
	}
	if h.DayNumber < 1 {
		return fmt.Errorf("day number must be 1 or greater")
	}
	return nil
}
