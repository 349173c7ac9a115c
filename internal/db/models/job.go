package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Field names for the job model
const (
	// JobStatusField is the field name for job status
	JobStatusField = "status"
	// JobOfferedAtField is the field name for the offer timestamp
	JobOfferedAtField = "offered_at"
)

// JobStatus represents the current state of a job in the system
type JobStatus string

// Job status constants
const (
	// JobStatusUnknown represents an unknown or invalid job status
	JobStatusUnknown JobStatus = "unknown"
	// JobStatusPendingSchedule indicates the job is waiting for the contractor to offer times
	JobStatusPendingSchedule JobStatus = "pending_schedule"
	// JobStatusSlotsOffered indicates appointment windows have been proposed to the customer
	JobStatusSlotsOffered JobStatus = "slots_offered"
	// JobStatusScheduled indicates the customer accepted a window
	JobStatusScheduled JobStatus = "scheduled"
	// JobStatusInProgress indicates work has started on site
	JobStatusInProgress JobStatus = "in_progress"
	// JobStatusCompleted indicates the job reached 100% completion
	JobStatusCompleted JobStatus = "completed"
	// JobStatusCancelled indicates the job was called off before completion
	JobStatusCancelled JobStatus = "cancelled"
)

// validJobTransitions lists every allowed (from -> to) pair. A re-offer while
// already in slots_offered supersedes the previous batch; an expired batch
// drops the job back to pending_schedule.
var validJobTransitions = map[JobStatus][]JobStatus{
	JobStatusPendingSchedule: {JobStatusSlotsOffered, JobStatusCancelled},
	JobStatusSlotsOffered:    {JobStatusSlotsOffered, JobStatusScheduled, JobStatusPendingSchedule, JobStatusCancelled},
	JobStatusScheduled:       {JobStatusInProgress, JobStatusCompleted, JobStatusCancelled},
	JobStatusInProgress:      {JobStatusInProgress, JobStatusCompleted, JobStatusCancelled},
	// completed and cancelled are terminal
}

// CanTransition returns true when moving from -> to is permitted by the
// job state machine.
func CanTransition(from, to JobStatus) bool {
	for _, s := range validJobTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// String returns the string representation of the job status
func (s JobStatus) String() string {
	return string(s)
}

// ParseJobStatus converts a string to a JobStatus type
func ParseJobStatus(str string) (JobStatus, error) {
	switch str {
	case string(JobStatusUnknown):
		return JobStatusUnknown, nil
	case string(JobStatusPendingSchedule):
		return JobStatusPendingSchedule, nil
	case string(JobStatusSlotsOffered):
		return JobStatusSlotsOffered, nil
	case string(JobStatusScheduled):
		return JobStatusScheduled, nil
	case string(JobStatusInProgress):
		return JobStatusInProgress, nil
	case string(JobStatusCompleted):
		return JobStatusCompleted, nil
	case string(JobStatusCancelled):
		return JobStatusCancelled, nil
	default:
		return JobStatusUnknown, fmt.Errorf("invalid job status: %s", str)
	}
}

// UnmarshalJSON implements json.Unmarshaler for JobStatus
func (s *JobStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	status, err := ParseJobStatus(str)
	if err != nil {
		return err
	}

	*s = status
	return nil
}

// JobPriority represents the urgency assigned to a job
type JobPriority string

// Job priority constants
const (
	JobPriorityLow    JobPriority = "low"
	JobPriorityNormal JobPriority = "normal"
	JobPriorityHigh   JobPriority = "high"
	JobPriorityUrgent JobPriority = "urgent"
)

// CrewRequirements captures the headcount bounds for a job.
type CrewRequirements struct {
	Required int `json:"required"`
	Minimum  int `json:"minimum"`
	Maximum  int `json:"maximum"`
}

// Value implements the driver.Valuer interface
func (c CrewRequirements) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements the sql.Scanner interface
func (c *CrewRequirements) Scan(value interface{}) error {
	return scanJSON(value, c)
}

// Validate ensures the headcount bounds are coherent
func (c CrewRequirements) Validate() error {
	if c.Required < 0 || c.Minimum < 0 || c.Maximum < 0 {
		return fmt.Errorf("crew counts cannot be negative")
	}
	if c.Maximum > 0 && c.Minimum > c.Maximum {
		return fmt.Errorf("minimum crew size %d exceeds maximum %d", c.Minimum, c.Maximum)
	}
	return nil
}

// ScheduleBlock is one calendar day's stored portion of a multi-day job.
type ScheduleBlock struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Minutes   int    `json:"minutes"`
}

// ScheduleBlocks is the ordered per-day block sequence stored as JSONB.
type ScheduleBlocks []ScheduleBlock

// Value implements the driver.Valuer interface
func (b ScheduleBlocks) Value() (driver.Value, error) {
	if b == nil {
		return nil, nil
	}
	return json.Marshal(b)
}

// Scan implements the sql.Scanner interface
func (b *ScheduleBlocks) Scan(value interface{}) error {
	return scanJSON(value, b)
}

// Job is the central scheduling entity: one service request moving from
// quote through offered time windows to scheduled (and, for multi-day work,
// through daily progress) to completion. Jobs are never hard-deleted; their
// lifecycle is carried entirely by Status.
type Job struct {
	gorm.Model
	JobNumber    string      `json:"job_number" gorm:"not null;uniqueIndex"`
	ContractorID uint        `json:"contractor_id" gorm:"not null;index"`
	CustomerID   uint        `json:"customer_id" gorm:"index"`
	Status       JobStatus   `json:"status" gorm:"not null;index"`
	Priority     JobPriority `json:"priority"`
	Description  string      `json:"description" gorm:"type:text"`

	// Scheduling fields
	EstimatedDuration int              `json:"estimated_duration"` // minutes
	ScheduledDate     string           `json:"scheduled_date,omitempty"`
	ScheduledTime     string           `json:"scheduled_time,omitempty"`
	ScheduledTimezone string           `json:"scheduled_timezone,omitempty"`
	IsMultiDay        bool             `json:"is_multi_day"`
	ScheduleBlocks    ScheduleBlocks   `json:"schedule_blocks,omitempty" gorm:"type:jsonb"`
	CrewRequirements  CrewRequirements `json:"crew_requirements" gorm:"type:jsonb"`

	// Assignment. A job may be claimed by zero or more technicians and a
	// technician may hold concurrent assignments; no exclusivity is enforced.
	AssignedTechIDs UintSlice `json:"assigned_tech_ids,omitempty" gorm:"type:jsonb"`

	// Offer state
	OfferedSlots      OfferedSlots    `json:"offered_slots,omitempty" gorm:"type:jsonb"`
	OfferedAt         *time.Time      `json:"offered_at,omitempty"`
	OfferedMessage    string          `json:"offered_message,omitempty" gorm:"type:text"`
	RequestedNewTimes bool            `json:"requested_new_times" gorm:"not null;default:false"`
	OfferSummary      json.RawMessage `json:"offer_summary,omitempty" gorm:"type:jsonb"`

	// CustomerPreferences holds advisory time-of-day and day-of-week hints.
	// The service stores them verbatim and never enforces them.
	CustomerPreferences json.RawMessage `json:"customer_preferences,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// Validate ensures that the job data is valid
func (j *Job) Validate() error {
	if j.JobNumber == "" {
		return fmt.Errorf("job number cannot be empty")
	}
	if j.ContractorID == 0 {
		return fmt.Errorf("job contractor id is required")
	}
	if j.EstimatedDuration < 0 {
		return fmt.Errorf("estimated duration cannot be negative")
	}
	return j.CrewRequirements.Validate()
}

// BeforeCreate is a GORM hook that runs before creating a new job
func (j *Job) BeforeCreate(_ *gorm.DB) error {
	if j.JobNumber == "" {
		j.JobNumber = fmt.Sprintf("KRB-%s", time.Now().Format("20060102-150405"))
	}
	if j.Status == "" {
		j.Status = JobStatusPendingSchedule
	}
	if j.Priority == "" {
		j.Priority = JobPriorityNormal
	}
	return j.Validate()
}
