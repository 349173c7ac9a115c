package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kribhq/krib/internal/scheduling"
)

// TimeOffType represents the leave category of a time-off entry
type TimeOffType string

// Time-off type constants
const (
	TimeOffTypeVacation TimeOffType = "vacation"
	TimeOffTypeSick     TimeOffType = "sick"
	TimeOffTypePersonal TimeOffType = "personal"
	TimeOffTypeHoliday  TimeOffType = "holiday"
	TimeOffTypeTraining TimeOffType = "training"
	TimeOffTypeOther    TimeOffType = "other"
)

// ParseTimeOffType converts a string to a TimeOffType
func ParseTimeOffType(str string) (TimeOffType, error) {
	switch TimeOffType(str) {
	case TimeOffTypeVacation, TimeOffTypeSick, TimeOffTypePersonal,
		TimeOffTypeHoliday, TimeOffTypeTraining, TimeOffTypeOther:
		return TimeOffType(str), nil
	}
	return "", fmt.Errorf("invalid time off type: %s", str)
}

// TimeOffStatus represents the approval state of a time-off entry
type TimeOffStatus string

// Time-off status constants. Only approved entries block availability.
const (
	TimeOffStatusApproved TimeOffStatus = "approved"
	TimeOffStatusPending  TimeOffStatus = "pending"
	TimeOffStatusDenied   TimeOffStatus = "denied"
)

// ParseTimeOffStatus converts a string to a TimeOffStatus
func ParseTimeOffStatus(str string) (TimeOffStatus, error) {
	switch TimeOffStatus(str) {
	case TimeOffStatusApproved, TimeOffStatusPending, TimeOffStatusDenied:
		return TimeOffStatus(str), nil
	}
	return "", fmt.Errorf("invalid time off status: %s", str)
}

// UnmarshalJSON implements json.Unmarshaler for TimeOffStatus
func (s *TimeOffStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	status, err := ParseTimeOffStatus(str)
	if err != nil {
		return err
	}

	*s = status
	return nil
}

// TimeOffEntry is a blocked calendar-date range for one technician, both
// dates inclusive. Entries are corrected by remove-old/add-new, never by
// in-place mutation.
type TimeOffEntry struct {
	ID        string        `json:"id" gorm:"primaryKey"`
	TechID    uint          `json:"tech_id" gorm:"not null;index"`
	StartDate string        `json:"start_date" gorm:"not null"` // YYYY-MM-DD
	EndDate   string        `json:"end_date" gorm:"not null"`   // YYYY-MM-DD
	Type      TimeOffType   `json:"type" gorm:"not null"`
	Status    TimeOffStatus `json:"status" gorm:"not null;index"`
	Notes     string        `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt time.Time     `json:"created_at"`
	CreatedBy uint          `json:"created_by"`
}

// Validate ensures that the entry data is valid
func (e *TimeOffEntry) Validate() error {
	if e.TechID == 0 {
		return fmt.Errorf("time off tech id is required")
	}
	start, err := scheduling.ParseCalendarDate(e.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}
	end, err := scheduling.ParseCalendarDate(e.EndDate)
	if err != nil {
		return fmt.Errorf("invalid end date: %w", err)
	}
	if start.After(end) {
		return fmt.Errorf("start date %s is after end date %s", start, end)
	}
	if _, err := ParseTimeOffType(string(e.Type)); err != nil {
		return err
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new entry
func (e *TimeOffEntry) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Status == "" {
		e.Status = TimeOffStatusPending
	}
	return e.Validate()
}

// Window converts the entry into the scheduling core's view of it.
func (e *TimeOffEntry) Window() scheduling.TimeOffWindow {
	return scheduling.TimeOffWindow{
		StartDate: scheduling.CalendarDate(e.StartDate),
		EndDate:   scheduling.CalendarDate(e.EndDate),
		Type:      string(e.Type),
		Status:    string(e.Status),
		Notes:     e.Notes,
	}
}

// Windows converts a technician's entry list for the availability resolver.
func Windows(entries []TimeOffEntry) []scheduling.TimeOffWindow {
	out := make([]scheduling.TimeOffWindow, 0, len(entries))
	for i := range entries {
		out = append(out, entries[i].Window())
	}
	return out
}
