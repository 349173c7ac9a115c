package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// MaxOfferedSlots is the most candidate windows a single offer batch may hold.
const MaxOfferedSlots = 5

// SlotStatus represents the state of one offered appointment window
type SlotStatus string

// Slot status constants
const (
	// SlotStatusOffered indicates the slot is awaiting a customer response
	SlotStatusOffered SlotStatus = "offered"
	// SlotStatusAccepted indicates the customer selected this slot
	SlotStatusAccepted SlotStatus = "accepted"
	// SlotStatusDeclined indicates a sibling slot was selected instead
	SlotStatusDeclined SlotStatus = "declined"
	// SlotStatusSuperseded indicates the contractor re-offered and this batch was replaced
	SlotStatusSuperseded SlotStatus = "superseded"
	// SlotStatusExpired indicates the offer aged past the response deadline
	SlotStatusExpired SlotStatus = "expired"
)

// String returns the string representation of the slot status
func (s SlotStatus) String() string {
	return string(s)
}

// Terminal reports whether the status can no longer change.
func (s SlotStatus) Terminal() bool {
	switch s {
	case SlotStatusAccepted, SlotStatusDeclined, SlotStatusSuperseded, SlotStatusExpired:
		return true
	}
	return false
}

// ParseSlotStatus converts a string to a SlotStatus type
func ParseSlotStatus(str string) (SlotStatus, error) {
	switch str {
	case string(SlotStatusOffered):
		return SlotStatusOffered, nil
	case string(SlotStatusAccepted):
		return SlotStatusAccepted, nil
	case string(SlotStatusDeclined):
		return SlotStatusDeclined, nil
	case string(SlotStatusSuperseded):
		return SlotStatusSuperseded, nil
	case string(SlotStatusExpired):
		return SlotStatusExpired, nil
	default:
		return "", fmt.Errorf("invalid slot status: %s", str)
	}
}

// UnmarshalJSON implements json.Unmarshaler for SlotStatus
func (s *SlotStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	status, err := ParseSlotStatus(str)
	if err != nil {
		return err
	}

	*s = status
	return nil
}

// OfferedSlot is a candidate appointment window proposed to a customer.
type OfferedSlot struct {
	ID        string     `json:"id"`
	Start     time.Time  `json:"start"`
	End       time.Time  `json:"end"`
	Status    SlotStatus `json:"status"`
	OfferedAt time.Time  `json:"offered_at"`
}

// Validate ensures the slot window is well-formed
func (s *OfferedSlot) Validate() error {
	if s.Start.IsZero() || s.End.IsZero() {
		return fmt.Errorf("slot start and end are required")
	}
	if !s.End.After(s.Start) {
		return fmt.Errorf("slot end must be after start")
	}
	return nil
}

// OfferedSlots is the ordered slot batch stored on a job as a JSONB column.
type OfferedSlots []OfferedSlot

// Value implements the driver.Valuer interface
func (o OfferedSlots) Value() (driver.Value, error) {
	if o == nil {
		return nil, nil
	}
	return json.Marshal(o)
}

// Scan implements the sql.Scanner interface
func (o *OfferedSlots) Scan(value interface{}) error {
	return scanJSON(value, o)
}

// Find returns the slot with the given id, or nil.
func (o OfferedSlots) Find(id string) *OfferedSlot {
	for i := range o {
		if o[i].ID == id {
			return &o[i]
		}
	}
	return nil
}
