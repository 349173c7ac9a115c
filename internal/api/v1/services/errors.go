// Package services provides business logic for the scheduling API
package services

import "errors"

// Policy violations surfaced to callers before any write is attempted.
var (
	// ErrNoSlots indicates an offer was submitted with no candidate windows
	ErrNoSlots = errors.New("an offer requires at least one slot")
	// ErrTooManySlots indicates an offer exceeded the per-batch slot limit
	ErrTooManySlots = errors.New("an offer may contain at most 5 slots")
	// ErrInvalidTransition indicates the requested status change violates the job state machine
	ErrInvalidTransition = errors.New("invalid job status transition")
	// ErrSlotNotOffered indicates the selected slot is not awaiting a response
	ErrSlotNotOffered = errors.New("slot is not open for acceptance")
	// ErrSlotDateBlocked indicates a proposed slot lands on an assigned technician's approved time off
	ErrSlotDateBlocked = errors.New("slot date is blocked by technician time off")
	// ErrSlotOutsideWindow indicates a proposed slot falls outside the rolling offer window
	ErrSlotOutsideWindow = errors.New("slot date is outside the offer window")
	// ErrNotMultiDay indicates a daily report was submitted for a single-day job
	ErrNotMultiDay = errors.New("job is not a multi-day job")
	// ErrReportOutOfOrder indicates a daily report is not the next contiguous working day
	ErrReportOutOfOrder = errors.New("daily report is out of order")
)
