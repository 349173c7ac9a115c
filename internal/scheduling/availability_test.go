package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDateBlockedByTimeOff(t *testing.T) {
	vacation := TimeOffWindow{
		StartDate: "2025-06-10",
		EndDate:   "2025-06-12",
		Type:      "vacation",
		Status:    "approved",
		Notes:     "annual leave",
	}

	tests := []struct {
		name    string
		date    CalendarDate
		entries []TimeOffWindow
		blocked bool
		reason  string
	}{
		{
			name:    "inside approved range",
			date:    "2025-06-11",
			entries: []TimeOffWindow{vacation},
			blocked: true,
			reason:  "vacation",
		},
		{
			name:    "range boundaries are inclusive",
			date:    "2025-06-10",
			entries: []TimeOffWindow{vacation},
			blocked: true,
			reason:  "vacation",
		},
		{
			name:    "day after range",
			date:    "2025-06-13",
			entries: []TimeOffWindow{vacation},
			blocked: false,
		},
		{
			name: "pending entry never blocks",
			date: "2025-06-11",
			entries: []TimeOffWindow{{
				StartDate: "2025-06-10", EndDate: "2025-06-12",
				Type: "sick", Status: "pending",
			}},
			blocked: false,
		},
		{
			name: "denied entry never blocks",
			date: "2025-06-11",
			entries: []TimeOffWindow{{
				StartDate: "2025-06-01", EndDate: "2025-06-30",
				Type: "personal", Status: "denied",
			}},
			blocked: false,
		},
		{
			name: "missing status treated as approved",
			date: "2025-06-11",
			entries: []TimeOffWindow{{
				StartDate: "2025-06-10", EndDate: "2025-06-12", Type: "holiday",
			}},
			blocked: true,
			reason:  "holiday",
		},
		{
			name: "first matching entry wins",
			date: "2025-06-11",
			entries: []TimeOffWindow{
				{StartDate: "2025-06-11", EndDate: "2025-06-11", Type: "training", Status: "approved"},
				{StartDate: "2025-06-10", EndDate: "2025-06-12", Type: "vacation", Status: "approved"},
			},
			blocked: true,
			reason:  "training",
		},
		{
			name: "malformed entry dates are skipped",
			date: "2025-06-11",
			entries: []TimeOffWindow{{
				StartDate: "June 10th", EndDate: "2025-06-12", Type: "vacation", Status: "approved",
			}},
			blocked: false,
		},
		{
			name:    "no entries",
			date:    "2025-06-11",
			entries: nil,
			blocked: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := IsDateBlockedByTimeOff(tt.date, tt.entries)
			assert.Equal(t, tt.blocked, res.Blocked)
			assert.Equal(t, tt.reason, res.Reason)
		})
	}
}

func TestIsTechAvailableOnDate(t *testing.T) {
	entries := []TimeOffWindow{{
		StartDate: "2025-06-10", EndDate: "2025-06-12",
		Type: "vacation", Status: "approved",
	}}

	avail := IsTechAvailableOnDate(entries, "2025-06-11")
	assert.False(t, avail.Available)
	assert.Equal(t, "vacation", avail.Reason)

	avail = IsTechAvailableOnDate(entries, "2025-06-13")
	assert.True(t, avail.Available)
	assert.Empty(t, avail.Reason)
}

func TestTimeOffInRange(t *testing.T) {
	entries := []TimeOffWindow{
		{StartDate: "2025-06-02", EndDate: "2025-06-04", Type: "vacation"},
		{StartDate: "2025-06-10", EndDate: "2025-06-12", Type: "sick"},
		{StartDate: "2025-07-01", EndDate: "2025-07-05", Type: "holiday"},
	}

	got := TimeOffInRange(entries, "2025-06-01", "2025-06-11")
	if assert.Len(t, got, 2) {
		assert.Equal(t, "vacation", got[0].Type)
		assert.Equal(t, "sick", got[1].Type)
	}

	// Single-day query touching only a range boundary still overlaps.
	got = TimeOffInRange(entries, "2025-06-04", "2025-06-04")
	if assert.Len(t, got, 1) {
		assert.Equal(t, "vacation", got[0].Type)
	}

	assert.Empty(t, TimeOffInRange(entries, "2025-08-01", "2025-08-31"))
}

// The overlap test is symmetric: swapping query range and entry range must
// not change the answer.
func TestTimeOffInRangeSymmetry(t *testing.T) {
	pairs := []struct {
		aStart, aEnd CalendarDate
		bStart, bEnd CalendarDate
	}{
		{"2025-06-02", "2025-06-04", "2025-06-03", "2025-06-10"},
		{"2025-06-02", "2025-06-04", "2025-06-05", "2025-06-10"},
		{"2025-06-02", "2025-06-02", "2025-06-02", "2025-06-02"},
		{"2025-06-01", "2025-06-30", "2025-06-10", "2025-06-12"},
	}

	for _, p := range pairs {
		forward := len(TimeOffInRange(
			[]TimeOffWindow{{StartDate: p.aStart, EndDate: p.aEnd}}, p.bStart, p.bEnd)) > 0
		backward := len(TimeOffInRange(
			[]TimeOffWindow{{StartDate: p.bStart, EndDate: p.bEnd}}, p.aStart, p.aEnd)) > 0
		assert.Equal(t, forward, backward, "overlap(%v..%v, %v..%v)", p.aStart, p.aEnd, p.bStart, p.bEnd)
	}
}
