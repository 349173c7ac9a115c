package scheduling

// TimeOffWindow is the core's view of one technician leave entry. The storage
// layer converts its rows into this shape before calling the resolver.
type TimeOffWindow struct {
	StartDate CalendarDate
	EndDate   CalendarDate
	Type      string
	Status    string
	Notes     string
}

// TimeOffStatusApproved is the only leave status that participates in
// availability blocking. Pending and denied entries are informational.
const TimeOffStatusApproved = "approved"

// BlockResult is the outcome of a single-date availability check.
type BlockResult struct {
	Blocked bool   `json:"blocked"`
	Reason  string `json:"reason,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// Availability is the outcome of a technician availability check.
type Availability struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// IsDateBlockedByTimeOff reports whether date falls inside any approved leave
// window. Non-approved entries are skipped, as are entries with malformed
// dates. The first matching entry wins; overlapping leave reasons are not
// aggregated.
func IsDateBlockedByTimeOff(date CalendarDate, entries []TimeOffWindow) BlockResult {
	if !date.Valid() {
		return BlockResult{}
	}
	for _, e := range entries {
		if e.Status != "" && e.Status != TimeOffStatusApproved {
			continue
		}
		if !e.StartDate.Valid() || !e.EndDate.Valid() {
			continue
		}
		if e.StartDate <= date && date <= e.EndDate {
			return BlockResult{Blocked: true, Reason: e.Type, Notes: e.Notes}
		}
	}
	return BlockResult{}
}

// IsTechAvailableOnDate composes IsDateBlockedByTimeOff into the
// availability answer for one technician on one date.
func IsTechAvailableOnDate(entries []TimeOffWindow, date CalendarDate) Availability {
	res := IsDateBlockedByTimeOff(date, entries)
	if res.Blocked {
		return Availability{Available: false, Reason: res.Reason}
	}
	return Availability{Available: true}
}

// TimeOffInRange returns the entries whose window overlaps [start, end],
// using the standard interval-overlap test. Entries with malformed dates are
// skipped. Approval status is not considered here; callers pre-filtering a
// week view want pending entries visible too.
func TimeOffInRange(entries []TimeOffWindow, start, end CalendarDate) []TimeOffWindow {
	var out []TimeOffWindow
	for _, e := range entries {
		if !e.StartDate.Valid() || !e.EndDate.Valid() {
			continue
		}
		if e.StartDate <= end && e.EndDate >= start {
			out = append(out, e)
		}
	}
	return out
}
