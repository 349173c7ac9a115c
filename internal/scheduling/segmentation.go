package scheduling

import "time"

// Policy defaults. A contractor without overrides works Monday through
// Friday, starts at 08:00, and books 8 crew-hours per day.
const (
	DefaultDayStartMinutes      = 8 * 60
	DefaultDailyCapacityMinutes = 8 * 60
)

// SchedulePolicy carries the per-contractor workweek configuration used by
// segmentation. The zero value is not usable; start from DefaultPolicy.
type SchedulePolicy struct {
	// DayStartMinutes is the daily start time as minutes from midnight.
	DayStartMinutes int
	// DailyCapacityMinutes is the maximum crew-minutes allocated per working day.
	DailyCapacityMinutes int
	// WorkingDays marks which weekdays are working days, indexed by time.Weekday.
	WorkingDays [7]bool
}

// DefaultPolicy returns the standard Monday-to-Friday, 08:00-start,
// 480-minute-capacity policy.
func DefaultPolicy() SchedulePolicy {
	p := SchedulePolicy{
		DayStartMinutes:      DefaultDayStartMinutes,
		DailyCapacityMinutes: DefaultDailyCapacityMinutes,
	}
	for wd := time.Monday; wd <= time.Friday; wd++ {
		p.WorkingDays[wd] = true
	}
	return p
}

// IsWorkingDay reports whether date is a working day under the policy.
func (p SchedulePolicy) IsWorkingDay(date CalendarDate) bool {
	return p.WorkingDays[date.Weekday()]
}

// NextWorkingDay returns date itself if it is a working day, otherwise the
// first working day after it.
func (p SchedulePolicy) NextWorkingDay(date CalendarDate) CalendarDate {
	for !p.IsWorkingDay(date) {
		date = date.AddDays(1)
	}
	return date
}

// IsMultiDay reports whether a job of the given duration spans more than a
// single working day under the policy.
func (p SchedulePolicy) IsMultiDay(durationMinutes int) bool {
	return durationMinutes > p.DailyCapacityMinutes
}

// ScheduleBlock is one calendar day's portion of a multi-day job.
type ScheduleBlock struct {
	Date      CalendarDate `json:"date"`
	StartTime string       `json:"start_time"`
	EndTime   string       `json:"end_time"`
	Minutes   int          `json:"minutes"`
}

// GenerateScheduleBlocks partitions durationMinutes into per-day blocks
// starting at or after start. Each working day receives at most the policy's
// daily capacity, beginning at the policy's day start; non-working days are
// skipped, including a non-working start date. Durations of zero or less
// yield no blocks. The block durations always sum to durationMinutes.
//
// Crew size deliberately does not compress the elapsed days: productivity
// gains from extra crew are not linear and are not modeled here.
func GenerateScheduleBlocks(start CalendarDate, durationMinutes int, p SchedulePolicy) []ScheduleBlock {
	if durationMinutes <= 0 || !start.Valid() {
		return nil
	}

	var blocks []ScheduleBlock
	current := p.NextWorkingDay(start)
	remaining := durationMinutes

	for remaining > 0 {
		alloc := remaining
		if alloc > p.DailyCapacityMinutes {
			alloc = p.DailyCapacityMinutes
		}
		blocks = append(blocks, ScheduleBlock{
			Date:      current,
			StartTime: MinutesToClock(p.DayStartMinutes),
			EndTime:   MinutesToClock(p.DayStartMinutes + alloc),
			Minutes:   alloc,
		})
		remaining -= alloc
		current = p.NextWorkingDay(current.AddDays(1))
	}

	return blocks
}

// WorkingDayNumber returns the 1-indexed working-day ordinal of date within
// a job that started on start, counting only working days. Returns 0 when
// date precedes start or falls on a non-working day.
func (p SchedulePolicy) WorkingDayNumber(start, date CalendarDate) int {
	if !start.Valid() || !date.Valid() || date < start || !p.IsWorkingDay(date) {
		return 0
	}
	n := 0
	for d := p.NextWorkingDay(start); d <= date; d = p.NextWorkingDay(d.AddDays(1)) {
		n++
	}
	return n
}
