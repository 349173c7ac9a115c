package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateScheduleBlocksEmpty(t *testing.T) {
	p := DefaultPolicy()

	assert.Empty(t, GenerateScheduleBlocks("2025-06-09", 0, p))
	assert.Empty(t, GenerateScheduleBlocks("2025-06-09", -30, p))
	assert.Empty(t, GenerateScheduleBlocks("not-a-date", 480, p))
}

func TestGenerateScheduleBlocksSingleDay(t *testing.T) {
	p := DefaultPolicy()

	// 2025-06-09 is a Monday.
	blocks := GenerateScheduleBlocks("2025-06-09", 480, p)
	require.Len(t, blocks, 1)
	assert.Equal(t, CalendarDate("2025-06-09"), blocks[0].Date)
	assert.Equal(t, "08:00", blocks[0].StartTime)
	assert.Equal(t, "16:00", blocks[0].EndTime)
	assert.Equal(t, 480, blocks[0].Minutes)

	// A weekend start rolls forward to the next working day.
	// 2025-06-07 is a Saturday.
	blocks = GenerateScheduleBlocks("2025-06-07", 480, p)
	require.Len(t, blocks, 1)
	assert.Equal(t, CalendarDate("2025-06-09"), blocks[0].Date)
}

func TestGenerateScheduleBlocksWeekendSkip(t *testing.T) {
	p := DefaultPolicy()

	// 2025-06-06 is a Friday: 1000 minutes spans Friday, Monday, and a
	// 40-minute Tuesday remainder.
	blocks := GenerateScheduleBlocks("2025-06-06", 1000, p)
	require.Len(t, blocks, 3)

	assert.Equal(t, CalendarDate("2025-06-06"), blocks[0].Date)
	assert.Equal(t, "08:00", blocks[0].StartTime)
	assert.Equal(t, "16:00", blocks[0].EndTime)

	assert.Equal(t, CalendarDate("2025-06-09"), blocks[1].Date)
	assert.Equal(t, 480, blocks[1].Minutes)

	assert.Equal(t, CalendarDate("2025-06-10"), blocks[2].Date)
	assert.Equal(t, "08:00", blocks[2].StartTime)
	assert.Equal(t, "08:40", blocks[2].EndTime)
	assert.Equal(t, 40, blocks[2].Minutes)
}

func TestGenerateScheduleBlocksNeverOnWeekend(t *testing.T) {
	p := DefaultPolicy()

	for _, dur := range []int{1, 480, 481, 1000, 2400, 5000} {
		for _, start := range []CalendarDate{"2025-06-06", "2025-06-07", "2025-06-08", "2025-06-09"} {
			for _, b := range GenerateScheduleBlocks(start, dur, p) {
				wd := b.Date.Weekday()
				assert.NotEqual(t, time.Saturday, wd, "start=%s dur=%d", start, dur)
				assert.NotEqual(t, time.Sunday, wd, "start=%s dur=%d", start, dur)
			}
		}
	}
}

func TestGenerateScheduleBlocksConservesDuration(t *testing.T) {
	p := DefaultPolicy()

	for _, dur := range []int{0, 1, 40, 479, 480, 481, 960, 1000, 2000, 10080} {
		total := 0
		for _, b := range GenerateScheduleBlocks("2025-06-06", dur, p) {
			total += b.Minutes
		}
		want := dur
		if want < 0 {
			want = 0
		}
		assert.Equal(t, want, total, "duration=%d", dur)
	}
}

func TestGenerateScheduleBlocksCustomPolicy(t *testing.T) {
	// A contractor working 10-hour days starting at 07:00, including Saturdays.
	p := DefaultPolicy()
	p.DayStartMinutes = 7 * 60
	p.DailyCapacityMinutes = 600
	p.WorkingDays[time.Saturday] = true

	// 2025-06-06 is a Friday; Saturday is now a working day.
	blocks := GenerateScheduleBlocks("2025-06-06", 1200, p)
	require.Len(t, blocks, 2)
	assert.Equal(t, CalendarDate("2025-06-06"), blocks[0].Date)
	assert.Equal(t, "07:00", blocks[0].StartTime)
	assert.Equal(t, "17:00", blocks[0].EndTime)
	assert.Equal(t, CalendarDate("2025-06-07"), blocks[1].Date)
}

func TestPolicyIsMultiDay(t *testing.T) {
	p := DefaultPolicy()

	assert.False(t, p.IsMultiDay(0))
	assert.False(t, p.IsMultiDay(480))
	assert.True(t, p.IsMultiDay(481))
	assert.True(t, p.IsMultiDay(1000))
}

func TestWorkingDayNumber(t *testing.T) {
	p := DefaultPolicy()

	// Job starts Friday 2025-06-06.
	start := CalendarDate("2025-06-06")

	assert.Equal(t, 1, p.WorkingDayNumber(start, "2025-06-06"))
	assert.Equal(t, 0, p.WorkingDayNumber(start, "2025-06-07")) // Saturday
	assert.Equal(t, 2, p.WorkingDayNumber(start, "2025-06-09")) // Monday
	assert.Equal(t, 3, p.WorkingDayNumber(start, "2025-06-10"))
	assert.Equal(t, 0, p.WorkingDayNumber(start, "2025-06-05")) // before start
}
