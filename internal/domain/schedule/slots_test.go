//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"courtdesk/internal/domain/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaySlots(t *testing.T) {
	day := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	slots := schedule.DaySlots(day)
	require.Len(t, slots, 24)

	assert.Equal(t, "00:00 - 01:00", slots[0].Label())
	assert.Equal(t, "18:00 - 19:00", slots[18].Label())

	last := slots[23]
	assert.Equal(t, "23:00 - 23:59", last.Label())
	assert.Equal(t, day.Day(), last.End.Day())

	for i := 0; i < len(slots)-1; i++ {
		assert.True(t, slots[i].End.Equal(slots[i+1].Start))
	}
}

func TestSlotOverlaps(t *testing.T) {
	base := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	a := schedule.Slot{Start: base, End: base.Add(time.Hour)}
	b := schedule.Slot{Start: base.Add(time.Hour), End: base.Add(2 * time.Hour)}
	c := schedule.Slot{Start: base.Add(30 * time.Minute), End: base.Add(90 * time.Minute)}

	assert.False(t, a.Overlaps(b))
	assert.True(t, a.Overlaps(c))
	assert.True(t, b.Overlaps(c))
}

func TestWeekDays(t *testing.T) {
	t.Run("resolves monday through sunday", func(t *testing.T) {
		days, err := schedule.WeekDays("2026-W11", time.UTC)
		require.NoError(t, err)
		require.Len(t, days, 7)

		assert.Equal(t, time.Monday, days[0].Weekday())
		assert.Equal(t, time.Sunday, days[6].Weekday())
		assert.Equal(t, "2026-03-09", days[0].Format("2006-01-02"))
		assert.Equal(t, "2026-03-15", days[6].Format("2006-01-02"))
	})

	t.Run("week one contains january 4th", func(t *testing.T) {
		days, err := schedule.WeekDays("2026-W01", time.UTC)
		require.NoError(t, err)
		found := false
		for _, d := range days {
			if d.Month() == time.January && d.Day() == 4 {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("week 53 only in long years", func(t *testing.T) {
		// 2026 has 53 ISO weeks, 2025 does not.
		_, err := schedule.WeekDays("2026-W53", time.UTC)
		require.NoError(t, err)

		_, err = schedule.WeekDays("2025-W53", time.UTC)
		require.ErrorIs(t, err, schedule.ErrInvalidISOWeek)
	})

	t.Run("malformed input", func(t *testing.T) {
		for _, in := range []string{"2026-11", "garbage", "2026-W00", "2026-W54"} {
			_, err := schedule.WeekDays(in, time.UTC)
			assert.ErrorIsf(t, err, schedule.ErrInvalidISOWeek, "input %q", in)
		}
	})
}

func TestMonthDays(t *testing.T) {
	t.Run("31 day month", func(t *testing.T) {
		days, err := schedule.MonthDays("2026-03", time.UTC)
		require.NoError(t, err)
		require.Len(t, days, 31)
		assert.Equal(t, "2026-03-01", days[0].Format("2006-01-02"))
		assert.Equal(t, "2026-03-31", days[30].Format("2006-01-02"))
	})

	t.Run("february in a leap year", func(t *testing.T) {
		days, err := schedule.MonthDays("2028-02", time.UTC)
		require.NoError(t, err)
		assert.Len(t, days, 29)
	})

	t.Run("malformed input", func(t *testing.T) {
		_, err := schedule.MonthDays("March 2026", time.UTC)
		require.ErrorIs(t, err, schedule.ErrInvalidMonth)
	})
}

func TestMergeContiguous(t *testing.T) {
	base := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	hour := func(i int) schedule.Slot {
		return schedule.Slot{
			Start: base.Add(time.Duration(i) * time.Hour),
			End:   base.Add(time.Duration(i+1) * time.Hour),
		}
	}

	t.Run("chained slots collapse to one", func(t *testing.T) {
		merged, err := schedule.MergeContiguous([]schedule.Slot{hour(0), hour(1), hour(2)})
		require.NoError(t, err)
		assert.True(t, merged.Start.Equal(base))
		assert.True(t, merged.End.Equal(base.Add(3*time.Hour)))
	})

	t.Run("input order does not matter", func(t *testing.T) {
		merged, err := schedule.MergeContiguous([]schedule.Slot{hour(2), hour(0), hour(1)})
		require.NoError(t, err)
		assert.True(t, merged.Start.Equal(base))
		assert.True(t, merged.End.Equal(base.Add(3*time.Hour)))
	})

	t.Run("single slot is its own merge", func(t *testing.T) {
		merged, err := schedule.MergeContiguous([]schedule.Slot{hour(5)})
		require.NoError(t, err)
		assert.True(t, merged.Start.Equal(hour(5).Start))
		assert.True(t, merged.End.Equal(hour(5).End))
	})

	t.Run("gap rejected", func(t *testing.T) {
		_, err := schedule.MergeContiguous([]schedule.Slot{hour(0), hour(2)})
		require.ErrorIs(t, err, schedule.ErrSlotsNotChained)
	})

	t.Run("overlapping slots rejected", func(t *testing.T) {
		overlapping := schedule.Slot{Start: base.Add(30 * time.Minute), End: base.Add(90 * time.Minute)}
		_, err := schedule.MergeContiguous([]schedule.Slot{hour(0), overlapping})
		require.ErrorIs(t, err, schedule.ErrSlotsNotChained)
	})

	t.Run("empty input rejected", func(t *testing.T) {
		_, err := schedule.MergeContiguous(nil)
		require.ErrorIs(t, err, schedule.ErrNoSlots)
	})
}
