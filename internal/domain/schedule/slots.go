package schedule

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	ErrInvalidISOWeek  = errors.New("week must be in ISO format YYYY-Www")
	ErrInvalidMonth    = errors.New("month must be in format YYYY-MM")
	ErrNoSlots         = errors.New("at least one slot is required")
	ErrSlotsNotChained = errors.New("slots are not contiguous")
)

// Slot is a half-open [Start, End) window on the booking grid.
type Slot struct {
	Start time.Time
	End   time.Time
}

// Overlaps uses the half-open rule: touching endpoints do not collide.
func (s Slot) Overlaps(other Slot) bool {
	return s.Start.Before(other.End) && s.End.After(other.Start)
}

func (s Slot) Label() string {
	return s.Start.Format("15:04") + " - " + s.End.Format("15:04")
}

// DaySlots returns the 24 hourly slots of a calendar day. The final slot is
// clamped to 23:00 - 23:59 so it never crosses midnight into the next day.
func DaySlots(day time.Time) []Slot {
	loc := day.Location()
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	slots := make([]Slot, 0, 24)
	for hour := 0; hour < 24; hour++ {
		start := midnight.Add(time.Duration(hour) * time.Hour)
		end := start.Add(time.Hour)
		if hour == 23 {
			end = start.Add(59 * time.Minute)
		}
		slots = append(slots, Slot{Start: start, End: end})
	}
	return slots
}

// WeekDays resolves an ISO week string ("2025-W07") to its Monday..Sunday
// days in the given location.
func WeekDays(isoWeek string, loc *time.Location) ([]time.Time, error) {
	var year, week int
	if _, err := fmt.Sscanf(isoWeek, "%d-W%d", &year, &week); err != nil {
		return nil, ErrInvalidISOWeek
	}
	if week < 1 || week > 53 {
		return nil, ErrInvalidISOWeek
	}
	monday, err := isoWeekStart(year, week, loc)
	if err != nil {
		return nil, err
	}
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = monday.AddDate(0, 0, i)
	}
	return days, nil
}

// isoWeekStart finds the Monday of the requested ISO week. Jan 4 is always in
// week 1, which anchors the arithmetic.
func isoWeekStart(year, week int, loc *time.Location) (time.Time, error) {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, loc)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	week1Monday := jan4.AddDate(0, 0, 1-weekday)
	monday := week1Monday.AddDate(0, 0, (week-1)*7)
	gotYear, gotWeek := monday.ISOWeek()
	if gotYear != year || gotWeek != week {
		return time.Time{}, ErrInvalidISOWeek
	}
	return monday, nil
}

// MonthDays resolves a "YYYY-MM" string to every day of that month.
func MonthDays(yearMonth string, loc *time.Location) ([]time.Time, error) {
	parsed, err := time.ParseInLocation("2006-01", yearMonth, loc)
	if err != nil {
		return nil, ErrInvalidMonth
	}
	first := time.Date(parsed.Year(), parsed.Month(), 1, 0, 0, 0, 0, loc)
	next := first.AddDate(0, 1, 0)
	days := make([]time.Time, 0, 31)
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days, nil
}

// MergeContiguous collapses a set of slots into one covering slot. Every slot
// must end exactly where the next one starts; any gap or overlap in the
// sorted chain is rejected.
func MergeContiguous(slots []Slot) (Slot, error) {
	if len(slots) == 0 {
		return Slot{}, ErrNoSlots
	}
	sorted := make([]Slot, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})
	for i := 0; i < len(sorted)-1; i++ {
		if !sorted[i].End.Equal(sorted[i+1].Start) {
			return Slot{}, ErrSlotsNotChained
		}
	}
	return Slot{Start: sorted[0].Start, End: sorted[len(sorted)-1].End}, nil
}
