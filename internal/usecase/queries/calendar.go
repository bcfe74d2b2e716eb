package queries

import (
	"context"
	"time"

	"courtdesk/internal/domain/schedule"
	"courtdesk/internal/pkg/errs"
)

var (
	ErrInvalidDate   = errs.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidWeek   = errs.New("invalid week, expected YYYY-Www")
	ErrInvalidMonth  = errs.New("invalid month, expected YYYY-MM")
	ErrInvalidSlots  = errs.New("slots cannot be merged")
)

type CalendarQueries interface {
	Day(ctx context.Context, date string, category string) (*CalendarView, error)
	Week(ctx context.Context, isoWeek string, category string) (*CalendarView, error)
	Month(ctx context.Context, yearMonth string, category string) (*CalendarView, error)
	MergeSlots(slots []schedule.Slot) (*MergedSlotView, error)
}

// OccupancyRepo returns the active reservations overlapping a window,
// optionally narrowed to one category.
type OccupancyRepo interface {
	ListOccupancy(ctx context.Context, from, to time.Time, category string) ([]*ReservationOccupancy, error)
}

type calendarQueriesImpl struct {
	repo OccupancyRepo
	loc  *time.Location
}

func NewCalendarQueries(repo OccupancyRepo, loc *time.Location) CalendarQueries {
	return &calendarQueriesImpl{repo: repo, loc: loc}
}

func (q *calendarQueriesImpl) Day(ctx context.Context, date string, category string) (*CalendarView, error) {
	day, err := time.ParseInLocation("2006-01-02", date, q.loc)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidDate)
	}
	return q.compose(ctx, []time.Time{day}, category)
}

func (q *calendarQueriesImpl) Week(ctx context.Context, isoWeek string, category string) (*CalendarView, error) {
	days, err := schedule.WeekDays(isoWeek, q.loc)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidWeek)
	}
	return q.compose(ctx, days, category)
}

func (q *calendarQueriesImpl) Month(ctx context.Context, yearMonth string, category string) (*CalendarView, error) {
	days, err := schedule.MonthDays(yearMonth, q.loc)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidMonth)
	}
	return q.compose(ctx, days, category)
}

func (q *calendarQueriesImpl) MergeSlots(slots []schedule.Slot) (*MergedSlotView, error) {
	merged, err := schedule.MergeContiguous(slots)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidSlots)
	}
	return &MergedSlotView{
		Start: merged.Start,
		End:   merged.End,
		Label: merged.Label(),
	}, nil
}

// compose loads the occupancy for the whole span once, then projects it onto
// the hourly grid of each day.
func (q *calendarQueriesImpl) compose(ctx context.Context, days []time.Time, category string) (*CalendarView, error) {
	from := days[0]
	to := days[len(days)-1].AddDate(0, 0, 1)

	occupancy, err := q.repo.ListOccupancy(ctx, from, to, category)
	if err != nil {
		return nil, err
	}

	view := &CalendarView{
		Category: category,
		Days:     make([]DayScheduleView, 0, len(days)),
	}
	for _, day := range days {
		slots := schedule.DaySlots(day)
		slotViews := make([]SlotView, 0, len(slots))
		for _, slot := range slots {
			sv := SlotView{Start: slot.Start, End: slot.End, Label: slot.Label()}
			for _, occ := range occupancy {
				booked := schedule.Slot{Start: occ.StartTime, End: occ.EndTime}
				if slot.Overlaps(booked) {
					sv.Booking = &SlotBookingView{
						ReservationID: occ.ID,
						ClientName:    occ.ClientName,
						Status:        occ.Status,
					}
					break
				}
			}
			slotViews = append(slotViews, sv)
		}
		view.Days = append(view.Days, DayScheduleView{
			Date:  day.Format("2006-01-02"),
			Slots: slotViews,
		})
	}
	return view, nil
}
