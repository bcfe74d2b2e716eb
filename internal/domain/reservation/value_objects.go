package reservation

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidTimeRange = errors.New("end must be after start")
	ErrBlankClientName  = errors.New("client name is required")
)

// TimeRange is the booked interval. Intervals are half-open for overlap
// purposes: touching endpoints do not conflict.
type TimeRange struct {
	start time.Time
	end   time.Time
}

func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !end.After(start) {
		return TimeRange{}, ErrInvalidTimeRange
	}
	return TimeRange{start: start, end: end}, nil
}

func (r TimeRange) Start() time.Time        { return r.start }
func (r TimeRange) End() time.Time          { return r.end }
func (r TimeRange) Duration() time.Duration { return r.end.Sub(r.start) }

// Overlaps is the half-open interval test: start < other.end && end > other.start.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.start.Before(other.end) && r.end.After(other.start)
}

// Hours is the billable hour count, any started hour counts in full.
func (r TimeRange) Hours() int {
	minutes := int(r.Duration().Minutes())
	if minutes <= 0 {
		return 1
	}
	hours := minutes / 60
	if minutes%60 != 0 {
		hours++
	}
	return hours
}

// Label renders the range the way receipts and service line items show it.
func (r TimeRange) Label() string {
	return r.start.Format("2006-01-02 15:04") + " - " + r.end.Format("2006-01-02 15:04")
}

// Client identifies who the reservation is for. Only the name is required;
// DNI and phone are optional contact data.
type Client struct {
	name  string
	dni   string
	phone string
}

func NewClient(name, dni, phone string) (Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Client{}, ErrBlankClientName
	}
	return Client{name: name, dni: strings.TrimSpace(dni), phone: strings.TrimSpace(phone)}, nil
}

func (c Client) Name() string  { return c.name }
func (c Client) DNI() string   { return c.dni }
func (c Client) Phone() string { return c.phone }
