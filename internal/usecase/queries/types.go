package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type ReservationView struct {
	ID           uuid.UUID  `json:"id"`
	Category     string     `json:"category"`
	FieldName    string     `json:"field_name"`
	ClientName   string     `json:"client_name"`
	ClientDNI    string     `json:"client_dni,omitempty"`
	ClientPhone  string     `json:"client_phone,omitempty"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      time.Time  `json:"end_time"`
	Total        string     `json:"total"`
	Paid         string     `json:"paid"`
	Balance      string     `json:"balance"`
	Status       string     `json:"status"`
	CancelReason string     `json:"cancel_reason,omitempty"`
	CreatedBy    *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type ReservationListItem struct {
	ID         uuid.UUID `json:"id"`
	Category   string    `json:"category"`
	FieldName  string    `json:"field_name"`
	ClientName string    `json:"client_name"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Total      string    `json:"total"`
	Paid       string    `json:"paid"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// SlotBookingView is the occupancy detail shown inside a calendar slot.
type SlotBookingView struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	ClientName    string    `json:"client_name"`
	Status        string    `json:"status"`
}

type SlotView struct {
	Start   time.Time        `json:"start"`
	End     time.Time        `json:"end"`
	Label   string           `json:"label"`
	Booking *SlotBookingView `json:"booking,omitempty"`
}

type DayScheduleView struct {
	Date  string     `json:"date"`
	Slots []SlotView `json:"slots"`
}

type CalendarView struct {
	Category string            `json:"category,omitempty"`
	Days     []DayScheduleView `json:"days"`
}

type MergedSlotView struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

type CashboxEntryView struct {
	ID            uuid.UUID  `json:"id"`
	Action        string     `json:"action"`
	Amount        string     `json:"amount"`
	Note          string     `json:"note"`
	SaleID        *uuid.UUID `json:"sale_id,omitempty"`
	ReservationID *uuid.UUID `json:"reservation_id,omitempty"`
	CreatedBy     *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ReservationOccupancy is the raw occupancy row the calendar composes from.
type ReservationOccupancy struct {
	ID         uuid.UUID
	Category   string
	FieldName  string
	ClientName string
	Status     string
	StartTime  time.Time
	EndTime    time.Time
}
