package response

import (
	"courtdesk/internal/usecase/commands"
	"courtdesk/internal/usecase/queries"

	"github.com/google/uuid"
)

type SettledReservationResponse struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	Applied       string    `json:"applied"`
	Paid          string    `json:"paid"`
	Balance       string    `json:"balance"`
	Status        string    `json:"status"`
}

type CheckoutResponse struct {
	SaleID      uuid.UUID                   `json:"sale_id"`
	Total       string                      `json:"total"`
	Change      string                      `json:"change"`
	Method      string                      `json:"method"`
	Summary     string                      `json:"summary"`
	Reservation *SettledReservationResponse `json:"reservation,omitempty"`
}

func FromCheckoutResult(result *commands.CheckoutResult) CheckoutResponse {
	resp := CheckoutResponse{
		SaleID:  result.SaleID,
		Total:   result.Total.String(),
		Change:  result.Change.String(),
		Method:  result.Method,
		Summary: result.Summary,
	}
	if result.Reservation != nil {
		resp.Reservation = &SettledReservationResponse{
			ReservationID: result.Reservation.ID,
			Applied:       result.Reservation.Applied.String(),
			Paid:          result.Reservation.Paid.String(),
			Balance:       result.Reservation.Balance.String(),
			Status:        result.Reservation.Status,
		}
	}
	return resp
}

type CashboxActivityResponse struct {
	Entries    []*queries.CashboxEntryView `json:"entries"`
	NextCursor string                      `json:"next_cursor,omitempty"`
}

func FromCashboxActivity(entries []*queries.CashboxEntryView, next *queries.Cursor) CashboxActivityResponse {
	resp := CashboxActivityResponse{Entries: entries}
	if next != nil {
		resp.NextCursor = next.After
	}
	return resp
}
