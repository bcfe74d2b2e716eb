package response

import (
	"courtdesk/internal/usecase/commands"
	"courtdesk/internal/usecase/queries"

	"github.com/google/uuid"
)

type PaymentOutcomeResponse struct {
	SaleID  uuid.UUID `json:"sale_id"`
	Applied string    `json:"applied"`
	Change  string    `json:"change"`
	Method  string    `json:"method"`
	Summary string    `json:"summary"`
}

type BookingResponse struct {
	ReservationID uuid.UUID               `json:"reservation_id"`
	Total         string                  `json:"total"`
	Paid          string                  `json:"paid"`
	Balance       string                  `json:"balance"`
	Status        string                  `json:"status"`
	Payment       *PaymentOutcomeResponse `json:"payment,omitempty"`
}

func FromBookingResult(result *commands.BookingResult) BookingResponse {
	resp := BookingResponse{
		ReservationID: result.ReservationID,
		Total:         result.Total.String(),
		Paid:          result.Paid.String(),
		Balance:       result.Balance.String(),
		Status:        result.Status,
	}
	if result.Payment != nil {
		resp.Payment = &PaymentOutcomeResponse{
			SaleID:  result.Payment.SaleID,
			Applied: result.Payment.Applied.String(),
			Change:  result.Payment.Change.String(),
			Method:  result.Payment.Method,
			Summary: result.Payment.Summary,
		}
	}
	return resp
}

type ReservationListResponse struct {
	Items      []*queries.ReservationListItem `json:"items"`
	NextCursor string                         `json:"next_cursor,omitempty"`
}

func FromReservationList(items []*queries.ReservationListItem, next *queries.Cursor) ReservationListResponse {
	resp := ReservationListResponse{Items: items}
	if next != nil {
		resp.NextCursor = next.After
	}
	return resp
}
