package request

import (
	"courtdesk/internal/domain/money"
	"courtdesk/internal/usecase/commands"

	"github.com/google/uuid"
)

type CheckoutItemRequest struct {
	Description   string  `json:"description" binding:"required"`
	Quantity      float64 `json:"quantity" binding:"required"`
	AllowFraction bool    `json:"allow_fraction"`
	UnitPrice     float64 `json:"unit_price" binding:"required"`
}

type CheckoutRequest struct {
	// Items may be empty when a reservation is being settled on its own.
	Items         []CheckoutItemRequest `json:"items" binding:"omitempty,dive"`
	Note          string                `json:"note"`
	ReservationID *uuid.UUID            `json:"reservation_id"`
	Payment       PaymentRequest        `json:"payment" binding:"required"`
}

func (r CheckoutRequest) ToCommand() commands.CheckoutCommand {
	items := make([]commands.CheckoutItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, commands.CheckoutItem{
			Description:   it.Description,
			Quantity:      it.Quantity,
			AllowFraction: it.AllowFraction,
			UnitPrice:     money.FromFloat(it.UnitPrice),
		})
	}
	return commands.CheckoutCommand{
		Items:         items,
		Note:          r.Note,
		ReservationID: r.ReservationID,
		Payment:       r.Payment.ToInstruction(),
	}
}
