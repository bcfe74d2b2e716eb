package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "courtdesk/internal/handler/dto/request"
	resdto "courtdesk/internal/handler/dto/response"
	"courtdesk/internal/handler/httperr"
	"courtdesk/internal/handler/middleware"
	"courtdesk/internal/infra"
	"courtdesk/internal/pkg/metrics"
	"courtdesk/internal/usecase/commands"
	"courtdesk/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	bookingCommands    commands.BookingCommands
	reservationQueries queries.ReservationQueries
}

func NewReservationHandler(bookingCommands commands.BookingCommands, reservationQueries queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{
		bookingCommands:    bookingCommands,
		reservationQueries: reservationQueries,
	}
}

func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	var req reqdto.CreateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	result, err := h.bookingCommands.Book(c.Request.Context(), actor, req.ToCommand())
	if err != nil {
		if errors.Is(err, commands.ErrSlotConflict) {
			metrics.IncBooking(req.Category, "conflict")
		}
		abortBookingError(c, err)
		return
	}

	metrics.IncBooking(req.Category, "created")
	if result.Payment != nil {
		metrics.IncPayment(result.Payment.Method)
	}
	c.JSON(http.StatusCreated, resdto.FromBookingResult(result))
}

func (h *ReservationHandler) ApplyPayment(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID format", nil)
		return
	}

	var req reqdto.ApplyPaymentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	cmd := commands.ApplyPaymentCommand{
		ReservationID: id,
		Amount:        moneyFromFloat(req.Amount),
		Payment:       req.Payment.ToInstruction(),
	}

	result, err := h.bookingCommands.ApplyPayment(c.Request.Context(), actor, cmd)
	if err != nil {
		abortBookingError(c, err)
		return
	}

	if result.Payment != nil {
		metrics.IncPayment(result.Payment.Method)
	}
	c.JSON(http.StatusOK, resdto.FromBookingResult(result))
}

func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID format", nil)
		return
	}

	var req reqdto.CancelReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	cmd := commands.CancelCommand{ReservationID: id, Reason: req.Reason}
	if err := h.bookingCommands.Cancel(c.Request.Context(), actor, cmd); err != nil {
		abortBookingError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID format", nil)
		return
	}

	view, err := h.reservationQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *ReservationHandler) ListReservations(c *gin.Context) {
	filter := queries.ReservationFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
	}
	if from, err := parseTimeQuery(c.Query("from")); err == nil && from != nil {
		filter.From = from
	}
	if to, err := parseTimeQuery(c.Query("to")); err == nil && to != nil {
		filter.To = to
	}

	var after *queries.Cursor
	if cursor := c.Query("after"); cursor != "" {
		after = &queries.Cursor{After: cursor}
	}
	limit := intQuery(c, "limit", 0)

	items, next, err := h.reservationQueries.List(c.Request.Context(), filter, after, limit)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid list parameters", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationList(items, next))
}

func abortBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrPermissionDenied):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Insufficient permissions", nil)
	case errors.Is(err, commands.ErrReservationNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
	case errors.Is(err, commands.ErrSlotConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Time slot already booked", nil)
	case errors.Is(err, commands.ErrInvalidState):
		httperr.AbortWithError(c, http.StatusConflict, err, "Reservation state does not allow this operation", nil)
	case errors.Is(err, commands.ErrNothingToPay):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Reservation has no open balance", nil)
	case errors.Is(err, commands.ErrInsufficientTender):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Tendered amount does not cover the total", nil)
	case errors.Is(err, commands.ErrUnknownInstrument):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown payment instrument", nil)
	case errors.Is(err, commands.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Domain validation failed", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func parseTimeQuery(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
