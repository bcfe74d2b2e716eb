package api

import (
	"errors"
	"net/http"

	reqdto "courtdesk/internal/handler/dto/request"
	resdto "courtdesk/internal/handler/dto/response"
	"courtdesk/internal/handler/httperr"
	"courtdesk/internal/handler/middleware"
	"courtdesk/internal/pkg/metrics"
	"courtdesk/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	checkoutCommands commands.CheckoutCommands
}

func NewCheckoutHandler(checkoutCommands commands.CheckoutCommands) *CheckoutHandler {
	return &CheckoutHandler{checkoutCommands: checkoutCommands}
}

func (h *CheckoutHandler) Checkout(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	var req reqdto.CheckoutRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	result, err := h.checkoutCommands.Checkout(c.Request.Context(), actor, req.ToCommand())
	if err != nil {
		abortCheckoutError(c, err)
		return
	}

	metrics.IncPayment(result.Method)
	c.JSON(http.StatusCreated, resdto.FromCheckoutResult(result))
}

func abortCheckoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrPermissionDenied):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Insufficient permissions", nil)
	case errors.Is(err, commands.ErrEmptyCart):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Checkout requires at least one item", nil)
	case errors.Is(err, commands.ErrReservationNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
	case errors.Is(err, commands.ErrInvalidState):
		httperr.AbortWithError(c, http.StatusConflict, err, "Reservation state does not allow this operation", nil)
	case errors.Is(err, commands.ErrNothingToPay):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Reservation has no open balance", nil)
	case errors.Is(err, commands.ErrInvalidQuantity), errors.Is(err, commands.ErrInvalidPrice):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid item quantity or price", nil)
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
