package api

import (
	"net/http"
	"time"

	resdto "courtdesk/internal/handler/dto/response"
	"courtdesk/internal/handler/httperr"
	"courtdesk/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CashboxHandler struct {
	cashboxQueries queries.CashboxQueries
}

func NewCashboxHandler(cashboxQueries queries.CashboxQueries) *CashboxHandler {
	return &CashboxHandler{cashboxQueries: cashboxQueries}
}

func (h *CashboxHandler) Activity(c *gin.Context) {
	filter := queries.CashboxFilter{
		Action: c.Query("action"),
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid from timestamp", nil)
			return
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid to timestamp", nil)
			return
		}
		filter.To = &t
	}

	var after *queries.Cursor
	if cursor := c.Query("after"); cursor != "" {
		after = &queries.Cursor{After: cursor}
	}
	limit := intQuery(c, "limit", 0)

	entries, next, err := h.cashboxQueries.Activity(c.Request.Context(), filter, after, limit)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid activity parameters", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCashboxActivity(entries, next))
}

func (h *CashboxHandler) ByReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID format", nil)
		return
	}

	entries, err := h.cashboxQueries.ByReservation(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
