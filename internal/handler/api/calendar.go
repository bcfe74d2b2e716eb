package api

import (
	"errors"
	"net/http"

	reqdto "courtdesk/internal/handler/dto/request"
	"courtdesk/internal/handler/httperr"
	"courtdesk/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CalendarHandler struct {
	calendarQueries queries.CalendarQueries
}

func NewCalendarHandler(calendarQueries queries.CalendarQueries) *CalendarHandler {
	return &CalendarHandler{calendarQueries: calendarQueries}
}

func (h *CalendarHandler) Day(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, nil, "date query parameter is required", nil)
		return
	}

	view, err := h.calendarQueries.Day(c.Request.Context(), date, c.Query("category"))
	if err != nil {
		abortCalendarError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CalendarHandler) Week(c *gin.Context) {
	week := c.Query("week")
	if week == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, nil, "week query parameter is required", nil)
		return
	}

	view, err := h.calendarQueries.Week(c.Request.Context(), week, c.Query("category"))
	if err != nil {
		abortCalendarError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CalendarHandler) Month(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, nil, "month query parameter is required", nil)
		return
	}

	view, err := h.calendarQueries.Month(c.Request.Context(), month, c.Query("category"))
	if err != nil {
		abortCalendarError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CalendarHandler) MergeSlots(c *gin.Context) {
	var req reqdto.MergeSlotsRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	merged, err := h.calendarQueries.MergeSlots(req.ToSlots())
	if err != nil {
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Slots are not contiguous", nil)
		return
	}
	c.JSON(http.StatusOK, merged)
}

func abortCalendarError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, queries.ErrInvalidDate),
		errors.Is(err, queries.ErrInvalidWeek),
		errors.Is(err, queries.ErrInvalidMonth):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid calendar parameter", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
