package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jane-devs/final-management/internal/errors"
	"github.com/jane-devs/final-management/internal/service"
)

// CalendarHandler handles calendar aggregation endpoints.
type CalendarHandler struct {
	calendarService service.CalendarService
}

// NewCalendarHandler creates a new calendar handler.
func NewCalendarHandler(calendarService service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

const dateLayout = "2006-01-02"

// MonthViewResponse maps ISO dates to that day's activity counts.
type MonthViewResponse struct {
	Year  int                          `json:"year"`
	Month int                          `json:"month"`
	Days  map[string]service.DayCounts `json:"days"`
}

// DayView godoc
// @Summary Merged tasks and meetings for one day
// @Description Defaults to the current UTC day when no date is given.
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Param date query string false "Day in YYYY-MM-DD format"
// @Success 200 {object} service.DayView
// @Failure 400 {object} errors.ErrorResponse
// @Router /calendar/day [get]
func (h *CalendarHandler) DayView(c echo.Context) error {
	date := time.Now().UTC()
	if raw := c.QueryParam("date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "date must be in YYYY-MM-DD format",
				Code:  "INVALID_DATE",
			})
		}
		date = parsed
	}

	view, err := h.calendarService.DayView(c.Request().Context(), actorFrom(c), date)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, view)
}

// MonthView godoc
// @Summary Per-day activity counts for one month
// @Description Defaults to the current UTC month. Days without activity are omitted.
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Param year query int false "Year"
// @Param month query int false "Month (1-12)"
// @Success 200 {object} MonthViewResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /calendar/month [get]
func (h *CalendarHandler) MonthView(c echo.Context) error {
	now := time.Now().UTC()
	year, month := now.Year(), int(now.Month())
	if raw := c.QueryParam("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "year must be a number",
				Code:  "INVALID_DATE",
			})
		}
		year = parsed
	}
	if raw := c.QueryParam("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "month must be a number between 1 and 12",
				Code:  "INVALID_DATE",
			})
		}
		month = parsed
	}

	days, err := h.calendarService.MonthView(c.Request().Context(), actorFrom(c), year, month)
	if err != nil {
		return domainError(err)
	}

	resp := MonthViewResponse{
		Year:  year,
		Month: month,
		Days:  make(map[string]service.DayCounts, len(days)),
	}
	for day, counts := range days {
		resp.Days[day.Format(dateLayout)] = counts
	}
	return c.JSON(http.StatusOK, resp)
}
