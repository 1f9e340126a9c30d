package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jane-devs/final-management/internal/errors"
	"github.com/jane-devs/final-management/internal/service"
)

// MeetingHandler handles meeting endpoints.
type MeetingHandler struct {
	meetingService service.MeetingService
}

// NewMeetingHandler creates a new meeting handler.
func NewMeetingHandler(meetingService service.MeetingService) *MeetingHandler {
	return &MeetingHandler{meetingService: meetingService}
}

// MeetingRequest represents meeting creation or update data.
type MeetingRequest struct {
	Title          string    `json:"title" validate:"required,max=200"`
	Description    string    `json:"description,omitempty"`
	Location       string    `json:"location,omitempty" validate:"max=200"`
	StartTime      time.Time `json:"start_time" validate:"required"`
	EndTime        time.Time `json:"end_time" validate:"required"`
	ParticipantIDs []string  `json:"participant_ids,omitempty" validate:"dive,uuid"`
}

func (r *MeetingRequest) toInput() (service.MeetingInput, error) {
	input := service.MeetingInput{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
	}
	for _, raw := range r.ParticipantIDs {
		id, err := parseRequestUUID(raw)
		if err != nil {
			return service.MeetingInput{}, err
		}
		input.ParticipantIDs = append(input.ParticipantIDs, id)
	}
	return input, nil
}

// CreateMeeting godoc
// @Summary Schedule a meeting for a team
// @Tags meetings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Param request body MeetingRequest true "Meeting data"
// @Success 201 {object} model.Meeting
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /teams/{id}/meetings [post]
func (h *MeetingHandler) CreateMeeting(c echo.Context) error {
	teamID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req MeetingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}
	input, err := req.toInput()
	if err != nil {
		return err
	}

	meeting, err := h.meetingService.CreateMeeting(c.Request().Context(), actorFrom(c), teamID, input)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, meeting)
}

// ListTeamMeetings godoc
// @Summary List a team's meetings
// @Tags meetings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Success 200 {array} model.Meeting
// @Failure 403 {object} errors.ErrorResponse
// @Router /teams/{id}/meetings [get]
func (h *MeetingHandler) ListTeamMeetings(c echo.Context) error {
	teamID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	meetings, err := h.meetingService.ListTeamMeetings(c.Request().Context(), actorFrom(c), teamID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, meetings)
}

// GetMeeting godoc
// @Summary Get a meeting with its participants
// @Tags meetings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Meeting ID"
// @Success 200 {object} model.Meeting
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /meetings/{id} [get]
func (h *MeetingHandler) GetMeeting(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	meeting, err := h.meetingService.GetMeeting(c.Request().Context(), actorFrom(c), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, meeting)
}

// UpdateMeeting godoc
// @Summary Update a meeting (creator or team owner)
// @Tags meetings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Meeting ID"
// @Param request body MeetingRequest true "Meeting data"
// @Success 200 {object} model.Meeting
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /meetings/{id} [put]
func (h *MeetingHandler) UpdateMeeting(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req MeetingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}
	input, err := req.toInput()
	if err != nil {
		return err
	}

	meeting, err := h.meetingService.UpdateMeeting(c.Request().Context(), actorFrom(c), id, input)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, meeting)
}

// DeleteMeeting godoc
// @Summary Cancel a meeting (creator or team owner)
// @Tags meetings
// @Security BearerAuth
// @Param id path string true "Meeting ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /meetings/{id} [delete]
func (h *MeetingHandler) DeleteMeeting(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.meetingService.DeleteMeeting(c.Request().Context(), actorFrom(c), id); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
