package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jane-devs/final-management/internal/errors"
	"github.com/jane-devs/final-management/internal/service"
)

// TeamHandler handles team endpoints.
type TeamHandler struct {
	teamService service.TeamService
}

// NewTeamHandler creates a new team handler.
func NewTeamHandler(teamService service.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// TeamRequest represents team creation/update data.
type TeamRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description,omitempty"`
}

// JoinTeamRequest represents a join-by-invite-code request.
type JoinTeamRequest struct {
	InviteCode string `json:"invite_code" validate:"required"`
}

// MemberRequest identifies a user for roster operations.
type MemberRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

// CreateTeam godoc
// @Summary Create a team; the creator becomes owner
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TeamRequest true "Team data"
// @Success 201 {object} model.Team
// @Failure 400 {object} errors.ErrorResponse
// @Router /teams [post]
func (h *TeamHandler) CreateTeam(c echo.Context) error {
	var req TeamRequest
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

	team, err := h.teamService.CreateTeam(c.Request().Context(), actorFrom(c), req.Name, req.Description)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, team)
}

// GetTeam godoc
// @Summary Get a team with its members
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Success 200 {object} model.Team
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /teams/{id} [get]
func (h *TeamHandler) GetTeam(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	team, err := h.teamService.GetTeam(c.Request().Context(), actorFrom(c), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, team)
}

// ListMyTeams godoc
// @Summary List teams the authenticated user belongs to
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Team
// @Router /teams [get]
func (h *TeamHandler) ListMyTeams(c echo.Context) error {
	teams, err := h.teamService.ListMyTeams(c.Request().Context(), actorFrom(c))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, teams)
}

// UpdateTeam godoc
// @Summary Update team name/description (owner only)
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Param request body TeamRequest true "Team data"
// @Success 200 {object} model.Team
// @Failure 403 {object} errors.ErrorResponse
// @Router /teams/{id} [put]
func (h *TeamHandler) UpdateTeam(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req TeamRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	team, err := h.teamService.UpdateTeam(c.Request().Context(), actorFrom(c), id, req.Name, req.Description)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, team)
}

// DeleteTeam godoc
// @Summary Delete a team (owner or admin)
// @Tags teams
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Router /teams/{id} [delete]
func (h *TeamHandler) DeleteTeam(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.teamService.DeleteTeam(c.Request().Context(), actorFrom(c), id); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// JoinTeam godoc
// @Summary Join a team by invite code
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body JoinTeamRequest true "Invite code"
// @Success 200 {object} model.Team
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /teams/join [post]
func (h *TeamHandler) JoinTeam(c echo.Context) error {
	var req JoinTeamRequest
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

	team, err := h.teamService.JoinByInviteCode(c.Request().Context(), actorFrom(c), req.InviteCode)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, team)
}

// ListMembers godoc
// @Summary List team members
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Success 200 {array} model.Membership
// @Failure 403 {object} errors.ErrorResponse
// @Router /teams/{id}/members [get]
func (h *TeamHandler) ListMembers(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	members, err := h.teamService.ListMembers(c.Request().Context(), actorFrom(c), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, members)
}

// AddMember godoc
// @Summary Add a member to a team (owner or admin)
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Param request body MemberRequest true "User to add"
// @Success 201 {object} model.Membership
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /teams/{id}/members [post]
func (h *TeamHandler) AddMember(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req MemberRequest
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
	userID, err := parseRequestUUID(req.UserID)
	if err != nil {
		return err
	}

	membership, err := h.teamService.AddMember(c.Request().Context(), actorFrom(c), id, userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, membership)
}

// RemoveMember godoc
// @Summary Remove a member from a team (owner or admin)
// @Tags teams
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Param userId path string true "User ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /teams/{id}/members/{userId} [delete]
func (h *TeamHandler) RemoveMember(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	userID, err := parseUUIDParam(c, "userId")
	if err != nil {
		return err
	}
	if err := h.teamService.RemoveMember(c.Request().Context(), actorFrom(c), id, userID); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// LeaveTeam godoc
// @Summary Leave a team (owners must transfer ownership first)
// @Tags teams
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Router /teams/{id}/leave [post]
func (h *TeamHandler) LeaveTeam(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.teamService.LeaveTeam(c.Request().Context(), actorFrom(c), id); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// TransferOwnership godoc
// @Summary Transfer team ownership to another member
// @Tags teams
// @Accept json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Param request body MemberRequest true "New owner"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /teams/{id}/transfer [post]
func (h *TeamHandler) TransferOwnership(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req MemberRequest
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
	userID, err := parseRequestUUID(req.UserID)
	if err != nil {
		return err
	}

	if err := h.teamService.TransferOwnership(c.Request().Context(), actorFrom(c), id, userID); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
