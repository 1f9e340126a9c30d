package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jane-devs/final-management/internal/errors"
	"github.com/jane-devs/final-management/internal/service"
)

// EvaluationHandler handles peer evaluation endpoints.
type EvaluationHandler struct {
	evaluationService service.EvaluationService
}

// NewEvaluationHandler creates a new evaluation handler.
func NewEvaluationHandler(evaluationService service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evaluationService: evaluationService}
}

// CreateEvaluationRequest represents a peer evaluation submission.
type CreateEvaluationRequest struct {
	TeamID    string  `json:"team_id" validate:"required,uuid"`
	SubjectID string  `json:"subject_id" validate:"required,uuid"`
	TaskID    *string `json:"task_id,omitempty" validate:"omitempty,uuid"`
	Score     int     `json:"score" validate:"required,min=1,max=5"`
	Notes     string  `json:"notes,omitempty" validate:"max=1000"`
}

// CreateEvaluation godoc
// @Summary Evaluate a teammate
// @Tags evaluations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateEvaluationRequest true "Evaluation data"
// @Success 201 {object} model.Evaluation
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /evaluations [post]
func (h *EvaluationHandler) CreateEvaluation(c echo.Context) error {
	var req CreateEvaluationRequest
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

	teamID, err := parseRequestUUID(req.TeamID)
	if err != nil {
		return err
	}
	subjectID, err := parseRequestUUID(req.SubjectID)
	if err != nil {
		return err
	}
	input := service.EvaluationInput{
		TeamID:    teamID,
		SubjectID: subjectID,
		Score:     req.Score,
		Notes:     req.Notes,
	}
	if req.TaskID != nil {
		taskID, err := parseRequestUUID(*req.TaskID)
		if err != nil {
			return err
		}
		input.TaskID = &taskID
	}

	evaluation, err := h.evaluationService.CreateEvaluation(c.Request().Context(), actorFrom(c), input)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, evaluation)
}

// DeleteEvaluation godoc
// @Summary Delete an evaluation (evaluator or team owner)
// @Tags evaluations
// @Security BearerAuth
// @Param id path string true "Evaluation ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /evaluations/{id} [delete]
func (h *EvaluationHandler) DeleteEvaluation(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.evaluationService.DeleteEvaluation(c.Request().Context(), actorFrom(c), id); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListForSubject godoc
// @Summary List evaluations received by a user
// @Tags evaluations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subject user ID"
// @Success 200 {array} model.Evaluation
// @Failure 403 {object} errors.ErrorResponse
// @Router /users/{id}/evaluations [get]
func (h *EvaluationHandler) ListForSubject(c echo.Context) error {
	subjectID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	evaluations, err := h.evaluationService.ListForSubject(c.Request().Context(), actorFrom(c), subjectID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, evaluations)
}

// ListGiven godoc
// @Summary List evaluations the current user has given
// @Tags evaluations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Evaluation
// @Router /evaluations/given [get]
func (h *EvaluationHandler) ListGiven(c echo.Context) error {
	evaluations, err := h.evaluationService.ListByEvaluator(c.Request().Context(), actorFrom(c))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, evaluations)
}

// ListForTask godoc
// @Summary List evaluations attached to a task
// @Tags evaluations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {array} model.Evaluation
// @Failure 403 {object} errors.ErrorResponse
// @Router /tasks/{id}/evaluations [get]
func (h *EvaluationHandler) ListForTask(c echo.Context) error {
	taskID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	evaluations, err := h.evaluationService.ListForTask(c.Request().Context(), actorFrom(c), taskID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, evaluations)
}

// SubjectStats godoc
// @Summary Evaluation statistics for a user
// @Tags evaluations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subject user ID"
// @Success 200 {object} service.EvaluationStats
// @Failure 403 {object} errors.ErrorResponse
// @Router /users/{id}/evaluations/stats [get]
func (h *EvaluationHandler) SubjectStats(c echo.Context) error {
	subjectID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	stats, err := h.evaluationService.SubjectStats(c.Request().Context(), actorFrom(c), subjectID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, stats)
}
