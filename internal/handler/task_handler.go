package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/jane-devs/final-management/internal/errors"
	"github.com/jane-devs/final-management/internal/model"
	"github.com/jane-devs/final-management/internal/repository"
	"github.com/jane-devs/final-management/internal/service"
)

// TaskHandler handles task endpoints.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTaskRequest represents task creation data.
type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
	AssigneeID  *string    `json:"assignee_id,omitempty" validate:"omitempty,uuid"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// UpdateTaskRequest represents task update data; absent fields are untouched.
type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=todo in_progress done"`
	Priority    *string    `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
	AssigneeID  *string    `json:"assignee_id,omitempty" validate:"omitempty,uuid"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	ClearDue    bool       `json:"clear_due,omitempty"`
}

// AssignTaskRequest identifies the new assignee.
type AssignTaskRequest struct {
	AssigneeID string `json:"assignee_id" validate:"required,uuid"`
}

// CreateTask godoc
// @Summary Create a task in a team
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Param request body CreateTaskRequest true "Task data"
// @Success 201 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /teams/{id}/tasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	teamID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req CreateTaskRequest
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

	input := service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    model.TaskPriority(req.Priority),
		DueDate:     req.DueDate,
	}
	if req.AssigneeID != nil {
		assigneeID, err := parseRequestUUID(*req.AssigneeID)
		if err != nil {
			return err
		}
		input.AssigneeID = &assigneeID
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), actorFrom(c), teamID, input)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, task)
}

// ListTeamTasks godoc
// @Summary List team tasks with optional filters
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Param status query string false "Filter by status"
// @Param priority query string false "Filter by priority"
// @Param assignee_id query string false "Filter by assignee"
// @Param overdue query bool false "Only overdue tasks"
// @Success 200 {array} model.Task
// @Failure 403 {object} errors.ErrorResponse
// @Router /teams/{id}/tasks [get]
func (h *TaskHandler) ListTeamTasks(c echo.Context) error {
	teamID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var filter repository.TaskFilter
	if v := c.QueryParam("status"); v != "" {
		status := model.TaskStatus(v)
		filter.Status = &status
	}
	if v := c.QueryParam("priority"); v != "" {
		priority := model.TaskPriority(v)
		filter.Priority = &priority
	}
	if v := c.QueryParam("assignee_id"); v != "" {
		assigneeID, err := uuid.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid assignee_id",
				Code:  "INVALID_UUID",
			})
		}
		filter.AssigneeID = &assigneeID
	}
	filter.OverdueOnly = c.QueryParam("overdue") == "true"

	tasks, err := h.taskService.ListTeamTasks(c.Request().Context(), actorFrom(c), teamID, filter)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// GetTask godoc
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} model.Task
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	task, err := h.taskService.GetTask(c.Request().Context(), actorFrom(c), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, task)
}

// UpdateTask godoc
// @Summary Update a task (creator, assignee, or team owner)
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body UpdateTaskRequest true "Task fields"
// @Success 200 {object} model.Task
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [patch]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req UpdateTaskRequest
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

	update := service.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		ClearDue:    req.ClearDue,
	}
	if req.Status != nil {
		status := model.TaskStatus(*req.Status)
		update.Status = &status
	}
	if req.Priority != nil {
		priority := model.TaskPriority(*req.Priority)
		update.Priority = &priority
	}
	if req.AssigneeID != nil {
		assigneeID, err := parseRequestUUID(*req.AssigneeID)
		if err != nil {
			return err
		}
		update.AssigneeID = &assigneeID
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), actorFrom(c), id, update)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, task)
}

// DeleteTask godoc
// @Summary Delete a task (creator, assignee, or team owner)
// @Tags tasks
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.taskService.DeleteTask(c.Request().Context(), actorFrom(c), id); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AssignTask godoc
// @Summary Assign a task to a team member
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body AssignTaskRequest true "Assignee"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /tasks/{id}/assign [post]
func (h *TaskHandler) AssignTask(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req AssignTaskRequest
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
	assigneeID, err := parseRequestUUID(req.AssigneeID)
	if err != nil {
		return err
	}

	task, err := h.taskService.AssignTask(c.Request().Context(), actorFrom(c), id, assigneeID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, task)
}

// CompleteTask godoc
// @Summary Mark a task as done
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /tasks/{id}/complete [post]
func (h *TaskHandler) CompleteTask(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	task, err := h.taskService.CompleteTask(c.Request().Context(), actorFrom(c), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, task)
}
