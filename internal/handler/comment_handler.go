package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jane-devs/final-management/internal/errors"
	"github.com/jane-devs/final-management/internal/service"
)

// CommentHandler handles task comment endpoints.
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CommentRequest carries the comment body text.
type CommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// CreateComment godoc
// @Summary Comment on a task
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body CommentRequest true "Comment text"
// @Success 201 {object} model.Comment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /tasks/{id}/comments [post]
func (h *CommentHandler) CreateComment(c echo.Context) error {
	taskID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req CommentRequest
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

	comment, err := h.commentService.CreateComment(c.Request().Context(), actorFrom(c), taskID, req.Content)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// ListTaskComments godoc
// @Summary List a task's comments, oldest first
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {array} model.Comment
// @Failure 403 {object} errors.ErrorResponse
// @Router /tasks/{id}/comments [get]
func (h *CommentHandler) ListTaskComments(c echo.Context) error {
	taskID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	comments, err := h.commentService.ListTaskComments(c.Request().Context(), actorFrom(c), taskID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, comments)
}

// UpdateComment godoc
// @Summary Edit a comment (author or team owner)
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Param request body CommentRequest true "Comment text"
// @Success 200 {object} model.Comment
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/{id} [put]
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req CommentRequest
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

	comment, err := h.commentService.UpdateComment(c.Request().Context(), actorFrom(c), id, req.Content)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, comment)
}

// DeleteComment godoc
// @Summary Delete a comment (author or team owner)
// @Tags comments
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.commentService.DeleteComment(c.Request().Context(), actorFrom(c), id); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
