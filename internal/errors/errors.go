package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrTeamNotFound is returned when a team is not found.
	ErrTeamNotFound = errors.New("team not found")
	// ErrTaskNotFound is returned when a task is not found.
	ErrTaskNotFound = errors.New("task not found")
	// ErrMeetingNotFound is returned when a meeting is not found.
	ErrMeetingNotFound = errors.New("meeting not found")
	// ErrCommentNotFound is returned when a comment is not found.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrEvaluationNotFound is returned when an evaluation is not found.
	ErrEvaluationNotFound = errors.New("evaluation not found")
	// ErrInviteCodeInvalid is returned when no team matches an invite code.
	ErrInviteCodeInvalid = errors.New("invalid invite code")
	// ErrForbidden is returned when the access-control evaluator denies an action.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidOperation is returned for definitive business-rule violations,
	// e.g. removing a team's sole owner or evaluating yourself.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrAlreadyMember is returned when adding a user who already belongs to the team.
	ErrAlreadyMember = errors.New("user is already a team member")
	// ErrNotInTeam is returned when an operation targets a user outside the team.
	ErrNotInTeam = errors.New("user is not a team member")
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email already registered")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Business-rule errors are
// terminal outcomes, never retried.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrTeamNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TEAM_NOT_FOUND")
	case errors.Is(err, ErrTaskNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TASK_NOT_FOUND")
	case errors.Is(err, ErrMeetingNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "MEETING_NOT_FOUND")
	case errors.Is(err, ErrCommentNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "COMMENT_NOT_FOUND")
	case errors.Is(err, ErrEvaluationNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "EVALUATION_NOT_FOUND")
	case errors.Is(err, ErrInviteCodeInvalid):
		return NewHTTPError(http.StatusNotFound, err.Error(), "INVITE_CODE_INVALID")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrInvalidOperation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_OPERATION")
	case errors.Is(err, ErrNotInTeam):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NOT_IN_TEAM")
	case errors.Is(err, ErrAlreadyMember):
		return NewHTTPError(http.StatusConflict, err.Error(), "ALREADY_MEMBER")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
