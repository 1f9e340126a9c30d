// Package access decides whether an actor may perform an action on a
// team-owned resource. Decisions are computed synchronously from data the
// caller has already loaded; resources are described by flat descriptors so
// entities never need back-references to each other.
package access

import (
	"github.com/google/uuid"

	"github.com/jane-devs/final-management/internal/model"
)

// Action is a closed enumeration of the operations the evaluator rules on.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Kind is a closed enumeration of resource kinds.
type Kind string

const (
	KindTeam       Kind = "team"
	KindTask       Kind = "task"
	KindMeeting    Kind = "meeting"
	KindComment    Kind = "comment"
	KindEvaluation Kind = "evaluation"
)

// Resource describes the resource under decision. Only the fields relevant
// to the kind are set; TeamID is the owning team for every kind.
type Resource struct {
	Kind       Kind
	TeamID     uuid.UUID
	AuthorID   uuid.UUID  // creator of a task/meeting, author of a comment, evaluator of an evaluation
	AssigneeID *uuid.UUID // task assignee, when present
	SubjectID  uuid.UUID  // evaluation subject
}

// TeamResource describes a team itself.
func TeamResource(teamID uuid.UUID) Resource {
	return Resource{Kind: KindTeam, TeamID: teamID}
}

// NewTaskResource describes a task yet to be created in a team.
func NewTaskResource(teamID uuid.UUID) Resource {
	return Resource{Kind: KindTask, TeamID: teamID}
}

// TaskResource describes an existing task.
func TaskResource(t *model.Task) Resource {
	return Resource{
		Kind:       KindTask,
		TeamID:     t.TeamID,
		AuthorID:   t.CreatorID,
		AssigneeID: t.AssigneeID,
	}
}

// NewMeetingResource describes a meeting yet to be created in a team.
func NewMeetingResource(teamID uuid.UUID) Resource {
	return Resource{Kind: KindMeeting, TeamID: teamID}
}

// MeetingResource describes an existing meeting.
func MeetingResource(m *model.Meeting) Resource {
	return Resource{Kind: KindMeeting, TeamID: m.TeamID, AuthorID: m.CreatorID}
}

// NewCommentResource describes a comment yet to be created on a task of the
// given team.
func NewCommentResource(teamID uuid.UUID) Resource {
	return Resource{Kind: KindComment, TeamID: teamID}
}

// CommentResource describes an existing comment; the owning team is resolved
// from the comment's task by the caller.
func CommentResource(c *model.Comment, teamID uuid.UUID) Resource {
	return Resource{Kind: KindComment, TeamID: teamID, AuthorID: c.AuthorID}
}

// NewEvaluationResource describes an evaluation yet to be created.
func NewEvaluationResource(teamID, subjectID uuid.UUID) Resource {
	return Resource{Kind: KindEvaluation, TeamID: teamID, SubjectID: subjectID}
}

// EvaluationResource describes an existing evaluation.
func EvaluationResource(e *model.Evaluation) Resource {
	return Resource{
		Kind:      KindEvaluation,
		TeamID:    e.TeamID,
		AuthorID:  e.EvaluatorID,
		SubjectID: e.SubjectID,
	}
}
