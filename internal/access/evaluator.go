package access

import (
	"context"

	"github.com/google/uuid"

	"github.com/jane-devs/final-management/internal/errors"
	"github.com/jane-devs/final-management/internal/model"
)

// MembershipReader is the membership lookup surface the evaluator needs.
// It is satisfied by the membership service.
type MembershipReader interface {
	RoleOf(ctx context.Context, userID, teamID uuid.UUID) (model.Role, error)
	ShareTeam(ctx context.Context, userA, userB uuid.UUID) (bool, error)
}

// Evaluator decides allow/deny for (actor, resource, action) triples.
type Evaluator struct {
	memberships MembershipReader
}

// NewEvaluator creates an evaluator backed by the given membership reader.
func NewEvaluator(memberships MembershipReader) *Evaluator {
	return &Evaluator{memberships: memberships}
}

type ruleKey struct {
	kind   Kind
	action Action
}

// ruleFunc decides for an actor already known to be a member of the
// resource's team. role is the actor's role in that team.
type ruleFunc func(ctx context.Context, e *Evaluator, actor *model.User, role model.Role, res Resource) error

// rules is the closed decision table. Pairs absent from the table are
// denied, so an unknown resource/action combination can never silently
// succeed.
var rules = map[ruleKey]ruleFunc{
	{KindTeam, ActionRead}:          allowMember,
	{KindTeam, ActionUpdate}:        allowOwner,
	{KindTeam, ActionDelete}:        allowOwner,
	{KindTask, ActionRead}:          allowMember,
	{KindTask, ActionCreate}:        allowMember,
	{KindTask, ActionUpdate}:        allowAuthorAssigneeOrOwner,
	{KindTask, ActionDelete}:        allowAuthorAssigneeOrOwner,
	{KindMeeting, ActionRead}:       allowMember,
	{KindMeeting, ActionCreate}:     allowMember,
	{KindMeeting, ActionUpdate}:     allowAuthorOrOwner,
	{KindMeeting, ActionDelete}:     allowAuthorOrOwner,
	{KindComment, ActionRead}:       allowMember,
	{KindComment, ActionCreate}:     allowMember,
	{KindComment, ActionUpdate}:     allowAuthorAssigneeOrOwner,
	{KindComment, ActionDelete}:     allowAuthorAssigneeOrOwner,
	{KindEvaluation, ActionRead}:    allowMember,
	{KindEvaluation, ActionCreate}:  allowEvaluationCreate,
	{KindEvaluation, ActionUpdate}:  allowAuthorOrOwner,
	{KindEvaluation, ActionDelete}:  allowAuthorOrOwner,
}

// Check returns nil when the actor may perform the action on the resource,
// errors.ErrForbidden or errors.ErrInvalidOperation otherwise.
//
// Decision order:
//  1. admins may do anything;
//  2. any user may create a team (becoming its owner);
//  3. everything else requires membership in the resource's team;
//  4. per-kind rules from the decision table, default deny.
func (e *Evaluator) Check(ctx context.Context, actor *model.User, res Resource, action Action) error {
	if actor.IsAdmin {
		return nil
	}
	if res.Kind == KindTeam && action == ActionCreate {
		return nil
	}

	role, err := e.memberships.RoleOf(ctx, actor.ID, res.TeamID)
	if err != nil {
		return err
	}
	if role == model.RoleNone {
		return errors.ErrForbidden
	}

	rule, ok := rules[ruleKey{res.Kind, action}]
	if !ok {
		return errors.ErrForbidden
	}
	return rule(ctx, e, actor, role, res)
}

func allowMember(_ context.Context, _ *Evaluator, _ *model.User, _ model.Role, _ Resource) error {
	return nil
}

func allowOwner(_ context.Context, _ *Evaluator, _ *model.User, role model.Role, _ Resource) error {
	if role == model.RoleOwner {
		return nil
	}
	return errors.ErrForbidden
}

func allowAuthorOrOwner(_ context.Context, _ *Evaluator, actor *model.User, role model.Role, res Resource) error {
	if role == model.RoleOwner || actor.ID == res.AuthorID {
		return nil
	}
	return errors.ErrForbidden
}

func allowAuthorAssigneeOrOwner(_ context.Context, _ *Evaluator, actor *model.User, role model.Role, res Resource) error {
	if role == model.RoleOwner || actor.ID == res.AuthorID {
		return nil
	}
	if res.AssigneeID != nil && actor.ID == *res.AssigneeID {
		return nil
	}
	return errors.ErrForbidden
}

func allowEvaluationCreate(ctx context.Context, e *Evaluator, actor *model.User, _ model.Role, res Resource) error {
	if actor.ID == res.SubjectID {
		return errors.ErrInvalidOperation
	}
	shared, err := e.memberships.ShareTeam(ctx, actor.ID, res.SubjectID)
	if err != nil {
		return err
	}
	if !shared {
		return errors.ErrForbidden
	}
	return nil
}
