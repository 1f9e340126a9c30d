package access

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/jane-devs/final-management/internal/errors"
	"github.com/jane-devs/final-management/internal/model"
)

// MockMembershipReader is a mock implementation of MembershipReader.
type MockMembershipReader struct {
	mock.Mock
}

func (m *MockMembershipReader) RoleOf(ctx context.Context, userID, teamID uuid.UUID) (model.Role, error) {
	args := m.Called(ctx, userID, teamID)
	return args.Get(0).(model.Role), args.Error(1)
}

func (m *MockMembershipReader) ShareTeam(ctx context.Context, userA, userB uuid.UUID) (bool, error) {
	args := m.Called(ctx, userA, userB)
	return args.Bool(0), args.Error(1)
}

func TestEvaluator_Check(t *testing.T) {
	actorID := uuid.New()
	otherID := uuid.New()
	teamID := uuid.New()

	member := &model.User{ID: actorID}
	admin := &model.User{ID: actorID, IsAdmin: true}

	tests := []struct {
		name          string
		actor         *model.User
		resource      Resource
		action        Action
		setupMock     func(*MockMembershipReader)
		expectedError error
	}{
		{
			name:          "admin bypasses membership entirely",
			actor:         admin,
			resource:      TaskResource(&model.Task{TeamID: teamID, CreatorID: otherID}),
			action:        ActionDelete,
			setupMock:     func(m *MockMembershipReader) {},
			expectedError: nil,
		},
		{
			name:          "anyone may create a team",
			actor:         member,
			resource:      TeamResource(uuid.Nil),
			action:        ActionCreate,
			setupMock:     func(m *MockMembershipReader) {},
			expectedError: nil,
		},
		{
			name:     "non-member is denied before any rule runs",
			actor:    member,
			resource: TeamResource(teamID),
			action:   ActionRead,
			setupMock: func(m *MockMembershipReader) {
				m.On("RoleOf", mock.Anything, actorID, teamID).Return(model.RoleNone, nil)
			},
			expectedError: errors.ErrForbidden,
		},
		{
			name:     "member may read the team",
			actor:    member,
			resource: TeamResource(teamID),
			action:   ActionRead,
			setupMock: func(m *MockMembershipReader) {
				m.On("RoleOf", mock.Anything, actorID, teamID).Return(model.RoleMember, nil)
			},
			expectedError: nil,
		},
		{
			name:     "only the owner may update the team",
			actor:    member,
			resource: TeamResource(teamID),
			action:   ActionUpdate,
			setupMock: func(m *MockMembershipReader) {
				m.On("RoleOf", mock.Anything, actorID, teamID).Return(model.RoleMember, nil)
			},
			expectedError: errors.ErrForbidden,
		},
		{
			name:     "task creator may update their task",
			actor:    member,
			resource: TaskResource(&model.Task{TeamID: teamID, CreatorID: actorID}),
			action:   ActionUpdate,
			setupMock: func(m *MockMembershipReader) {
				m.On("RoleOf", mock.Anything, actorID, teamID).Return(model.RoleMember, nil)
			},
			expectedError: nil,
		},
		{
			name:     "task assignee may update the task",
			actor:    member,
			resource: TaskResource(&model.Task{TeamID: teamID, CreatorID: otherID, AssigneeID: &actorID}),
			action:   ActionUpdate,
			setupMock: func(m *MockMembershipReader) {
				m.On("RoleOf", mock.Anything, actorID, teamID).Return(model.RoleMember, nil)
			},
			expectedError: nil,
		},
		{
			name:     "unrelated member may not delete another member's task",
			actor:    member,
			resource: TaskResource(&model.Task{TeamID: teamID, CreatorID: otherID}),
			action:   ActionDelete,
			setupMock: func(m *MockMembershipReader) {
				m.On("RoleOf", mock.Anything, actorID, teamID).Return(model.RoleMember, nil)
			},
			expectedError: errors.ErrForbidden,
		},
		{
			name:     "owner may delete any task in the team",
			actor:    member,
			resource: TaskResource(&model.Task{TeamID: teamID, CreatorID: otherID}),
			action:   ActionDelete,
			setupMock: func(m *MockMembershipReader) {
				m.On("RoleOf", mock.Anything, actorID, teamID).Return(model.RoleOwner, nil)
			},
			expectedError: nil,
		},
		{
			name:     "meeting update is creator or owner, never assignee",
			actor:    member,
			resource: MeetingResource(&model.Meeting{TeamID: teamID, CreatorID: otherID}),
			action:   ActionUpdate,
			setupMock: func(m *MockMembershipReader) {
				m.On("RoleOf", mock.Anything, actorID, teamID).Return(model.RoleMember, nil)
			},
			expectedError: errors.ErrForbidden,
		},
		{
			name:     "self-evaluation is an invalid operation, not forbidden",
			actor:    member,
			resource: NewEvaluationResource(teamID, actorID),
			action:   ActionCreate,
			setupMock: func(m *MockMembershipReader) {
				m.On("RoleOf", mock.Anything, actorID, teamID).Return(model.RoleMember, nil)
			},
			expectedError: errors.ErrInvalidOperation,
		},
		{
			name:     "evaluating someone from a different team is forbidden",
			actor:    member,
			resource: NewEvaluationResource(teamID, otherID),
			action:   ActionCreate,
			setupMock: func(m *MockMembershipReader) {
				m.On("RoleOf", mock.Anything, actorID, teamID).Return(model.RoleMember, nil)
				m.On("ShareTeam", mock.Anything, actorID, otherID).Return(false, nil)
			},
			expectedError: errors.ErrForbidden,
		},
		{
			name:     "evaluating a teammate is allowed",
			actor:    member,
			resource: NewEvaluationResource(teamID, otherID),
			action:   ActionCreate,
			setupMock: func(m *MockMembershipReader) {
				m.On("RoleOf", mock.Anything, actorID, teamID).Return(model.RoleMember, nil)
				m.On("ShareTeam", mock.Anything, actorID, otherID).Return(true, nil)
			},
			expectedError: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader := new(MockMembershipReader)
			tt.setupMock(mockReader)

			evaluator := NewEvaluator(mockReader)
			err := evaluator.Check(context.Background(), tt.actor, tt.resource, tt.action)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			mockReader.AssertExpectations(t)
		})
	}
}

// Pairs missing from the decision table must be denied, not allowed.
func TestEvaluator_DefaultDeny(t *testing.T) {
	actorID := uuid.New()
	teamID := uuid.New()

	mockReader := new(MockMembershipReader)
	mockReader.On("RoleOf", mock.Anything, actorID, teamID).Return(model.RoleOwner, nil)

	evaluator := NewEvaluator(mockReader)
	res := Resource{Kind: Kind("unknown"), TeamID: teamID}
	err := evaluator.Check(context.Background(), &model.User{ID: actorID}, res, ActionRead)

	assert.ErrorIs(t, err, errors.ErrForbidden)
}
