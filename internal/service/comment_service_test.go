package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/jane-devs/final-management/internal/access"
	"github.com/jane-devs/final-management/internal/errors"
	"github.com/jane-devs/final-management/internal/model"
)

// commentFixture wires a comment service over fresh mocks.
type commentFixture struct {
	comments    *MockCommentRepository
	tasks       *MockTaskRepository
	memberships *MockMembershipRepository
	service     CommentService
}

func newCommentFixture() *commentFixture {
	f := &commentFixture{
		comments:    new(MockCommentRepository),
		tasks:       new(MockTaskRepository),
		memberships: new(MockMembershipRepository),
	}
	membershipService := NewMembershipService(f.memberships, new(MockTeamRepository), new(MockUserRepository))
	f.service = NewCommentService(f.comments, f.tasks, access.NewEvaluator(membershipService))
	return f
}

func TestCommentService_CreateComment(t *testing.T) {
	actorID := uuid.New()
	teamID := uuid.New()
	taskID := uuid.New()
	actor := &model.User{ID: actorID}
	task := &model.Task{ID: taskID, TeamID: teamID}

	tests := []struct {
		name          string
		content       string
		setupMock     func(*commentFixture)
		expectedError error
	}{
		{
			name:    "member comments on a team task",
			content: "  looks good to me  ",
			setupMock: func(f *commentFixture) {
				f.tasks.On("FindByID", mock.Anything, taskID).Return(task, nil)
				f.memberships.On("Find", mock.Anything, teamID, actorID).
					Return(&model.Membership{TeamID: teamID, UserID: actorID, Role: model.RoleMember}, nil)
				f.comments.On("Create", mock.Anything, mock.AnythingOfType("*model.Comment")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:    "blank content is rejected",
			content: "   ",
			setupMock: func(f *commentFixture) {
				f.tasks.On("FindByID", mock.Anything, taskID).Return(task, nil)
				f.memberships.On("Find", mock.Anything, teamID, actorID).
					Return(&model.Membership{TeamID: teamID, UserID: actorID, Role: model.RoleMember}, nil)
			},
			expectedError: errors.ErrInvalidOperation,
		},
		{
			name:    "unknown task",
			content: "hello",
			setupMock: func(f *commentFixture) {
				f.tasks.On("FindByID", mock.Anything, taskID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrTaskNotFound,
		},
		{
			name:    "non-member is denied",
			content: "hello",
			setupMock: func(f *commentFixture) {
				f.tasks.On("FindByID", mock.Anything, taskID).Return(task, nil)
				f.memberships.On("Find", mock.Anything, teamID, actorID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCommentFixture()
			tt.setupMock(f)

			comment, err := f.service.CreateComment(context.Background(), actor, taskID, tt.content)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, comment)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "looks good to me", comment.Content)
				assert.Equal(t, actorID, comment.AuthorID)
				assert.Equal(t, taskID, comment.TaskID)
			}
			f.comments.AssertExpectations(t)
			f.tasks.AssertExpectations(t)
		})
	}
}

func TestCommentService_UpdateComment(t *testing.T) {
	authorID := uuid.New()
	otherID := uuid.New()
	teamID := uuid.New()
	taskID := uuid.New()
	commentID := uuid.New()

	newComment := func() *model.Comment {
		return &model.Comment{ID: commentID, TaskID: taskID, AuthorID: authorID, Content: "first draft"}
	}
	task := &model.Task{ID: taskID, TeamID: teamID}

	t.Run("author edits own comment", func(t *testing.T) {
		f := newCommentFixture()
		f.comments.On("FindByID", mock.Anything, commentID).Return(newComment(), nil)
		f.tasks.On("FindByID", mock.Anything, taskID).Return(task, nil)
		f.memberships.On("Find", mock.Anything, teamID, authorID).
			Return(&model.Membership{TeamID: teamID, UserID: authorID, Role: model.RoleMember}, nil)
		f.comments.On("Update", mock.Anything, mock.AnythingOfType("*model.Comment")).Return(nil)

		comment, err := f.service.UpdateComment(context.Background(), &model.User{ID: authorID}, commentID, "second draft")

		assert.NoError(t, err)
		assert.Equal(t, "second draft", comment.Content)
		f.comments.AssertExpectations(t)
	})

	t.Run("unrelated member cannot edit", func(t *testing.T) {
		f := newCommentFixture()
		f.comments.On("FindByID", mock.Anything, commentID).Return(newComment(), nil)
		f.tasks.On("FindByID", mock.Anything, taskID).Return(task, nil)
		f.memberships.On("Find", mock.Anything, teamID, otherID).
			Return(&model.Membership{TeamID: teamID, UserID: otherID, Role: model.RoleMember}, nil)

		_, err := f.service.UpdateComment(context.Background(), &model.User{ID: otherID}, commentID, "hijacked")

		assert.ErrorIs(t, err, errors.ErrForbidden)
	})

	t.Run("team owner may edit any comment", func(t *testing.T) {
		f := newCommentFixture()
		f.comments.On("FindByID", mock.Anything, commentID).Return(newComment(), nil)
		f.tasks.On("FindByID", mock.Anything, taskID).Return(task, nil)
		f.memberships.On("Find", mock.Anything, teamID, otherID).
			Return(&model.Membership{TeamID: teamID, UserID: otherID, Role: model.RoleOwner}, nil)
		f.comments.On("Update", mock.Anything, mock.AnythingOfType("*model.Comment")).Return(nil)

		comment, err := f.service.UpdateComment(context.Background(), &model.User{ID: otherID}, commentID, "moderated")

		assert.NoError(t, err)
		assert.Equal(t, "moderated", comment.Content)
	})

	t.Run("unknown comment", func(t *testing.T) {
		f := newCommentFixture()
		f.comments.On("FindByID", mock.Anything, commentID).Return(nil, gorm.ErrRecordNotFound)

		_, err := f.service.UpdateComment(context.Background(), &model.User{ID: authorID}, commentID, "anything")

		assert.ErrorIs(t, err, errors.ErrCommentNotFound)
	})
}

func TestCommentService_DeleteComment(t *testing.T) {
	authorID := uuid.New()
	teamID := uuid.New()
	taskID := uuid.New()
	commentID := uuid.New()

	f := newCommentFixture()
	f.comments.On("FindByID", mock.Anything, commentID).
		Return(&model.Comment{ID: commentID, TaskID: taskID, AuthorID: authorID}, nil)
	f.tasks.On("FindByID", mock.Anything, taskID).Return(&model.Task{ID: taskID, TeamID: teamID}, nil)
	f.memberships.On("Find", mock.Anything, teamID, authorID).
		Return(&model.Membership{TeamID: teamID, UserID: authorID, Role: model.RoleMember}, nil)
	f.comments.On("Delete", mock.Anything, commentID).Return(nil)

	err := f.service.DeleteComment(context.Background(), &model.User{ID: authorID}, commentID)

	assert.NoError(t, err)
	f.comments.AssertExpectations(t)
}
