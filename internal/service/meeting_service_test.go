package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/jane-devs/final-management/internal/access"
	"github.com/jane-devs/final-management/internal/errors"
	"github.com/jane-devs/final-management/internal/model"
)

type meetingFixture struct {
	meetings    *MockMeetingRepository
	users       *MockUserRepository
	memberships *MockMembershipRepository
	service     MeetingService
}

func newMeetingFixture() *meetingFixture {
	f := &meetingFixture{
		meetings:    new(MockMeetingRepository),
		users:       new(MockUserRepository),
		memberships: new(MockMembershipRepository),
	}
	membershipService := NewMembershipService(f.memberships, new(MockTeamRepository), f.users)
	f.service = NewMeetingService(f.meetings, f.users, membershipService, access.NewEvaluator(membershipService))
	return f
}

func TestMeetingService_CreateMeeting(t *testing.T) {
	actorID := uuid.New()
	teamID := uuid.New()
	participantID := uuid.New()
	actor := &model.User{ID: actorID}

	start := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	tests := []struct {
		name          string
		input         MeetingInput
		setupMock     func(*meetingFixture)
		expectedError error
	}{
		{
			name: "successful creation",
			input: MeetingInput{
				Title:          "Planning",
				StartTime:      start,
				EndTime:        end,
				ParticipantIDs: []uuid.UUID{participantID},
			},
			setupMock: func(f *meetingFixture) {
				f.memberships.On("Find", mock.Anything, teamID, actorID).
					Return(memberOf(teamID, actorID, model.RoleMember), nil)
				f.memberships.On("Find", mock.Anything, teamID, participantID).
					Return(memberOf(teamID, participantID, model.RoleMember), nil)
				f.meetings.On("ListConflicting", mock.Anything, []uuid.UUID{participantID}, start, end, uuid.Nil).
					Return([]model.Meeting{}, nil)
				f.users.On("FindByIDs", mock.Anything, []uuid.UUID{participantID}).
					Return([]model.User{{ID: participantID}}, nil)
				f.meetings.On("Create", mock.Anything, mock.AnythingOfType("*model.Meeting")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "end must be after start",
			input: MeetingInput{Title: "Planning", StartTime: end, EndTime: start},
			setupMock: func(f *meetingFixture) {
				f.memberships.On("Find", mock.Anything, teamID, actorID).
					Return(memberOf(teamID, actorID, model.RoleMember), nil)
			},
			expectedError: errors.ErrInvalidOperation,
		},
		{
			name: "participant outside the team",
			input: MeetingInput{
				Title:          "Planning",
				StartTime:      start,
				EndTime:        end,
				ParticipantIDs: []uuid.UUID{participantID},
			},
			setupMock: func(f *meetingFixture) {
				f.memberships.On("Find", mock.Anything, teamID, actorID).
					Return(memberOf(teamID, actorID, model.RoleMember), nil)
				f.memberships.On("Find", mock.Anything, teamID, participantID).
					Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrNotInTeam,
		},
		{
			name: "overlapping meeting for a participant",
			input: MeetingInput{
				Title:          "Planning",
				StartTime:      start,
				EndTime:        end,
				ParticipantIDs: []uuid.UUID{participantID},
			},
			setupMock: func(f *meetingFixture) {
				f.memberships.On("Find", mock.Anything, teamID, actorID).
					Return(memberOf(teamID, actorID, model.RoleMember), nil)
				f.memberships.On("Find", mock.Anything, teamID, participantID).
					Return(memberOf(teamID, participantID, model.RoleMember), nil)
				f.meetings.On("ListConflicting", mock.Anything, []uuid.UUID{participantID}, start, end, uuid.Nil).
					Return([]model.Meeting{{ID: uuid.New()}}, nil)
			},
			expectedError: errors.ErrInvalidOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMeetingFixture()
			tt.setupMock(f)

			meeting, err := f.service.CreateMeeting(context.Background(), actor, teamID, tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, meeting)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, meeting)
				assert.Equal(t, actorID, meeting.CreatorID)
				assert.Len(t, meeting.Participants, 1)
			}

			f.meetings.AssertExpectations(t)
			f.memberships.AssertExpectations(t)
		})
	}
}

func TestMeetingService_UpdateMeeting_ExcludesItselfFromConflicts(t *testing.T) {
	actorID := uuid.New()
	teamID := uuid.New()
	meetingID := uuid.New()
	actor := &model.User{ID: actorID}

	start := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	f := newMeetingFixture()
	f.meetings.On("FindByID", mock.Anything, meetingID).
		Return(&model.Meeting{ID: meetingID, TeamID: teamID, CreatorID: actorID}, nil)
	f.memberships.On("Find", mock.Anything, teamID, actorID).
		Return(memberOf(teamID, actorID, model.RoleMember), nil)
	f.meetings.On("ListConflicting", mock.Anything, []uuid.UUID(nil), start, end, meetingID).
		Return([]model.Meeting{}, nil)
	f.users.On("FindByIDs", mock.Anything, []uuid.UUID(nil)).Return([]model.User{}, nil)
	f.meetings.On("Update", mock.Anything, mock.AnythingOfType("*model.Meeting")).Return(nil)
	f.meetings.On("ReplaceParticipants", mock.Anything, mock.AnythingOfType("*model.Meeting"), []model.User{}).Return(nil)

	meeting, err := f.service.UpdateMeeting(context.Background(), actor, meetingID, MeetingInput{
		Title:     "Moved planning",
		StartTime: start,
		EndTime:   end,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Moved planning", meeting.Title)
	f.meetings.AssertExpectations(t)
}

func TestMeetingService_DeleteMeeting_CreatorOrOwnerOnly(t *testing.T) {
	actorID := uuid.New()
	teamID := uuid.New()
	meetingID := uuid.New()

	f := newMeetingFixture()
	f.meetings.On("FindByID", mock.Anything, meetingID).
		Return(&model.Meeting{ID: meetingID, TeamID: teamID, CreatorID: uuid.New()}, nil)
	f.memberships.On("Find", mock.Anything, teamID, actorID).
		Return(memberOf(teamID, actorID, model.RoleMember), nil)

	err := f.service.DeleteMeeting(context.Background(), &model.User{ID: actorID}, meetingID)

	assert.ErrorIs(t, err, errors.ErrForbidden)
}
