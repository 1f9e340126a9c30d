package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/jane-devs/final-management/internal/errors"
	"github.com/jane-devs/final-management/internal/model"
)

func TestCalendarService_DayView_Ordering(t *testing.T) {
	userID := uuid.New()
	teamID := uuid.New()
	user := &model.User{ID: userID}

	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	nextDay := day.AddDate(0, 0, 1)

	nineAM := day.Add(9 * time.Hour)
	tenAM := day.Add(10 * time.Hour)

	timedTask := model.Task{
		ID:      uuid.New(),
		TeamID:  teamID,
		Title:   "Review PR",
		DueDate: &tenAM,
	}
	// Midnight UTC means the task has a date but no time of day.
	dateOnlyTask := model.Task{
		ID:      uuid.New(),
		TeamID:  teamID,
		Title:   "Ship release notes",
		DueDate: &day,
	}
	morningMeeting := model.Meeting{
		ID:        uuid.New(),
		TeamID:    teamID,
		Title:     "Standup",
		StartTime: nineAM,
		EndTime:   nineAM.Add(15 * time.Minute),
	}
	// Started yesterday, still running today; listed from midnight.
	overnightMeeting := model.Meeting{
		ID:        uuid.New(),
		TeamID:    teamID,
		Title:     "Release war room",
		StartTime: day.Add(-2 * time.Hour),
		EndTime:   day.Add(3 * time.Hour),
	}

	mTasks := new(MockTaskRepository)
	mMeetings := new(MockMeetingRepository)
	mMemberships := new(MockMembershipRepository)

	mMemberships.On("TeamIDsOf", mock.Anything, userID).Return([]uuid.UUID{teamID}, nil)
	mTasks.On("ListDueBetween", mock.Anything, []uuid.UUID{teamID}, day, nextDay).
		Return([]model.Task{timedTask, dateOnlyTask}, nil)
	mMeetings.On("ListIntersecting", mock.Anything, []uuid.UUID{teamID}, day, nextDay).
		Return([]model.Meeting{morningMeeting, overnightMeeting}, nil)

	svc := NewCalendarService(mTasks, mMeetings, NewMembershipService(mMemberships, new(MockTeamRepository), new(MockUserRepository)))
	view, err := svc.DayView(context.Background(), user, day.Add(13*time.Hour))

	assert.NoError(t, err)
	assert.Equal(t, day, view.Date)
	assert.Len(t, view.Entries, 4)

	// Overnight meeting is clamped to midnight and comes first.
	assert.Equal(t, EntryKindMeeting, view.Entries[0].Kind)
	assert.Equal(t, overnightMeeting.ID, view.Entries[0].Meeting.ID)
	assert.Equal(t, day, *view.Entries[0].Start)

	assert.Equal(t, EntryKindMeeting, view.Entries[1].Kind)
	assert.Equal(t, morningMeeting.ID, view.Entries[1].Meeting.ID)

	assert.Equal(t, EntryKindTask, view.Entries[2].Kind)
	assert.Equal(t, timedTask.ID, view.Entries[2].Task.ID)

	// The date-only task sorts after every timed entry.
	assert.Equal(t, EntryKindTask, view.Entries[3].Kind)
	assert.Equal(t, dateOnlyTask.ID, view.Entries[3].Task.ID)
	assert.Nil(t, view.Entries[3].Start)
}

func TestCalendarService_DayView_TieBreaksMeetingBeforeTask(t *testing.T) {
	userID := uuid.New()
	teamID := uuid.New()

	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	nineAM := day.Add(9 * time.Hour)

	task := model.Task{ID: uuid.New(), TeamID: teamID, DueDate: &nineAM}
	meeting := model.Meeting{
		ID:        uuid.New(),
		TeamID:    teamID,
		StartTime: nineAM,
		EndTime:   nineAM.Add(time.Hour),
	}

	mTasks := new(MockTaskRepository)
	mMeetings := new(MockMeetingRepository)
	mMemberships := new(MockMembershipRepository)

	mMemberships.On("TeamIDsOf", mock.Anything, userID).Return([]uuid.UUID{teamID}, nil)
	mTasks.On("ListDueBetween", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]model.Task{task}, nil)
	mMeetings.On("ListIntersecting", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]model.Meeting{meeting}, nil)

	svc := NewCalendarService(mTasks, mMeetings, NewMembershipService(mMemberships, new(MockTeamRepository), new(MockUserRepository)))
	view, err := svc.DayView(context.Background(), &model.User{ID: userID}, day)

	assert.NoError(t, err)
	assert.Len(t, view.Entries, 2)
	assert.Equal(t, EntryKindMeeting, view.Entries[0].Kind)
	assert.Equal(t, EntryKindTask, view.Entries[1].Kind)
}

func TestCalendarService_DayView_NoTeams(t *testing.T) {
	userID := uuid.New()

	mMemberships := new(MockMembershipRepository)
	mMemberships.On("TeamIDsOf", mock.Anything, userID).Return([]uuid.UUID{}, nil)

	svc := NewCalendarService(new(MockTaskRepository), new(MockMeetingRepository),
		NewMembershipService(mMemberships, new(MockTeamRepository), new(MockUserRepository)))
	view, err := svc.DayView(context.Background(), &model.User{ID: userID}, time.Now())

	assert.NoError(t, err)
	assert.Empty(t, view.Entries)
}

func TestCalendarService_MonthView(t *testing.T) {
	userID := uuid.New()
	teamID := uuid.New()

	monthStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	due5th := time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)
	due5thLater := time.Date(2024, 3, 5, 18, 0, 0, 0, time.UTC)

	tasks := []model.Task{
		{ID: uuid.New(), TeamID: teamID, DueDate: &due5th},
		{ID: uuid.New(), TeamID: teamID, DueDate: &due5thLater},
	}
	// Spans the night of the 11th into the 12th, so both days count.
	meetings := []model.Meeting{
		{
			ID:        uuid.New(),
			TeamID:    teamID,
			StartTime: time.Date(2024, 3, 11, 22, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2024, 3, 12, 2, 0, 0, 0, time.UTC),
		},
	}

	mTasks := new(MockTaskRepository)
	mMeetings := new(MockMeetingRepository)
	mMemberships := new(MockMembershipRepository)

	mMemberships.On("TeamIDsOf", mock.Anything, userID).Return([]uuid.UUID{teamID}, nil)
	mTasks.On("ListDueBetween", mock.Anything, []uuid.UUID{teamID}, monthStart, monthEnd).Return(tasks, nil)
	mMeetings.On("ListIntersecting", mock.Anything, []uuid.UUID{teamID}, monthStart, monthEnd).Return(meetings, nil)

	svc := NewCalendarService(mTasks, mMeetings, NewMembershipService(mMemberships, new(MockTeamRepository), new(MockUserRepository)))
	counts, err := svc.MonthView(context.Background(), &model.User{ID: userID}, 2024, 3)

	assert.NoError(t, err)
	assert.Len(t, counts, 3)
	assert.Equal(t, DayCounts{Tasks: 2}, counts[time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)])
	assert.Equal(t, DayCounts{Meetings: 1}, counts[time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)])
	assert.Equal(t, DayCounts{Meetings: 1}, counts[time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)])
}

func TestCalendarService_MonthView_InvalidMonth(t *testing.T) {
	svc := NewCalendarService(new(MockTaskRepository), new(MockMeetingRepository),
		NewMembershipService(new(MockMembershipRepository), new(MockTeamRepository), new(MockUserRepository)))

	_, err := svc.MonthView(context.Background(), &model.User{ID: uuid.New()}, 2024, 13)
	assert.ErrorIs(t, err, errors.ErrInvalidOperation)

	_, err = svc.MonthView(context.Background(), &model.User{ID: uuid.New()}, 2024, 0)
	assert.ErrorIs(t, err, errors.ErrInvalidOperation)
}
