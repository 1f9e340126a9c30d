package service

import (
	"context"
	goerrors "errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jane-devs/final-management/internal/access"
	"github.com/jane-devs/final-management/internal/errors"
	"github.com/jane-devs/final-management/internal/model"
	"github.com/jane-devs/final-management/internal/repository"
)

// MeetingInput carries the fields for creating or rescheduling a meeting.
type MeetingInput struct {
	Title          string
	Description    string
	Location       string
	StartTime      time.Time
	EndTime        time.Time
	ParticipantIDs []uuid.UUID
}

// MeetingService handles meeting operations within a team.
type MeetingService interface {
	CreateMeeting(ctx context.Context, actor *model.User, teamID uuid.UUID, input MeetingInput) (*model.Meeting, error)
	GetMeeting(ctx context.Context, actor *model.User, meetingID uuid.UUID) (*model.Meeting, error)
	ListTeamMeetings(ctx context.Context, actor *model.User, teamID uuid.UUID) ([]model.Meeting, error)
	UpdateMeeting(ctx context.Context, actor *model.User, meetingID uuid.UUID, input MeetingInput) (*model.Meeting, error)
	DeleteMeeting(ctx context.Context, actor *model.User, meetingID uuid.UUID) error
}

type meetingService struct {
	meetings    repository.MeetingRepository
	users       repository.UserRepository
	memberships MembershipService
	evaluator   *access.Evaluator
}

// NewMeetingService creates a new meeting service.
func NewMeetingService(
	meetings repository.MeetingRepository,
	users repository.UserRepository,
	memberships MembershipService,
	evaluator *access.Evaluator,
) MeetingService {
	return &meetingService{
		meetings:    meetings,
		users:       users,
		memberships: memberships,
		evaluator:   evaluator,
	}
}

func (s *meetingService) findMeeting(ctx context.Context, meetingID uuid.UUID) (*model.Meeting, error) {
	meeting, err := s.meetings.FindByID(ctx, meetingID)
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrMeetingNotFound
		}
		return nil, err
	}
	return meeting, nil
}

// validateSchedule checks the time range, that every participant belongs to
// the team, and that no participant has an overlapping meeting.
func (s *meetingService) validateSchedule(ctx context.Context, teamID uuid.UUID, input MeetingInput, excludeID uuid.UUID) ([]model.User, error) {
	if !input.EndTime.After(input.StartTime) {
		return nil, errors.ErrInvalidOperation
	}

	for _, id := range input.ParticipantIDs {
		member, err := s.memberships.IsMember(ctx, id, teamID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, errors.ErrNotInTeam
		}
	}

	conflicts, err := s.meetings.ListConflicting(ctx, input.ParticipantIDs, input.StartTime, input.EndTime, excludeID)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, errors.ErrInvalidOperation
	}

	return s.users.FindByIDs(ctx, input.ParticipantIDs)
}

func (s *meetingService) CreateMeeting(ctx context.Context, actor *model.User, teamID uuid.UUID, input MeetingInput) (*model.Meeting, error) {
	if err := s.evaluator.Check(ctx, actor, access.NewMeetingResource(teamID), access.ActionCreate); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.ErrInvalidOperation
	}

	participants, err := s.validateSchedule(ctx, teamID, input, uuid.Nil)
	if err != nil {
		return nil, err
	}

	meeting := &model.Meeting{
		TeamID:       teamID,
		CreatorID:    actor.ID,
		Title:        title,
		Description:  input.Description,
		Location:     input.Location,
		StartTime:    input.StartTime,
		EndTime:      input.EndTime,
		Participants: participants,
	}
	if err := s.meetings.Create(ctx, meeting); err != nil {
		return nil, err
	}
	return meeting, nil
}

func (s *meetingService) GetMeeting(ctx context.Context, actor *model.User, meetingID uuid.UUID) (*model.Meeting, error) {
	meeting, err := s.findMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if err := s.evaluator.Check(ctx, actor, access.MeetingResource(meeting), access.ActionRead); err != nil {
		return nil, err
	}
	return meeting, nil
}

func (s *meetingService) ListTeamMeetings(ctx context.Context, actor *model.User, teamID uuid.UUID) ([]model.Meeting, error) {
	if err := s.evaluator.Check(ctx, actor, access.NewMeetingResource(teamID), access.ActionRead); err != nil {
		return nil, err
	}
	return s.meetings.ListByTeam(ctx, teamID)
}

func (s *meetingService) UpdateMeeting(ctx context.Context, actor *model.User, meetingID uuid.UUID, input MeetingInput) (*model.Meeting, error) {
	meeting, err := s.findMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if err := s.evaluator.Check(ctx, actor, access.MeetingResource(meeting), access.ActionUpdate); err != nil {
		return nil, err
	}

	participants, err := s.validateSchedule(ctx, meeting.TeamID, input, meetingID)
	if err != nil {
		return nil, err
	}

	if title := strings.TrimSpace(input.Title); title != "" {
		meeting.Title = title
	}
	meeting.Description = input.Description
	meeting.Location = input.Location
	meeting.StartTime = input.StartTime
	meeting.EndTime = input.EndTime

	if err := s.meetings.Update(ctx, meeting); err != nil {
		return nil, err
	}
	if err := s.meetings.ReplaceParticipants(ctx, meeting, participants); err != nil {
		return nil, err
	}
	meeting.Participants = participants
	return meeting, nil
}

func (s *meetingService) DeleteMeeting(ctx context.Context, actor *model.User, meetingID uuid.UUID) error {
	meeting, err := s.findMeeting(ctx, meetingID)
	if err != nil {
		return err
	}
	if err := s.evaluator.Check(ctx, actor, access.MeetingResource(meeting), access.ActionDelete); err != nil {
		return err
	}
	return s.meetings.Delete(ctx, meetingID)
}
