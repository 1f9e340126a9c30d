package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jane-devs/final-management/internal/model"
)

// MeetingRepository defines meeting persistence operations.
type MeetingRepository interface {
	Create(ctx context.Context, meeting *model.Meeting) error
	Update(ctx context.Context, meeting *model.Meeting) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Meeting, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]model.Meeting, error)
	// ListIntersecting returns meetings of the given teams whose time range
	// overlaps the half-open range [start, end).
	ListIntersecting(ctx context.Context, teamIDs []uuid.UUID, start, end time.Time) ([]model.Meeting, error)
	// ListConflicting returns meetings overlapping [start, end) that any of
	// the given users participates in. excludeID skips the meeting being
	// rescheduled.
	ListConflicting(ctx context.Context, userIDs []uuid.UUID, start, end time.Time, excludeID uuid.UUID) ([]model.Meeting, error)
	ReplaceParticipants(ctx context.Context, meeting *model.Meeting, participants []model.User) error
}

type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository.
func NewMeetingRepository(db *gorm.DB) MeetingRepository {
	return &meetingRepository{db: db}
}

func (r *meetingRepository) Create(ctx context.Context, meeting *model.Meeting) error {
	return r.db.WithContext(ctx).Create(meeting).Error
}

func (r *meetingRepository) Update(ctx context.Context, meeting *model.Meeting) error {
	return r.db.WithContext(ctx).Omit("Participants").Save(meeting).Error
}

func (r *meetingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select("Participants").Delete(&model.Meeting{ID: id}).Error
}

func (r *meetingRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Meeting, error) {
	var meeting model.Meeting
	if err := r.db.WithContext(ctx).Preload("Participants").
		Where("id = ?", id).First(&meeting).Error; err != nil {
		return nil, err
	}
	return &meeting, nil
}

func (r *meetingRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]model.Meeting, error) {
	var meetings []model.Meeting
	if err := r.db.WithContext(ctx).Preload("Participants").
		Where("team_id = ?", teamID).
		Order("start_time").
		Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}

func (r *meetingRepository) ListIntersecting(ctx context.Context, teamIDs []uuid.UUID, start, end time.Time) ([]model.Meeting, error) {
	var meetings []model.Meeting
	if len(teamIDs) == 0 {
		return meetings, nil
	}
	if err := r.db.WithContext(ctx).Preload("Participants").
		Where("team_id IN ? AND start_time < ? AND end_time > ?", teamIDs, end, start).
		Order("start_time").
		Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}

func (r *meetingRepository) ListConflicting(ctx context.Context, userIDs []uuid.UUID, start, end time.Time, excludeID uuid.UUID) ([]model.Meeting, error) {
	var meetings []model.Meeting
	if len(userIDs) == 0 {
		return meetings, nil
	}
	query := r.db.WithContext(ctx).
		Joins("JOIN meeting_participants mp ON mp.meeting_id = meetings.id").
		Where("mp.user_id IN ? AND meetings.start_time < ? AND meetings.end_time > ?", userIDs, end, start)
	if excludeID != uuid.Nil {
		query = query.Where("meetings.id <> ?", excludeID)
	}
	if err := query.Distinct().Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}

func (r *meetingRepository) ReplaceParticipants(ctx context.Context, meeting *model.Meeting, participants []model.User) error {
	return r.db.WithContext(ctx).Model(meeting).Association("Participants").Replace(participants)
}
