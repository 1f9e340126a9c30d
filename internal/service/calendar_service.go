package service

import (
	"context"
	"sort"
	"time"

	"github.com/jane-devs/final-management/internal/errors"
	"github.com/jane-devs/final-management/internal/model"
	"github.com/jane-devs/final-management/internal/repository"
)

// EntryKind discriminates calendar entries.
type EntryKind string

const (
	EntryKindTask    EntryKind = "task"
	EntryKindMeeting EntryKind = "meeting"
)

// CalendarEntry is one item in a day view. Start is nil for date-only
// tasks, which sort after every timed entry of the day.
type CalendarEntry struct {
	Kind    EntryKind      `json:"kind"`
	Start   *time.Time     `json:"start,omitempty"`
	Task    *model.Task    `json:"task,omitempty"`
	Meeting *model.Meeting `json:"meeting,omitempty"`
}

// DayView is the merged, time-sorted schedule of a single day.
type DayView struct {
	Date    time.Time       `json:"date"`
	Entries []CalendarEntry `json:"entries"`
}

// DayCounts summarizes one day in a month view.
type DayCounts struct {
	Tasks    int `json:"tasks"`
	Meetings int `json:"meetings"`
}

// CalendarService merges a user's visible tasks and meetings into
// time-bucketed views. Visibility is team-scoped: everything owned by the
// teams the user belongs to. Read-only, no side effects.
type CalendarService interface {
	DayView(ctx context.Context, user *model.User, date time.Time) (*DayView, error)
	// MonthView returns per-day activity counts keyed by UTC midnight.
	// Days with no activity are omitted.
	MonthView(ctx context.Context, user *model.User, year, month int) (map[time.Time]DayCounts, error)
}

type calendarService struct {
	tasks       repository.TaskRepository
	meetings    repository.MeetingRepository
	memberships MembershipService
}

// NewCalendarService creates a new calendar service.
func NewCalendarService(
	tasks repository.TaskRepository,
	meetings repository.MeetingRepository,
	memberships MembershipService,
) CalendarService {
	return &calendarService{
		tasks:       tasks,
		meetings:    meetings,
		memberships: memberships,
	}
}

// dayStart truncates t to UTC midnight.
func dayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *calendarService) DayView(ctx context.Context, user *model.User, date time.Time) (*DayView, error) {
	start := dayStart(date)
	end := start.AddDate(0, 0, 1)

	teamIDs, err := s.memberships.TeamIDsOf(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	view := &DayView{Date: start, Entries: []CalendarEntry{}}
	if len(teamIDs) == 0 {
		return view, nil
	}

	tasks, err := s.tasks.ListDueBetween(ctx, teamIDs, start, end)
	if err != nil {
		return nil, err
	}
	meetings, err := s.meetings.ListIntersecting(ctx, teamIDs, start, end)
	if err != nil {
		return nil, err
	}

	for i := range meetings {
		m := &meetings[i]
		// A meeting spilling over from a previous day is listed from the
		// start of this day.
		effective := m.StartTime
		if effective.Before(start) {
			effective = start
		}
		view.Entries = append(view.Entries, CalendarEntry{
			Kind:    EntryKindMeeting,
			Start:   &effective,
			Meeting: m,
		})
	}
	for i := range tasks {
		t := &tasks[i]
		entry := CalendarEntry{Kind: EntryKindTask, Task: t}
		if t.HasDueTime() {
			entry.Start = t.DueDate
		}
		view.Entries = append(view.Entries, entry)
	}

	sortEntries(view.Entries)
	return view, nil
}

// sortEntries orders timed entries ascending by start time; date-only
// tasks come last. Ties break meetings before tasks, then by ID so the
// order is deterministic.
func sortEntries(entries []CalendarEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch {
		case a.Start == nil && b.Start == nil:
			return entryID(a) < entryID(b)
		case a.Start == nil:
			return false
		case b.Start == nil:
			return true
		case !a.Start.Equal(*b.Start):
			return a.Start.Before(*b.Start)
		case a.Kind != b.Kind:
			return a.Kind == EntryKindMeeting
		default:
			return entryID(a) < entryID(b)
		}
	})
}

func entryID(e CalendarEntry) string {
	if e.Kind == EntryKindMeeting {
		return e.Meeting.ID.String()
	}
	return e.Task.ID.String()
}

func (s *calendarService) MonthView(ctx context.Context, user *model.User, year, month int) (map[time.Time]DayCounts, error) {
	if month < 1 || month > 12 {
		return nil, errors.ErrInvalidOperation
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	counts := make(map[time.Time]DayCounts)

	teamIDs, err := s.memberships.TeamIDsOf(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(teamIDs) == 0 {
		return counts, nil
	}

	tasks, err := s.tasks.ListDueBetween(ctx, teamIDs, start, end)
	if err != nil {
		return nil, err
	}
	meetings, err := s.meetings.ListIntersecting(ctx, teamIDs, start, end)
	if err != nil {
		return nil, err
	}

	for _, t := range tasks {
		day := dayStart(*t.DueDate)
		c := counts[day]
		c.Tasks++
		counts[day] = c
	}
	// A meeting counts on every day of the month it touches.
	for _, m := range meetings {
		day := dayStart(m.StartTime)
		if day.Before(start) {
			day = start
		}
		for day.Before(end) && day.Before(m.EndTime) {
			c := counts[day]
			c.Meetings++
			counts[day] = c
			day = day.AddDate(0, 0, 1)
		}
	}

	return counts, nil
}
