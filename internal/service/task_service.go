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

// TaskInput carries the mutable task fields.
type TaskInput struct {
	Title       string
	Description string
	Priority    model.TaskPriority
	AssigneeID  *uuid.UUID
	DueDate     *time.Time
}

// TaskUpdate carries optional task field changes.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *model.TaskStatus
	Priority    *model.TaskPriority
	AssigneeID  *uuid.UUID
	DueDate     *time.Time
	ClearDue    bool
}

// TaskService handles task operations within a team.
type TaskService interface {
	CreateTask(ctx context.Context, actor *model.User, teamID uuid.UUID, input TaskInput) (*model.Task, error)
	GetTask(ctx context.Context, actor *model.User, taskID uuid.UUID) (*model.Task, error)
	ListTeamTasks(ctx context.Context, actor *model.User, teamID uuid.UUID, filter repository.TaskFilter) ([]model.Task, error)
	UpdateTask(ctx context.Context, actor *model.User, taskID uuid.UUID, update TaskUpdate) (*model.Task, error)
	DeleteTask(ctx context.Context, actor *model.User, taskID uuid.UUID) error
	AssignTask(ctx context.Context, actor *model.User, taskID, assigneeID uuid.UUID) (*model.Task, error)
	CompleteTask(ctx context.Context, actor *model.User, taskID uuid.UUID) (*model.Task, error)
}

type taskService struct {
	tasks       repository.TaskRepository
	memberships MembershipService
	evaluator   *access.Evaluator
}

// NewTaskService creates a new task service.
func NewTaskService(tasks repository.TaskRepository, memberships MembershipService, evaluator *access.Evaluator) TaskService {
	return &taskService{
		tasks:       tasks,
		memberships: memberships,
		evaluator:   evaluator,
	}
}

func (s *taskService) findTask(ctx context.Context, taskID uuid.UUID) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

// requireTeammate checks that a prospective assignee belongs to the task's team.
func (s *taskService) requireTeammate(ctx context.Context, teamID, userID uuid.UUID) error {
	member, err := s.memberships.IsMember(ctx, userID, teamID)
	if err != nil {
		return err
	}
	if !member {
		return errors.ErrInvalidOperation
	}
	return nil
}

func (s *taskService) CreateTask(ctx context.Context, actor *model.User, teamID uuid.UUID, input TaskInput) (*model.Task, error) {
	if err := s.evaluator.Check(ctx, actor, access.NewTaskResource(teamID), access.ActionCreate); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.ErrInvalidOperation
	}
	if input.AssigneeID != nil {
		if err := s.requireTeammate(ctx, teamID, *input.AssigneeID); err != nil {
			return nil, err
		}
	}

	priority := input.Priority
	if priority == "" {
		priority = model.TaskPriorityMedium
	}

	task := &model.Task{
		TeamID:      teamID,
		CreatorID:   actor.ID,
		AssigneeID:  input.AssigneeID,
		Title:       title,
		Description: input.Description,
		Status:      model.TaskStatusTodo,
		Priority:    priority,
		DueDate:     input.DueDate,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) GetTask(ctx context.Context, actor *model.User, taskID uuid.UUID) (*model.Task, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.evaluator.Check(ctx, actor, access.TaskResource(task), access.ActionRead); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) ListTeamTasks(ctx context.Context, actor *model.User, teamID uuid.UUID, filter repository.TaskFilter) ([]model.Task, error) {
	if err := s.evaluator.Check(ctx, actor, access.NewTaskResource(teamID), access.ActionRead); err != nil {
		return nil, err
	}
	return s.tasks.ListByTeam(ctx, teamID, filter)
}

func (s *taskService) UpdateTask(ctx context.Context, actor *model.User, taskID uuid.UUID, update TaskUpdate) (*model.Task, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.evaluator.Check(ctx, actor, access.TaskResource(task), access.ActionUpdate); err != nil {
		return nil, err
	}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, errors.ErrInvalidOperation
		}
		task.Title = title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Status != nil {
		task.Status = *update.Status
		if task.Status == model.TaskStatusDone && task.CompletedAt == nil {
			now := time.Now().UTC()
			task.CompletedAt = &now
		}
		if task.Status != model.TaskStatusDone {
			task.CompletedAt = nil
		}
	}
	if update.Priority != nil {
		task.Priority = *update.Priority
	}
	if update.AssigneeID != nil {
		if err := s.requireTeammate(ctx, task.TeamID, *update.AssigneeID); err != nil {
			return nil, err
		}
		task.AssigneeID = update.AssigneeID
	}
	if update.ClearDue {
		task.DueDate = nil
	} else if update.DueDate != nil {
		task.DueDate = update.DueDate
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) DeleteTask(ctx context.Context, actor *model.User, taskID uuid.UUID) error {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return err
	}
	if err := s.evaluator.Check(ctx, actor, access.TaskResource(task), access.ActionDelete); err != nil {
		return err
	}
	return s.tasks.Delete(ctx, taskID)
}

func (s *taskService) AssignTask(ctx context.Context, actor *model.User, taskID, assigneeID uuid.UUID) (*model.Task, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.evaluator.Check(ctx, actor, access.TaskResource(task), access.ActionUpdate); err != nil {
		return nil, err
	}
	if err := s.requireTeammate(ctx, task.TeamID, assigneeID); err != nil {
		return nil, err
	}

	task.AssigneeID = &assigneeID
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) CompleteTask(ctx context.Context, actor *model.User, taskID uuid.UUID) (*model.Task, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.evaluator.Check(ctx, actor, access.TaskResource(task), access.ActionUpdate); err != nil {
		return nil, err
	}
	if task.Status == model.TaskStatusDone {
		return nil, errors.ErrInvalidOperation
	}

	now := time.Now().UTC()
	task.Status = model.TaskStatusDone
	task.CompletedAt = &now
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}
