package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jane-devs/final-management/internal/model"
)

// TaskFilter narrows team task listings.
type TaskFilter struct {
	Status      *model.TaskStatus
	Priority    *model.TaskPriority
	AssigneeID  *uuid.UUID
	OverdueOnly bool
}

// TaskRepository defines task persistence operations.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID, filter TaskFilter) ([]model.Task, error)
	// ListDueBetween returns tasks of the given teams whose due date falls
	// in the half-open range [start, end).
	ListDueBetween(ctx context.Context, teamIDs []uuid.UUID, start, end time.Time) ([]model.Task, error)
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *taskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Task{}).Error
	})
}

func (r *taskRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) ListByTeam(ctx context.Context, teamID uuid.UUID, filter TaskFilter) ([]model.Task, error) {
	query := r.db.WithContext(ctx).Where("team_id = ?", teamID)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}
	if filter.OverdueOnly {
		query = query.Where("due_date < ? AND status <> ?", time.Now().UTC(), model.TaskStatusDone)
	}

	var tasks []model.Task
	if err := query.Order("created_at").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) ListDueBetween(ctx context.Context, teamIDs []uuid.UUID, start, end time.Time) ([]model.Task, error) {
	var tasks []model.Task
	if len(teamIDs) == 0 {
		return tasks, nil
	}
	if err := r.db.WithContext(ctx).
		Where("team_id IN ? AND due_date >= ? AND due_date < ?", teamIDs, start, end).
		Order("due_date").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}
