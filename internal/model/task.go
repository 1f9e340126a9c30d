package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskStatus represents the status of a task.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// TaskPriority represents the priority of a task.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// Task is a unit of work owned by a team, visible only to its members.
type Task struct {
	ID          uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	TeamID      uuid.UUID      `json:"team_id" gorm:"type:char(36);not null;index"`
	CreatorID   uuid.UUID      `json:"creator_id" gorm:"type:char(36);not null;index"`
	AssigneeID  *uuid.UUID     `json:"assignee_id,omitempty" gorm:"type:char(36);index"`
	Title       string         `json:"title" gorm:"size:200;not null"`
	Description string         `json:"description,omitempty" gorm:"type:text"`
	Status      TaskStatus     `json:"status" gorm:"type:varchar(20);not null;default:'todo';index"`
	Priority    TaskPriority   `json:"priority" gorm:"type:varchar(20);not null;default:'medium';index"`
	DueDate     *time.Time     `json:"due_date,omitempty" gorm:"index"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Team     Team  `json:"-" gorm:"foreignKey:TeamID"`
	Creator  User  `json:"-" gorm:"foreignKey:CreatorID"`
	Assignee *User `json:"-" gorm:"foreignKey:AssigneeID"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// IsOverdue reports whether the deadline has passed for an unfinished task.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Status == TaskStatusDone {
		return false
	}
	return now.After(*t.DueDate)
}

// HasDueTime reports whether the deadline carries a time of day.
// A deadline at exactly midnight UTC is treated as date-only.
func (t *Task) HasDueTime() bool {
	if t.DueDate == nil {
		return false
	}
	d := t.DueDate.UTC()
	return !d.Equal(time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC))
}
