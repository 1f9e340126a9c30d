package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// EvaluationMinScore is the lowest allowed evaluation score.
	EvaluationMinScore = 1
	// EvaluationMaxScore is the highest allowed evaluation score.
	EvaluationMaxScore = 5
)

// Evaluation is a scored assessment of one team member by another.
// Evaluator and subject must be distinct and share the team.
type Evaluation struct {
	ID          uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	TeamID      uuid.UUID  `json:"team_id" gorm:"type:char(36);not null;index"`
	SubjectID   uuid.UUID  `json:"subject_id" gorm:"type:char(36);not null;index"`
	EvaluatorID uuid.UUID  `json:"evaluator_id" gorm:"type:char(36);not null;index"`
	TaskID      *uuid.UUID `json:"task_id,omitempty" gorm:"type:char(36);index"`
	Score       int        `json:"score" gorm:"not null"`
	Notes       string     `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Team      Team  `json:"-" gorm:"foreignKey:TeamID"`
	Subject   User  `json:"-" gorm:"foreignKey:SubjectID"`
	Evaluator User  `json:"-" gorm:"foreignKey:EvaluatorID"`
	Task      *Task `json:"-" gorm:"foreignKey:TaskID"`
}

// BeforeCreate sets UUID before creating the record.
func (e *Evaluation) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
