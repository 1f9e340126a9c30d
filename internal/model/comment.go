package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a note on a task, owned by the task's team.
type Comment struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	TaskID    uuid.UUID `json:"task_id" gorm:"type:char(36);not null;index"`
	AuthorID  uuid.UUID `json:"author_id" gorm:"type:char(36);not null;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Task   Task `json:"-" gorm:"foreignKey:TaskID"`
	Author User `json:"-" gorm:"foreignKey:AuthorID"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
