package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Meeting is a scheduled event owned by a team with a participant set
// drawn from the team's members.
type Meeting struct {
	ID          uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	TeamID      uuid.UUID      `json:"team_id" gorm:"type:char(36);not null;index"`
	CreatorID   uuid.UUID      `json:"creator_id" gorm:"type:char(36);not null;index"`
	Title       string         `json:"title" gorm:"size:200;not null"`
	Description string         `json:"description,omitempty" gorm:"type:text"`
	Location    string         `json:"location,omitempty" gorm:"size:255"`
	StartTime   time.Time      `json:"start_time" gorm:"not null;index"`
	EndTime     time.Time      `json:"end_time" gorm:"not null;index"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Team         Team   `json:"-" gorm:"foreignKey:TeamID"`
	Creator      User   `json:"-" gorm:"foreignKey:CreatorID"`
	Participants []User `json:"participants,omitempty" gorm:"many2many:meeting_participants"`
}

// BeforeCreate sets UUID before creating the record.
func (m *Meeting) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Intersects reports whether the meeting overlaps the half-open range
// [start, end).
func (m *Meeting) Intersects(start, end time.Time) bool {
	return m.StartTime.Before(end) && m.EndTime.After(start)
}

// DurationMinutes returns the meeting length in whole minutes.
func (m *Meeting) DurationMinutes() int {
	return int(m.EndTime.Sub(m.StartTime).Minutes())
}

// HasParticipant reports whether the user is in the participant set.
func (m *Meeting) HasParticipant(userID uuid.UUID) bool {
	for _, p := range m.Participants {
		if p.ID == userID {
			return true
		}
	}
	return false
}
