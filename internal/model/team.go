package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Team groups users sharing tasks, meetings and evaluations.
type Team struct {
	ID          uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string         `json:"name" gorm:"size:200;not null;index"`
	Description string         `json:"description,omitempty" gorm:"type:text"`
	InviteCode  string         `json:"invite_code,omitempty" gorm:"uniqueIndex;size:50"`
	OwnerID     uuid.UUID      `json:"owner_id" gorm:"type:char(36);not null;index"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Memberships []Membership `json:"memberships,omitempty" gorm:"foreignKey:TeamID"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
