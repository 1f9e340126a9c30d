package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is a member's role within a single team.
type Role string

const (
	// RoleOwner marks the single elevated member of a team.
	RoleOwner Role = "owner"
	// RoleMember marks a regular team member.
	RoleMember Role = "member"
	// RoleNone is returned for users with no membership in a team.
	RoleNone Role = ""
)

// Valid reports whether the role can be persisted.
func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleMember
}

// Membership links a user to a team with a role.
// Invariant: each team has exactly one owner row at any time.
type Membership struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	TeamID    uuid.UUID `json:"team_id" gorm:"type:char(36);not null;uniqueIndex:idx_team_user"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);not null;uniqueIndex:idx_team_user"`
	Role      Role      `json:"role" gorm:"type:varchar(20);not null;default:'member'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Team Team `json:"-" gorm:"foreignKey:TeamID"`
}

// BeforeCreate sets UUID before creating the record.
func (m *Membership) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
