package service

import (
	"context"
	goerrors "errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jane-devs/final-management/internal/errors"
	"github.com/jane-devs/final-management/internal/model"
	"github.com/jane-devs/final-management/internal/repository"
)

// MembershipService is the team-membership registry: it answers membership
// queries and mutates membership rows while holding the exactly-one-owner
// invariant per team.
type MembershipService interface {
	IsMember(ctx context.Context, userID, teamID uuid.UUID) (bool, error)
	RoleOf(ctx context.Context, userID, teamID uuid.UUID) (model.Role, error)
	ShareTeam(ctx context.Context, userA, userB uuid.UUID) (bool, error)
	TeamIDsOf(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	ListMembers(ctx context.Context, teamID uuid.UUID) ([]model.Membership, error)
	AddMember(ctx context.Context, teamID, userID uuid.UUID, role model.Role) (*model.Membership, error)
	RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error
	TransferOwnership(ctx context.Context, teamID, fromUserID, toUserID uuid.UUID) error
}

type membershipService struct {
	memberships repository.MembershipRepository
	teams       repository.TeamRepository
	users       repository.UserRepository
}

// NewMembershipService builds the membership registry.
func NewMembershipService(
	memberships repository.MembershipRepository,
	teams repository.TeamRepository,
	users repository.UserRepository,
) MembershipService {
	return &membershipService{
		memberships: memberships,
		teams:       teams,
		users:       users,
	}
}

func (s *membershipService) IsMember(ctx context.Context, userID, teamID uuid.UUID) (bool, error) {
	role, err := s.RoleOf(ctx, userID, teamID)
	if err != nil {
		return false, err
	}
	return role != model.RoleNone, nil
}

func (s *membershipService) RoleOf(ctx context.Context, userID, teamID uuid.UUID) (model.Role, error) {
	m, err := s.memberships.Find(ctx, teamID, userID)
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return model.RoleNone, nil
		}
		return model.RoleNone, err
	}
	return m.Role, nil
}

func (s *membershipService) ShareTeam(ctx context.Context, userA, userB uuid.UUID) (bool, error) {
	return s.memberships.SharedTeamExists(ctx, userA, userB)
}

func (s *membershipService) TeamIDsOf(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.memberships.TeamIDsOf(ctx, userID)
}

func (s *membershipService) ListMembers(ctx context.Context, teamID uuid.UUID) ([]model.Membership, error) {
	if _, err := s.teams.FindByID(ctx, teamID); err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrTeamNotFound
		}
		return nil, err
	}
	return s.memberships.ListByTeam(ctx, teamID)
}

// AddMember creates a membership row. Duplicates are conflicts; adding a
// second owner violates the one-owner invariant.
func (s *membershipService) AddMember(ctx context.Context, teamID, userID uuid.UUID, role model.Role) (*model.Membership, error) {
	if !role.Valid() {
		return nil, errors.ErrInvalidOperation
	}
	if _, err := s.teams.FindByID(ctx, teamID); err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrTeamNotFound
		}
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	membership := &model.Membership{TeamID: teamID, UserID: userID, Role: role}
	err := s.memberships.WithTransaction(ctx, func(ctx context.Context, repo repository.MembershipRepository) error {
		if _, err := repo.Find(ctx, teamID, userID); err == nil {
			return errors.ErrAlreadyMember
		} else if !goerrors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if role == model.RoleOwner {
			if _, err := repo.FindOwner(ctx, teamID); err == nil {
				return errors.ErrInvalidOperation
			} else if !goerrors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		return repo.Create(ctx, membership)
	})
	if err != nil {
		return nil, err
	}
	return membership, nil
}

// RemoveMember deletes a membership row. The owner can never be removed;
// ownership must be transferred first or the team deleted outright, so the
// invariant holds even for a team whose only member is its owner.
func (s *membershipService) RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error {
	return s.memberships.WithTransaction(ctx, func(ctx context.Context, repo repository.MembershipRepository) error {
		m, err := repo.Find(ctx, teamID, userID)
		if err != nil {
			if goerrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.ErrNotInTeam
			}
			return err
		}
		if m.Role == model.RoleOwner {
			return errors.ErrInvalidOperation
		}
		return repo.Delete(ctx, teamID, userID)
	})
}

// TransferOwnership swaps roles between the current owner and another
// member in one transaction.
func (s *membershipService) TransferOwnership(ctx context.Context, teamID, fromUserID, toUserID uuid.UUID) error {
	if fromUserID == toUserID {
		return errors.ErrInvalidOperation
	}

	from, err := s.memberships.Find(ctx, teamID, fromUserID)
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrNotInTeam
		}
		return err
	}
	if from.Role != model.RoleOwner {
		return errors.ErrInvalidOperation
	}

	if _, err := s.memberships.Find(ctx, teamID, toUserID); err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrNotInTeam
		}
		return err
	}

	if err := s.teams.TransferOwnership(ctx, teamID, fromUserID, toUserID); err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			// Roles changed between the checks above and the swap.
			return errors.ErrInvalidOperation
		}
		return err
	}
	return nil
}
