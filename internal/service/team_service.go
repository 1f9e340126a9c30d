package service

import (
	"context"
	goerrors "errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jane-devs/final-management/internal/access"
	"github.com/jane-devs/final-management/internal/errors"
	"github.com/jane-devs/final-management/internal/model"
	"github.com/jane-devs/final-management/internal/repository"
)

// TeamService handles team lifecycle and roster operations. Every call is
// checked against the access evaluator before touching data.
type TeamService interface {
	CreateTeam(ctx context.Context, actor *model.User, name, description string) (*model.Team, error)
	GetTeam(ctx context.Context, actor *model.User, teamID uuid.UUID) (*model.Team, error)
	ListMyTeams(ctx context.Context, actor *model.User) ([]model.Team, error)
	UpdateTeam(ctx context.Context, actor *model.User, teamID uuid.UUID, name, description string) (*model.Team, error)
	DeleteTeam(ctx context.Context, actor *model.User, teamID uuid.UUID) error
	JoinByInviteCode(ctx context.Context, actor *model.User, code string) (*model.Team, error)
	AddMember(ctx context.Context, actor *model.User, teamID, userID uuid.UUID) (*model.Membership, error)
	RemoveMember(ctx context.Context, actor *model.User, teamID, userID uuid.UUID) error
	LeaveTeam(ctx context.Context, actor *model.User, teamID uuid.UUID) error
	TransferOwnership(ctx context.Context, actor *model.User, teamID, toUserID uuid.UUID) error
	ListMembers(ctx context.Context, actor *model.User, teamID uuid.UUID) ([]model.Membership, error)
}

type teamService struct {
	teams       repository.TeamRepository
	memberships MembershipService
	evaluator   *access.Evaluator
}

// NewTeamService creates a new team service.
func NewTeamService(teams repository.TeamRepository, memberships MembershipService, evaluator *access.Evaluator) TeamService {
	return &teamService{
		teams:       teams,
		memberships: memberships,
		evaluator:   evaluator,
	}
}

// newInviteCode derives a short shareable code.
func newInviteCode() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
}

func (s *teamService) findTeam(ctx context.Context, teamID uuid.UUID) (*model.Team, error) {
	team, err := s.teams.FindByID(ctx, teamID)
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

// CreateTeam persists the team and its owner membership atomically; the
// creator always becomes owner.
func (s *teamService) CreateTeam(ctx context.Context, actor *model.User, name, description string) (*model.Team, error) {
	if err := s.evaluator.Check(ctx, actor, access.TeamResource(uuid.Nil), access.ActionCreate); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.ErrInvalidOperation
	}

	team := &model.Team{
		Name:        name,
		Description: description,
		InviteCode:  newInviteCode(),
		OwnerID:     actor.ID,
	}
	owner := &model.Membership{UserID: actor.ID, Role: model.RoleOwner}
	if err := s.teams.CreateWithOwner(ctx, team, owner); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *teamService) GetTeam(ctx context.Context, actor *model.User, teamID uuid.UUID) (*model.Team, error) {
	team, err := s.findTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if err := s.evaluator.Check(ctx, actor, access.TeamResource(teamID), access.ActionRead); err != nil {
		return nil, err
	}
	memberships, err := s.memberships.ListMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}
	team.Memberships = memberships
	return team, nil
}

func (s *teamService) ListMyTeams(ctx context.Context, actor *model.User) ([]model.Team, error) {
	ids, err := s.memberships.TeamIDsOf(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return s.teams.FindByIDs(ctx, ids)
}

func (s *teamService) UpdateTeam(ctx context.Context, actor *model.User, teamID uuid.UUID, name, description string) (*model.Team, error) {
	team, err := s.findTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if err := s.evaluator.Check(ctx, actor, access.TeamResource(teamID), access.ActionUpdate); err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		team.Name = name
	}
	if description != "" {
		team.Description = description
	}
	if err := s.teams.Update(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *teamService) DeleteTeam(ctx context.Context, actor *model.User, teamID uuid.UUID) error {
	if _, err := s.findTeam(ctx, teamID); err != nil {
		return err
	}
	if err := s.evaluator.Check(ctx, actor, access.TeamResource(teamID), access.ActionDelete); err != nil {
		return err
	}
	return s.teams.Delete(ctx, teamID)
}

func (s *teamService) JoinByInviteCode(ctx context.Context, actor *model.User, code string) (*model.Team, error) {
	team, err := s.teams.FindByInviteCode(ctx, code)
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrInviteCodeInvalid
		}
		return nil, err
	}
	if _, err := s.memberships.AddMember(ctx, team.ID, actor.ID, model.RoleMember); err != nil {
		return nil, err
	}
	return team, nil
}

// AddMember lets the owner (or an admin) add a user as a regular member.
func (s *teamService) AddMember(ctx context.Context, actor *model.User, teamID, userID uuid.UUID) (*model.Membership, error) {
	if _, err := s.findTeam(ctx, teamID); err != nil {
		return nil, err
	}
	if err := s.evaluator.Check(ctx, actor, access.TeamResource(teamID), access.ActionUpdate); err != nil {
		return nil, err
	}
	return s.memberships.AddMember(ctx, teamID, userID, model.RoleMember)
}

func (s *teamService) RemoveMember(ctx context.Context, actor *model.User, teamID, userID uuid.UUID) error {
	if _, err := s.findTeam(ctx, teamID); err != nil {
		return err
	}
	if err := s.evaluator.Check(ctx, actor, access.TeamResource(teamID), access.ActionUpdate); err != nil {
		return err
	}
	return s.memberships.RemoveMember(ctx, teamID, userID)
}

// LeaveTeam removes the actor's own membership. The owner cannot leave;
// ownership must be transferred or the team deleted.
func (s *teamService) LeaveTeam(ctx context.Context, actor *model.User, teamID uuid.UUID) error {
	if _, err := s.findTeam(ctx, teamID); err != nil {
		return err
	}
	return s.memberships.RemoveMember(ctx, teamID, actor.ID)
}

func (s *teamService) TransferOwnership(ctx context.Context, actor *model.User, teamID, toUserID uuid.UUID) error {
	team, err := s.findTeam(ctx, teamID)
	if err != nil {
		return err
	}
	if err := s.evaluator.Check(ctx, actor, access.TeamResource(teamID), access.ActionUpdate); err != nil {
		return err
	}
	return s.memberships.TransferOwnership(ctx, teamID, team.OwnerID, toUserID)
}

func (s *teamService) ListMembers(ctx context.Context, actor *model.User, teamID uuid.UUID) ([]model.Membership, error) {
	if _, err := s.findTeam(ctx, teamID); err != nil {
		return nil, err
	}
	if err := s.evaluator.Check(ctx, actor, access.TeamResource(teamID), access.ActionRead); err != nil {
		return nil, err
	}
	return s.memberships.ListMembers(ctx, teamID)
}
