package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jane-devs/final-management/internal/model"
)

// TeamRepository defines team persistence operations.
type TeamRepository interface {
	Create(ctx context.Context, team *model.Team) error
	// CreateWithOwner persists the team and its owner membership in a
	// single transaction, so a team is never observable without an owner.
	CreateWithOwner(ctx context.Context, team *model.Team, owner *model.Membership) error
	Update(ctx context.Context, team *model.Team) error
	Delete(ctx context.Context, id uuid.UUID) error
	// TransferOwnership swaps the owner and member roles and repoints the
	// team's owner reference in a single transaction.
	TransferOwnership(ctx context.Context, teamID, fromUserID, toUserID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Team, error)
	FindByInviteCode(ctx context.Context, code string) (*model.Team, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Team, error)
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new team repository.
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Create(ctx context.Context, team *model.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

func (r *teamRepository) CreateWithOwner(ctx context.Context, team *model.Team, owner *model.Membership) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}
		owner.TeamID = team.ID
		return tx.Create(owner).Error
	})
}

func (r *teamRepository) Update(ctx context.Context, team *model.Team) error {
	return r.db.WithContext(ctx).Save(team).Error
}

func (r *teamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", id).Delete(&model.Membership{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Team{}).Error
	})
}

func (r *teamRepository) TransferOwnership(ctx context.Context, teamID, fromUserID, toUserID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Membership{}).
			Where("team_id = ? AND user_id = ? AND role = ?", teamID, fromUserID, model.RoleOwner).
			Update("role", model.RoleMember)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		res = tx.Model(&model.Membership{}).
			Where("team_id = ? AND user_id = ? AND role = ?", teamID, toUserID, model.RoleMember).
			Update("role", model.RoleOwner)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Model(&model.Team{}).
			Where("id = ?", teamID).
			Update("owner_id", toUserID).Error
	})
}

func (r *teamRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Team, error) {
	var team model.Team
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) FindByInviteCode(ctx context.Context, code string) (*model.Team, error) {
	var team model.Team
	if err := r.db.WithContext(ctx).Where("invite_code = ?", code).First(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Team, error) {
	var teams []model.Team
	if len(ids) == 0 {
		return teams, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("name").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}
