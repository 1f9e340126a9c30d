package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jane-devs/final-management/internal/model"
)

// MembershipRepository defines membership persistence operations.
type MembershipRepository interface {
	Create(ctx context.Context, m *model.Membership) error
	Delete(ctx context.Context, teamID, userID uuid.UUID) error
	UpdateRole(ctx context.Context, teamID, userID uuid.UUID, role model.Role) error
	Find(ctx context.Context, teamID, userID uuid.UUID) (*model.Membership, error)
	FindOwner(ctx context.Context, teamID uuid.UUID) (*model.Membership, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]model.Membership, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Membership, error)
	TeamIDsOf(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	SharedTeamExists(ctx context.Context, userA, userB uuid.UUID) (bool, error)
	// WithTransaction executes fn against a repository bound to one
	// database transaction.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo MembershipRepository) error) error
}

type membershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new membership repository.
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) Create(ctx context.Context, m *model.Membership) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *membershipRepository) Delete(ctx context.Context, teamID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&model.Membership{}).Error
}

func (r *membershipRepository) UpdateRole(ctx context.Context, teamID, userID uuid.UUID, role model.Role) error {
	return r.db.WithContext(ctx).Model(&model.Membership{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Update("role", role).Error
}

func (r *membershipRepository) Find(ctx context.Context, teamID, userID uuid.UUID) (*model.Membership, error) {
	var m model.Membership
	if err := r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *membershipRepository) FindOwner(ctx context.Context, teamID uuid.UUID) (*model.Membership, error) {
	var m model.Membership
	if err := r.db.WithContext(ctx).
		Where("team_id = ? AND role = ?", teamID, model.RoleOwner).
		First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *membershipRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]model.Membership, error) {
	var memberships []model.Membership
	if err := r.db.WithContext(ctx).Preload("User").
		Where("team_id = ?", teamID).
		Order("created_at").
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *membershipRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Membership, error) {
	var memberships []model.Membership
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *membershipRepository) TeamIDsOf(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&model.Membership{}).
		Where("user_id = ?", userID).
		Pluck("team_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *membershipRepository) SharedTeamExists(ctx context.Context, userA, userB uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Membership{}).
		Where("user_id = ? AND team_id IN (?)", userA,
			r.db.Model(&model.Membership{}).Select("team_id").Where("user_id = ?", userB)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *membershipRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo MembershipRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &membershipRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
