package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/jane-devs/final-management/internal/errors"
	"github.com/jane-devs/final-management/internal/model"
)

func TestMembershipService_AddMember(t *testing.T) {
	teamID := uuid.New()
	userID := uuid.New()

	tests := []struct {
		name          string
		role          model.Role
		setupMock     func(*MockMembershipRepository, *MockTeamRepository, *MockUserRepository)
		expectedError error
	}{
		{
			name: "successful add",
			role: model.RoleMember,
			setupMock: func(mRepo *MockMembershipRepository, tRepo *MockTeamRepository, uRepo *MockUserRepository) {
				tRepo.On("FindByID", mock.Anything, teamID).Return(&model.Team{ID: teamID}, nil)
				uRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
				mRepo.On("Find", mock.Anything, teamID, userID).Return(nil, gorm.ErrRecordNotFound)
				mRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Membership")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "invalid role is rejected up front",
			role:          model.Role("superuser"),
			setupMock:     func(*MockMembershipRepository, *MockTeamRepository, *MockUserRepository) {},
			expectedError: errors.ErrInvalidOperation,
		},
		{
			name: "team must exist",
			role: model.RoleMember,
			setupMock: func(mRepo *MockMembershipRepository, tRepo *MockTeamRepository, uRepo *MockUserRepository) {
				tRepo.On("FindByID", mock.Anything, teamID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrTeamNotFound,
		},
		{
			name: "user must exist",
			role: model.RoleMember,
			setupMock: func(mRepo *MockMembershipRepository, tRepo *MockTeamRepository, uRepo *MockUserRepository) {
				tRepo.On("FindByID", mock.Anything, teamID).Return(&model.Team{ID: teamID}, nil)
				uRepo.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrUserNotFound,
		},
		{
			name: "duplicate membership is a conflict",
			role: model.RoleMember,
			setupMock: func(mRepo *MockMembershipRepository, tRepo *MockTeamRepository, uRepo *MockUserRepository) {
				tRepo.On("FindByID", mock.Anything, teamID).Return(&model.Team{ID: teamID}, nil)
				uRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
				mRepo.On("Find", mock.Anything, teamID, userID).
					Return(&model.Membership{TeamID: teamID, UserID: userID, Role: model.RoleMember}, nil)
			},
			expectedError: errors.ErrAlreadyMember,
		},
		{
			name: "a team can never gain a second owner",
			role: model.RoleOwner,
			setupMock: func(mRepo *MockMembershipRepository, tRepo *MockTeamRepository, uRepo *MockUserRepository) {
				tRepo.On("FindByID", mock.Anything, teamID).Return(&model.Team{ID: teamID}, nil)
				uRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
				mRepo.On("Find", mock.Anything, teamID, userID).Return(nil, gorm.ErrRecordNotFound)
				mRepo.On("FindOwner", mock.Anything, teamID).
					Return(&model.Membership{TeamID: teamID, UserID: uuid.New(), Role: model.RoleOwner}, nil)
			},
			expectedError: errors.ErrInvalidOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(MockMembershipRepository)
			tRepo := new(MockTeamRepository)
			uRepo := new(MockUserRepository)
			tt.setupMock(mRepo, tRepo, uRepo)

			svc := NewMembershipService(mRepo, tRepo, uRepo)
			membership, err := svc.AddMember(context.Background(), teamID, userID, tt.role)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, membership)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, membership)
				assert.Equal(t, teamID, membership.TeamID)
				assert.Equal(t, userID, membership.UserID)
				assert.Equal(t, tt.role, membership.Role)
			}

			mRepo.AssertExpectations(t)
			tRepo.AssertExpectations(t)
			uRepo.AssertExpectations(t)
		})
	}
}

func TestMembershipService_RemoveMember(t *testing.T) {
	teamID := uuid.New()
	userID := uuid.New()

	tests := []struct {
		name          string
		setupMock     func(*MockMembershipRepository)
		expectedError error
	}{
		{
			name: "successful removal",
			setupMock: func(mRepo *MockMembershipRepository) {
				mRepo.On("Find", mock.Anything, teamID, userID).
					Return(&model.Membership{TeamID: teamID, UserID: userID, Role: model.RoleMember}, nil)
				mRepo.On("Delete", mock.Anything, teamID, userID).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "removing a non-member fails",
			setupMock: func(mRepo *MockMembershipRepository) {
				mRepo.On("Find", mock.Anything, teamID, userID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrNotInTeam,
		},
		{
			name: "the owner can never be removed",
			setupMock: func(mRepo *MockMembershipRepository) {
				mRepo.On("Find", mock.Anything, teamID, userID).
					Return(&model.Membership{TeamID: teamID, UserID: userID, Role: model.RoleOwner}, nil)
			},
			expectedError: errors.ErrInvalidOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(MockMembershipRepository)
			tt.setupMock(mRepo)

			svc := NewMembershipService(mRepo, new(MockTeamRepository), new(MockUserRepository))
			err := svc.RemoveMember(context.Background(), teamID, userID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			mRepo.AssertExpectations(t)
		})
	}
}

func TestMembershipService_TransferOwnership(t *testing.T) {
	teamID := uuid.New()
	ownerID := uuid.New()
	memberID := uuid.New()

	tests := []struct {
		name          string
		from, to      uuid.UUID
		setupMock     func(*MockMembershipRepository, *MockTeamRepository)
		expectedError error
	}{
		{
			name: "successful transfer",
			from: ownerID,
			to:   memberID,
			setupMock: func(mRepo *MockMembershipRepository, tRepo *MockTeamRepository) {
				mRepo.On("Find", mock.Anything, teamID, ownerID).
					Return(&model.Membership{TeamID: teamID, UserID: ownerID, Role: model.RoleOwner}, nil)
				mRepo.On("Find", mock.Anything, teamID, memberID).
					Return(&model.Membership{TeamID: teamID, UserID: memberID, Role: model.RoleMember}, nil)
				tRepo.On("TransferOwnership", mock.Anything, teamID, ownerID, memberID).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "transfer to self is invalid",
			from:          ownerID,
			to:            ownerID,
			setupMock:     func(*MockMembershipRepository, *MockTeamRepository) {},
			expectedError: errors.ErrInvalidOperation,
		},
		{
			name: "only the current owner can transfer",
			from: memberID,
			to:   ownerID,
			setupMock: func(mRepo *MockMembershipRepository, tRepo *MockTeamRepository) {
				mRepo.On("Find", mock.Anything, teamID, memberID).
					Return(&model.Membership{TeamID: teamID, UserID: memberID, Role: model.RoleMember}, nil)
			},
			expectedError: errors.ErrInvalidOperation,
		},
		{
			name: "recipient must already be a member",
			from: ownerID,
			to:   memberID,
			setupMock: func(mRepo *MockMembershipRepository, tRepo *MockTeamRepository) {
				mRepo.On("Find", mock.Anything, teamID, ownerID).
					Return(&model.Membership{TeamID: teamID, UserID: ownerID, Role: model.RoleOwner}, nil)
				mRepo.On("Find", mock.Anything, teamID, memberID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrNotInTeam,
		},
		{
			name: "swap losing the race maps to invalid operation",
			from: ownerID,
			to:   memberID,
			setupMock: func(mRepo *MockMembershipRepository, tRepo *MockTeamRepository) {
				mRepo.On("Find", mock.Anything, teamID, ownerID).
					Return(&model.Membership{TeamID: teamID, UserID: ownerID, Role: model.RoleOwner}, nil)
				mRepo.On("Find", mock.Anything, teamID, memberID).
					Return(&model.Membership{TeamID: teamID, UserID: memberID, Role: model.RoleMember}, nil)
				tRepo.On("TransferOwnership", mock.Anything, teamID, ownerID, memberID).
					Return(gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrInvalidOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(MockMembershipRepository)
			tRepo := new(MockTeamRepository)
			tt.setupMock(mRepo, tRepo)

			svc := NewMembershipService(mRepo, tRepo, new(MockUserRepository))
			err := svc.TransferOwnership(context.Background(), teamID, tt.from, tt.to)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			mRepo.AssertExpectations(t)
			tRepo.AssertExpectations(t)
		})
	}
}

func TestMembershipService_RoleOf(t *testing.T) {
	teamID := uuid.New()
	userID := uuid.New()

	mRepo := new(MockMembershipRepository)
	mRepo.On("Find", mock.Anything, teamID, userID).Return(nil, gorm.ErrRecordNotFound)

	svc := NewMembershipService(mRepo, new(MockTeamRepository), new(MockUserRepository))
	role, err := svc.RoleOf(context.Background(), userID, teamID)

	assert.NoError(t, err)
	assert.Equal(t, model.RoleNone, role)
}
