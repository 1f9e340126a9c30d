package service

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jane-devs/final-management/internal/cache"
	"github.com/jane-devs/final-management/internal/errors"
	"github.com/jane-devs/final-management/internal/model"
	"github.com/jane-devs/final-management/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// ProfileUpdate carries the fields a user may change on their profile.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
}

// UserService exposes user domain operations.
type UserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	ListUsers(ctx context.Context, actor *model.User) ([]model.User, error)
	UpdateProfile(ctx context.Context, actor *model.User, id uuid.UUID, update ProfileUpdate) (*model.User, error)
	// Deactivate soft-disables a user; user rows are never deleted.
	Deactivate(ctx context.Context, actor *model.User, id uuid.UUID) error
}

type userService struct {
	users repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(users repository.UserRepository, cache *cache.Client) UserService {
	return &userService{users: users, cache: cache}
}

func (s *userService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id)
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, actor *model.User) ([]model.User, error) {
	if !actor.IsAdmin {
		return nil, errors.ErrForbidden
	}
	return s.users.List(ctx)
}

func (s *userService) UpdateProfile(ctx context.Context, actor *model.User, id uuid.UUID, update ProfileUpdate) (*model.User, error) {
	if actor.ID != id && !actor.IsAdmin {
		return nil, errors.ErrForbidden
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return user, nil
}

func (s *userService) Deactivate(ctx context.Context, actor *model.User, id uuid.UUID) error {
	if !actor.IsAdmin {
		return errors.ErrForbidden
	}
	if actor.ID == id {
		return errors.ErrInvalidOperation
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrUserNotFound
		}
		return err
	}

	user.Active = false
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}
