package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"daytrack/internal/errors"
	"daytrack/internal/model"
	"daytrack/internal/repository"
)

// UserWithActivities is one row of the admin overview.
type UserWithActivities struct {
	Username   string           `json:"username"`
	Role       string           `json:"role"`
	Activities []model.Activity `json:"activities"`
}

// AdminService exposes the cross-user views for the admin role.
type AdminService interface {
	Overview(ctx context.Context) ([]UserWithActivities, error)
	UserActivities(ctx context.Context, username string) ([]model.Activity, error)
}

type adminService struct {
	userRepo     repository.UserRepository
	activityRepo repository.ActivityRepository
}

// NewAdminService creates a new admin service.
func NewAdminService(userRepo repository.UserRepository, activityRepo repository.ActivityRepository) AdminService {
	return &adminService{
		userRepo:     userRepo,
		activityRepo: activityRepo,
	}
}

// Overview joins every user with their activities.
func (s *adminService) Overview(ctx context.Context) ([]UserWithActivities, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	activities, err := s.activityRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	byOwner := make(map[string][]model.Activity, len(users))
	for _, a := range activities {
		key := a.UserID.String()
		byOwner[key] = append(byOwner[key], a)
	}

	overview := make([]UserWithActivities, 0, len(users))
	for _, u := range users {
		owned := byOwner[u.ID.String()]
		if owned == nil {
			owned = []model.Activity{}
		}
		overview = append(overview, UserWithActivities{
			Username:   u.Username,
			Role:       u.Role,
			Activities: owned,
		})
	}
	return overview, nil
}

// UserActivities returns one user's activities by username.
func (s *adminService) UserActivities(ctx context.Context, username string) ([]model.Activity, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return s.activityRepo.ListByOwner(ctx, user.ID)
}
