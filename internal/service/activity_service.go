package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"daytrack/internal/cache"
	"daytrack/internal/errors"
	"daytrack/internal/model"
	"daytrack/internal/repository"
)

const todayCountCacheTTL = 30 * time.Second

// ActivityService handles the activity lifecycle: quota-gated creation,
// window-gated edits, ownership-gated deletes, and reads.
type ActivityService interface {
	Create(ctx context.Context, ownerID uuid.UUID, title, description string) (*model.Activity, error)
	TodayCount(ctx context.Context, ownerID uuid.UUID) (int, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]model.Activity, error)
	ListByDate(ctx context.Context, ownerID uuid.UUID, date string) ([]model.Activity, error)
	Edit(ctx context.Context, ownerID, activityID uuid.UUID, title, description, date string) (editCount int, err error)
	Delete(ctx context.Context, ownerID, activityID uuid.UUID) error
}

type activityService struct {
	activityRepo repository.ActivityRepository
	policy       *Policy
	cache        *cache.Client
	now          func() time.Time
}

// NewActivityService creates a new activity service.
func NewActivityService(activityRepo repository.ActivityRepository, policy *Policy, cacheClient *cache.Client) ActivityService {
	return &activityService{
		activityRepo: activityRepo,
		policy:       policy,
		cache:        cacheClient,
		now:          time.Now,
	}
}

func todayCountKey(ownerID uuid.UUID, dayStart time.Time) string {
	return "today_count:" + ownerID.String() + ":" + dayStart.Format("2006-01-02")
}

// Create inserts a new activity unless the owner already hit the daily cap.
// The cap check and the insert run atomically in the repository.
func (s *activityService) Create(ctx context.Context, ownerID uuid.UUID, title, description string) (*model.Activity, error) {
	now := s.now()
	dayStart, dayEnd := s.policy.DayBounds(now)

	activity := &model.Activity{
		UserID:      ownerID,
		Title:       title,
		Description: description,
		CreatedAt:   now,
	}

	if err := s.activityRepo.CreateWithDailyCap(ctx, activity, dayStart, dayEnd, s.policy.DailyCap); err != nil {
		if err == errors.ErrQuotaExceeded {
			return nil, err
		}
		return nil, fmt.Errorf("create activity: %w", err)
	}

	// The cached count is stale now.
	_ = s.cache.Delete(ctx, todayCountKey(ownerID, dayStart))

	return activity, nil
}

// TodayCount returns how many activities the owner created today. Read-only;
// served from cache when fresh.
func (s *activityService) TodayCount(ctx context.Context, ownerID uuid.UUID) (int, error) {
	dayStart, dayEnd := s.policy.DayBounds(s.now())
	key := todayCountKey(ownerID, dayStart)

	if count, ok := s.cache.GetInt(ctx, key); ok {
		return count, nil
	}

	count, err := s.activityRepo.CountInRange(ctx, ownerID, dayStart, dayEnd)
	if err != nil {
		return 0, fmt.Errorf("count today's activities: %w", err)
	}

	_ = s.cache.SetInt(ctx, key, int(count), todayCountCacheTTL)
	return int(count), nil
}

// List returns all of the owner's activities.
func (s *activityService) List(ctx context.Context, ownerID uuid.UUID) ([]model.Activity, error) {
	return s.activityRepo.ListByOwner(ctx, ownerID)
}

// ListByDate returns the owner's activities whose display date matches.
func (s *activityService) ListByDate(ctx context.Context, ownerID uuid.UUID, date string) ([]model.Activity, error) {
	return s.activityRepo.ListByOwnerAndDate(ctx, ownerID, date)
}

// Edit applies field updates to an activity still inside its mutation
// window. Returns the new edit count on success.
func (s *activityService) Edit(ctx context.Context, ownerID, activityID uuid.UUID, title, description, date string) (int, error) {
	activity, err := s.activityRepo.FindByIDAndOwner(ctx, activityID, ownerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, errors.ErrActivityNotFound
		}
		return 0, fmt.Errorf("load activity: %w", err)
	}

	now := s.now()
	if err := s.policy.CheckEditable(activity, now); err != nil {
		return 0, err
	}

	affected, err := s.activityRepo.ApplyEdit(ctx, activityID, ownerID, activity.EditCount, title, description, date, now)
	if err != nil {
		return 0, fmt.Errorf("update activity: %w", err)
	}
	if affected == 0 {
		return 0, errors.ErrNoChangesApplied
	}

	return activity.EditCount + 1, nil
}

// Delete removes an activity. Only ownership is checked: a locked activity
// stays deletable, matching the reference behavior.
func (s *activityService) Delete(ctx context.Context, ownerID, activityID uuid.UUID) error {
	deleted, err := s.activityRepo.DeleteByIDAndOwner(ctx, activityID, ownerID)
	if err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}
	if deleted == 0 {
		return errors.ErrActivityNotFound
	}

	dayStart, _ := s.policy.DayBounds(s.now())
	_ = s.cache.Delete(ctx, todayCountKey(ownerID, dayStart))

	return nil
}
