package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "daytrack/internal/errors"
	"daytrack/internal/model"
)

// ActivityRepository defines activity persistence operations.
type ActivityRepository interface {
	CreateWithDailyCap(ctx context.Context, activity *model.Activity, dayStart, dayEnd time.Time, limit int) error
	CountInRange(ctx context.Context, ownerID uuid.UUID, start, end time.Time) (int64, error)
	FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*model.Activity, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Activity, error)
	ListByOwnerAndDate(ctx context.Context, ownerID uuid.UUID, date string) ([]model.Activity, error)
	ListAll(ctx context.Context) ([]model.Activity, error)
	ApplyEdit(ctx context.Context, id, ownerID uuid.UUID, expectedEdits int, title, description, date string, editedAt time.Time) (int64, error)
	DeleteByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (int64, error)
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new activity repository.
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

// CreateWithDailyCap inserts the activity only if the owner has fewer than
// limit activities created inside [dayStart, dayEnd). The count runs with a
// FOR UPDATE range lock inside one transaction so two concurrent creations
// for the same owner cannot both pass the check.
func (r *activityRepository) CreateWithDailyCap(ctx context.Context, activity *model.Activity, dayStart, dayEnd time.Time, limit int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Activity{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND created_at >= ? AND created_at < ?", activity.UserID, dayStart, dayEnd).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(limit) {
			return apperrors.ErrQuotaExceeded
		}
		return tx.Create(activity).Error
	})
}

// CountInRange counts the owner's activities with created_at in [start, end).
func (r *activityRepository) CountInRange(ctx context.Context, ownerID uuid.UUID, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Activity{}).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", ownerID, start, end).
		Count(&count).Error
	return count, err
}

// FindByIDAndOwner finds an activity scoped to its owner.
func (r *activityRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*model.Activity, error) {
	var activity model.Activity
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&activity).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

// ListByOwner lists all activities belonging to one owner.
func (r *activityRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Activity, error) {
	var activities []model.Activity
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

// ListByOwnerAndDate lists the owner's activities matching a display date.
func (r *activityRepository) ListByOwnerAndDate(ctx context.Context, ownerID uuid.UUID, date string) ([]model.Activity, error) {
	var activities []model.Activity
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", ownerID, date).
		Order("created_at DESC").
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

// ListAll lists every activity in the system.
func (r *activityRepository) ListAll(ctx context.Context) ([]model.Activity, error) {
	var activities []model.Activity
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

// ApplyEdit performs a single conditional update: the row must still carry
// the edit count the caller decided on, so a concurrent edit or delete makes
// this affect zero rows instead of silently double-applying.
func (r *activityRepository) ApplyEdit(ctx context.Context, id, ownerID uuid.UUID, expectedEdits int, title, description, date string, editedAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Activity{}).
		Where("id = ? AND user_id = ? AND edit_count = ?", id, ownerID, expectedEdits).
		Updates(map[string]interface{}{
			"title":          title,
			"description":    description,
			"date":           date,
			"last_edited_at": editedAt,
			"edit_count":     gorm.Expr("edit_count + 1"),
		})
	return res.RowsAffected, res.Error
}

// DeleteByIDAndOwner deletes an activity scoped to its owner and reports how
// many rows went away.
func (r *activityRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&model.Activity{})
	return res.RowsAffected, res.Error
}
