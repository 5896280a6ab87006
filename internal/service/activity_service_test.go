package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"daytrack/internal/errors"
	"daytrack/internal/model"
)

// MockActivityRepository is a mock implementation of ActivityRepository.
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) CreateWithDailyCap(ctx context.Context, activity *model.Activity, dayStart, dayEnd time.Time, limit int) error {
	args := m.Called(ctx, activity, dayStart, dayEnd, limit)
	return args.Error(0)
}

func (m *MockActivityRepository) CountInRange(ctx context.Context, ownerID uuid.UUID, start, end time.Time) (int64, error) {
	args := m.Called(ctx, ownerID, start, end)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockActivityRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*model.Activity, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Activity), args.Error(1)
}

func (m *MockActivityRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Activity, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Activity), args.Error(1)
}

func (m *MockActivityRepository) ListByOwnerAndDate(ctx context.Context, ownerID uuid.UUID, date string) ([]model.Activity, error) {
	args := m.Called(ctx, ownerID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Activity), args.Error(1)
}

func (m *MockActivityRepository) ListAll(ctx context.Context) ([]model.Activity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Activity), args.Error(1)
}

func (m *MockActivityRepository) ApplyEdit(ctx context.Context, id, ownerID uuid.UUID, expectedEdits int, title, description, date string, editedAt time.Time) (int64, error) {
	args := m.Called(ctx, id, ownerID, expectedEdits, title, description, date, editedAt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockActivityRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func newTestActivityService(repo *MockActivityRepository, now time.Time) *activityService {
	svc := NewActivityService(repo, DefaultPolicy(), nil).(*activityService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestActivityService_Create(t *testing.T) {
	ownerID := uuid.New()
	now := time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC)
	dayStart := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	tests := []struct {
		name          string
		setupMock     func(*MockActivityRepository)
		expectedError error
	}{
		{
			name: "successful creation",
			setupMock: func(m *MockActivityRepository) {
				m.On("CreateWithDailyCap", mock.Anything, mock.AnythingOfType("*model.Activity"), dayStart, dayEnd, 2).Return(nil)
			},
		},
		{
			name: "daily cap reached",
			setupMock: func(m *MockActivityRepository) {
				m.On("CreateWithDailyCap", mock.Anything, mock.AnythingOfType("*model.Activity"), dayStart, dayEnd, 2).Return(errors.ErrQuotaExceeded)
			},
			expectedError: errors.ErrQuotaExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockActivityRepository)
			tt.setupMock(mockRepo)

			svc := newTestActivityService(mockRepo, now)
			activity, err := svc.Create(context.Background(), ownerID, "Morning run", "5km around the park")

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, activity)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, ownerID, activity.UserID)
				assert.Equal(t, "Morning run", activity.Title)
				assert.Equal(t, now, activity.CreatedAt)
				assert.Equal(t, 0, activity.EditCount)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestActivityService_TodayCount(t *testing.T) {
	ownerID := uuid.New()
	now := time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC)
	dayStart := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	mockRepo := new(MockActivityRepository)
	mockRepo.On("CountInRange", mock.Anything, ownerID, dayStart, dayEnd).Return(int64(2), nil)

	svc := newTestActivityService(mockRepo, now)
	count, err := svc.TodayCount(context.Background(), ownerID)

	assert.NoError(t, err)
	assert.Equal(t, 2, count)
	mockRepo.AssertExpectations(t)
}

func TestActivityService_CreateThenCountRoundTrip(t *testing.T) {
	ownerID := uuid.New()
	now := time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC)
	dayStart := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var stored []model.Activity
	mockRepo := new(MockActivityRepository)
	mockRepo.On("CreateWithDailyCap", mock.Anything, mock.AnythingOfType("*model.Activity"), dayStart, dayEnd, 2).
		Run(func(args mock.Arguments) {
			stored = append(stored, *args.Get(1).(*model.Activity))
		}).Return(nil)

	svc := newTestActivityService(mockRepo, now)

	_, err := svc.Create(context.Background(), ownerID, "Reading", "Two chapters")
	assert.NoError(t, err)

	mockRepo.On("CountInRange", mock.Anything, ownerID, dayStart, dayEnd).Return(int64(len(stored)), nil)

	count, err := svc.TodayCount(context.Background(), ownerID)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
	mockRepo.AssertExpectations(t)
}

func TestActivityService_Edit(t *testing.T) {
	ownerID := uuid.New()
	activityID := uuid.New()
	createdAt := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		now           time.Time
		setupMock     func(*MockActivityRepository, time.Time)
		expectedCount int
		expectedError error
	}{
		{
			name: "edit inside the window",
			now:  createdAt.Add(30 * time.Minute),
			setupMock: func(m *MockActivityRepository, now time.Time) {
				m.On("FindByIDAndOwner", mock.Anything, activityID, ownerID).
					Return(&model.Activity{ID: activityID, UserID: ownerID, CreatedAt: createdAt, EditCount: 0}, nil)
				m.On("ApplyEdit", mock.Anything, activityID, ownerID, 0, "Updated", "New text", "2025-03-14", now).
					Return(int64(1), nil)
			},
			expectedCount: 1,
		},
		{
			name: "second edit still allowed",
			now:  createdAt.Add(45 * time.Minute),
			setupMock: func(m *MockActivityRepository, now time.Time) {
				m.On("FindByIDAndOwner", mock.Anything, activityID, ownerID).
					Return(&model.Activity{ID: activityID, UserID: ownerID, CreatedAt: createdAt, EditCount: 1}, nil)
				m.On("ApplyEdit", mock.Anything, activityID, ownerID, 1, "Updated", "New text", "2025-03-14", now).
					Return(int64(1), nil)
			},
			expectedCount: 2,
		},
		{
			name: "window expired",
			now:  createdAt.Add(61 * time.Minute),
			setupMock: func(m *MockActivityRepository, now time.Time) {
				m.On("FindByIDAndOwner", mock.Anything, activityID, ownerID).
					Return(&model.Activity{ID: activityID, UserID: ownerID, CreatedAt: createdAt, EditCount: 1}, nil)
			},
			expectedError: errors.ErrEditWindowExpired,
		},
		{
			name: "edit limit reached",
			now:  createdAt.Add(20 * time.Minute),
			setupMock: func(m *MockActivityRepository, now time.Time) {
				m.On("FindByIDAndOwner", mock.Anything, activityID, ownerID).
					Return(&model.Activity{ID: activityID, UserID: ownerID, CreatedAt: createdAt, EditCount: 2}, nil)
			},
			expectedError: errors.ErrEditLimitReached,
		},
		{
			name: "wrong owner surfaces as not found",
			now:  createdAt.Add(5 * time.Minute),
			setupMock: func(m *MockActivityRepository, now time.Time) {
				m.On("FindByIDAndOwner", mock.Anything, activityID, ownerID).
					Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrActivityNotFound,
		},
		{
			name: "lost race yields no changes applied",
			now:  createdAt.Add(10 * time.Minute),
			setupMock: func(m *MockActivityRepository, now time.Time) {
				m.On("FindByIDAndOwner", mock.Anything, activityID, ownerID).
					Return(&model.Activity{ID: activityID, UserID: ownerID, CreatedAt: createdAt, EditCount: 0}, nil)
				m.On("ApplyEdit", mock.Anything, activityID, ownerID, 0, "Updated", "New text", "2025-03-14", now).
					Return(int64(0), nil)
			},
			expectedError: errors.ErrNoChangesApplied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockActivityRepository)
			tt.setupMock(mockRepo, tt.now)

			svc := newTestActivityService(mockRepo, tt.now)
			editCount, err := svc.Edit(context.Background(), ownerID, activityID, "Updated", "New text", "2025-03-14")

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Zero(t, editCount)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedCount, editCount)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestActivityService_Delete(t *testing.T) {
	ownerID := uuid.New()
	activityID := uuid.New()
	now := time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name          string
		setupMock     func(*MockActivityRepository)
		expectedError error
	}{
		{
			name: "successful delete",
			setupMock: func(m *MockActivityRepository) {
				m.On("DeleteByIDAndOwner", mock.Anything, activityID, ownerID).Return(int64(1), nil)
			},
		},
		{
			name: "wrong owner surfaces as not found",
			setupMock: func(m *MockActivityRepository) {
				m.On("DeleteByIDAndOwner", mock.Anything, activityID, ownerID).Return(int64(0), nil)
			},
			expectedError: errors.ErrActivityNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockActivityRepository)
			tt.setupMock(mockRepo)

			svc := newTestActivityService(mockRepo, now)
			err := svc.Delete(context.Background(), ownerID, activityID)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

// A locked activity rejects further edits but stays deletable.
func TestActivityService_LockedActivityStaysDeletable(t *testing.T) {
	ownerID := uuid.New()
	activityID := uuid.New()
	createdAt := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	now := createdAt.Add(61 * time.Minute)

	mockRepo := new(MockActivityRepository)
	mockRepo.On("FindByIDAndOwner", mock.Anything, activityID, ownerID).
		Return(&model.Activity{ID: activityID, UserID: ownerID, CreatedAt: createdAt, EditCount: 1}, nil)
	mockRepo.On("DeleteByIDAndOwner", mock.Anything, activityID, ownerID).Return(int64(1), nil)

	svc := newTestActivityService(mockRepo, now)

	_, err := svc.Edit(context.Background(), ownerID, activityID, "Updated", "New text", "")
	assert.Equal(t, errors.ErrEditWindowExpired, err)

	assert.NoError(t, svc.Delete(context.Background(), ownerID, activityID))
	mockRepo.AssertExpectations(t)
}
