package service

import (
	"context"
	"time"

	"github.com/ronrevv/wolverinez-workout-planner/internal/domain"
	"github.com/ronrevv/wolverinez-workout-planner/internal/repository"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mock repositories
type MockUserRepo struct{ mock.Mock }
type MockRoleRepo struct{ mock.Mock }
type MockProfileRepo struct{ mock.Mock }
type MockSubscriptionRepo struct{ mock.Mock }
type MockPlanRepo struct{ mock.Mock }
type MockAssignmentRepo struct{ mock.Mock }
type MockTrackingRepo struct{ mock.Mock }
type MockAccessRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockRoleRepo) Get(ctx context.Context, userID primitive.ObjectID) (*domain.UserRole, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserRole), args.Error(1)
}

func (m *MockRoleRepo) Set(ctx context.Context, userID primitive.ObjectID, role domain.Role) error {
	return m.Called(ctx, userID, role).Error(0)
}

func (m *MockProfileRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockProfileRepo) Upsert(ctx context.Context, profile *domain.UserProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepo) List(ctx context.Context) ([]domain.UserProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserProfile), args.Error(1)
}

func (m *MockSubscriptionRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepo) Upsert(ctx context.Context, sub *domain.Subscription) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *MockSubscriptionRepo) List(ctx context.Context) ([]domain.Subscription, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Subscription), args.Error(1)
}

func (m *MockPlanRepo) Create(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error) {
	args := m.Called(ctx, plan)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockPlanRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkoutPlan), args.Error(1)
}

func (m *MockPlanRepo) List(ctx context.Context) ([]domain.WorkoutPlan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkoutPlan), args.Error(1)
}

func (m *MockPlanRepo) ListByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	args := m.Called(ctx, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkoutPlan), args.Error(1)
}

func (m *MockPlanRepo) Update(ctx context.Context, plan *domain.WorkoutPlan) error {
	return m.Called(ctx, plan).Error(0)
}

func (m *MockPlanRepo) Delete(ctx context.Context, id, creatorID primitive.ObjectID) error {
	return m.Called(ctx, id, creatorID).Error(0)
}

func (m *MockAssignmentRepo) InsertMany(ctx context.Context, assignments []*domain.Assignment) ([]primitive.ObjectID, error) {
	args := m.Called(ctx, assignments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]primitive.ObjectID), args.Error(1)
}

func (m *MockAssignmentRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assignment), args.Error(1)
}

func (m *MockAssignmentRepo) ListEnriched(ctx context.Context) ([]repository.EnrichedAssignment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.EnrichedAssignment), args.Error(1)
}

func (m *MockAssignmentRepo) ListByAssignee(ctx context.Context, userID primitive.ObjectID) ([]repository.EnrichedAssignment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.EnrichedAssignment), args.Error(1)
}

func (m *MockAssignmentRepo) UpdateStatus(ctx context.Context, id, assigneeID primitive.ObjectID, status domain.AssignmentStatus, completedAt *time.Time) error {
	return m.Called(ctx, id, assigneeID, status, completedAt).Error(0)
}

func (m *MockTrackingRepo) CreateBMIRecord(ctx context.Context, rec *domain.BMIRecord) (primitive.ObjectID, error) {
	args := m.Called(ctx, rec)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockTrackingRepo) ListBMIRecords(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.BMIRecord, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BMIRecord), args.Error(1)
}

func (m *MockTrackingRepo) CreateWeightLog(ctx context.Context, log *domain.WeightLog) (primitive.ObjectID, error) {
	args := m.Called(ctx, log)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockTrackingRepo) ListWeightLogs(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WeightLog, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WeightLog), args.Error(1)
}

func (m *MockTrackingRepo) CreateWorkoutSession(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error) {
	args := m.Called(ctx, session)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockTrackingRepo) ListWorkoutSessions(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutSession, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkoutSession), args.Error(1)
}

func (m *MockTrackingRepo) CheckIn(ctx context.Context, att *domain.GymAttendance) (primitive.ObjectID, error) {
	args := m.Called(ctx, att)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockTrackingRepo) CheckOut(ctx context.Context, id, userID primitive.ObjectID, at time.Time) error {
	return m.Called(ctx, id, userID, at).Error(0)
}

func (m *MockTrackingRepo) CountGymDays(ctx context.Context, userID primitive.ObjectID, from, to time.Time) (int, error) {
	args := m.Called(ctx, userID, from, to)
	return args.Int(0), args.Error(1)
}

func (m *MockAccessRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.AccessControl, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccessControl), args.Error(1)
}

func (m *MockAccessRepo) Upsert(ctx context.Context, access *domain.AccessControl) error {
	return m.Called(ctx, access).Error(0)
}

func (m *MockAccessRepo) SetDocumentKey(ctx context.Context, userID primitive.ObjectID, key string) error {
	return m.Called(ctx, userID, key).Error(0)
}

// MockFileStorage fakes the object storage presign operations.
type MockFileStorage struct{ mock.Mock }

func (m *MockFileStorage) GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, contentType, expires)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, expires)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) DeleteObject(ctx context.Context, objectKey string) error {
	return m.Called(ctx, objectKey).Error(0)
}
