package repository

import (
	"context"
	"time"

	"github.com/ronrevv/wolverinez-workout-planner/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate record")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with account data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

// RoleRepository resolves and mutates the user_roles mapping.
// Get returns ErrNotFound when no row exists; callers treat that as the
// baseline role, never as a failure.
type RoleRepository interface {
	Get(ctx context.Context, userID primitive.ObjectID) (*domain.UserRole, error)
	Set(ctx context.Context, userID primitive.ObjectID, role domain.Role) error
}

// ProfileRepository defines the interface for user profile data.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, error)
	Upsert(ctx context.Context, profile *domain.UserProfile) error
	List(ctx context.Context) ([]domain.UserProfile, error)
}

// SubscriptionRepository reads subscription/entitlement rows.
// GetByUserID returns ErrNotFound on miss; that is "no subscription".
type SubscriptionRepository interface {
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Subscription, error)
	Upsert(ctx context.Context, sub *domain.Subscription) error
	List(ctx context.Context) ([]domain.Subscription, error)
}

// PlanRepository defines the interface for workout plan data.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutPlan, error)
	List(ctx context.Context) ([]domain.WorkoutPlan, error) // newest first
	ListByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]domain.WorkoutPlan, error)
	Update(ctx context.Context, plan *domain.WorkoutPlan) error
	Delete(ctx context.Context, id, creatorID primitive.ObjectID) error // creator owns the plan
}

// EnrichedAssignment is an assignment row joined with its plan and assignee
// references. Join misses leave the pointer fields nil; the service layer
// renders those as placeholders instead of dropping the row.
type EnrichedAssignment struct {
	Assignment   domain.Assignment   `bson:",inline"`
	Plan         *domain.WorkoutPlan `bson:"plan,omitempty"`
	AssigneeName string              `bson:"assigneeName,omitempty"`
	AssigneeMail string              `bson:"assigneeMail,omitempty"`
}

// AssignmentRepository defines the interface for plan assignment data.
type AssignmentRepository interface {
	// InsertMany creates all assignments in a single ordered batch.
	InsertMany(ctx context.Context, assignments []*domain.Assignment) ([]primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Assignment, error)
	// ListEnriched returns all assignments newest first, joined with plan and
	// assignee data in a single query.
	ListEnriched(ctx context.Context) ([]EnrichedAssignment, error)
	ListByAssignee(ctx context.Context, userID primitive.ObjectID) ([]EnrichedAssignment, error)
	UpdateStatus(ctx context.Context, id, assigneeID primitive.ObjectID, status domain.AssignmentStatus, completedAt *time.Time) error
}

// TrackingRepository covers the per-user tracking collections: BMI
// calculations, weight logs, workout sessions and gym attendance.
type TrackingRepository interface {
	CreateBMIRecord(ctx context.Context, rec *domain.BMIRecord) (primitive.ObjectID, error)
	ListBMIRecords(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.BMIRecord, error)

	CreateWeightLog(ctx context.Context, log *domain.WeightLog) (primitive.ObjectID, error)
	ListWeightLogs(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WeightLog, error)

	CreateWorkoutSession(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error)
	ListWorkoutSessions(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutSession, error)

	CheckIn(ctx context.Context, att *domain.GymAttendance) (primitive.ObjectID, error)
	CheckOut(ctx context.Context, id, userID primitive.ObjectID, at time.Time) error
	CountGymDays(ctx context.Context, userID primitive.ObjectID, from, to time.Time) (int, error)
}

// AccessRepository defines the interface for site access control rows.
type AccessRepository interface {
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.AccessControl, error)
	Upsert(ctx context.Context, access *domain.AccessControl) error
	SetDocumentKey(ctx context.Context, userID primitive.ObjectID, key string) error
}
