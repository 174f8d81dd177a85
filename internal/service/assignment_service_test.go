package service

import (
	"context"
	"testing"
	"time"

	"github.com/ronrevv/wolverinez-workout-planner/internal/domain"
	"github.com/ronrevv/wolverinez-workout-planner/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAssign_CreatesOneRowPerUser(t *testing.T) {
	assignerID := primitive.NewObjectID()
	planID := primitive.NewObjectID()
	userIDs := []primitive.ObjectID{
		primitive.NewObjectID(),
		primitive.NewObjectID(),
		primitive.NewObjectID(),
	}

	planRepo := new(MockPlanRepo)
	assignmentRepo := new(MockAssignmentRepo)

	planRepo.On("GetByID", mock.Anything, planID).Return(&domain.WorkoutPlan{ID: planID, Name: "PPL"}, nil)
	assignmentRepo.On("InsertMany", mock.Anything, mock.MatchedBy(func(rows []*domain.Assignment) bool {
		if len(rows) != len(userIDs) {
			return false
		}
		for i, row := range rows {
			if row.PlanID != planID || row.AssignedTo != userIDs[i] ||
				row.AssignedBy != assignerID || row.Status != domain.StatusActive {
				return false
			}
		}
		return true
	})).Return([]primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()}, nil)

	svc := NewAssignmentService(assignmentRepo, planRepo)
	created, err := svc.Assign(context.Background(), assignerID, planID, userIDs, "week one")

	require.NoError(t, err)
	assert.Len(t, created, 3)
	assignmentRepo.AssertExpectations(t)
}

func TestAssign_GuardsProduceZeroWrites(t *testing.T) {
	assignerID := primitive.NewObjectID()
	planID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	tests := []struct {
		name       string
		assignerID primitive.ObjectID
		planID     primitive.ObjectID
		userIDs    []primitive.ObjectID
		expected   error
	}{
		{"no plan selected", assignerID, primitive.NilObjectID, []primitive.ObjectID{userID}, ErrNoPlanSelected},
		{"no users selected", assignerID, planID, nil, ErrNoUsersSelected},
		{"no assigner", primitive.NilObjectID, planID, []primitive.ObjectID{userID}, ErrAssignerRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			planRepo := new(MockPlanRepo)
			assignmentRepo := new(MockAssignmentRepo)

			svc := NewAssignmentService(assignmentRepo, planRepo)
			_, err := svc.Assign(context.Background(), tt.assignerID, tt.planID, tt.userIDs, "")

			assert.ErrorIs(t, err, tt.expected)
			assignmentRepo.AssertNotCalled(t, "InsertMany", mock.Anything, mock.Anything)
		})
	}
}

func TestAssign_MissingPlanWritesNothing(t *testing.T) {
	planID := primitive.NewObjectID()

	planRepo := new(MockPlanRepo)
	assignmentRepo := new(MockAssignmentRepo)
	planRepo.On("GetByID", mock.Anything, planID).Return(nil, repository.ErrNotFound)

	svc := NewAssignmentService(assignmentRepo, planRepo)
	_, err := svc.Assign(context.Background(), primitive.NewObjectID(), planID, []primitive.ObjectID{primitive.NewObjectID()}, "")

	assert.ErrorIs(t, err, ErrPlanNotFound)
	assignmentRepo.AssertNotCalled(t, "InsertMany", mock.Anything, mock.Anything)
}

func TestListAssignments_DanglingRefsRenderPlaceholders(t *testing.T) {
	assignmentRepo := new(MockAssignmentRepo)
	planRepo := new(MockPlanRepo)

	rows := []repository.EnrichedAssignment{
		{
			Assignment: domain.Assignment{
				ID:         primitive.NewObjectID(),
				PlanID:     primitive.NewObjectID(),
				AssignedTo: primitive.NewObjectID(),
				Status:     domain.StatusActive,
			},
			Plan:         &domain.WorkoutPlan{Name: "Strength Block"},
			AssigneeName: "Alice",
			AssigneeMail: "alice@example.com",
		},
		{
			// Plan deleted after assignment, profile and subscriber missing.
			Assignment: domain.Assignment{
				ID:         primitive.NewObjectID(),
				PlanID:     primitive.NewObjectID(),
				AssignedTo: primitive.NewObjectID(),
				Status:     domain.StatusActive,
			},
		},
	}
	assignmentRepo.On("ListEnriched", mock.Anything).Return(rows, nil)

	svc := NewAssignmentService(assignmentRepo, planRepo)
	views, err := svc.ListAssignments(context.Background())

	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Strength Block", views[0].PlanName)
	assert.Equal(t, "Alice", views[0].AssigneeName)
	assert.Equal(t, UnknownPlaceholder, views[1].PlanName)
	assert.Equal(t, UnknownPlaceholder, views[1].AssigneeName)
	assert.Equal(t, UnknownPlaceholder, views[1].AssigneeEmail)
}

func TestMarkCompleted(t *testing.T) {
	assignmentID := primitive.NewObjectID()
	assigneeID := primitive.NewObjectID()

	t.Run("active to completed", func(t *testing.T) {
		assignmentRepo := new(MockAssignmentRepo)
		assignmentRepo.On("GetByID", mock.Anything, assignmentID).Return(&domain.Assignment{
			ID:         assignmentID,
			AssignedTo: assigneeID,
			Status:     domain.StatusActive,
		}, nil)
		assignmentRepo.On("UpdateStatus", mock.Anything, assignmentID, assigneeID, domain.StatusCompleted, mock.AnythingOfType("*time.Time")).Return(nil)

		svc := NewAssignmentService(assignmentRepo, new(MockPlanRepo))
		err := svc.MarkCompleted(context.Background(), assignmentID, assigneeID)

		assert.NoError(t, err)
		assignmentRepo.AssertExpectations(t)
	})

	t.Run("already completed is a no-op", func(t *testing.T) {
		done := time.Now().Add(-time.Hour)
		assignmentRepo := new(MockAssignmentRepo)
		assignmentRepo.On("GetByID", mock.Anything, assignmentID).Return(&domain.Assignment{
			ID:          assignmentID,
			AssignedTo:  assigneeID,
			Status:      domain.StatusCompleted,
			CompletedAt: &done,
		}, nil)

		svc := NewAssignmentService(assignmentRepo, new(MockPlanRepo))
		err := svc.MarkCompleted(context.Background(), assignmentID, assigneeID)

		assert.NoError(t, err)
		assignmentRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("someone else's assignment reads as not found", func(t *testing.T) {
		assignmentRepo := new(MockAssignmentRepo)
		assignmentRepo.On("GetByID", mock.Anything, assignmentID).Return(&domain.Assignment{
			ID:         assignmentID,
			AssignedTo: primitive.NewObjectID(),
			Status:     domain.StatusActive,
		}, nil)

		svc := NewAssignmentService(assignmentRepo, new(MockPlanRepo))
		err := svc.MarkCompleted(context.Background(), assignmentID, assigneeID)

		assert.ErrorIs(t, err, ErrAssignmentNotFound)
		assignmentRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown assignment", func(t *testing.T) {
		assignmentRepo := new(MockAssignmentRepo)
		assignmentRepo.On("GetByID", mock.Anything, assignmentID).Return(nil, repository.ErrNotFound)

		svc := NewAssignmentService(assignmentRepo, new(MockPlanRepo))
		err := svc.MarkCompleted(context.Background(), assignmentID, assigneeID)

		assert.ErrorIs(t, err, ErrAssignmentNotFound)
	})
}
