package service

import (
	"context"
	"testing"

	"github.com/ronrevv/wolverinez-workout-planner/internal/domain"
	"github.com/ronrevv/wolverinez-workout-planner/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testPlan(creatorID primitive.ObjectID) *domain.WorkoutPlan {
	return &domain.WorkoutPlan{
		CreatedBy: creatorID,
		Name:      "Upper Lower",
		Days: []domain.WorkoutDay{
			{Day: 1, Exercises: []domain.PlanExercise{{Name: "Bench Press"}}},
			{Day: 2, RestDay: true},
		},
	}
}

func TestCreatePlan(t *testing.T) {
	creatorID := primitive.NewObjectID()
	planID := primitive.NewObjectID()

	planRepo := new(MockPlanRepo)
	planRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.WorkoutPlan")).Return(planID, nil)

	svc := NewPlanService(planRepo)
	created, err := svc.CreatePlan(context.Background(), creatorID, testPlan(creatorID))

	require.NoError(t, err)
	assert.Equal(t, planID, created.ID)
	assert.Equal(t, creatorID, created.CreatedBy)
}

func TestCreatePlan_InvalidStructureWritesNothing(t *testing.T) {
	creatorID := primitive.NewObjectID()
	plan := testPlan(creatorID)
	plan.Days[1].Exercises = []domain.PlanExercise{{Name: "Squat"}} // rest day with exercises

	planRepo := new(MockPlanRepo)
	svc := NewPlanService(planRepo)
	_, err := svc.CreatePlan(context.Background(), creatorID, plan)

	assert.Error(t, err)
	planRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdatePlan_OnlyCreatorMayModify(t *testing.T) {
	owner := primitive.NewObjectID()
	intruder := primitive.NewObjectID()
	planID := primitive.NewObjectID()

	existing := testPlan(owner)
	existing.ID = planID

	planRepo := new(MockPlanRepo)
	planRepo.On("GetByID", mock.Anything, planID).Return(existing, nil)

	updated := testPlan(intruder)
	updated.ID = planID

	svc := NewPlanService(planRepo)
	_, err := svc.UpdatePlan(context.Background(), intruder, updated)

	assert.ErrorIs(t, err, ErrPlanAccessDenied)
	planRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeletePlan(t *testing.T) {
	owner := primitive.NewObjectID()
	planID := primitive.NewObjectID()

	t.Run("not found", func(t *testing.T) {
		planRepo := new(MockPlanRepo)
		planRepo.On("Delete", mock.Anything, planID, owner).Return(repository.ErrNotFound)
		planRepo.On("GetByID", mock.Anything, planID).Return(nil, repository.ErrNotFound)

		svc := NewPlanService(planRepo)
		assert.ErrorIs(t, svc.DeletePlan(context.Background(), owner, planID), ErrPlanNotFound)
	})

	t.Run("exists but not yours", func(t *testing.T) {
		planRepo := new(MockPlanRepo)
		planRepo.On("Delete", mock.Anything, planID, owner).Return(repository.ErrNotFound)
		planRepo.On("GetByID", mock.Anything, planID).Return(testPlan(primitive.NewObjectID()), nil)

		svc := NewPlanService(planRepo)
		assert.ErrorIs(t, svc.DeletePlan(context.Background(), owner, planID), ErrPlanAccessDenied)
	})

	t.Run("success", func(t *testing.T) {
		planRepo := new(MockPlanRepo)
		planRepo.On("Delete", mock.Anything, planID, owner).Return(nil)

		svc := NewPlanService(planRepo)
		assert.NoError(t, svc.DeletePlan(context.Background(), owner, planID))
	})
}
