package service

import (
	"context"
	"errors"

	"github.com/ronrevv/wolverinez-workout-planner/internal/domain"
	"github.com/ronrevv/wolverinez-workout-planner/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound     = errors.New("workout plan not found")
	ErrPlanAccessDenied = errors.New("access denied to modify or delete this plan")
)

// --- Service Interface ---
type PlanService interface {
	CreatePlan(ctx context.Context, creatorID primitive.ObjectID, plan *domain.WorkoutPlan) (*domain.WorkoutPlan, error)
	GetPlan(ctx context.Context, planID primitive.ObjectID) (*domain.WorkoutPlan, error)
	// ListPlans returns all plans visible to an assigner, newest first.
	ListPlans(ctx context.Context) ([]domain.WorkoutPlan, error)
	// ListMyPlans returns plans authored by one user, newest first.
	ListMyPlans(ctx context.Context, creatorID primitive.ObjectID) ([]domain.WorkoutPlan, error)
	UpdatePlan(ctx context.Context, creatorID primitive.ObjectID, plan *domain.WorkoutPlan) (*domain.WorkoutPlan, error)
	DeletePlan(ctx context.Context, creatorID, planID primitive.ObjectID) error
}

// --- Service Implementation ---

type planService struct {
	planRepo repository.PlanRepository
}

// NewPlanService creates a new instance of planService.
func NewPlanService(planRepo repository.PlanRepository) PlanService {
	return &planService{planRepo: planRepo}
}

// CreatePlan validates the day-list structure at the boundary and stores the plan.
func (s *planService) CreatePlan(ctx context.Context, creatorID primitive.ObjectID, plan *domain.WorkoutPlan) (*domain.WorkoutPlan, error) {
	if creatorID == primitive.NilObjectID {
		return nil, errors.New("creator ID is required")
	}
	plan.CreatedBy = creatorID
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	planID, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = planID
	return plan, nil
}

// GetPlan retrieves a single plan.
func (s *planService) GetPlan(ctx context.Context, planID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// ListPlans returns every plan, newest first.
func (s *planService) ListPlans(ctx context.Context) ([]domain.WorkoutPlan, error) {
	return s.planRepo.List(ctx)
}

// ListMyPlans returns the caller's own plans, newest first.
func (s *planService) ListMyPlans(ctx context.Context, creatorID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	return s.planRepo.ListByCreator(ctx, creatorID)
}

// UpdatePlan replaces the plan's content, scoped to its creator.
func (s *planService) UpdatePlan(ctx context.Context, creatorID primitive.ObjectID, plan *domain.WorkoutPlan) (*domain.WorkoutPlan, error) {
	existing, err := s.planRepo.GetByID(ctx, plan.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if existing.CreatedBy != creatorID {
		return nil, ErrPlanAccessDenied
	}

	plan.CreatedBy = creatorID
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	if err := s.planRepo.Update(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// DeletePlan removes a plan, scoped to its creator.
func (s *planService) DeletePlan(ctx context.Context, creatorID, planID primitive.ObjectID) error {
	err := s.planRepo.Delete(ctx, planID, creatorID)
	if errors.Is(err, repository.ErrNotFound) {
		// Distinguish "no such plan" from "not yours".
		if _, getErr := s.planRepo.GetByID(ctx, planID); getErr == nil {
			return ErrPlanAccessDenied
		}
		return ErrPlanNotFound
	}
	return err
}
