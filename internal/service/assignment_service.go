package service

import (
	"context"
	"errors"
	"time"

	"github.com/ronrevv/wolverinez-workout-planner/internal/domain"
	"github.com/ronrevv/wolverinez-workout-planner/internal/metrics"
	"github.com/ronrevv/wolverinez-workout-planner/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrNoPlanSelected     = errors.New("a workout plan must be selected")
	ErrNoUsersSelected    = errors.New("at least one user must be selected")
	ErrAssignerRequired   = errors.New("an authenticated assigner is required")
	ErrAssignmentNotFound = errors.New("assignment not found")
)

// AssignmentView is the enriched listing row for the assigner's overview.
// Dangling plan or user references render the placeholder, never an error.
type AssignmentView struct {
	ID            string                  `json:"id"`
	PlanID        string                  `json:"planId"`
	PlanName      string                  `json:"planName"`
	AssignedTo    string                  `json:"assignedTo"`
	AssigneeName  string                  `json:"assigneeName"`
	AssigneeEmail string                  `json:"assigneeEmail"`
	AssignedBy    string                  `json:"assignedBy"`
	Status        domain.AssignmentStatus `json:"status"`
	Notes         string                  `json:"notes,omitempty"`
	AssignedAt    time.Time               `json:"assignedAt"`
}

// MyAssignmentView is the assignee's own view, carrying the full plan
// structure so the day list can be rendered without extra requests.
type MyAssignmentView struct {
	ID            string                  `json:"id"`
	PlanName      string                  `json:"planName"`
	Description   string                  `json:"description,omitempty"`
	Difficulty    string                  `json:"difficulty,omitempty"`
	DurationWeeks int                     `json:"durationWeeks,omitempty"`
	Days          []domain.WorkoutDay     `json:"days,omitempty"`
	Status        domain.AssignmentStatus `json:"status"`
	Notes         string                  `json:"notes,omitempty"`
	AssignedAt    time.Time               `json:"assignedAt"`
	CompletedAt   *time.Time              `json:"completedAt,omitempty"`
}

// --- Service Interface ---
type AssignmentService interface {
	// Assign creates one active assignment per selected user, as a single
	// batched insert. Guard violations produce a validation error and zero
	// writes.
	Assign(ctx context.Context, assignerID, planID primitive.ObjectID, userIDs []primitive.ObjectID, notes string) ([]domain.Assignment, error)
	ListAssignments(ctx context.Context) ([]AssignmentView, error)
	ListMyAssignments(ctx context.Context, userID primitive.ObjectID) ([]MyAssignmentView, error)
	// MarkCompleted transitions active -> completed, scoped to the assignee.
	// Calling it again for an already-completed assignment succeeds and
	// changes nothing.
	MarkCompleted(ctx context.Context, assignmentID, assigneeID primitive.ObjectID) error
}

// --- Service Implementation ---

type assignmentService struct {
	assignmentRepo repository.AssignmentRepository
	planRepo       repository.PlanRepository
}

// NewAssignmentService creates a new instance of assignmentService.
func NewAssignmentService(
	assignmentRepo repository.AssignmentRepository,
	planRepo repository.PlanRepository,
) AssignmentService {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		planRepo:       planRepo,
	}
}

// Assign validates the guards, then writes all assignments in one batch.
func (s *assignmentService) Assign(ctx context.Context, assignerID, planID primitive.ObjectID, userIDs []primitive.ObjectID, notes string) ([]domain.Assignment, error) {
	if assignerID == primitive.NilObjectID {
		return nil, ErrAssignerRequired
	}
	if planID == primitive.NilObjectID {
		return nil, ErrNoPlanSelected
	}
	if len(userIDs) == 0 {
		return nil, ErrNoUsersSelected
	}

	// The plan must exist before any write happens.
	if _, err := s.planRepo.GetByID(ctx, planID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	assignments := make([]*domain.Assignment, len(userIDs))
	for i, userID := range userIDs {
		assignments[i] = &domain.Assignment{
			PlanID:     planID,
			AssignedTo: userID,
			AssignedBy: assignerID,
			Status:     domain.StatusActive,
			Notes:      notes,
		}
	}

	if _, err := s.assignmentRepo.InsertMany(ctx, assignments); err != nil {
		return nil, err
	}
	metrics.RecordAssignments(len(assignments))

	created := make([]domain.Assignment, len(assignments))
	for i, a := range assignments {
		created[i] = *a
	}
	return created, nil
}

// ListAssignments returns all assignments, newest first, enriched with plan
// and assignee data.
func (s *assignmentService) ListAssignments(ctx context.Context) ([]AssignmentView, error) {
	rows, err := s.assignmentRepo.ListEnriched(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]AssignmentView, len(rows))
	for i, row := range rows {
		view := AssignmentView{
			ID:            row.Assignment.ID.Hex(),
			PlanID:        row.Assignment.PlanID.Hex(),
			PlanName:      UnknownPlaceholder,
			AssignedTo:    row.Assignment.AssignedTo.Hex(),
			AssigneeName:  row.AssigneeName,
			AssigneeEmail: row.AssigneeMail,
			AssignedBy:    row.Assignment.AssignedBy.Hex(),
			Status:        row.Assignment.Status,
			Notes:         row.Assignment.Notes,
			AssignedAt:    row.Assignment.AssignedAt,
		}
		if row.Plan != nil {
			view.PlanName = row.Plan.Name
		}
		if view.AssigneeName == "" {
			view.AssigneeName = UnknownPlaceholder
		}
		if view.AssigneeEmail == "" {
			view.AssigneeEmail = UnknownPlaceholder
		}
		views[i] = view
	}
	return views, nil
}

// ListMyAssignments returns the assignee's own assignments with plan details.
func (s *assignmentService) ListMyAssignments(ctx context.Context, userID primitive.ObjectID) ([]MyAssignmentView, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required")
	}
	rows, err := s.assignmentRepo.ListByAssignee(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]MyAssignmentView, len(rows))
	for i, row := range rows {
		view := MyAssignmentView{
			ID:          row.Assignment.ID.Hex(),
			PlanName:    UnknownPlaceholder,
			Status:      row.Assignment.Status,
			Notes:       row.Assignment.Notes,
			AssignedAt:  row.Assignment.AssignedAt,
			CompletedAt: row.Assignment.CompletedAt,
		}
		if row.Plan != nil {
			view.PlanName = row.Plan.Name
			view.Description = row.Plan.Description
			view.Difficulty = row.Plan.Difficulty
			view.DurationWeeks = row.Plan.DurationWeeks
			view.Days = row.Plan.Days
		}
		views[i] = view
	}
	return views, nil
}

// MarkCompleted performs the single legal status transition, idempotently.
func (s *assignmentService) MarkCompleted(ctx context.Context, assignmentID, assigneeID primitive.ObjectID) error {
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}
	if assignment.AssignedTo != assigneeID {
		return ErrAssignmentNotFound // scoped to the assignee; don't leak existence
	}
	if assignment.Status == domain.StatusCompleted {
		return nil
	}

	now := time.Now().UTC()
	if err := s.assignmentRepo.UpdateStatus(ctx, assignmentID, assigneeID, domain.StatusCompleted, &now); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}
	metrics.RecordAssignmentCompleted()
	return nil
}
