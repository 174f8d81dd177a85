package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ronrevv/wolverinez-workout-planner/internal/domain"
	"github.com/ronrevv/wolverinez-workout-planner/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanHandler holds the plan service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- Request/Response Structs ---

type PlanExerciseRequest struct {
	Name  string `json:"name" binding:"required"`
	Sets  string `json:"sets"`
	Reps  string `json:"reps"`
	Rest  string `json:"rest"`
	Notes string `json:"notes"`
}

type WorkoutDayRequest struct {
	Day       int                   `json:"day" binding:"required,min=1"`
	RestDay   bool                  `json:"restDay"`
	Exercises []PlanExerciseRequest `json:"exercises"`
}

type PlanRequest struct {
	Name               string              `json:"name" binding:"required"`
	Description        string              `json:"description"`
	Difficulty         string              `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	DurationWeeks      int                 `json:"durationWeeks" binding:"omitempty,min=1"`
	TargetMuscleGroups []string            `json:"targetMuscleGroups"`
	Days               []WorkoutDayRequest `json:"days" binding:"required,min=1"`
}

// --- Handler Methods ---

// CreatePlan stores a new workout plan authored by the caller.
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	creatorID, ok := currentUserObjectID(c)
	if !ok {
		return
	}

	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), creatorID, mapPlanRequest(&req))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// ListPlans returns every plan, newest first. Reserved for assigner roles.
func (h *PlanHandler) ListPlans(c *gin.Context) {
	plans, err := h.planService.ListPlans(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve plans")
		return
	}
	c.JSON(http.StatusOK, plans)
}

// ListMyPlans returns the caller's own plans, newest first.
func (h *PlanHandler) ListMyPlans(c *gin.Context) {
	creatorID, ok := currentUserObjectID(c)
	if !ok {
		return
	}

	plans, err := h.planService.ListMyPlans(c.Request.Context(), creatorID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve plans")
		return
	}
	c.JSON(http.StatusOK, plans)
}

// GetPlan returns a single plan by id.
func (h *PlanHandler) GetPlan(c *gin.Context) {
	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	plan, err := h.planService.GetPlan(c.Request.Context(), planID)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve plan")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// UpdatePlan replaces a plan's content. Only its creator may do this.
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	creatorID, ok := currentUserObjectID(c)
	if !ok {
		return
	}
	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	plan := mapPlanRequest(&req)
	plan.ID = planID

	updated, err := h.planService.UpdatePlan(c.Request.Context(), creatorID, plan)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrPlanAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusBadRequest, err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeletePlan removes a plan. Only its creator may do this.
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	creatorID, ok := currentUserObjectID(c)
	if !ok {
		return
	}
	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	if err := h.planService.DeletePlan(c.Request.Context(), creatorID, planID); err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrPlanAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to delete plan")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func mapPlanRequest(req *PlanRequest) *domain.WorkoutPlan {
	days := make([]domain.WorkoutDay, len(req.Days))
	for i, d := range req.Days {
		exercises := make([]domain.PlanExercise, len(d.Exercises))
		for j, ex := range d.Exercises {
			exercises[j] = domain.PlanExercise{
				Name:  ex.Name,
				Sets:  ex.Sets,
				Reps:  ex.Reps,
				Rest:  ex.Rest,
				Notes: ex.Notes,
			}
		}
		days[i] = domain.WorkoutDay{
			Day:       d.Day,
			RestDay:   d.RestDay,
			Exercises: exercises,
		}
	}
	return &domain.WorkoutPlan{
		Name:               req.Name,
		Description:        req.Description,
		Difficulty:         req.Difficulty,
		DurationWeeks:      req.DurationWeeks,
		TargetMuscleGroups: req.TargetMuscleGroups,
		Days:               days,
	}
}
