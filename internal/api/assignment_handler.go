package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ronrevv/wolverinez-workout-planner/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssignmentHandler holds the assignment workflow dependencies.
type AssignmentHandler struct {
	assignmentService service.AssignmentService
	userService       service.UserService
}

// NewAssignmentHandler creates a new AssignmentHandler.
func NewAssignmentHandler(assignmentService service.AssignmentService, userService service.UserService) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
		userService:       userService,
	}
}

// --- Request/Response Structs ---

type AssignRequest struct {
	PlanID  string   `json:"planId" binding:"required"`
	UserIDs []string `json:"userIds" binding:"required,min=1"`
	Notes   string   `json:"notes"`
}

// --- Handler Methods ---

// ListCandidates returns the assignable users: every account except the
// caller, with profile and subscriber data joined in.
func (h *AssignmentHandler) ListCandidates(c *gin.Context) {
	assignerID, ok := currentUserObjectID(c)
	if !ok {
		return
	}

	candidates, err := h.userService.ListCandidates(c.Request.Context(), assignerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}
	c.JSON(http.StatusOK, candidates)
}

// Assign creates one active assignment per selected user in a single batch.
func (h *AssignmentHandler) Assign(c *gin.Context) {
	assignerID, ok := currentUserObjectID(c)
	if !ok {
		return
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	planID, err := primitive.ObjectIDFromHex(req.PlanID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}
	userIDs := make([]primitive.ObjectID, len(req.UserIDs))
	for i, raw := range req.UserIDs {
		oid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid user ID format: %s", raw))
			return
		}
		userIDs[i] = oid
	}

	created, err := h.assignmentService.Assign(c.Request.Context(), assignerID, planID, userIDs, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoPlanSelected),
			errors.Is(err, service.ErrNoUsersSelected):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create assignments")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"assigned": len(created),
		"planId":   planID.Hex(),
	})
}

// ListAssignments returns all assignments enriched with plan and assignee data.
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	views, err := h.assignmentService.ListAssignments(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve assignments")
		return
	}
	c.JSON(http.StatusOK, views)
}

// ListMyAssignments returns the caller's own assignments with plan details.
func (h *AssignmentHandler) ListMyAssignments(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}

	views, err := h.assignmentService.ListMyAssignments(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve assignments")
		return
	}
	c.JSON(http.StatusOK, views)
}

// MarkCompleted transitions the caller's own assignment to completed.
// Re-completing an already-completed assignment succeeds without changes.
func (h *AssignmentHandler) MarkCompleted(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}
	assignmentID, err := primitive.ObjectIDFromHex(c.Param("assignmentId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid assignment ID format")
		return
	}

	if err := h.assignmentService.MarkCompleted(c.Request.Context(), assignmentID, userID); err != nil {
		if errors.Is(err, service.ErrAssignmentNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to update assignment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "completed"})
}
