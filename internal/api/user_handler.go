package api

import (
	"fmt"
	"net/http"

	"github.com/ronrevv/wolverinez-workout-planner/internal/domain"
	"github.com/ronrevv/wolverinez-workout-planner/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler holds the profile service dependency.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// --- Request/Response Structs ---

type ProfileRequest struct {
	Name          string   `json:"name"`
	Age           *int     `json:"age" binding:"omitempty,gt=0,lt=130"`
	Gender        string   `json:"gender"`
	HeightCm      *float64 `json:"heightCm" binding:"omitempty,gt=0"`
	WeightKg      *float64 `json:"weightKg" binding:"omitempty,gt=0"`
	ActivityLevel string   `json:"activityLevel"`
	FitnessGoal   string   `json:"fitnessGoal"`
}

// --- Handler Methods ---

// GetProfile returns the caller's profile. A missing profile comes back
// empty, never as an error.
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpsertProfile writes the caller's profile fields.
func (h *UserHandler) UpsertProfile(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	profile := &domain.UserProfile{
		UserID:        userID,
		Name:          req.Name,
		Age:           req.Age,
		Gender:        req.Gender,
		HeightCm:      req.HeightCm,
		WeightKg:      req.WeightKg,
		ActivityLevel: req.ActivityLevel,
		FitnessGoal:   req.FitnessGoal,
	}
	if err := h.userService.UpsertProfile(c.Request.Context(), profile); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to save profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}
