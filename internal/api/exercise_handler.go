package api

import (
	"net/http"

	"github.com/ronrevv/wolverinez-workout-planner/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler holds the exercise catalog service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// ListMuscleGroups returns the selectable catalog groups.
func (h *ExerciseHandler) ListMuscleGroups(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"muscleGroups": h.exerciseService.ListMuscleGroups()})
}

// GetExercises returns the catalog for one muscle group.
func (h *ExerciseHandler) GetExercises(c *gin.Context) {
	group := c.Param("muscleGroup")

	exercises, err := h.exerciseService.GetExercises(c.Request.Context(), group)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercises")
		return
	}
	c.JSON(http.StatusOK, exercises)
}
