package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ronrevv/wolverinez-workout-planner/internal/domain"
	"github.com/ronrevv/wolverinez-workout-planner/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrackingHandler holds the tracking service dependency.
type TrackingHandler struct {
	trackingService service.TrackingService
}

// NewTrackingHandler creates a new TrackingHandler.
func NewTrackingHandler(trackingService service.TrackingService) *TrackingHandler {
	return &TrackingHandler{trackingService: trackingService}
}

// --- Request/Response Structs ---

type BMIRequest struct {
	HeightCm float64 `json:"heightCm" binding:"required,gt=0"`
	WeightKg float64 `json:"weightKg" binding:"required,gt=0"`
}

type WeightLogRequest struct {
	WeightKg float64    `json:"weightKg" binding:"required,gt=0"`
	LogDate  *time.Time `json:"logDate"`
	LogType  string     `json:"logType" binding:"omitempty,oneof=manual pre_workout post_workout"`
}

type WorkoutSessionRequest struct {
	WorkoutDate       *time.Time `json:"workoutDate"`
	MusclesTrained    []string   `json:"musclesTrained" binding:"required,min=1"`
	DurationMinutes   *int       `json:"durationMinutes" binding:"omitempty,gt=0"`
	PreWorkoutWeight  *float64   `json:"preWorkoutWeight" binding:"omitempty,gt=0"`
	PostWorkoutWeight *float64   `json:"postWorkoutWeight" binding:"omitempty,gt=0"`
	Notes             string     `json:"notes"`
}

// --- Handler Methods ---

// CalculateBMIAnonymous computes a BMI without persisting anything. No
// authentication is required and no row is written.
func (h *TrackingHandler) CalculateBMIAnonymous(c *gin.Context) {
	var req BMIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	result, err := h.trackingService.CalculateBMI(c.Request.Context(), nil, req.HeightCm, req.WeightKg)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidMeasurement) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to calculate BMI")
		return
	}
	c.JSON(http.StatusOK, result)
}

// CalculateBMI computes and persists a BMI for the authenticated caller.
func (h *TrackingHandler) CalculateBMI(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}

	var req BMIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	result, err := h.trackingService.CalculateBMI(c.Request.Context(), &userID, req.HeightCm, req.WeightKg)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidMeasurement) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to calculate BMI")
		return
	}
	c.JSON(http.StatusOK, result)
}

// BMIHistory returns the caller's most recent calculations.
func (h *TrackingHandler) BMIHistory(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}

	records, err := h.trackingService.BMIHistory(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve BMI history")
		return
	}
	c.JSON(http.StatusOK, records)
}

// LogWeight records one weight measurement for the caller.
func (h *TrackingHandler) LogWeight(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}

	var req WeightLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	logDate := time.Time{}
	if req.LogDate != nil {
		logDate = *req.LogDate
	}
	logType := req.LogType
	if logType == "" {
		logType = "manual"
	}

	log, err := h.trackingService.LogWeight(c.Request.Context(), userID, req.WeightKg, logDate, logType)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidMeasurement) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to log weight")
		return
	}
	c.JSON(http.StatusCreated, log)
}

// ListWeightLogs returns the caller's weight logs in a date range.
func (h *TrackingHandler) ListWeightLogs(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}
	from, to, ok := dateRangeFromQuery(c)
	if !ok {
		return
	}

	logs, err := h.trackingService.ListWeightLogs(c.Request.Context(), userID, from, to)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve weight logs")
		return
	}
	c.JSON(http.StatusOK, logs)
}

// RecordSession stores one workout session for the caller.
func (h *TrackingHandler) RecordSession(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}

	var req WorkoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	session := &domain.WorkoutSession{
		UserID:            userID,
		MusclesTrained:    req.MusclesTrained,
		DurationMinutes:   req.DurationMinutes,
		PreWorkoutWeight:  req.PreWorkoutWeight,
		PostWorkoutWeight: req.PostWorkoutWeight,
		Notes:             req.Notes,
	}
	if req.WorkoutDate != nil {
		session.WorkoutDate = *req.WorkoutDate
	}

	created, err := h.trackingService.RecordSession(c.Request.Context(), session)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListSessions returns the caller's sessions in a date range.
func (h *TrackingHandler) ListSessions(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}
	from, to, ok := dateRangeFromQuery(c)
	if !ok {
		return
	}

	sessions, err := h.trackingService.ListSessions(c.Request.Context(), userID, from, to)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve sessions")
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// CheckIn records a gym visit starting now.
func (h *TrackingHandler) CheckIn(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}

	att, err := h.trackingService.CheckIn(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to check in")
		return
	}
	c.JSON(http.StatusCreated, att)
}

// CheckOut closes a gym visit.
func (h *TrackingHandler) CheckOut(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}
	attendanceID, err := primitive.ObjectIDFromHex(c.Param("attendanceId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid attendance ID format")
		return
	}

	if err := h.trackingService.CheckOut(c.Request.Context(), userID, attendanceID); err != nil {
		abortWithError(c, http.StatusNotFound, "Attendance record not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "checked out"})
}

// ProgressStats aggregates the caller's activity over a date range.
func (h *TrackingHandler) ProgressStats(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}
	from, to, ok := dateRangeFromQuery(c)
	if !ok {
		return
	}

	stats, err := h.trackingService.ProgressStats(c.Request.Context(), userID, from, to)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute progress stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// dateRangeFromQuery parses optional from/to query params (RFC 3339 date).
// Defaults to the last 30 days.
func dateRangeFromQuery(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid 'from' date, expected YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid 'to' date, expected YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		// Include the whole end day.
		to = parsed.AddDate(0, 0, 1)
	}
	if to.Before(from) {
		abortWithError(c, http.StatusBadRequest, "'to' must not be before 'from'")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
