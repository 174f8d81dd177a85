package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/ronrevv/wolverinez-workout-planner/internal/domain"
	"github.com/ronrevv/wolverinez-workout-planner/internal/metrics"
	"github.com/ronrevv/wolverinez-workout-planner/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const bmiHistoryLimit = 5

// BMIResult is what a calculation returns, persisted or not.
type BMIResult struct {
	BMI      float64 `json:"bmi"`
	Category string  `json:"category"`
	Saved    bool    `json:"saved"`
}

// --- Service Interface ---
type TrackingService interface {
	// CalculateBMI computes the value and category. When userID is non-nil
	// the calculation is persisted; anonymous callers get the result only
	// and no row is written anywhere.
	CalculateBMI(ctx context.Context, userID *primitive.ObjectID, heightCm, weightKg float64) (*BMIResult, error)
	BMIHistory(ctx context.Context, userID primitive.ObjectID) ([]domain.BMIRecord, error)

	LogWeight(ctx context.Context, userID primitive.ObjectID, weightKg float64, logDate time.Time, logType string) (*domain.WeightLog, error)
	ListWeightLogs(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WeightLog, error)
	RecordSession(ctx context.Context, session *domain.WorkoutSession) (*domain.WorkoutSession, error)
	ListSessions(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutSession, error)

	CheckIn(ctx context.Context, userID primitive.ObjectID) (*domain.GymAttendance, error)
	CheckOut(ctx context.Context, userID, attendanceID primitive.ObjectID) error

	// ProgressStats aggregates workouts, gym days, weight change and average
	// workout duration over a date range.
	ProgressStats(ctx context.Context, userID primitive.ObjectID, from, to time.Time) (*domain.ProgressStats, error)
}

// --- Service Implementation ---

type trackingService struct {
	trackingRepo repository.TrackingRepository
}

// NewTrackingService creates a new instance of trackingService.
func NewTrackingService(trackingRepo repository.TrackingRepository) TrackingService {
	return &trackingService{trackingRepo: trackingRepo}
}

// CalculateBMI computes and optionally persists one calculation.
func (s *trackingService) CalculateBMI(ctx context.Context, userID *primitive.ObjectID, heightCm, weightKg float64) (*BMIResult, error) {
	bmi, err := domain.ComputeBMI(heightCm, weightKg)
	if err != nil {
		return nil, err
	}
	result := &BMIResult{
		BMI:      bmi,
		Category: domain.BMICategory(bmi),
	}

	if userID != nil && *userID != primitive.NilObjectID {
		rec := &domain.BMIRecord{
			UserID:   *userID,
			HeightCm: heightCm,
			WeightKg: weightKg,
			BMI:      bmi,
			Category: result.Category,
		}
		if _, err := s.trackingRepo.CreateBMIRecord(ctx, rec); err != nil {
			return nil, err
		}
		result.Saved = true
	}
	metrics.RecordBMICalculation(result.Saved)
	return result, nil
}

// BMIHistory returns the user's most recent calculations.
func (s *trackingService) BMIHistory(ctx context.Context, userID primitive.ObjectID) ([]domain.BMIRecord, error) {
	return s.trackingRepo.ListBMIRecords(ctx, userID, bmiHistoryLimit)
}

// LogWeight records one weight measurement.
func (s *trackingService) LogWeight(ctx context.Context, userID primitive.ObjectID, weightKg float64, logDate time.Time, logType string) (*domain.WeightLog, error) {
	if weightKg <= 0 {
		return nil, domain.ErrInvalidMeasurement
	}
	if logDate.IsZero() {
		logDate = time.Now().UTC()
	}
	log := &domain.WeightLog{
		UserID:   userID,
		WeightKg: weightKg,
		LogDate:  logDate,
		LogType:  logType,
	}
	if _, err := s.trackingRepo.CreateWeightLog(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

// ListWeightLogs returns the user's weight logs in a date range, oldest first.
func (s *trackingService) ListWeightLogs(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WeightLog, error) {
	return s.trackingRepo.ListWeightLogs(ctx, userID, from, to)
}

// RecordSession stores one workout session and, when weigh-ins are present,
// the matching weight logs linked back to the session.
func (s *trackingService) RecordSession(ctx context.Context, session *domain.WorkoutSession) (*domain.WorkoutSession, error) {
	if session.UserID == primitive.NilObjectID {
		return nil, errors.New("user ID is required")
	}
	if len(session.MusclesTrained) == 0 {
		return nil, errors.New("at least one trained muscle group is required")
	}
	if session.WorkoutDate.IsZero() {
		session.WorkoutDate = time.Now().UTC()
	}

	sessionID, err := s.trackingRepo.CreateWorkoutSession(ctx, session)
	if err != nil {
		return nil, err
	}
	session.ID = sessionID

	if session.PreWorkoutWeight != nil {
		if _, err := s.trackingRepo.CreateWeightLog(ctx, &domain.WeightLog{
			UserID:           session.UserID,
			WeightKg:         *session.PreWorkoutWeight,
			LogDate:          session.WorkoutDate,
			LogType:          "pre_workout",
			WorkoutSessionID: &sessionID,
		}); err != nil {
			log.Printf("WARN: failed to record pre-workout weight for session %s: %v", sessionID.Hex(), err)
		}
	}
	if session.PostWorkoutWeight != nil {
		if _, err := s.trackingRepo.CreateWeightLog(ctx, &domain.WeightLog{
			UserID:           session.UserID,
			WeightKg:         *session.PostWorkoutWeight,
			LogDate:          session.WorkoutDate,
			LogType:          "post_workout",
			WorkoutSessionID: &sessionID,
		}); err != nil {
			log.Printf("WARN: failed to record post-workout weight for session %s: %v", sessionID.Hex(), err)
		}
	}

	return session, nil
}

// ListSessions returns the user's sessions in a date range.
func (s *trackingService) ListSessions(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutSession, error) {
	return s.trackingRepo.ListWorkoutSessions(ctx, userID, from, to)
}

// CheckIn records a gym visit starting now.
func (s *trackingService) CheckIn(ctx context.Context, userID primitive.ObjectID) (*domain.GymAttendance, error) {
	now := time.Now().UTC()
	att := &domain.GymAttendance{
		UserID:         userID,
		AttendanceDate: now.Truncate(24 * time.Hour),
		CheckInTime:    &now,
	}
	id, err := s.trackingRepo.CheckIn(ctx, att)
	if err != nil {
		return nil, err
	}
	att.ID = id
	return att, nil
}

// CheckOut closes a gym visit.
func (s *trackingService) CheckOut(ctx context.Context, userID, attendanceID primitive.ObjectID) error {
	return s.trackingRepo.CheckOut(ctx, attendanceID, userID, time.Now().UTC())
}

// ProgressStats aggregates the user's activity over a date range.
func (s *trackingService) ProgressStats(ctx context.Context, userID primitive.ObjectID, from, to time.Time) (*domain.ProgressStats, error) {
	sessions, err := s.trackingRepo.ListWorkoutSessions(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	gymDays, err := s.trackingRepo.CountGymDays(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	logs, err := s.trackingRepo.ListWeightLogs(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	stats := &domain.ProgressStats{
		TotalWorkouts: len(sessions),
		TotalGymDays:  gymDays,
	}

	// Weight change is first-to-last over the range; logs come oldest first.
	if len(logs) >= 2 {
		stats.WeightChangeKg = logs[len(logs)-1].WeightKg - logs[0].WeightKg
	}

	// Average duration considers only sessions that recorded one.
	var total, counted int
	for _, sess := range sessions {
		if sess.DurationMinutes != nil {
			total += *sess.DurationMinutes
			counted++
		}
	}
	if counted > 0 {
		stats.AvgWorkoutDuration = float64(total) / float64(counted)
	}

	return stats, nil
}
