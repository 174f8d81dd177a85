package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ronrevv/wolverinez-workout-planner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCalculateBMI_AnonymousIsNeverPersisted(t *testing.T) {
	trackingRepo := new(MockTrackingRepo)

	svc := NewTrackingService(trackingRepo)
	result, err := svc.CalculateBMI(context.Background(), nil, 170, 70)

	require.NoError(t, err)
	assert.InDelta(t, 24.22, result.BMI, 0.01)
	assert.Equal(t, domain.BMINormal, result.Category)
	assert.False(t, result.Saved)
	trackingRepo.AssertNotCalled(t, "CreateBMIRecord", mock.Anything, mock.Anything)
}

func TestCalculateBMI_AuthenticatedIsPersisted(t *testing.T) {
	userID := primitive.NewObjectID()
	trackingRepo := new(MockTrackingRepo)
	trackingRepo.On("CreateBMIRecord", mock.Anything, mock.MatchedBy(func(rec *domain.BMIRecord) bool {
		return rec.UserID == userID && rec.Category == domain.BMIObese
	})).Return(primitive.NewObjectID(), nil)

	svc := NewTrackingService(trackingRepo)
	result, err := svc.CalculateBMI(context.Background(), &userID, 160, 90)

	require.NoError(t, err)
	assert.True(t, result.Saved)
	trackingRepo.AssertExpectations(t)
}

func TestCalculateBMI_InvalidInput(t *testing.T) {
	svc := NewTrackingService(new(MockTrackingRepo))
	_, err := svc.CalculateBMI(context.Background(), nil, 0, 70)
	assert.ErrorIs(t, err, domain.ErrInvalidMeasurement)
}

func TestRecordSession_LinksWeighIns(t *testing.T) {
	userID := primitive.NewObjectID()
	sessionID := primitive.NewObjectID()
	pre := 82.5
	post := 81.9

	trackingRepo := new(MockTrackingRepo)
	trackingRepo.On("CreateWorkoutSession", mock.Anything, mock.AnythingOfType("*domain.WorkoutSession")).Return(sessionID, nil)
	trackingRepo.On("CreateWeightLog", mock.Anything, mock.MatchedBy(func(log *domain.WeightLog) bool {
		return log.LogType == "pre_workout" && log.WeightKg == pre && *log.WorkoutSessionID == sessionID
	})).Return(primitive.NewObjectID(), nil)
	trackingRepo.On("CreateWeightLog", mock.Anything, mock.MatchedBy(func(log *domain.WeightLog) bool {
		return log.LogType == "post_workout" && log.WeightKg == post && *log.WorkoutSessionID == sessionID
	})).Return(primitive.NewObjectID(), nil)

	svc := NewTrackingService(trackingRepo)
	created, err := svc.RecordSession(context.Background(), &domain.WorkoutSession{
		UserID:            userID,
		MusclesTrained:    []string{"chest", "triceps"},
		PreWorkoutWeight:  &pre,
		PostWorkoutWeight: &post,
	})

	require.NoError(t, err)
	assert.Equal(t, sessionID, created.ID)
	assert.False(t, created.WorkoutDate.IsZero())
	trackingRepo.AssertExpectations(t)
}

func TestRecordSession_WeighInFailureKeepsSession(t *testing.T) {
	userID := primitive.NewObjectID()
	sessionID := primitive.NewObjectID()
	pre := 82.5

	trackingRepo := new(MockTrackingRepo)
	trackingRepo.On("CreateWorkoutSession", mock.Anything, mock.AnythingOfType("*domain.WorkoutSession")).Return(sessionID, nil)
	trackingRepo.On("CreateWeightLog", mock.Anything, mock.AnythingOfType("*domain.WeightLog")).
		Return(primitive.NilObjectID, errors.New("write failed"))

	svc := NewTrackingService(trackingRepo)
	created, err := svc.RecordSession(context.Background(), &domain.WorkoutSession{
		UserID:           userID,
		MusclesTrained:   []string{"back"},
		PreWorkoutWeight: &pre,
	})

	// The linked weigh-in is best effort; the session itself must survive.
	require.NoError(t, err)
	assert.Equal(t, sessionID, created.ID)
}

func TestRecordSession_RequiresMuscles(t *testing.T) {
	svc := NewTrackingService(new(MockTrackingRepo))
	_, err := svc.RecordSession(context.Background(), &domain.WorkoutSession{
		UserID: primitive.NewObjectID(),
	})
	assert.Error(t, err)
}

func TestProgressStats(t *testing.T) {
	userID := primitive.NewObjectID()
	from := time.Now().AddDate(0, -1, 0)
	to := time.Now()
	d45, d60 := 45, 60

	trackingRepo := new(MockTrackingRepo)
	trackingRepo.On("ListWorkoutSessions", mock.Anything, userID, from, to).Return([]domain.WorkoutSession{
		{DurationMinutes: &d45},
		{DurationMinutes: &d60},
		{}, // no duration recorded
	}, nil)
	trackingRepo.On("CountGymDays", mock.Anything, userID, from, to).Return(12, nil)
	trackingRepo.On("ListWeightLogs", mock.Anything, userID, from, to).Return([]domain.WeightLog{
		{WeightKg: 84.0},
		{WeightKg: 83.1},
		{WeightKg: 82.2},
	}, nil)

	svc := NewTrackingService(trackingRepo)
	stats, err := svc.ProgressStats(context.Background(), userID, from, to)

	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalWorkouts)
	assert.Equal(t, 12, stats.TotalGymDays)
	assert.InDelta(t, -1.8, stats.WeightChangeKg, 0.001)
	// Average over the two sessions that recorded a duration.
	assert.InDelta(t, 52.5, stats.AvgWorkoutDuration, 0.001)
}

func TestLogWeight_RejectsNonPositive(t *testing.T) {
	svc := NewTrackingService(new(MockTrackingRepo))
	_, err := svc.LogWeight(context.Background(), primitive.NewObjectID(), -5, time.Now(), "manual")
	assert.ErrorIs(t, err, domain.ErrInvalidMeasurement)
}

func TestBMIHistory_UsesLimit(t *testing.T) {
	userID := primitive.NewObjectID()
	trackingRepo := new(MockTrackingRepo)
	trackingRepo.On("ListBMIRecords", mock.Anything, userID, int64(5)).Return([]domain.BMIRecord{}, nil)

	svc := NewTrackingService(trackingRepo)
	_, err := svc.BMIHistory(context.Background(), userID)

	assert.NoError(t, err)
	trackingRepo.AssertExpectations(t)
}
