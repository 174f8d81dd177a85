package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeightLog is one dated weight measurement for a user. LogType distinguishes
// plain logs from pre/post workout weigh-ins.
type WeightLog struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID           primitive.ObjectID  `bson:"userId" json:"userId"`
	WeightKg         float64             `bson:"weightKg" json:"weightKg"`
	LogDate          time.Time           `bson:"logDate" json:"logDate"`
	LogType          string              `bson:"logType,omitempty" json:"logType,omitempty"` // "manual", "pre_workout", "post_workout"
	WorkoutSessionID *primitive.ObjectID `bson:"workoutSessionId,omitempty" json:"workoutSessionId,omitempty"`
	CreatedAt        time.Time           `bson:"createdAt" json:"createdAt"`
}

// WorkoutSession records one completed workout.
type WorkoutSession struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            primitive.ObjectID `bson:"userId" json:"userId"`
	WorkoutDate       time.Time          `bson:"workoutDate" json:"workoutDate"`
	MusclesTrained    []string           `bson:"musclesTrained" json:"musclesTrained"`
	DurationMinutes   *int               `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
	PreWorkoutWeight  *float64           `bson:"preWorkoutWeight,omitempty" json:"preWorkoutWeight,omitempty"`
	PostWorkoutWeight *float64           `bson:"postWorkoutWeight,omitempty" json:"postWorkoutWeight,omitempty"`
	Notes             string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// GymAttendance records one gym visit. CheckOutTime stays nil until check-out.
type GymAttendance struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID           primitive.ObjectID  `bson:"userId" json:"userId"`
	AttendanceDate   time.Time           `bson:"attendanceDate" json:"attendanceDate"`
	CheckInTime      *time.Time          `bson:"checkInTime,omitempty" json:"checkInTime,omitempty"`
	CheckOutTime     *time.Time          `bson:"checkOutTime,omitempty" json:"checkOutTime,omitempty"`
	WorkoutSessionID *primitive.ObjectID `bson:"workoutSessionId,omitempty" json:"workoutSessionId,omitempty"`
	CreatedAt        time.Time           `bson:"createdAt" json:"createdAt"`
}

// ProgressStats aggregates a user's activity over a date range.
type ProgressStats struct {
	TotalWorkouts      int     `json:"totalWorkouts"`
	TotalGymDays       int     `json:"totalGymDays"`
	WeightChangeKg     float64 `json:"weightChangeKg"`
	AvgWorkoutDuration float64 `json:"avgWorkoutDuration"`
}
