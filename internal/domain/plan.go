package domain

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Plan difficulty labels as stored and displayed.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// PlanExercise is one prescribed exercise within a workout day.
// Sets/Reps/Rest stay strings: trainers write things like "3x8-12" or "to failure".
type PlanExercise struct {
	Name  string `bson:"name" json:"name"`
	Sets  string `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps  string `bson:"reps,omitempty" json:"reps,omitempty"`
	Rest  string `bson:"rest,omitempty" json:"rest,omitempty"`
	Notes string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// WorkoutDay is one entry in a plan's day list. It is a two-variant union:
// a rest day carries no exercises, a workout day carries at least one.
// The shape is validated at the boundary (Validate), not trusted at read sites.
type WorkoutDay struct {
	Day       int            `bson:"day" json:"day"` // 1-based position in the plan
	RestDay   bool           `bson:"restDay" json:"restDay"`
	Exercises []PlanExercise `bson:"exercises,omitempty" json:"exercises,omitempty"`
}

// WorkoutPlan is a structured plan authored by a trainer or admin (assignable)
// or by a regular user (personal). Immutable once assigned except by its owner.
type WorkoutPlan struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedBy          primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	Name               string             `bson:"name" json:"name"`
	Description        string             `bson:"description,omitempty" json:"description,omitempty"`
	Difficulty         string             `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	DurationWeeks      int                `bson:"durationWeeks,omitempty" json:"durationWeeks,omitempty"`
	TargetMuscleGroups []string           `bson:"targetMuscleGroups,omitempty" json:"targetMuscleGroups,omitempty"`
	Days               []WorkoutDay       `bson:"days" json:"days"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

var (
	ErrPlanNameRequired = errors.New("plan name is required")
	ErrPlanNoDays       = errors.New("plan must contain at least one day")
)

// Validate checks the structural invariants of the plan and its day list.
func (p *WorkoutPlan) Validate() error {
	if p.Name == "" {
		return ErrPlanNameRequired
	}
	if len(p.Days) == 0 {
		return ErrPlanNoDays
	}
	if p.DurationWeeks < 0 {
		return errors.New("plan duration cannot be negative")
	}
	for i, d := range p.Days {
		if d.Day != i+1 {
			return fmt.Errorf("day %d is out of sequence (expected %d)", d.Day, i+1)
		}
		if d.RestDay && len(d.Exercises) > 0 {
			return fmt.Errorf("day %d is a rest day but lists exercises", d.Day)
		}
		if !d.RestDay && len(d.Exercises) == 0 {
			return fmt.Errorf("day %d is a workout day with no exercises", d.Day)
		}
		for j, ex := range d.Exercises {
			if ex.Name == "" {
				return fmt.Errorf("day %d exercise %d has no name", d.Day, j+1)
			}
		}
	}
	return nil
}
