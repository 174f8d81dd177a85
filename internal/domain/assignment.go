package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssignmentStatus type for the assignment lifecycle
type AssignmentStatus string

// One legal transition: active -> completed. No reverse, no delete path.
const (
	StatusActive    AssignmentStatus = "active"
	StatusCompleted AssignmentStatus = "completed"
)

// Assignment binds one workout plan to one user, created by an assigner
// (trainer or admin). References are tolerated dangling at read time:
// an unresolvable plan or user renders as a placeholder, never as an error.
type Assignment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlanID      primitive.ObjectID `bson:"planId" json:"planId"`
	AssignedTo  primitive.ObjectID `bson:"assignedTo" json:"assignedTo"`
	AssignedBy  primitive.ObjectID `bson:"assignedBy" json:"assignedBy"`
	Status      AssignmentStatus   `bson:"status" json:"status"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	AssignedAt  time.Time          `bson:"assignedAt" json:"assignedAt"`
	StartDate   *time.Time         `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate     *time.Time         `bson:"endDate,omitempty" json:"endDate,omitempty"`
	CompletedAt *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
