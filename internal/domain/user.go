package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleUser    Role = "user"
	RoleTrainer Role = "trainer"
	RoleAdmin   Role = "admin"
)

// BaselineRole is what a user with no role record resolves to.
// Absence of a role row is a legitimate state, never an error.
const BaselineRole = RoleUser

// User represents an account in the system. The role is NOT stored here:
// it lives in its own collection (see UserRole) and absence means BaselineRole.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserRole maps a user id to a role. Zero or one row per user.
// Mutated only by privileged operations (admin endpoints), never by sign-up.
type UserRole struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Role      Role               `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// UserProfile holds personal fitness attributes, keyed by user id.
// All measurement fields are optional; a missing profile renders as a
// placeholder name in directory views.
type UserProfile struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	Name          string             `bson:"name,omitempty" json:"name,omitempty"`
	Age           *int               `bson:"age,omitempty" json:"age,omitempty"`
	Gender        string             `bson:"gender,omitempty" json:"gender,omitempty"`
	HeightCm      *float64           `bson:"heightCm,omitempty" json:"heightCm,omitempty"`
	WeightKg      *float64           `bson:"weightKg,omitempty" json:"weightKg,omitempty"`
	ActivityLevel string             `bson:"activityLevel,omitempty" json:"activityLevel,omitempty"`
	FitnessGoal   string             `bson:"fitnessGoal,omitempty" json:"fitnessGoal,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CanAssignPlans reports whether the role may bind plans to other users.
func (r Role) CanAssignPlans() bool {
	return r == RoleTrainer || r == RoleAdmin
}

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleTrainer || r == RoleAdmin
}
