package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subscription holds the entitlement fields for a user. At most one row per
// user; a missing row means "no subscription" and is not an error.
// Mutated by billing-adjacent flows, read-only here.
type Subscription struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           primitive.ObjectID `bson:"userId" json:"userId"`
	Email            string             `bson:"email" json:"email"`
	Subscribed       bool               `bson:"subscribed" json:"subscribed"`
	Tier             string             `bson:"tier,omitempty" json:"tier,omitempty"` // e.g., "basic", "premium"
	SubscriptionEnd  *time.Time         `bson:"subscriptionEnd,omitempty" json:"subscriptionEnd,omitempty"`
	GymMembershipEnd *time.Time         `bson:"gymMembershipEnd,omitempty" json:"gymMembershipEnd,omitempty"`
	StripeCustomerID string             `bson:"stripeCustomerId,omitempty" json:"-"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Active reports whether the subscription is currently in force.
func (s *Subscription) Active(now time.Time) bool {
	if s == nil || !s.Subscribed {
		return false
	}
	if s.SubscriptionEnd != nil && s.SubscriptionEnd.Before(now) {
		return false
	}
	return true
}
