package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/ronrevv/wolverinez-workout-planner/internal/domain"
	"github.com/ronrevv/wolverinez-workout-planner/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const subscriptionCollectionName = "subscribers"

// mongoSubscriptionRepository implements repository.SubscriptionRepository.
type mongoSubscriptionRepository struct {
	collection *mongo.Collection
}

// NewMongoSubscriptionRepository creates a new instance of mongoSubscriptionRepository.
func NewMongoSubscriptionRepository(db *mongo.Database) repository.SubscriptionRepository {
	return &mongoSubscriptionRepository{
		collection: db.Collection(subscriptionCollectionName),
	}
}

// GetByUserID retrieves the subscription row for a user.
// ErrNotFound means "no subscription" and is a legitimate state.
func (r *mongoSubscriptionRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Subscription, error) {
	var sub domain.Subscription
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&sub)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// Upsert writes subscription fields for a user. The Stripe customer ID is
// only written when set, so admin edits never clear an existing linkage.
func (r *mongoSubscriptionRepository) Upsert(ctx context.Context, sub *domain.Subscription) error {
	now := time.Now().UTC()
	filter := bson.M{"userId": sub.UserID}
	set := bson.M{
		"email":            sub.Email,
		"subscribed":       sub.Subscribed,
		"tier":             sub.Tier,
		"subscriptionEnd":  sub.SubscriptionEnd,
		"gymMembershipEnd": sub.GymMembershipEnd,
		"updatedAt":        now,
	}
	if sub.StripeCustomerID != "" {
		set["stripeCustomerId"] = sub.StripeCustomerID
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"userId": sub.UserID, "createdAt": now},
	}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// List returns all subscription rows, used by the candidate directory join.
func (r *mongoSubscriptionRepository) List(ctx context.Context) ([]domain.Subscription, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subs []domain.Subscription
	if err = cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// EnsureSubscriptionIndexes creates the unique user index for subscribers.
func EnsureSubscriptionIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
