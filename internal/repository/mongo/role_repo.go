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

const roleCollectionName = "user_roles"

// mongoRoleRepository implements repository.RoleRepository using MongoDB.
// Every user has zero or one role row; sign-up never creates one.
type mongoRoleRepository struct {
	collection *mongo.Collection
}

// NewMongoRoleRepository creates a new instance of mongoRoleRepository.
func NewMongoRoleRepository(db *mongo.Database) repository.RoleRepository {
	return &mongoRoleRepository{
		collection: db.Collection(roleCollectionName),
	}
}

// Get retrieves the role row for a user. ErrNotFound means "no row", which
// callers resolve to the baseline role.
func (r *mongoRoleRepository) Get(ctx context.Context, userID primitive.ObjectID) (*domain.UserRole, error) {
	var row domain.UserRole
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&row)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// Set upserts the role row for a user. Privileged operation.
func (r *mongoRoleRepository) Set(ctx context.Context, userID primitive.ObjectID, role domain.Role) error {
	filter := bson.M{"userId": userID}
	update := bson.M{
		"$set":         bson.M{"role": role},
		"$setOnInsert": bson.M{"userId": userID, "createdAt": time.Now().UTC()},
	}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// EnsureRoleIndexes creates the unique user index for user_roles.
func EnsureRoleIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
