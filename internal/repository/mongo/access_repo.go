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

const accessCollectionName = "user_access_control"

// mongoAccessRepository implements repository.AccessRepository using MongoDB.
type mongoAccessRepository struct {
	collection *mongo.Collection
}

// NewMongoAccessRepository creates a new instance of mongoAccessRepository.
func NewMongoAccessRepository(db *mongo.Database) repository.AccessRepository {
	return &mongoAccessRepository{
		collection: db.Collection(accessCollectionName),
	}
}

// GetByUserID retrieves the access row for a user.
func (r *mongoAccessRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.AccessControl, error) {
	var access domain.AccessControl
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&access)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &access, nil
}

// Upsert writes the access flag and grant/revoke bookkeeping for a user.
func (r *mongoAccessRepository) Upsert(ctx context.Context, access *domain.AccessControl) error {
	now := time.Now().UTC()
	filter := bson.M{"userId": access.UserID}
	update := bson.M{
		"$set": bson.M{
			"hasSiteAccess":   access.HasSiteAccess,
			"accessGrantedAt": access.AccessGrantedAt,
			"accessGrantedBy": access.AccessGrantedBy,
			"accessRevokedAt": access.AccessRevokedAt,
			"updatedAt":       now,
		},
		"$setOnInsert": bson.M{"userId": access.UserID, "createdAt": now},
	}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// SetDocumentKey attaches an object storage key to a user's access row.
// Users upload their verification document before any access is granted,
// so a missing row is created here with access still off.
func (r *mongoAccessRepository) SetDocumentKey(ctx context.Context, userID primitive.ObjectID, key string) error {
	now := time.Now().UTC()
	filter := bson.M{"userId": userID}
	update := bson.M{
		"$set":         bson.M{"documentKey": key, "updatedAt": now},
		"$setOnInsert": bson.M{"userId": userID, "hasSiteAccess": false, "createdAt": now},
	}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// EnsureAccessIndexes creates the unique user index for user_access_control.
func EnsureAccessIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
