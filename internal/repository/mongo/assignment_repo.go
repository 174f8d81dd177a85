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

const assignmentCollectionName = "workout_plan_assignments"

// mongoAssignmentRepository implements repository.AssignmentRepository.
type mongoAssignmentRepository struct {
	collection *mongo.Collection
}

// NewMongoAssignmentRepository creates a new instance of mongoAssignmentRepository.
func NewMongoAssignmentRepository(db *mongo.Database) repository.AssignmentRepository {
	return &mongoAssignmentRepository{
		collection: db.Collection(assignmentCollectionName),
	}
}

// InsertMany creates all assignments in one ordered batch: an insert error
// fails the whole call, nothing after the failing document is written.
func (r *mongoAssignmentRepository) InsertMany(ctx context.Context, assignments []*domain.Assignment) ([]primitive.ObjectID, error) {
	if len(assignments) == 0 {
		return nil, errors.New("no assignments to insert")
	}

	now := time.Now().UTC()
	docs := make([]interface{}, len(assignments))
	for i, a := range assignments {
		a.ID = primitive.NewObjectID()
		a.AssignedAt = now
		a.UpdatedAt = now
		docs[i] = a
	}

	result, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(result.InsertedIDs))
	for _, raw := range result.InsertedIDs {
		id, ok := raw.(primitive.ObjectID)
		if !ok {
			return nil, errors.New("failed to convert inserted ID")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// GetByID retrieves a single assignment.
func (r *mongoAssignmentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Assignment, error) {
	var assignment domain.Assignment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&assignment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

// enrichPipeline joins assignments with their plan, assignee profile and
// assignee subscription in a single aggregation. Dangling references leave
// the joined fields empty; rows are never dropped.
func enrichPipeline(match bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "assignedAt", Value: -1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         planCollectionName,
			"localField":   "planId",
			"foreignField": "_id",
			"as":           "plan",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$plan", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         profileCollectionName,
			"localField":   "assignedTo",
			"foreignField": "userId",
			"as":           "assigneeProfile",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         subscriptionCollectionName,
			"localField":   "assignedTo",
			"foreignField": "userId",
			"as":           "assigneeSub",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"assigneeName": bson.M{"$first": "$assigneeProfile.name"},
			"assigneeMail": bson.M{"$first": "$assigneeSub.email"},
		}}},
		{{Key: "$project", Value: bson.M{"assigneeProfile": 0, "assigneeSub": 0}}},
	}
}

// ListEnriched returns all assignments newest first, joined server-side.
func (r *mongoAssignmentRepository) ListEnriched(ctx context.Context) ([]repository.EnrichedAssignment, error) {
	return r.aggregate(ctx, enrichPipeline(bson.M{}))
}

// ListByAssignee returns one user's assignments, joined server-side.
func (r *mongoAssignmentRepository) ListByAssignee(ctx context.Context, userID primitive.ObjectID) ([]repository.EnrichedAssignment, error) {
	return r.aggregate(ctx, enrichPipeline(bson.M{"assignedTo": userID}))
}

func (r *mongoAssignmentRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]repository.EnrichedAssignment, error) {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []repository.EnrichedAssignment
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateStatus sets the status of one assignment, scoped to its assignee.
// Matching an already-updated row is fine; MatchedCount is what counts.
func (r *mongoAssignmentRepository) UpdateStatus(ctx context.Context, id, assigneeID primitive.ObjectID, status domain.AssignmentStatus, completedAt *time.Time) error {
	set := bson.M{
		"status":    status,
		"updatedAt": time.Now().UTC(),
	}
	if completedAt != nil {
		set["completedAt"] = completedAt
	}
	filter := bson.M{"_id": id, "assignedTo": assigneeID}
	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureAssignmentIndexes creates indexes for workout_plan_assignments.
func EnsureAssignmentIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "assignedTo", Value: 1}, {Key: "assignedAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "assignedBy", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "planId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
