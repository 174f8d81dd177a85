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

const (
	bmiCollectionName        = "bmi_calculations"
	weightLogCollectionName  = "weight_logs"
	sessionCollectionName    = "workout_sessions"
	attendanceCollectionName = "gym_attendance"
)

// mongoTrackingRepository implements repository.TrackingRepository across the
// four per-user tracking collections.
type mongoTrackingRepository struct {
	bmi        *mongo.Collection
	weightLogs *mongo.Collection
	sessions   *mongo.Collection
	attendance *mongo.Collection
}

// NewMongoTrackingRepository creates a new instance of mongoTrackingRepository.
func NewMongoTrackingRepository(db *mongo.Database) repository.TrackingRepository {
	return &mongoTrackingRepository{
		bmi:        db.Collection(bmiCollectionName),
		weightLogs: db.Collection(weightLogCollectionName),
		sessions:   db.Collection(sessionCollectionName),
		attendance: db.Collection(attendanceCollectionName),
	}
}

func insertOne(ctx context.Context, coll *mongo.Collection, doc interface{}) (primitive.ObjectID, error) {
	result, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return id, nil
}

// CreateBMIRecord persists one calculation.
func (r *mongoTrackingRepository) CreateBMIRecord(ctx context.Context, rec *domain.BMIRecord) (primitive.ObjectID, error) {
	rec.ID = primitive.NewObjectID()
	rec.CalculatedAt = time.Now().UTC()
	return insertOne(ctx, r.bmi, rec)
}

// ListBMIRecords returns a user's calculations, newest first.
func (r *mongoTrackingRepository) ListBMIRecords(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.BMIRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "calculatedAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.bmi.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []domain.BMIRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CreateWeightLog persists one weight measurement.
func (r *mongoTrackingRepository) CreateWeightLog(ctx context.Context, log *domain.WeightLog) (primitive.ObjectID, error) {
	log.ID = primitive.NewObjectID()
	log.CreatedAt = time.Now().UTC()
	return insertOne(ctx, r.weightLogs, log)
}

// ListWeightLogs returns a user's weight logs in a date range, oldest first
// so callers can compute first-to-last change directly.
func (r *mongoTrackingRepository) ListWeightLogs(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WeightLog, error) {
	filter := bson.M{
		"userId":  userID,
		"logDate": bson.M{"$gte": from, "$lte": to},
	}
	opts := options.Find().SetSort(bson.D{{Key: "logDate", Value: 1}})
	cursor, err := r.weightLogs.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []domain.WeightLog
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// CreateWorkoutSession persists one workout session.
func (r *mongoTrackingRepository) CreateWorkoutSession(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error) {
	session.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now
	return insertOne(ctx, r.sessions, session)
}

// ListWorkoutSessions returns a user's sessions in a date range, newest first.
func (r *mongoTrackingRepository) ListWorkoutSessions(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutSession, error) {
	filter := bson.M{
		"userId":      userID,
		"workoutDate": bson.M{"$gte": from, "$lte": to},
	}
	opts := options.Find().SetSort(bson.D{{Key: "workoutDate", Value: -1}})
	cursor, err := r.sessions.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []domain.WorkoutSession
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// CheckIn records a gym visit.
func (r *mongoTrackingRepository) CheckIn(ctx context.Context, att *domain.GymAttendance) (primitive.ObjectID, error) {
	att.ID = primitive.NewObjectID()
	att.CreatedAt = time.Now().UTC()
	return insertOne(ctx, r.attendance, att)
}

// CheckOut sets the check-out time on a visit, scoped to its owner.
func (r *mongoTrackingRepository) CheckOut(ctx context.Context, id, userID primitive.ObjectID, at time.Time) error {
	filter := bson.M{"_id": id, "userId": userID}
	update := bson.M{"$set": bson.M{"checkOutTime": at}}
	result, err := r.attendance.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CountGymDays counts distinct attendance dates for a user in a range.
func (r *mongoTrackingRepository) CountGymDays(ctx context.Context, userID primitive.ObjectID, from, to time.Time) (int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"userId":         userID,
			"attendanceDate": bson.M{"$gte": from, "$lte": to},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$attendanceDate"}},
		}}},
		{{Key: "$count", Value: "days"}},
	}
	cursor, err := r.attendance.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var out []struct {
		Days int `bson:"days"`
	}
	if err = cursor.All(ctx, &out); err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, nil
	}
	return out[0].Days, nil
}

// EnsureTrackingIndexes creates indexes for all tracking collections.
func EnsureTrackingIndexes(ctx context.Context, db *mongo.Database) {
	byUserAndDate := func(dateField string) []mongo.IndexModel {
		return []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "userId", Value: 1}, {Key: dateField, Value: -1}},
				Options: options.Index(),
			},
		}
	}
	_, _ = db.Collection(bmiCollectionName).Indexes().CreateMany(ctx, byUserAndDate("calculatedAt"))
	_, _ = db.Collection(weightLogCollectionName).Indexes().CreateMany(ctx, byUserAndDate("logDate"))
	_, _ = db.Collection(sessionCollectionName).Indexes().CreateMany(ctx, byUserAndDate("workoutDate"))
	_, _ = db.Collection(attendanceCollectionName).Indexes().CreateMany(ctx, byUserAndDate("attendanceDate"))
}
