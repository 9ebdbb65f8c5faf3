package mongo

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const exerciseLogCollectionName = "exercise_logs"

// mongoExerciseLogRepository implements repository.ExerciseLogRepository
type mongoExerciseLogRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseLogRepository creates a new ExerciseLog repository backed by MongoDB.
func NewMongoExerciseLogRepository(db *mongo.Database) repository.ExerciseLogRepository {
	return &mongoExerciseLogRepository{
		collection: db.Collection(exerciseLogCollectionName),
	}
}

// Create inserts an exercise log entry. Calories must already be derived.
func (r *mongoExerciseLogRepository) Create(ctx context.Context, entry *domain.ExerciseLog) (primitive.ObjectID, error) {
	if entry.ProfileID == primitive.NilObjectID || entry.ExerciseID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("exercise log requires profileId and exerciseId")
	}

	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedID(result)
}

// ListByProfile retrieves the profile's sessions performed within the range, oldest first.
func (r *mongoExerciseLogRepository) ListByProfile(ctx context.Context, profileID primitive.ObjectID, dr domain.DateRange) ([]domain.ExerciseLog, error) {
	entries := []domain.ExerciseLog{}
	filter := bson.M{
		"profileId":   profileID,
		"performedAt": bson.M{"$gte": dr.From, "$lt": dr.EndExclusive()},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "performedAt", Value: 1}})

	if err := findAll(ctx, r.collection, filter, &entries, findOptions); err != nil {
		return nil, err
	}
	return entries, nil
}

// EnsureExerciseLogIndexes creates necessary indexes for the exercise_logs collection.
func EnsureExerciseLogIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "profileId", Value: 1}, {Key: "performedAt", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "exerciseId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "assignmentId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
