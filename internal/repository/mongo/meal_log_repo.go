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

const mealLogCollectionName = "meal_logs"

// mongoMealLogRepository implements repository.MealLogRepository
type mongoMealLogRepository struct {
	collection *mongo.Collection
}

// NewMongoMealLogRepository creates a new MealLog repository backed by MongoDB.
func NewMongoMealLogRepository(db *mongo.Database) repository.MealLogRepository {
	return &mongoMealLogRepository{
		collection: db.Collection(mealLogCollectionName),
	}
}

// Create inserts a meal log entry. Calories must already be derived.
func (r *mongoMealLogRepository) Create(ctx context.Context, entry *domain.MealLog) (primitive.ObjectID, error) {
	if entry.ProfileID == primitive.NilObjectID || entry.MealID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("meal log requires profileId and mealId")
	}

	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedID(result)
}

// ListByProfile retrieves the profile's entries consumed within the range, oldest first.
func (r *mongoMealLogRepository) ListByProfile(ctx context.Context, profileID primitive.ObjectID, dr domain.DateRange) ([]domain.MealLog, error) {
	entries := []domain.MealLog{}
	filter := bson.M{
		"profileId":  profileID,
		"consumedAt": bson.M{"$gte": dr.From, "$lt": dr.EndExclusive()},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "consumedAt", Value: 1}})

	if err := findAll(ctx, r.collection, filter, &entries, findOptions); err != nil {
		return nil, err
	}
	return entries, nil
}

// EnsureMealLogIndexes creates necessary indexes for the meal_logs collection.
func EnsureMealLogIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "profileId", Value: 1}, {Key: "consumedAt", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "assignmentId", Value: 1}},
			Options: options.Index().SetSparse(true), // Only entries made under a plan
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
