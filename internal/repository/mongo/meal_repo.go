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

const mealCollectionName = "meals"

// mongoMealRepository implements repository.MealRepository
type mongoMealRepository struct {
	collection *mongo.Collection
}

// NewMongoMealRepository creates a new Meal repository backed by MongoDB.
func NewMongoMealRepository(db *mongo.Database) repository.MealRepository {
	return &mongoMealRepository{
		collection: db.Collection(mealCollectionName),
	}
}

// Create inserts a new meal. Nutrition must already be computed by the caller.
func (r *mongoMealRepository) Create(ctx context.Context, meal *domain.Meal) (primitive.ObjectID, error) {
	if meal.Name == "" || meal.Type == "" {
		return primitive.NilObjectID, errors.New("meal name and type are required")
	}

	meal.ID = primitive.NewObjectID()
	meal.NameKey = nameKey(meal.Name)
	now := time.Now().UTC()
	meal.CreatedAt = now
	meal.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, meal)
	if err != nil {
		return primitive.NilObjectID, mapWriteError(err)
	}
	return insertedID(result)
}

// GetByID retrieves a meal by its ID.
func (r *mongoMealRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Meal, error) {
	var meal domain.Meal
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&meal); err != nil {
		return nil, mapFindError(err)
	}
	return &meal, nil
}

// List returns meals sorted by name, optionally only of one type.
func (r *mongoMealRepository) List(ctx context.Context, mealType domain.MealType) ([]domain.Meal, error) {
	meals := []domain.Meal{}
	filter := bson.M{}
	if mealType != "" {
		filter["type"] = mealType
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "nameKey", Value: 1}})
	if err := findAll(ctx, r.collection, filter, &meals, findOptions); err != nil {
		return nil, err
	}
	return meals, nil
}

// Update modifies an existing meal, including its recomputed nutrition.
func (r *mongoMealRepository) Update(ctx context.Context, meal *domain.Meal) error {
	if meal.ID == primitive.NilObjectID {
		return errors.New("meal ID is required for update")
	}

	meal.NameKey = nameKey(meal.Name)
	meal.UpdatedAt = time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"name":        meal.Name,
			"nameKey":     meal.NameKey,
			"description": meal.Description,
			"type":        meal.Type,
			"items":       meal.Items,
			"nutrition":   meal.Nutrition,
			"updatedAt":   meal.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": meal.ID}, update)
	if err != nil {
		return mapWriteError(err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a meal.
func (r *mongoMealRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureMealIndexes creates necessary indexes for the meals collection.
func EnsureMealIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "nameKey", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "type", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
