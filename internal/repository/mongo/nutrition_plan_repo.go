// internal/repository/mongo/nutrition_plan_repo.go
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

const nutritionPlanCollectionName = "nutrition_plans"

// mongoNutritionPlanRepository implements repository.NutritionPlanRepository
type mongoNutritionPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoNutritionPlanRepository creates a new NutritionPlan repository.
func NewMongoNutritionPlanRepository(db *mongo.Database) repository.NutritionPlanRepository {
	return &mongoNutritionPlanRepository{
		collection: db.Collection(nutritionPlanCollectionName),
	}
}

// Create inserts a new nutrition plan.
func (r *mongoNutritionPlanRepository) Create(ctx context.Context, plan *domain.NutritionPlan) (primitive.ObjectID, error) {
	if plan.Name == "" || plan.DurationDays <= 0 {
		return primitive.NilObjectID, errors.New("plan requires name and a positive duration")
	}
	plan.ID = primitive.NewObjectID()
	plan.NameKey = nameKey(plan.Name)
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		return primitive.NilObjectID, mapWriteError(err)
	}
	return insertedID(result)
}

// GetByID retrieves a single nutrition plan by its ID.
func (r *mongoNutritionPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.NutritionPlan, error) {
	var plan domain.NutritionPlan
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&plan); err != nil {
		return nil, mapFindError(err)
	}
	return &plan, nil
}

// List retrieves all plans, shortest first.
func (r *mongoNutritionPlanRepository) List(ctx context.Context) ([]domain.NutritionPlan, error) {
	plans := []domain.NutritionPlan{}
	findOptions := options.Find().SetSort(bson.D{{Key: "durationDays", Value: 1}, {Key: "nameKey", Value: 1}})
	if err := findAll(ctx, r.collection, bson.M{}, &plans, findOptions); err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *mongoNutritionPlanRepository) Update(ctx context.Context, plan *domain.NutritionPlan) error {
	if plan.ID == primitive.NilObjectID {
		return errors.New("nutrition plan ID is required for update")
	}

	plan.NameKey = nameKey(plan.Name)
	plan.UpdatedAt = time.Now().UTC()
	updateDoc := bson.M{
		"$set": bson.M{
			"name":          plan.Name,
			"nameKey":       plan.NameKey,
			"description":   plan.Description,
			"durationDays":  plan.DurationDays,
			"dailyCalories": plan.DailyCalories,
			"mealIds":       plan.MealIDs,
			"updatedAt":     plan.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": plan.ID}, updateDoc)
	if err != nil {
		return mapWriteError(err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoNutritionPlanRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureNutritionPlanIndexes creates necessary indexes. Call during startup.
func EnsureNutritionPlanIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "nameKey", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
