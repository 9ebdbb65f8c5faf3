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

const ingredientCollectionName = "ingredients"

// mongoIngredientRepository implements repository.IngredientRepository
type mongoIngredientRepository struct {
	collection *mongo.Collection
}

// NewMongoIngredientRepository creates a new Ingredient repository backed by MongoDB.
func NewMongoIngredientRepository(db *mongo.Database) repository.IngredientRepository {
	return &mongoIngredientRepository{
		collection: db.Collection(ingredientCollectionName),
	}
}

// Create inserts a new ingredient into the database.
func (r *mongoIngredientRepository) Create(ctx context.Context, ingredient *domain.Ingredient) (primitive.ObjectID, error) {
	if ingredient.Name == "" {
		return primitive.NilObjectID, errors.New("ingredient name is required")
	}

	ingredient.ID = primitive.NewObjectID()
	ingredient.NameKey = nameKey(ingredient.Name)
	now := time.Now().UTC()
	ingredient.CreatedAt = now
	ingredient.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, ingredient)
	if err != nil {
		return primitive.NilObjectID, mapWriteError(err)
	}
	return insertedID(result)
}

// GetByID retrieves an ingredient by its ID.
func (r *mongoIngredientRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Ingredient, error) {
	var ingredient domain.Ingredient
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ingredient); err != nil {
		return nil, mapFindError(err)
	}
	return &ingredient, nil
}

// GetByIDs retrieves every ingredient whose ID is in ids. Missing IDs are skipped.
func (r *mongoIngredientRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Ingredient, error) {
	ingredients := []domain.Ingredient{}
	if len(ids) == 0 {
		return ingredients, nil
	}
	filter := bson.M{"_id": bson.M{"$in": ids}}
	if err := findAll(ctx, r.collection, filter, &ingredients); err != nil {
		return nil, err
	}
	return ingredients, nil
}

// List returns the whole ingredient catalog sorted by name.
func (r *mongoIngredientRepository) List(ctx context.Context) ([]domain.Ingredient, error) {
	ingredients := []domain.Ingredient{}
	findOptions := options.Find().SetSort(bson.D{{Key: "nameKey", Value: 1}})
	if err := findAll(ctx, r.collection, bson.M{}, &ingredients, findOptions); err != nil {
		return nil, err
	}
	return ingredients, nil
}

// Update modifies an existing ingredient.
func (r *mongoIngredientRepository) Update(ctx context.Context, ingredient *domain.Ingredient) error {
	if ingredient.ID == primitive.NilObjectID {
		return errors.New("ingredient ID is required for update")
	}

	ingredient.NameKey = nameKey(ingredient.Name)
	ingredient.UpdatedAt = time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"name":      ingredient.Name,
			"nameKey":   ingredient.NameKey,
			"per100g":   ingredient.Per100g,
			"updatedAt": ingredient.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": ingredient.ID}, update)
	if err != nil {
		return mapWriteError(err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes an ingredient.
func (r *mongoIngredientRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureIngredientIndexes creates necessary indexes for the ingredients collection.
func EnsureIngredientIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "nameKey", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
