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

const progressCollectionName = "progress_entries"

// mongoProgressRepository implements repository.ProgressRepository
type mongoProgressRepository struct {
	collection *mongo.Collection
}

// NewMongoProgressRepository creates a new Progress repository backed by MongoDB.
func NewMongoProgressRepository(db *mongo.Database) repository.ProgressRepository {
	return &mongoProgressRepository{
		collection: db.Collection(progressCollectionName),
	}
}

// Create inserts a new progress entry.
func (r *mongoProgressRepository) Create(ctx context.Context, entry *domain.ProgressEntry) (primitive.ObjectID, error) {
	if entry.ProfileID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("progress entry requires profileId")
	}

	entry.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = now
	}

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedID(result)
}

// GetByID retrieves a progress entry by its ID.
func (r *mongoProgressRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgressEntry, error) {
	var entry domain.ProgressEntry
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&entry); err != nil {
		return nil, mapFindError(err)
	}
	return &entry, nil
}

// ListByProfile retrieves all entries of a profile, newest first.
func (r *mongoProgressRepository) ListByProfile(ctx context.Context, profileID primitive.ObjectID) ([]domain.ProgressEntry, error) {
	entries := []domain.ProgressEntry{}
	findOptions := options.Find().SetSort(bson.D{{Key: "recordedAt", Value: -1}})
	if err := findAll(ctx, r.collection, bson.M{"profileId": profileID}, &entries, findOptions); err != nil {
		return nil, err
	}
	return entries, nil
}

// Update changes the notes and photo reference of an entry.
// Measurements are fixed once recorded.
func (r *mongoProgressRepository) Update(ctx context.Context, entry *domain.ProgressEntry) error {
	if entry.ID == primitive.NilObjectID {
		return errors.New("progress entry ID is required for update")
	}

	entry.UpdatedAt = time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"notes":     entry.Notes,
			"photoKey":  entry.PhotoKey,
			"photoType": entry.PhotoType,
			"updatedAt": entry.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": entry.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureProgressIndexes creates necessary indexes for the progress_entries collection.
func EnsureProgressIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "profileId", Value: 1}, {Key: "recordedAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
