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

const assignmentCollectionName = "assignments"

// mongoAssignmentRepository implements repository.AssignmentRepository
type mongoAssignmentRepository struct {
	collection *mongo.Collection
}

// NewMongoAssignmentRepository creates a new Assignment repository backed by MongoDB.
func NewMongoAssignmentRepository(db *mongo.Database) repository.AssignmentRepository {
	return &mongoAssignmentRepository{
		collection: db.Collection(assignmentCollectionName),
	}
}

// Create inserts a new assignment into the database.
func (r *mongoAssignmentRepository) Create(ctx context.Context, assignment *domain.Assignment) (primitive.ObjectID, error) {
	if assignment.ProfileID == primitive.NilObjectID || assignment.ItemID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("assignment requires profileId and itemId")
	}

	assignment.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	assignment.CreatedAt = now
	assignment.UpdatedAt = now
	if assignment.Status == "" { // Default status if not provided
		assignment.Status = domain.StatusActive
	}

	result, err := r.collection.InsertOne(ctx, assignment)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedID(result)
}

// GetByID retrieves an assignment by its ID.
func (r *mongoAssignmentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Assignment, error) {
	var assignment domain.Assignment
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&assignment); err != nil {
		return nil, mapFindError(err)
	}
	return &assignment, nil
}

// ListByProfile retrieves the assignments of a profile, newest start first.
func (r *mongoAssignmentRepository) ListByProfile(ctx context.Context, profileID primitive.ObjectID, f repository.AssignmentFilter) ([]domain.Assignment, error) {
	assignments := []domain.Assignment{}
	filter := bson.M{"profileId": profileID}
	if f.Kind != "" {
		filter["kind"] = f.Kind
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "startDate", Value: -1}})

	if err := findAll(ctx, r.collection, filter, &assignments, findOptions); err != nil {
		return nil, err
	}
	return assignments, nil
}

// Update writes the mutable lifecycle fields of an assignment.
// Profile, item and start date are fixed at creation.
func (r *mongoAssignmentRepository) Update(ctx context.Context, assignment *domain.Assignment) error {
	if assignment.ID == primitive.NilObjectID {
		return errors.New("assignment ID is required for update")
	}

	assignment.UpdatedAt = time.Now().UTC()
	set := bson.M{
		"status":    assignment.Status,
		"position":  assignment.Position,
		"updatedAt": assignment.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if assignment.EndDate != nil {
		set["endDate"] = *assignment.EndDate
	} else {
		update["$unset"] = bson.M{"endDate": ""}
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": assignment.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureAssignmentIndexes creates necessary indexes for the assignments collection.
func EnsureAssignmentIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Overlap check: active assignments of one kind for a profile
			Keys:    bson.D{{Key: "profileId", Value: 1}, {Key: "kind", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "profileId", Value: 1}, {Key: "startDate", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "itemId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
