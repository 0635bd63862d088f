package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"physiohub/physio-app/internal/domain"
	"physiohub/physio-app/internal/repository"
)

const exerciseCollectionName = "exercises"

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a new Exercise repository backed by MongoDB.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

// Create inserts a new exercise. The (owner_id, id) pair must be unique;
// a duplicate maps to repository.ErrDuplicate.
func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) error {
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, exercise)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicate
	}
	return err
}

// Get retrieves an exercise within an owner scope.
func (r *mongoExerciseRepository) Get(ctx context.Context, ownerID, exerciseID string) (*domain.Exercise, error) {
	var exercise domain.Exercise
	filter := bson.M{"owner_id": ownerID, "id": exerciseID}

	err := r.collection.FindOne(ctx, filter).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// ListByOwner retrieves every exercise in an owner scope, newest first.
func (r *mongoExerciseRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Exercise, error) {
	var exercises []domain.Exercise
	filter := bson.M{"owner_id": ownerID}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// Replace swaps the stored document wholesale. Updates are full-object
// by design so that validation always saw the final state.
func (r *mongoExerciseRepository) Replace(ctx context.Context, exercise *domain.Exercise) error {
	exercise.UpdatedAt = time.Now().UTC()

	filter := bson.M{"owner_id": exercise.OwnerID, "id": exercise.ID}
	result, err := r.collection.ReplaceOne(ctx, filter, exercise)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes an exercise, scoped to its owner so one physio cannot
// delete another's content.
func (r *mongoExerciseRepository) Delete(ctx context.Context, ownerID, exerciseID string) error {
	filter := bson.M{"owner_id": ownerID, "id": exerciseID}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureExerciseIndexes creates necessary indexes for the exercises collection.
func EnsureExerciseIndexes(ctx context.Context, db *mongo.Database) error {
	collection := db.Collection(exerciseCollectionName)
	indexes := []mongo.IndexModel{
		{
			// One slug per owner scope.
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "body_regions", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}},
			Options: options.Index().SetName("exercise_text_search"),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
