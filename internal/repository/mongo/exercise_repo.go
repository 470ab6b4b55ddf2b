package mongo

import (
	"alcyxob/fitness-bot/internal/domain"
	"alcyxob/fitness-bot/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
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

// Create inserts a new exercise at the position it carries.
func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	if exercise.TrainingDayID == primitive.NilObjectID || exercise.Name == "" {
		return primitive.NilObjectID, errors.New("exercise requires trainingDayId and name")
	}
	if err := exercise.Origin.Validate(); err != nil {
		return primitive.NilObjectID, err
	}

	exercise.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, exercise)
	if err != nil {
		// The unique (trainingDayId, position) index rejects concurrent appends.
		return primitive.NilObjectID, mapWriteError(err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves an exercise by its ID.
func (r *mongoExerciseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

func (r *mongoExerciseRepository) find(ctx context.Context, dayID primitive.ObjectID, sort bson.D) ([]domain.Exercise, error) {
	var exercises []domain.Exercise
	cursor, err := r.collection.Find(ctx, bson.M{"trainingDayId": dayID}, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// GetByDayID returns the day's exercises ordered by position with ties broken by id.
func (r *mongoExerciseRepository) GetByDayID(ctx context.Context, dayID primitive.ObjectID) ([]domain.Exercise, error) {
	return r.find(ctx, dayID, bson.D{{Key: "position", Value: 1}, {Key: "_id", Value: 1}})
}

// GetByDayIDInsertionOrder returns the day's exercises in creation order.
func (r *mongoExerciseRepository) GetByDayIDInsertionOrder(ctx context.Context, dayID primitive.ObjectID) ([]domain.Exercise, error) {
	return r.find(ctx, dayID, bson.D{{Key: "_id", Value: 1}})
}

func (r *mongoExerciseRepository) MaxPosition(ctx context.Context, dayID primitive.ObjectID) (int, bool, error) {
	var exercise domain.Exercise
	findOptions := options.FindOne().
		SetSort(bson.D{{Key: "position", Value: -1}}).
		SetProjection(bson.M{"position": 1})

	err := r.collection.FindOne(ctx, bson.M{"trainingDayId": dayID}, findOptions).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return exercise.Position, true, nil
}

// UpdatePosition is a compare-and-set on version.
func (r *mongoExerciseRepository) UpdatePosition(ctx context.Context, id primitive.ObjectID, version int64, position int) error {
	filter := bson.M{"_id": id, "version": version}
	update := bson.M{
		"$set": bson.M{"position": position, "updatedAt": time.Now().UTC()},
		"$inc": bson.M{"version": 1},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return mapWriteError(err)
	}
	if result.MatchedCount == 0 {
		// Either the exercise is gone or another writer bumped its version.
		count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if count == 0 {
			return repository.ErrNotFound
		}
		return repository.ErrConflict
	}
	return nil
}

// Delete removes an exercise. Remaining positions are left as they are.
func (r *mongoExerciseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByDayIDs removes every exercise of the given days and returns their ids.
func (r *mongoExerciseRepository) DeleteByDayIDs(ctx context.Context, dayIDs []primitive.ObjectID) ([]primitive.ObjectID, error) {
	if len(dayIDs) == 0 {
		return nil, nil
	}
	filter := bson.M{"trainingDayId": bson.M{"$in": dayIDs}}

	raw, err := r.collection.Distinct(ctx, "_id", filter)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	if _, err := r.collection.DeleteMany(ctx, filter); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *mongoExerciseRepository) DayIDs(ctx context.Context) ([]primitive.ObjectID, error) {
	raw, err := r.collection.Distinct(ctx, "trainingDayId", bson.M{})
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// EnsureExerciseIndexes creates necessary indexes for the exercises collection.
// The unique (trainingDayId, position) index is what turns concurrent
// appends and swaps into repository.ErrConflict.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "trainingDayId", Value: 1}, {Key: "position", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("day_position_unique"),
		},
		{
			Keys:    bson.D{{Key: "origin.templateId", Value: 1}},
			Options: options.Index(),
		},
	})
}
