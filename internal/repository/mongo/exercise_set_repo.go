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

const exerciseSetCollectionName = "exercise_sets"

// mongoExerciseSetRepository stores the planned sets of placed exercises.
type mongoExerciseSetRepository struct {
	collection *mongo.Collection
}

func NewMongoExerciseSetRepository(db *mongo.Database) repository.ExerciseSetRepository {
	return &mongoExerciseSetRepository{
		collection: db.Collection(exerciseSetCollectionName),
	}
}

func (r *mongoExerciseSetRepository) Create(ctx context.Context, set *domain.ExerciseSet) (primitive.ObjectID, error) {
	if set.ExerciseID == primitive.NilObjectID || set.Reps <= 0 {
		return primitive.NilObjectID, errors.New("exercise set requires exerciseId and positive reps")
	}
	set.ID = primitive.NewObjectID()
	set.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, set)
	if err != nil {
		return primitive.NilObjectID, mapWriteError(err)
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted exercise set ID")
	}
	return insertedID, nil
}

func (r *mongoExerciseSetRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ExerciseSet, error) {
	var set domain.ExerciseSet
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &set, nil
}

func (r *mongoExerciseSetRepository) GetByExerciseID(ctx context.Context, exerciseID primitive.ObjectID) ([]domain.ExerciseSet, error) {
	var sets []domain.ExerciseSet
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"exerciseId": exerciseID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &sets); err != nil {
		return nil, err
	}
	return sets, nil
}

func (r *mongoExerciseSetRepository) UpdateReps(ctx context.Context, id primitive.ObjectID, reps int) error {
	if reps <= 0 {
		return errors.New("reps must be positive")
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"reps": reps}})
	if err != nil {
		return mapWriteError(err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoExerciseSetRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoExerciseSetRepository) DeleteByExerciseIDs(ctx context.Context, exerciseIDs []primitive.ObjectID) error {
	if len(exerciseIDs) == 0 {
		return nil
	}
	_, err := r.collection.DeleteMany(ctx, bson.M{"exerciseId": bson.M{"$in": exerciseIDs}})
	return err
}

func EnsureExerciseSetIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "exerciseId", Value: 1}}, Options: options.Index()},
	})
}
