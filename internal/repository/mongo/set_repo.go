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

const setCollectionName = "sets"

// mongoSetRepository stores recorded attempts grouped by training session.
type mongoSetRepository struct {
	collection *mongo.Collection
}

// NewMongoSetRepository creates a new repository for recorded sets.
func NewMongoSetRepository(db *mongo.Database) repository.SetRepository {
	return &mongoSetRepository{
		collection: db.Collection(setCollectionName),
	}
}

func (r *mongoSetRepository) Create(ctx context.Context, set *domain.Set) (primitive.ObjectID, error) {
	if set.ExerciseID == primitive.NilObjectID || set.TrainingSessionID == "" {
		return primitive.NilObjectID, errors.New("set requires exerciseId and trainingSessionId")
	}
	set.ID = primitive.NewObjectID()
	set.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, set)
	if err != nil {
		return primitive.NilObjectID, mapWriteError(err)
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted set ID")
	}
	return insertedID, nil
}

// GetBySession returns the attempts of one exercise in one session, oldest first.
func (r *mongoSetRepository) GetBySession(ctx context.Context, exerciseID primitive.ObjectID, sessionID string) ([]domain.Set, error) {
	var sets []domain.Set
	filter := bson.M{"exerciseId": exerciseID, "trainingSessionId": sessionID}
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &sets); err != nil {
		return nil, err
	}
	return sets, nil
}

func (r *mongoSetRepository) DeleteByExerciseIDs(ctx context.Context, exerciseIDs []primitive.ObjectID) error {
	if len(exerciseIDs) == 0 {
		return nil
	}
	_, err := r.collection.DeleteMany(ctx, bson.M{"exerciseId": bson.M{"$in": exerciseIDs}})
	return err
}

// EnsureSetIndexes creates indexes for the sets collection.
func EnsureSetIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "exerciseId", Value: 1}, {Key: "trainingSessionId", Value: 1}}, Options: options.Index()},
	})
}
