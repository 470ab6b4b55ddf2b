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

const trainingDayCollectionName = "training_days"

type mongoTrainingDayRepository struct {
	collection *mongo.Collection
}

// NewMongoTrainingDayRepository creates a new TrainingDay repository.
func NewMongoTrainingDayRepository(db *mongo.Database) repository.TrainingDayRepository {
	return &mongoTrainingDayRepository{
		collection: db.Collection(trainingDayCollectionName),
	}
}

func (r *mongoTrainingDayRepository) Create(ctx context.Context, day *domain.TrainingDay) (primitive.ObjectID, error) {
	if day.TrainingProgramID == primitive.NilObjectID || day.DayOfWeek == "" {
		return primitive.NilObjectID, errors.New("training day requires trainingProgramId and dayOfWeek")
	}
	day.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	day.CreatedAt = now
	day.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, day)
	if err != nil {
		return primitive.NilObjectID, mapWriteError(err)
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted training day ID")
	}
	return insertedID, nil
}

func (r *mongoTrainingDayRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingDay, error) {
	var day domain.TrainingDay
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&day)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &day, nil
}

// GetByProgramID returns a program's days in creation order.
func (r *mongoTrainingDayRepository) GetByProgramID(ctx context.Context, programID primitive.ObjectID) ([]domain.TrainingDay, error) {
	var days []domain.TrainingDay
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"trainingProgramId": programID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &days); err != nil {
		return nil, err
	}
	return days, nil
}

func (r *mongoTrainingDayRepository) DeleteByProgramID(ctx context.Context, programID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"trainingProgramId": programID})
	return err
}

// EnsureTrainingDayIndexes creates indexes for the training_days collection.
func EnsureTrainingDayIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "trainingProgramId", Value: 1}, {Key: "createdAt", Value: 1}}, Options: options.Index()},
	})
}
