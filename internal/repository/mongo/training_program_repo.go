// internal/repository/mongo/training_program_repo.go
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

const trainingProgramCollectionName = "training_programs"

// mongoTrainingProgramRepository implements repository.TrainingProgramRepository
type mongoTrainingProgramRepository struct {
	collection *mongo.Collection
}

// NewMongoTrainingProgramRepository creates a new TrainingProgram repository.
func NewMongoTrainingProgramRepository(db *mongo.Database) repository.TrainingProgramRepository {
	return &mongoTrainingProgramRepository{
		collection: db.Collection(trainingProgramCollectionName),
	}
}

// Create inserts a new training program.
func (r *mongoTrainingProgramRepository) Create(ctx context.Context, program *domain.TrainingProgram) (primitive.ObjectID, error) {
	if program.UserID == 0 || program.Name == "" {
		return primitive.NilObjectID, errors.New("program requires userId and name")
	}
	program.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	program.CreatedAt = now
	program.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, program)
	if err != nil {
		return primitive.NilObjectID, mapWriteError(err)
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted program ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single training program by its ID.
func (r *mongoTrainingProgramRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingProgram, error) {
	var program domain.TrainingProgram
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&program)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &program, nil
}

// GetByUserID retrieves the programs owned by a user, oldest first.
func (r *mongoTrainingProgramRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.TrainingProgram, error) {
	var programs []domain.TrainingProgram
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &programs); err != nil {
		return nil, err
	}
	return programs, nil
}

// Delete removes a program document. Dependent days are removed by the service.
func (r *mongoTrainingProgramRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureTrainingProgramIndexes creates indexes for the training_programs collection.
func EnsureTrainingProgramIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index()},
	})
}
