package mongo

import (
	"alcyxob/fitness-bot/internal/domain"
	"alcyxob/fitness-bot/internal/repository" // Import the repository interfaces package
	"context"
	"errors" // Import the standard errors package
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const userCollectionName = "users"

// mongoUserRepository implements the repository.UserRepository interface using MongoDB.
type mongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new instance of mongoUserRepository.
// It expects a connected *mongo.Database instance.
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(userCollectionName),
	}
}

// GetByUserID retrieves a user by the chat platform id.
func (r *mongoUserRepository) GetByUserID(ctx context.Context, userID int64) (*domain.User, error) {
	var user domain.User
	filter := bson.M{"userId": userID}

	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Return the custom repository error for not found
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Upsert creates the user on first contact or updates name and weight.
func (r *mongoUserRepository) Upsert(ctx context.Context, user *domain.User) error {
	if user.UserID == 0 {
		return errors.New("user id is required")
	}
	now := time.Now().UTC()
	filter := bson.M{"userId": user.UserID}
	update := bson.M{
		"$set": bson.M{
			"name":      user.Name,
			"weight":    user.Weight,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"_id":       primitive.NewObjectID(),
			"createdAt": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(user)
	if err != nil {
		return mapWriteError(err)
	}
	return nil
}

// SetActiveProgram sets or, with a nil programID, clears the user's active program.
func (r *mongoUserRepository) SetActiveProgram(ctx context.Context, userID int64, programID *primitive.ObjectID) error {
	filter := bson.M{"userId": userID}
	var update bson.M
	if programID != nil {
		update = bson.M{"$set": bson.M{"activeProgramId": *programID, "updatedAt": time.Now().UTC()}}
	} else {
		update = bson.M{
			"$unset": bson.M{"activeProgramId": ""},
			"$set":   bson.M{"updatedAt": time.Now().UTC()},
		}
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ClearActiveProgram unsets activeProgramId on every user pointing at programID.
func (r *mongoUserRepository) ClearActiveProgram(ctx context.Context, programID primitive.ObjectID) error {
	filter := bson.M{"activeProgramId": programID}
	update := bson.M{
		"$unset": bson.M{"activeProgramId": ""},
		"$set":   bson.M{"updatedAt": time.Now().UTC()},
	}
	_, err := r.collection.UpdateMany(ctx, filter, update)
	return err
}

// EnsureUserIndexes creates necessary indexes for the users collection.
// Call this once during application startup.
func EnsureUserIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "activeProgramId", Value: 1}},
			Options: options.Index().SetSparse(true), // Sparse because not all users have an active program
		},
	})
}
