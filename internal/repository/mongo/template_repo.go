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

const (
	adminExerciseCollectionName = "admin_exercises"
	userExerciseCollectionName  = "user_exercises"
)

// mongoTemplateRepository keeps admin and user templates in separate collections.
type mongoTemplateRepository struct {
	admin *mongo.Collection
	user  *mongo.Collection
}

// NewMongoTemplateRepository creates a new exercise template repository.
func NewMongoTemplateRepository(db *mongo.Database) repository.TemplateRepository {
	return &mongoTemplateRepository{
		admin: db.Collection(adminExerciseCollectionName),
		user:  db.Collection(userExerciseCollectionName),
	}
}

func (r *mongoTemplateRepository) CreateAdminExercise(ctx context.Context, exercise *domain.AdminExercise) (primitive.ObjectID, error) {
	if exercise.Name == "" || exercise.CategoryID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("admin exercise requires name and categoryId")
	}
	exercise.ID = primitive.NewObjectID()
	exercise.CreatedAt = time.Now().UTC()

	if _, err := r.admin.InsertOne(ctx, exercise); err != nil {
		return primitive.NilObjectID, mapWriteError(err)
	}
	return exercise.ID, nil
}

func (r *mongoTemplateRepository) GetAdminExercise(ctx context.Context, id primitive.ObjectID) (*domain.AdminExercise, error) {
	var exercise domain.AdminExercise
	err := r.admin.FindOne(ctx, bson.M{"_id": id}).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

func (r *mongoTemplateRepository) GetAdminExercisesByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]domain.AdminExercise, error) {
	var exercises []domain.AdminExercise
	if err := findAll(ctx, r.admin, bson.M{"categoryId": categoryID}, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *mongoTemplateRepository) CreateUserExercise(ctx context.Context, exercise *domain.UserExercise) (primitive.ObjectID, error) {
	if exercise.Name == "" || exercise.UserID == 0 || exercise.CategoryID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("user exercise requires name, userId and categoryId")
	}
	exercise.ID = primitive.NewObjectID()
	exercise.CreatedAt = time.Now().UTC()

	if _, err := r.user.InsertOne(ctx, exercise); err != nil {
		return primitive.NilObjectID, mapWriteError(err)
	}
	return exercise.ID, nil
}

func (r *mongoTemplateRepository) GetUserExercise(ctx context.Context, id primitive.ObjectID) (*domain.UserExercise, error) {
	var exercise domain.UserExercise
	err := r.user.FindOne(ctx, bson.M{"_id": id}).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

func (r *mongoTemplateRepository) GetUserExercises(ctx context.Context, userID int64) ([]domain.UserExercise, error) {
	var exercises []domain.UserExercise
	if err := findAll(ctx, r.user, bson.M{"userId": userID}, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *mongoTemplateRepository) GetUserExercisesByCategory(ctx context.Context, categoryID primitive.ObjectID, userID int64) ([]domain.UserExercise, error) {
	var exercises []domain.UserExercise
	if err := findAll(ctx, r.user, bson.M{"categoryId": categoryID, "userId": userID}, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// findAll decodes every document matching filter in creation order.
func findAll(ctx context.Context, collection *mongo.Collection, filter bson.M, out interface{}) error {
	cursor, err := collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}

// EnsureTemplateIndexes creates indexes for both template collections.
func EnsureTemplateIndexes(ctx context.Context, admin, user *mongo.Collection) {
	createIndexes(ctx, admin, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "categoryId", Value: 1}}, Options: options.Index()},
	})
	createIndexes(ctx, user, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "categoryId", Value: 1}}, Options: options.Index()},
	})
}
