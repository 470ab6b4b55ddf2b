package mongo

import (
	"alcyxob/fitness-bot/internal/domain"
	"alcyxob/fitness-bot/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
)

const categoryCollectionName = "categories"

type mongoCategoryRepository struct {
	collection *mongo.Collection
	admin      *mongo.Collection
	user       *mongo.Collection
}

// NewMongoCategoryRepository creates a new category repository. Template
// counts are aggregated from the template collections.
func NewMongoCategoryRepository(db *mongo.Database) repository.CategoryRepository {
	return &mongoCategoryRepository{
		collection: db.Collection(categoryCollectionName),
		admin:      db.Collection(adminExerciseCollectionName),
		user:       db.Collection(userExerciseCollectionName),
	}
}

func (r *mongoCategoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error) {
	var category domain.Category
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

type categoryCountRow struct {
	ID    primitive.ObjectID `bson:"_id"`
	Count int                `bson:"count"`
}

func countByCategory(ctx context.Context, collection *mongo.Collection, match bson.M) (map[primitive.ObjectID]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$categoryId"}, {Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}}}}},
	}
	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []categoryCountRow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	counts := make(map[primitive.ObjectID]int, len(rows))
	for _, row := range rows {
		counts[row.ID] = row.Count
	}
	return counts, nil
}

func (r *mongoCategoryRepository) ListWithCounts(ctx context.Context, userID int64) ([]domain.CategoryCount, error) {
	var (
		categories  []domain.Category
		adminCounts map[primitive.ObjectID]int
		userCounts  map[primitive.ObjectID]int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cursor, err := r.collection.Find(gctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
		if err != nil {
			return err
		}
		defer cursor.Close(gctx)
		return cursor.All(gctx, &categories)
	})
	g.Go(func() (err error) {
		adminCounts, err = countByCategory(gctx, r.admin, bson.M{})
		return err
	})
	g.Go(func() (err error) {
		userCounts, err = countByCategory(gctx, r.user, bson.M{"userId": userID})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]domain.CategoryCount, 0, len(categories))
	for _, c := range categories {
		out = append(out, domain.CategoryCount{Category: c, Count: adminCounts[c.ID] + userCounts[c.ID]})
	}
	return out, nil
}

func (r *mongoCategoryRepository) CreateIfEmpty(ctx context.Context, names []string) (int, error) {
	existing, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	if existing > 0 || len(names) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, 0, len(names))
	for _, name := range names {
		docs = append(docs, domain.Category{ID: primitive.NewObjectID(), Name: name})
	}
	result, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return 0, mapWriteError(err)
	}
	return len(result.InsertedIDs), nil
}

func EnsureCategoryIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
}
