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

const bannerCollectionName = "banners"

type mongoBannerRepository struct {
	collection *mongo.Collection
}

// NewMongoBannerRepository creates a new repository for page banners.
func NewMongoBannerRepository(db *mongo.Database) repository.BannerRepository {
	return &mongoBannerRepository{
		collection: db.Collection(bannerCollectionName),
	}
}

func (r *mongoBannerRepository) GetByName(ctx context.Context, name string) (*domain.Banner, error) {
	var banner domain.Banner
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&banner)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &banner, nil
}

func (r *mongoBannerRepository) UpsertDescription(ctx context.Context, name, description string) error {
	update := bson.M{
		"$set":         bson.M{"description": description, "updatedAt": time.Now().UTC()},
		"$setOnInsert": bson.M{"_id": primitive.NewObjectID()},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"name": name}, update, options.Update().SetUpsert(true))
	return mapWriteError(err)
}

func EnsureBannerIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
}
