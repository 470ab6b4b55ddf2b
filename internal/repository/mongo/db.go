package mongo

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	connectTimeout = 10 * time.Second
	appName        = "fitness-bot"
)

// ConnectDB connects to uri and pings the primary. opTimeout, when positive,
// bounds every operation issued through the returned client.
func ConnectDB(ctx context.Context, uri string, opTimeout time.Duration) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetAppName(appName).
		SetConnectTimeout(connectTimeout)
	if opTimeout > 0 {
		opts.SetTimeout(opTimeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = DisconnectDB(client)
		return nil, err
	}
	return client, nil
}

// DisconnectDB closes every pooled connection of client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes of every collection used by the bot.
func EnsureIndexes(ctx context.Context, db *mongo.Database) {
	EnsureUserIndexes(ctx, db.Collection(userCollectionName))
	EnsureTrainingProgramIndexes(ctx, db.Collection(trainingProgramCollectionName))
	EnsureTrainingDayIndexes(ctx, db.Collection(trainingDayCollectionName))
	EnsureExerciseIndexes(ctx, db.Collection(exerciseCollectionName))
	EnsureExerciseSetIndexes(ctx, db.Collection(exerciseSetCollectionName))
	EnsureSetIndexes(ctx, db.Collection(setCollectionName))
	EnsureTemplateIndexes(ctx, db.Collection(adminExerciseCollectionName), db.Collection(userExerciseCollectionName))
	EnsureCategoryIndexes(ctx, db.Collection(categoryCollectionName))
	EnsureBannerIndexes(ctx, db.Collection(bannerCollectionName))
}

func createIndexes(ctx context.Context, collection *mongo.Collection, indexes []mongo.IndexModel) {
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		slog.Warn("failed to create indexes", "collection", collection.Name(), "error", err)
	}
}
