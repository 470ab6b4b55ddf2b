package cli

import (
	"alcyxob/fitness-bot/internal/config"
	"alcyxob/fitness-bot/internal/repository"
	"alcyxob/fitness-bot/internal/repository/memory"
	"alcyxob/fitness-bot/internal/repository/mongo"
	"context"
	"fmt"
	"log/slog"
	"time"
)

// backend bundles the repositories of one database driver.
type backend struct {
	tx           repository.Transactor
	users        repository.UserRepository
	programs     repository.TrainingProgramRepository
	days         repository.TrainingDayRepository
	exercises    repository.ExerciseRepository
	exerciseSets repository.ExerciseSetRepository
	sets         repository.SetRepository
	templates    repository.TemplateRepository
	categories   repository.CategoryRepository
	banners      repository.BannerRepository

	close func() error
}

func memoryBackend(store *memory.Store) *backend {
	return &backend{
		tx:           store.Transactor(),
		users:        store.Users(),
		programs:     store.Programs(),
		days:         store.Days(),
		exercises:    store.Exercises(),
		exerciseSets: store.ExerciseSets(),
		sets:         store.Sets(),
		templates:    store.Templates(),
		categories:   store.Categories(),
		banners:      store.Banners(),
		close:        func() error { return nil },
	}
}

// openBackend connects to the configured driver. With ensureIndexes set the
// mongo indexes are created in the background.
func openBackend(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger, ensureIndexes bool) (*backend, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		log.Warn("Using the in-memory store, data is lost on exit.")
		return memoryBackend(memory.New()), nil
	case config.DriverMongo, "":
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}

	client, err := mongo.ConnectDB(ctx, cfg.URI, cfg.OpTimeout)
	if err != nil {
		return nil, fmt.Errorf("could not connect to MongoDB: %w", err)
	}
	db := client.Database(cfg.Name)
	log.Info("Database connection established.", "database", cfg.Name)

	if ensureIndexes {
		log.Info("Ensuring database indexes...")
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			mongo.EnsureIndexes(ctx, db)
			log.Info("Index creation process completed.")
		}()
	}

	return &backend{
		tx:           mongo.NewTransactor(db),
		users:        mongo.NewMongoUserRepository(db),
		programs:     mongo.NewMongoTrainingProgramRepository(db),
		days:         mongo.NewMongoTrainingDayRepository(db),
		exercises:    mongo.NewMongoExerciseRepository(db),
		exerciseSets: mongo.NewMongoExerciseSetRepository(db),
		sets:         mongo.NewMongoSetRepository(db),
		templates:    mongo.NewMongoTemplateRepository(db),
		categories:   mongo.NewMongoCategoryRepository(db),
		banners:      mongo.NewMongoBannerRepository(db),
		close: func() error {
			log.Info("Disconnecting MongoDB...")
			return mongo.DisconnectDB(client)
		},
	}, nil
}
