package cli

import (
	"alcyxob/fitness-bot/internal/api"
	"alcyxob/fitness-bot/internal/config"
	"alcyxob/fitness-bot/internal/logger"
	"alcyxob/fitness-bot/internal/menu"
	"alcyxob/fitness-bot/internal/service"
	"alcyxob/fitness-bot/internal/storage"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP menu server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, g.cfg)
		},
	}
}

// buildServices assembles every service over b. media may be nil.
func buildServices(cfg config.Config, b *backend, media storage.MediaStorage, log *slog.Logger) api.Services {
	ordering := service.NewOrderingService(b.tx, b.exercises, b.exerciseSets)
	exercises := service.NewExerciseService(b.tx, b.days, b.exercises, b.exerciseSets, b.sets, b.templates, ordering)
	programs := service.NewProgramService(b.tx, b.users, b.programs, b.days, b.exercises, b.exerciseSets, b.sets)

	dispatcher := menu.NewDispatcher(menu.Dependencies{
		Pages:          service.NewPageService(b.banners, media, cfg.S3.URLExpiry),
		Users:          b.users,
		Programs:       b.programs,
		Days:           b.days,
		Exercises:      b.exercises,
		Templates:      b.templates,
		Categories:     b.categories,
		ProgramActions: programs,
		Plans:          exercises,
		Ordering:       ordering,
	}, menu.Options{
		ErrorMedia:   cfg.Menu.ErrorMedia,
		WeekdayNames: cfg.Menu.WeekdayNames,
		Location:     cfg.Menu.Location(),
		Logger:       log,
	})

	return api.Services{
		Auth:      service.NewAuthService(b.users, cfg.Gateway.SecretHash, cfg.Gateway.AdminIDs, cfg.JWT.Secret, cfg.JWT.Expiration),
		Programs:  programs,
		Exercises: exercises,
		Workouts:  service.NewWorkoutService(b.exercises, b.sets),
		Ordering:  ordering,
		Menu:      dispatcher,
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	log := logger.Setup(cfg.Log)
	log.Info("Starting Fitness Bot Server...")
	log.Info("Configuration loaded.", "driver", cfg.Database.Driver, "timezone", cfg.Menu.Location().String())

	if cfg.JWT.Secret == "" {
		return errors.New("jwt.secret is required")
	}

	// --- Database Connection ---
	b, err := openBackend(ctx, cfg.Database, log, true)
	if err != nil {
		return err
	}
	defer func() {
		if err := b.close(); err != nil {
			log.Error("Failed to close the database", "error", err)
		}
	}()

	// --- Initialize Storage ---
	var media storage.MediaStorage
	if cfg.S3.Enabled() {
		log.Info("Initializing banner media storage...", "bucket", cfg.S3.BucketName)
		media, err = storage.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
	} else {
		log.Info("No S3 bucket configured, banner images must be absolute URLs.")
	}

	// --- Initialize Services ---
	log.Info("Initializing services...")
	services := buildServices(cfg, b, media, log)

	// --- Initialize Gin Engine ---
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger(log))

	log.Info("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, services)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server starting", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// --- Graceful Shutdown ---
	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}
	log.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server exiting.")
	return nil
}
