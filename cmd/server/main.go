package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"physiohub/physio-app/internal/api"
	"physiohub/physio-app/internal/config"
	"physiohub/physio-app/internal/content"
	"physiohub/physio-app/internal/genimage"
	"physiohub/physio-app/internal/logging"
	"physiohub/physio-app/internal/repository"
	"physiohub/physio-app/internal/repository/mongo"
	"physiohub/physio-app/internal/service"
	"physiohub/physio-app/internal/storage"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("could not load config", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.Log.Level)
	logger.Info("starting physio app server")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logger.Error("could not connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		logger.Info("disconnecting MongoDB")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logger.Error("failed to disconnect MongoDB", "error", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logger.Info("database connection established")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		if err := mongo.EnsureUserIndexes(ctx, appDB); err != nil {
			logger.Warn("user index creation failed", "error", err)
		}
		if err := mongo.EnsureExerciseIndexes(ctx, appDB); err != nil {
			logger.Warn("exercise index creation failed", "error", err)
		}
		if err := mongo.EnsureRoutineIndexes(ctx, appDB); err != nil {
			logger.Warn("routine index creation failed", "error", err)
		}
	}()

	// --- Initialize Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		logger.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	routineRepo := mongo.NewMongoRoutineRepository(appDB)

	// --- Seed Shared Library ---
	if cfg.Content.Dir != "" {
		seedSharedLibrary(logger, cfg.Content.Dir, exerciseRepo)
	}

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	exerciseService := service.NewExerciseService(exerciseRepo)
	routineService := service.NewRoutineService(routineRepo, exerciseRepo, cfg.Delivery.BaseURL)

	// --- Initialize Illustration Pipeline ---
	genCfg, err := genimage.Resolve(genimage.Options{
		Device: cfg.Generation.Device,
		Preset: cfg.Generation.Preset,
	})
	if err != nil {
		logger.Error("invalid generation configuration", "error", err)
		os.Exit(1)
	}
	generator := genimage.NewHTTPGenerator(cfg.Generation.Endpoint)
	imageStore := storage.NewS3ImageStore(fileStorage, "exercises")
	genService := genimage.NewService(generator, imageStore, genCfg, logging.WithModule(logger, "genimage"))

	// --- Initialize Gin Engine ---
	router := gin.Default()

	api.SetupRoutes(router, cfg.JWT.Secret, authService, exerciseService, routineService, genService, fileStorage)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	logger.Info("server starting", "address", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen and serve error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server exiting")
}

// seedSharedLibrary mirrors the YAML-authored catalog into the shared
// partition of the exercises collection. Existing records are replaced
// so content edits ship with deploys.
func seedSharedLibrary(logger *slog.Logger, dir string, exerciseRepo repository.ExerciseRepository) {
	lib := content.NewLibrary(dir)
	if err := lib.Load(); err != nil {
		logger.Warn("could not load content directory, skipping seed", "dir", dir, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	seeded := 0
	for _, id := range lib.IDs() {
		exercise, _ := lib.Get(id)
		err := exerciseRepo.Create(ctx, exercise)
		if errors.Is(err, repository.ErrDuplicate) {
			err = exerciseRepo.Replace(ctx, exercise)
		}
		if err != nil {
			logger.Warn("failed to seed exercise", "id", id, "error", err)
			continue
		}
		seeded++
	}
	logger.Info("shared library seeded", "exercises", seeded)
}
