package main

import (
	"alcyxob/fittrack/internal/api"
	"alcyxob/fittrack/internal/repository/mongo"
	"alcyxob/fittrack/internal/service"
	"alcyxob/fittrack/internal/storage"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const indexTimeout = time.Minute

func runServe(cmd *cobra.Command, args []string) error {
	log.Info("starting FitTrack server")

	dbClient, appDB, err := connect()
	if err != nil {
		return err
	}
	defer disconnect(dbClient)

	// Index creation runs in the background so a slow build does not delay startup.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
		defer cancel()
		mongo.EnsureIndexes(ctx, appDB, log)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fileStorage, err := storage.NewS3Storage(ctx, cfg.S3, log)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 storage: %w", err)
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	profileRepo := mongo.NewMongoProfileRepository(appDB)
	ingredientRepo := mongo.NewMongoIngredientRepository(appDB)
	mealRepo := mongo.NewMongoMealRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	planRepo := mongo.NewMongoNutritionPlanRepository(appDB)
	routineRepo := mongo.NewMongoRoutineRepository(appDB)
	assignmentRepo := mongo.NewMongoAssignmentRepository(appDB)
	mealLogRepo := mongo.NewMongoMealLogRepository(appDB)
	exerciseLogRepo := mongo.NewMongoExerciseLogRepository(appDB)
	progressRepo := mongo.NewMongoProgressRepository(appDB)

	// --- Initialize Services ---
	services := api.Services{
		Auth:       service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration, cfg.Auth.BootstrapAdminEmail),
		Profile:    service.NewProfileService(userRepo, profileRepo),
		Meal:       service.NewMealService(ingredientRepo, mealRepo),
		Exercise:   service.NewExerciseService(exerciseRepo),
		Plan:       service.NewPlanService(planRepo, routineRepo, mealRepo, exerciseRepo),
		Assignment: service.NewAssignmentService(profileRepo, assignmentRepo, planRepo, routineRepo),
		Tracking:   service.NewTrackingService(profileRepo, mealRepo, exerciseRepo, assignmentRepo, mealLogRepo, exerciseLogRepo),
		Progress:   service.NewProgressService(profileRepo, progressRepo, fileStorage, cfg.S3.PresignExpiry),
	}

	gin.SetMode(cfg.Server.Mode)
	router := api.NewRouter(log, cfg.JWT.Secret, services)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("server exiting")
	return nil
}

func runIndexes(cmd *cobra.Command, args []string) error {
	dbClient, appDB, err := connect()
	if err != nil {
		return err
	}
	defer disconnect(dbClient)

	ctx, cancel := context.WithTimeout(cmd.Context(), indexTimeout)
	defer cancel()
	mongo.EnsureIndexes(ctx, appDB, log)
	return nil
}

func connect() (*driver.Client, *driver.Database, error) {
	dbClient, err := mongo.ConnectDB(cfg.Database.URI, cfg.Database.ConnectTimeout)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to MongoDB: %w", err)
	}
	log.Info("database connection established", zap.String("database", cfg.Database.Name))
	return dbClient, dbClient.Database(cfg.Database.Name), nil
}

func disconnect(client *driver.Client) {
	if err := mongo.DisconnectDB(client); err != nil {
		log.Error("failed to disconnect MongoDB", zap.Error(err))
	}
}
