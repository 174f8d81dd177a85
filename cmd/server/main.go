package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ronrevv/wolverinez-workout-planner/internal/api"
	"github.com/ronrevv/wolverinez-workout-planner/internal/cache"
	"github.com/ronrevv/wolverinez-workout-planner/internal/config"
	"github.com/ronrevv/wolverinez-workout-planner/internal/repository/mongo"
	"github.com/ronrevv/wolverinez-workout-planner/internal/service"
	"github.com/ronrevv/wolverinez-workout-planner/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Workout Planner Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureRoleIndexes(ctx, appDB.Collection("user_roles"))
		mongo.EnsureProfileIndexes(ctx, appDB.Collection("user_profiles"))
		mongo.EnsureSubscriptionIndexes(ctx, appDB.Collection("subscribers"))
		mongo.EnsurePlanIndexes(ctx, appDB.Collection("workout_plans"))
		mongo.EnsureAssignmentIndexes(ctx, appDB.Collection("workout_plan_assignments"))
		mongo.EnsureTrackingIndexes(ctx, appDB)
		mongo.EnsureAccessIndexes(ctx, appDB.Collection("user_access_control"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Exercise Cache ---
	exerciseCache := cache.NewRedisExerciseCache(cfg.Redis.Addr, cfg.Redis.CacheTTL)
	defer func() {
		if err := exerciseCache.Close(); err != nil {
			log.Printf("ERROR: Failed to close Redis client: %v", err)
		}
	}()

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	roleRepo := mongo.NewMongoRoleRepository(appDB)
	profileRepo := mongo.NewMongoProfileRepository(appDB)
	subscriptionRepo := mongo.NewMongoSubscriptionRepository(appDB)
	planRepo := mongo.NewMongoPlanRepository(appDB)
	assignmentRepo := mongo.NewMongoAssignmentRepository(appDB)
	trackingRepo := mongo.NewMongoTrackingRepository(appDB)
	accessRepo := mongo.NewMongoAccessRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, roleRepo, subscriptionRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	userService := service.NewUserService(userRepo, profileRepo, subscriptionRepo)
	planService := service.NewPlanService(planRepo)
	assignmentService := service.NewAssignmentService(assignmentRepo, planRepo)
	trackingService := service.NewTrackingService(trackingRepo)
	exerciseService := service.NewExerciseService(exerciseCache, cfg.Exercises.APIURL, cfg.Exercises.APIKey, cfg.Exercises.Timeout)
	accessService := service.NewAccessService(accessRepo, fileStorage)
	adminService := service.NewAdminService(userRepo, roleRepo, subscriptionRepo)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(
		router,
		cfg.JWT.Secret,
		authService,
		userService,
		planService,
		assignmentService,
		trackingService,
		exerciseService,
		accessService,
		adminService,
	)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
