package main

import (
	"fmt"
	"log"

	"github.com/architect/quiztracker/internal/common/database"
	commonHandlers "github.com/architect/quiztracker/internal/common/handlers"
	"github.com/architect/quiztracker/internal/common/health"
	"github.com/architect/quiztracker/internal/common/middleware"
	"github.com/architect/quiztracker/internal/quiz/handlers"
	"github.com/architect/quiztracker/internal/quiz/repository"
	"github.com/architect/quiztracker/internal/quiz/services"
	"github.com/architect/quiztracker/pkg/config"
	"github.com/architect/quiztracker/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database (SQLite for development, PostgreSQL for production)
	db, err := database.Open(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// One store handle, passed explicitly into every service
	store := repository.NewStore(db)

	userService := services.NewUserService(store)
	progressService := services.NewProgressService(store)
	attemptService := services.NewAttemptService(store)
	achievementService := services.NewAchievementService(store)
	activityService := services.NewActivityService(store)
	questionService := services.NewQuestionService(store)
	dashboardService := services.NewDashboardService(store)

	userHandler := handlers.NewUserHandler(userService)
	progressHandler := handlers.NewProgressHandler(progressService)
	attemptHandler := handlers.NewAttemptHandler(attemptService)
	achievementHandler := handlers.NewAchievementHandler(achievementService)
	activityHandler := handlers.NewActivityHandler(activityService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Create Gin engine
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply middleware
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.ErrorHandler())

	// Health check endpoints
	healthChecker := health.NewHealthChecker(db, "1.0.0")
	healthHandler := commonHandlers.NewHealthHandler(healthChecker)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/readiness", healthHandler.Readiness)
	router.GET("/health/liveness", healthHandler.Liveness)
	router.GET("/health/metrics", healthHandler.Metrics)
	router.GET("/health/detailed", healthHandler.Detailed)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := router.Group("/api")
	{
		api.GET("/users/:id", userHandler.GetUser)
		api.POST("/users", userHandler.CreateUser)
		api.PUT("/users/:id", userHandler.UpdateUser)

		api.GET("/dashboard/:userId", dashboardHandler.GetDashboard)
		api.GET("/leaderboard", userHandler.GetLeaderboard)

		api.GET("/progress/:userId", progressHandler.GetProgress)
		api.PUT("/progress/:userId/:topicId", progressHandler.UpdateProgress)

		api.POST("/quiz-attempts", attemptHandler.SaveAttempt)
		api.GET("/quiz-attempts/:userId", attemptHandler.GetAttempts)

		api.GET("/achievements/:userId", achievementHandler.GetUserAchievements)
		api.PUT("/achievements/:userId/:achievementType/progress", achievementHandler.UpdateProgress)
		api.PUT("/achievements/:userId/:achievementType/unlock", achievementHandler.Unlock)

		api.GET("/practice-questions/:topicId", questionHandler.GetQuestions)

		api.GET("/activity/:userId", activityHandler.GetActivity)
		api.POST("/activity/:userId", activityHandler.RecordActivity)
	}

	// Start server
	address := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Starting server", zap.String("address", address))

	if err := router.Run(address); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
