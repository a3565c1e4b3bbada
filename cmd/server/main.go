package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DVDemon/frieren/internal/cache"
	"github.com/DVDemon/frieren/internal/config"
	"github.com/DVDemon/frieren/internal/cron"
	"github.com/DVDemon/frieren/internal/handlers"
	"github.com/DVDemon/frieren/internal/models"
	"github.com/DVDemon/frieren/internal/repositories/postgres"
	"github.com/DVDemon/frieren/internal/services"
	"github.com/DVDemon/frieren/internal/utils"
	"github.com/DVDemon/frieren/pkg"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
		gin.SetMode(gin.ReleaseMode)
	} else {
		logger = utils.NewDevelopmentLogger()
	}
	slogLogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(
		&models.Student{},
		&models.Teacher{},
		&models.TeacherGroup{},
		&models.Lecture{},
		&models.Attendance{},
		&models.Homework{},
		&models.HomeworkReview{},
		&models.StudentHomeworkVariant{},
		&models.ExamGrade{},
	); err != nil {
		logger.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}

	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Error("Failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	cacheService := cache.NewRedisCache(redisClient, logger)

	eventConfig := config.LoadEventConfig()
	publisher, err := eventConfig.CreateEventPublisher(slogLogger)
	if err != nil {
		logger.Error("Failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	repo := postgres.NewRepository(db)
	manager := services.NewManager(repo, cacheService, publisher, services.AIReviewConfig{
		APIKey:   cfg.AIAPIKey,
		APIURL:   cfg.AIAPIURL,
		Model:    cfg.AIModel,
		CloneDir: cfg.CloneDir,
	}, slogLogger)

	scheduler := cron.NewScheduler(repo, manager.Stats, manager.Notifications, slogLogger)
	if err := scheduler.Start(); err != nil {
		logger.Error("Failed to start cron scheduler", "error", err)
		os.Exit(1)
	}
	defer scheduler.Stop()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))
	router.Use(utils.ContextLogger(logger))

	handlerManager := handlers.NewHandlerManager(manager, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
	logger.Info("Server stopped")
}
