package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	api "taskmanager-backend/cmd/api"
	"taskmanager-backend/internal/auth"
	taskdomain "taskmanager-backend/internal/task/domain"
	taskRepo "taskmanager-backend/internal/task/repository"
	taskUsecase "taskmanager-backend/internal/task/usecase"
	userdomain "taskmanager-backend/internal/user/domain"
	userRepo "taskmanager-backend/internal/user/repository"
	userUsecase "taskmanager-backend/internal/user/usecase"
	"taskmanager-backend/pkg/config"
	"taskmanager-backend/pkg/database"
	"taskmanager-backend/pkg/logging"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize repositories (dependency injection)
	var (
		userRepository userRepo.UserRepository
		taskRepository taskRepo.TaskRepository
	)
	if cfg.DatabaseURL != "" {
		db, err := database.NewPostgresConnection(cfg)
		if err != nil {
			log.Error(ctx, "failed to connect to database", "error", err)
			os.Exit(1)
		}

		// Auto-migrate database schemas
		if err := db.AutoMigrate(&userdomain.User{}, &taskdomain.Task{}); err != nil {
			log.Error(ctx, "failed to migrate database", "error", err)
			os.Exit(1)
		}

		userRepository = userRepo.NewUserRepository(db)
		taskRepository = taskRepo.NewGormTaskRepository(db)
	} else {
		log.Warn(ctx, "DATABASE_URL not set, using in-memory store")
		tasks := taskRepo.NewMemoryTaskRepository()
		userRepository = userRepo.NewMemoryUserRepository(tasks)
		taskRepository = tasks
	}

	// Initialize use cases
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	userUc := userUsecase.NewUserUsecase(userRepository, tokens, hasher)
	taskUc := taskUsecase.NewTaskUsecase(taskRepository)

	handler := api.NewHandler(userUc, taskUc, cfg, log)
	if err := handler.Run(ctx, ":"+cfg.Port); err != nil {
		log.Error(context.Background(), "server stopped", "error", err)
		os.Exit(1)
	}
}
