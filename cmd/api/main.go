package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/project-manager-api/internal/config"
	"github.com/project-manager-api/internal/database"
	"github.com/project-manager-api/internal/handler"
	"github.com/project-manager-api/internal/middleware"
	"github.com/project-manager-api/internal/repository"
	"github.com/project-manager-api/internal/service"
	"github.com/project-manager-api/internal/storage"
)

func main() {
	// Загрузка конфигурации
	cfg := config.Load()

	// Инициализация логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	if cfg.Auth.JWTSecret == "" {
		logger.Error("JWT_SECRET must be set")
		os.Exit(1)
	}

	// Подключение к БД и миграции
	db, err := database.Open(cfg.Database, logger)
	if err != nil {
		logger.Error("failed to open database", slog.String("driver", cfg.Database.Driver), slog.Any("error", err))
		os.Exit(1)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("failed to get sql.DB", slog.Any("error", err))
		os.Exit(1)
	}
	defer sqlDB.Close()

	// Инициализация репозиториев
	empRepo := repository.NewEmployeeRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	objectiveRepo := repository.NewObjectiveRepository(db)

	// Инициализация сервисов
	documents := storage.NewFileSystemStore(cfg.Storage.UploadDir)
	membership := service.NewMembershipResolver(projectRepo, objectiveRepo, logger)
	empService := service.NewEmployeeService(empRepo)
	projectService := service.NewProjectService(projectRepo, empRepo, objectiveRepo, documents, logger)
	objectiveService := service.NewObjectiveService(objectiveRepo, empRepo, projectRepo, membership, logger)

	// Инициализация хендлеров
	empHandler := handler.NewEmployeeHandler(empService, logger)
	projectHandler := handler.NewProjectHandler(projectService, logger)
	objectiveHandler := handler.NewObjectiveHandler(objectiveService, logger)

	// Настройка роутера
	auth := middleware.AuthConfig{
		Secret:   cfg.Auth.JWTSecret,
		Resolver: empService,
		Logger:   logger,
	}
	router := handler.NewRouter(empHandler, projectHandler, objectiveHandler, auth, logger)
	httpHandler := router.Setup()

	// Настройка HTTP сервера
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan bool)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("could not gracefully shutdown the server", slog.Any("error", err))
		}
		close(done)
	}()

	logger.Info("server is starting", slog.String("port", cfg.Server.Port))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
		os.Exit(1)
	}

	<-done
	logger.Info("server stopped")
}
