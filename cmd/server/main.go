package main

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/minhvu/devconnect/adapters/event"
	githubAdapter "github.com/minhvu/devconnect/adapters/github"
	httpAdapter "github.com/minhvu/devconnect/adapters/http"
	"github.com/minhvu/devconnect/adapters/persistence"
	githubUC "github.com/minhvu/devconnect/internal/application/usecase/github"
	profileUC "github.com/minhvu/devconnect/internal/application/usecase/profile"
	"github.com/minhvu/devconnect/internal/config"
	"github.com/minhvu/devconnect/pkg/auth"
	"github.com/minhvu/devconnect/pkg/logger"
	"github.com/minhvu/devconnect/pkg/tracing"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting DevConnect API server...")

	if cfg.Jaeger.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "devconnect-api")
		if err != nil {
			appLogger.Fatal("Cannot initialize tracing", err)
		}
		defer tp.Shutdown(context.Background())
	}

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Redis", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		appLogger.Fatal("Cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	postRepo := persistence.NewPostgresPostRepo(dbPool)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	githubClient := githubAdapter.NewClient(&http.Client{Timeout: 10 * time.Second}, cfg, appLogger)

	// Use cases
	profileUseCase := profileUC.NewProfileUseCase(profileRepo, userRepo, postRepo, kafkaClient, appLogger)
	listReposUseCase := githubUC.NewListReposUseCase(githubClient, redisClient, cfg.GitHub.CacheTTL, appLogger)

	// HTTP
	profileHandler := httpAdapter.NewProfileHandler(profileUseCase, appLogger)
	githubHandler := httpAdapter.NewGithubHandler(listReposUseCase, appLogger)
	authMiddleware := httpAdapter.AuthMiddleware(jwtSvc)
	errorMiddleware := httpAdapter.ErrorMiddleware(appLogger)

	router := httpAdapter.NewRouter(profileHandler, githubHandler, authMiddleware, errorMiddleware)

	appLogger.Info("Server running", zap.String("port", cfg.App.Port))
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("Cannot run server", err)
	}
}
