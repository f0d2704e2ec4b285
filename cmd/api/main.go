package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/recipe-catalog/backend/config"
	"github.com/pageza/recipe-catalog/backend/internal/database"
	"github.com/pageza/recipe-catalog/backend/internal/logger"
	"github.com/pageza/recipe-catalog/backend/internal/middleware"
	"github.com/pageza/recipe-catalog/backend/internal/router"
	"github.com/pageza/recipe-catalog/backend/internal/server"
	"github.com/pageza/recipe-catalog/backend/internal/service"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.Environment == config.Production, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if cfg.Environment.ReleaseMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	generator, err := newGenerator(cfg, zl)
	if err != nil {
		zl.Fatal("failed to create recipe generator", zap.Error(err))
	}

	sessions := service.NewSessionManager(cfg.MaxSessions, cfg.SessionTTL, zl)
	tokens := service.NewTokenService(cfg.SessionSecret, cfg.SessionTTL)

	var redisClient *redis.Client
	var limiter *middleware.RateLimiter
	if cfg.RedisEnabled() && cfg.GenerateRateLimit > 0 {
		redisClient, err = database.NewRedisClient(context.Background(), cfg, zl)
		if err != nil {
			zl.Fatal("failed to connect to Redis", zap.Error(err))
		}
		limiter = middleware.NewGenerateRateLimiter(redisClient, cfg.GenerateRateLimit, zl)
	} else {
		zl.Info("generation rate limiting disabled")
	}

	handler := router.SetupRouter(router.Dependencies{
		Sessions:    sessions,
		Tokens:      tokens,
		Generation:  service.NewGenerationService(generator, zl),
		RateLimiter: limiter,
		CORSOrigins: cfg.CORSAllowedOrigins,
		Logger:      zl,
	})

	// Create and start server
	srv := server.New(cfg, handler, zl)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		if err != nil {
			zl.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		zl.Info("received signal", zap.String("signal", sig.String()))
	}

	// Gracefully shutdown the server
	zl.Info("shutting down server")
	if err := srv.Shutdown(context.Background()); err != nil {
		zl.Error("server shutdown error", zap.Error(err))
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	zl.Info("server stopped")
}

// newGenerator picks the recipe generator for the configured mode
func newGenerator(cfg *config.Config, zl *zap.Logger) (service.RecipeGenerator, error) {
	switch cfg.GeneratorMode {
	case config.GeneratorModeAI:
		llm, err := service.NewLLMService(service.LLMConfig{
			APIKey:  cfg.LLMAPIKey,
			APIURL:  cfg.LLMAPIURL,
			Model:   cfg.LLMModel,
			Timeout: cfg.LLMTimeout,
		}, zl)
		if err != nil {
			return nil, err
		}
		zl.Info("using AI recipe generator")
		return service.NewAIGenerator(llm, zl), nil
	case config.GeneratorModeMock:
		zl.Info("using mock recipe generator")
		return service.NewRandomGenerator(nil), nil
	default:
		return nil, fmt.Errorf("unknown generator mode %q", cfg.GeneratorMode)
	}
}
