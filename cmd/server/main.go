package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xinayida/anti-turing-test/internal/config"
	"github.com/xinayida/anti-turing-test/internal/gemini"
	"github.com/xinayida/anti-turing-test/internal/groq"
	"github.com/xinayida/anti-turing-test/internal/handler"
	"github.com/xinayida/anti-turing-test/internal/judge"
	"github.com/xinayida/anti-turing-test/internal/llm"
	"github.com/xinayida/anti-turing-test/internal/middleware"
	"github.com/xinayida/anti-turing-test/internal/openrouter"
	"github.com/xinayida/anti-turing-test/internal/repository"
	"github.com/xinayida/anti-turing-test/internal/service"
)

func main() {
	configPath := flag.String("config", "configs/config.yml", "path to config file")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Starting Anti Turing Test service...")

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Completion providers
	llmClient, err := buildLLMClient(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize completion providers", zap.Error(err))
	}
	defer llmClient.Close()

	// Stores. A durable-store failure degrades to memory-only operation;
	// report generation never depends on storage availability.
	cache := repository.NewMemoryStore(cfg.Cache.TTL, logger)
	defer cache.Close()

	store := buildDurableStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	// Pipeline
	judgeRunner := judge.NewRunner(
		judge.NewLLMJudge(llmClient, cfg.LLM.RequestTimeout, logger),
		logger,
	)
	pipeline := service.NewPipeline(judgeRunner, store, cache, logger)

	questions, err := service.NewQuestionBank(cfg.Questions.Path, time.Now().UnixNano())
	if err != nil {
		logger.Fatal("Failed to load question bank", zap.Error(err))
	}
	sessions := service.NewSessionService(cfg.Auth.Secret)

	apiHandler := handler.NewHandler(pipeline, sessions, questions, cfg.Auth.Enabled, logger)

	// HTTP server
	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()
	router.Use(middleware.CORS())
	apiHandler.RegisterRoutes(router)

	serverAddr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	modelInfo := llmClient.ModelInfo()
	modelName := "unknown"
	if m, ok := modelInfo["model"].(string); ok {
		modelName = m
	}
	logger.Info("Anti Turing Test service is running",
		zap.String("port", cfg.Server.Port),
		zap.String("model", modelName))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// buildLLMClient constructs the configured providers, wraps each with rate
// limiting, and joins them behind the failover client.
func buildLLMClient(cfg *config.Config, logger *zap.Logger) (llm.Client, error) {
	if len(cfg.Providers) == 0 {
		return nil, fmt.Errorf("no completion providers configured")
	}

	clients := make([]llm.Client, 0, len(cfg.Providers))
	for i, providerCfg := range cfg.Providers {
		var client llm.Client
		var err error

		switch providerCfg.Type {
		case "gemini":
			client, err = gemini.NewClient(gemini.Config{
				APIKey:     providerCfg.APIKey,
				ModelName:  providerCfg.ModelName,
				MaxRetries: providerCfg.MaxRetries,
				RetryDelay: providerCfg.RetryDelay,
			}, logger)
		case "groq":
			client, err = groq.NewClient(groq.Config{
				APIKey:     providerCfg.APIKey,
				ModelName:  providerCfg.ModelName,
				MaxRetries: providerCfg.MaxRetries,
				RetryDelay: providerCfg.RetryDelay,
			}, logger)
		case "openrouter":
			client, err = openrouter.NewClient(openrouter.Config{
				APIKey:     providerCfg.APIKey,
				ModelName:  providerCfg.ModelName,
				MaxRetries: providerCfg.MaxRetries,
				RetryDelay: providerCfg.RetryDelay,
			}, logger)
		default:
			logger.Warn("Unknown provider type, skipping",
				zap.String("type", providerCfg.Type),
				zap.Int("index", i))
			continue
		}

		if err != nil {
			logger.Error("Failed to create provider",
				zap.String("type", providerCfg.Type),
				zap.Int("index", i),
				zap.Error(err))
			continue
		}

		rateLimit := providerCfg.RequestsPerMinute
		if rateLimit == 0 {
			rateLimit = 8
		}
		clients = append(clients, llm.NewRateLimitedClient(client, rateLimit, logger))

		logger.Info("Provider initialized",
			zap.String("type", providerCfg.Type),
			zap.String("model", providerCfg.ModelName),
			zap.Int("rate_limit", rateLimit))
	}

	return llm.NewMultiProviderClient(clients, cfg.LLM.MaxFailuresBeforeSwitch, logger)
}

// buildDurableStore returns the configured durable store, or nil when none
// is configured or it is unreachable.
func buildDurableStore(cfg *config.Config, logger *zap.Logger) repository.ReportStore {
	switch cfg.Database.Type {
	case "postgres":
		store, err := repository.NewPostgresStore(cfg.Database.URL, cfg.Database.MigrationsPath, logger)
		if err != nil {
			logger.Warn("Postgres unreachable, running with in-memory storage only", zap.Error(err))
			return nil
		}
		return store
	case "sqlite":
		os.MkdirAll("./data", 0755)
		store, err := repository.NewSQLiteStore(cfg.Database.Path, logger)
		if err != nil {
			logger.Warn("SQLite unavailable, running with in-memory storage only", zap.Error(err))
			return nil
		}
		return store
	case "none":
		return nil
	default:
		logger.Warn("Unknown database type, running with in-memory storage only",
			zap.String("type", cfg.Database.Type))
		return nil
	}
}
