package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Yashr23-ui/agentic-honeypot-api/internal/api"
	"github.com/Yashr23-ui/agentic-honeypot-api/internal/api/handlers"
	"github.com/Yashr23-ui/agentic-honeypot-api/internal/config"
	"github.com/Yashr23-ui/agentic-honeypot-api/internal/domain/services"
	"github.com/Yashr23-ui/agentic-honeypot-api/internal/domain/services/ai"
	"github.com/Yashr23-ui/agentic-honeypot-api/internal/domain/services/ml"
	"github.com/Yashr23-ui/agentic-honeypot-api/internal/infrastructure/cache"
	"github.com/Yashr23-ui/agentic-honeypot-api/internal/infrastructure/callback"
	"github.com/Yashr23-ui/agentic-honeypot-api/internal/infrastructure/store"
	"github.com/Yashr23-ui/agentic-honeypot-api/pkg/logger"
)

func main() {
	// .env is optional; real deployments set environment variables directly
	_ = godotenv.Load()

	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	var log *logger.Logger
	if cfg.App.Environment == "production" {
		log = logger.NewProduction()
	} else {
		log = logger.NewDevelopment()
	}
	logger.SetGlobal(log)

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Str("version", cfg.App.Version).
		Msg("starting honeypot API")

	if cfg.Auth.APIKey == "" {
		log.Fatal().Msg("HONEYPOT_API_KEY is not set")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Classifier artifacts are mandatory; the service cannot score without them.
	pipeline, err := ml.Load(cfg.ML.VectorizerPath, cfg.ML.ModelPath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load classifier artifacts")
	}

	sessions, redisCache := initInfrastructure(ctx, cfg, log)
	defer func() {
		if closer, ok := sessions.(interface{ Close() }); ok {
			closer.Close()
		}
		if redisCache != nil {
			redisCache.Close()
		}
	}()

	detector := services.NewDetector(pipeline, log)

	var providers []ai.Provider
	if cfg.LLM.OpenAIAPIKey != "" {
		providers = append(providers, ai.NewOpenAIProvider(cfg.LLM.OpenAIAPIKey, cfg.LLM.OpenAIModel))
	}
	if cfg.LLM.GeminiAPIKey != "" {
		providers = append(providers, ai.NewGeminiProvider(cfg.LLM.GeminiAPIKey, cfg.LLM.GeminiModel))
	}
	if len(providers) == 0 {
		log.Warn().Msg("no LLM providers configured, replies fall back to canned text")
	}
	replies := ai.NewChain(cfg.LLM.Timeout, log, providers...)

	sender := callback.NewHTTPSender(cfg.Callback, log)
	service := services.NewHoneypotService(detector, sessions, replies, sender, log)

	h := handlers.NewHandlers(handlers.Dependencies{
		Service: service,
		Store:   sessions,
		Cache:   redisCache,
		Logger:  log,
	})

	router := api.NewRouter(*cfg, h, redisCache, log)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().
			Str("addr", httpServer.Addr).
			Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("shutdown complete")
}

// initInfrastructure selects the session store driver and connects optional
// Redis. An explicitly configured postgres store failing to connect is fatal;
// Redis failure only disables rate limiting.
func initInfrastructure(ctx context.Context, cfg *config.Config, log *logger.Logger) (store.SessionStore, *cache.RedisCache) {
	var sessions store.SessionStore
	switch cfg.Store.Driver {
	case "postgres":
		pg, err := store.NewPostgres(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to PostgreSQL session store")
		}
		sessions = pg
		log.Info().Msg("using PostgreSQL session store")
	default:
		sessions = store.NewMemoryStore()
		log.Info().Msg("using in-memory session store")
	}

	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled {
		var err error
		redisCache, err = cache.NewRedis(ctx, cfg.Redis, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without rate limiting")
			redisCache = nil
		}
	}

	return sessions, redisCache
}
