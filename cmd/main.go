package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bilgisen/headlines/internal/ai"
	"github.com/bilgisen/headlines/internal/api"
	"github.com/bilgisen/headlines/internal/cache"
	"github.com/bilgisen/headlines/internal/config"
	"github.com/bilgisen/headlines/internal/logger"
	"github.com/bilgisen/headlines/internal/pipeline"
	"github.com/bilgisen/headlines/internal/scrape"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

func main() {
	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Initialize logger
	output := cfg.LogFile
	if output == "" {
		output = "stdout"
	}
	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: output,
		Pretty: !cfg.IsProduction() && cfg.LogFile == "",
	}); err != nil {
		panic(err)
	}

	log := logger.Get()
	log.Info().Str("env", cfg.Env).Msg("Starting application...")

	limiter := newLimiter(cfg, log)
	if limiter != nil {
		defer func() {
			log.Info().Msg("Closing rate limiter...")
			if err := limiter.Close(); err != nil {
				log.Error().Err(err).Msg("Error closing rate limiter")
			}
		}()
	}

	fetcher := scrape.NewFetcher(scrape.FetcherConfig{
		Timeout:   cfg.FetchTimeout,
		UserAgent: cfg.UserAgent,
	}, log)

	extractor, err := scrape.NewExtractor(cfg.SiteBaseURL, scrape.Selectors{
		Headline: cfg.HeadlineSelector,
		Picture:  cfg.PictureSelector,
		Body:     cfg.BodySelector,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize extractor")
	}

	translator, err := ai.NewTranslator(ai.TranslatorConfig{
		Endpoint: cfg.TranslationURL,
		APIKey:   cfg.TranslationAPIKey,
		Timeout:  cfg.TranslationTimeout,
		Language: cfg.TargetLanguage,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize translator")
	}

	orchestrator := pipeline.New(pipeline.Config{
		HomepageURL:  cfg.HomepageURL(),
		SourcePrefix: cfg.SourcePrefix,
		Language:     cfg.TargetLanguage,
	}, fetcher, extractor, translator, log)

	app := api.NewServer(api.ServerConfig{
		HTTPTimeout: cfg.HTTPTimeout,
		CORSOrigins: cfg.CORSOrigins,
	}, api.NewHandlers(orchestrator, log), limiter, log)

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Str("homepage", cfg.HomepageURL()).Msg("Starting server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

// newLimiter picks Redis when REDIS_URL is set and reachable, and an
// in-process limiter otherwise. A zero per-minute limit disables rate limiting.
func newLimiter(cfg *config.Config, log *zerolog.Logger) cache.Limiter {
	if cfg.RateLimitPerMinute <= 0 {
		log.Info().Msg("Rate limiting disabled")
		return nil
	}

	if cfg.RedisURL != "" {
		limiter, err := cache.NewRedisLimiter(cfg.RedisURL, cfg.RateLimitPerMinute, time.Minute)
		if err == nil {
			log.Info().Int("per_minute", cfg.RateLimitPerMinute).Msg("Using Redis rate limiter")
			return limiter
		}
		log.Warn().Err(err).Msg("Redis unavailable, falling back to in-memory rate limiter")
	}

	log.Info().Int("per_minute", cfg.RateLimitPerMinute).Msg("Using in-memory rate limiter")
	return cache.NewMemoryLimiter(cfg.RateLimitPerMinute, time.Minute)
}
