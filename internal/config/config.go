package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all configuration for the application.
// It is loaded once at startup and treated as read-only afterwards.
type Config struct {
	// Server configuration
	Port            string        `json:"port" validate:"required,numeric"`
	Env             string        `json:"env"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" validate:"gt=0"`
	HTTPTimeout     time.Duration `json:"http_timeout" validate:"gt=0"`
	CORSOrigins     string        `json:"cors_origins"`

	// News site
	SiteBaseURL      string        `json:"site_base_url" validate:"required,url"`
	SourcePrefix     string        `json:"source_prefix"`
	FetchTimeout     time.Duration `json:"fetch_timeout" validate:"gt=0"`
	UserAgent        string        `json:"user_agent"`
	HeadlineSelector string        `json:"headline_selector" validate:"required"`
	PictureSelector  string        `json:"picture_selector" validate:"required"`
	BodySelector     string        `json:"body_selector" validate:"required"`

	// Translation API
	TranslationURL     string        `json:"translation_url" validate:"required,url"`
	TranslationAPIKey  string        `json:"-" validate:"required"`
	TranslationTimeout time.Duration `json:"translation_timeout" validate:"gt=0"`
	TargetLanguage     string        `json:"target_language" validate:"required"`

	// Rate limiting
	RedisURL           string `json:"redis_url"`
	RateLimitPerMinute int    `json:"rate_limit_per_minute" validate:"gte=0"`

	// Logging
	LogLevel string `json:"log_level" validate:"omitempty,oneof=debug info warn error fatal panic disabled"`
	LogFile  string `json:"log_file"`
}

// Load loads configuration from environment variables and validates it.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("Error loading .env file")
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),
		CORSOrigins:     getEnv("CORS_ORIGINS", "http://localhost:3000"),

		SiteBaseURL:      strings.TrimSuffix(getEnv("SITE_BASE_URL", "https://www.foxnews.com"), "/"),
		SourcePrefix:     getEnv("SOURCE_PREFIX", "FOX: "),
		FetchTimeout:     getEnvAsDuration("FETCH_TIMEOUT", 10*time.Second),
		UserAgent:        getEnv("USER_AGENT", "Mozilla/5.0 (compatible; HeadlinesBot/1.0)"),
		HeadlineSelector: getEnv("HEADLINE_SELECTOR", "h3.title"),
		PictureSelector:  getEnv("PICTURE_SELECTOR", "picture"),
		BodySelector:     getEnv("ARTICLE_BODY_SELECTOR", "div.article-body"),

		TranslationURL:     getEnv("TRANSLATION_API_URL", ""),
		TranslationAPIKey:  getEnv("TRANSLATION_API_KEY", ""),
		TranslationTimeout: getEnvAsDuration("TRANSLATION_TIMEOUT", 60*time.Second),
		TargetLanguage:     getEnv("TARGET_LANGUAGE", "Chinese"),

		RedisURL:           getEnv("REDIS_URL", ""),
		RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 30),

		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFile:  getEnv("LOG_FILE", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(fields, ", "))
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// HomepageURL is the page the top headline is read from.
func (c *Config) HomepageURL() string {
	return c.SiteBaseURL + "/"
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultVal int) int {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Err(err).Str("key", name).Int("default", defaultVal).Msg("Invalid integer, using default")
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Warn().Err(err).Str("key", name).Dur("default", defaultVal).Msg("Invalid duration, using default")
		return defaultVal
	}
	return value
}
