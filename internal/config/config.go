package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	pkgRetry "github.com/legalfox/legalfox-backend/internal/pkg/retry"
)

// Config holds the configuration for both binaries. Each builder validates
// the part it actually needs, so the HTTP backend can run without a bot
// token and vice versa.
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	// PublicBaseURL is used to build downloadable file links.
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`

	// FilesDir is where rendered documents are stored.
	FilesDir string `env:"FILES_DIR" envDefault:"files"`

	// External service configurations
	LLMCfg      LLMConnectorConfig `envPrefix:"LLM_"`
	GigaChatCfg GigaChatConfig     `envPrefix:"GIGACHAT_"`

	// EnableMocks replaces the completion connector with a canned one,
	// so the HTTP backend can be exercised without a remote model.
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Telegram bot configuration
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// TelegramConfig holds calculator bot configuration.
type TelegramConfig struct {
	BotToken           string        `env:"BOT_TOKEN"`
	UpdateTimeout      int           `env:"UPDATE_TIMEOUT" envDefault:"30"`
	RateLimitPerMinute int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	RateLimitBurst     int           `env:"RATE_LIMIT_BURST" envDefault:"5"`
	SessionTTL         time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

// LLMConnectorConfig configures the document-generation completion client.
// APIKey is required by the HTTP backend; its absence is fatal there.
type LLMConnectorConfig struct {
	HTTPClientConfig
	APIKey      string               `env:"API_KEY"`
	Model       string               `env:"MODEL" envDefault:"gpt-4o-mini"`
	Temperature float64              `env:"TEMPERATURE" envDefault:"0.4"`
	MaxTokens   int                  `env:"MAX_TOKENS" envDefault:"1500"`
	Retry       pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// GigaChatConfig configures the advisory completion path. AuthKey is
// optional: without it the advisory feature degrades to a static fallback.
type GigaChatConfig struct {
	HTTPClientConfig
	AuthKey     string        `env:"AUTH_KEY"`
	Scope       string        `env:"SCOPE" envDefault:"GIGACHAT_API_PERS"`
	AuthURL     string        `env:"AUTH_URL" envDefault:"https://ngw.devices.sberbank.ru:9443/api/v2/oauth"`
	Model       string        `env:"MODEL" envDefault:"GigaChat"`
	Temperature float64       `env:"TEMPERATURE" envDefault:"0.4"`
	MaxTokens   int           `env:"MAX_TOKENS" envDefault:"250"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"30m"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"15s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"10s"`
	Url                   string        `env:"SERVICE_URL"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.TelegramCfg.RateLimitPerMinute < 1 || cfg.TelegramCfg.RateLimitPerMinute > 60 {
		return fmt.Errorf("TELEGRAM_RATE_LIMIT_PER_MINUTE must be between 1 and 60, got %d", cfg.TelegramCfg.RateLimitPerMinute)
	}

	if cfg.TelegramCfg.RateLimitBurst < 1 || cfg.TelegramCfg.RateLimitBurst > 20 {
		return fmt.Errorf("TELEGRAM_RATE_LIMIT_BURST must be between 1 and 20, got %d", cfg.TelegramCfg.RateLimitBurst)
	}

	if cfg.TelegramCfg.SessionTTL < time.Minute {
		return fmt.Errorf("TELEGRAM_SESSION_TTL must be at least 1m, got %s", cfg.TelegramCfg.SessionTTL)
	}

	if cfg.GigaChatCfg.TokenTTL < time.Minute {
		return fmt.Errorf("GIGACHAT_TOKEN_TTL must be at least 1m, got %s", cfg.GigaChatCfg.TokenTTL)
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
