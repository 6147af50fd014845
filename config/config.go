package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"

	"roulette/database"
	"roulette/engine"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string
	GuildID      string // Guild to register slash commands in; empty registers globally

	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// HTTP API configuration
	HTTPAddr string // Empty disables the HTTP API

	// NATS configuration
	NATSServers string // Empty disables event streaming

	// Game configuration
	StartingBalance  int64
	PayoutMultiplier int64 // prize = bet * PayoutMultiplier on a win
	HistoryLimit     int   // Bet records kept per player
	MaxBet           int64 // 0 means no upper limit
	SpinDuration     time.Duration
	Probability      engine.ProbabilityConfig

	// Logging
	LogLevel  string
	LogFormat string // "text" or "json"

	// Metrics
	MetricsExporter string // "none", "console" or "otlp"
	OTLPEndpoint    string
	MetricsInterval time.Duration

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// load loads configuration from a .env file (if present) and environment variables
func load() (*Config, error) {
	// Real environment variables win over .env
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{
		// Discord
		DiscordToken: os.Getenv("DISCORD_TOKEN"),
		GuildID:      os.Getenv("GUILD_ID"),

		// Database
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		// HTTP
		HTTPAddr: os.Getenv("HTTP_ADDR"),

		// NATS
		NATSServers: os.Getenv("NATS_SERVERS"),

		// Game settings with defaults
		StartingBalance:  0,
		PayoutMultiplier: 2,
		HistoryLimit:     50,
		MaxBet:           0,
		SpinDuration:     2500 * time.Millisecond,

		// Logging
		LogLevel:  getEnvWithDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvWithDefault("LOG_FORMAT", "text"),

		// Metrics
		MetricsExporter: getEnvWithDefault("METRICS_EXPORTER", "none"),
		OTLPEndpoint:    getEnvWithDefault("OTLP_ENDPOINT", "localhost:4317"),
		MetricsInterval: 60 * time.Second,

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	var err error
	if config.StartingBalance, err = getInt64("STARTING_BALANCE", config.StartingBalance); err != nil {
		return nil, err
	}
	if config.PayoutMultiplier, err = getInt64("PAYOUT_MULTIPLIER", config.PayoutMultiplier); err != nil {
		return nil, err
	}
	if config.MaxBet, err = getInt64("MAX_BET", config.MaxBet); err != nil {
		return nil, err
	}
	if limit := os.Getenv("HISTORY_LIMIT"); limit != "" {
		parsed, err := strconv.Atoi(limit)
		if err != nil {
			return nil, fmt.Errorf("invalid HISTORY_LIMIT %q: %w", limit, err)
		}
		config.HistoryLimit = parsed
	}
	if duration := os.Getenv("SPIN_DURATION"); duration != "" {
		parsed, err := time.ParseDuration(duration)
		if err != nil {
			return nil, fmt.Errorf("invalid SPIN_DURATION %q: %w", duration, err)
		}
		config.SpinDuration = parsed
	}
	if interval := os.Getenv("METRICS_INTERVAL"); interval != "" {
		parsed, err := time.ParseDuration(interval)
		if err != nil {
			return nil, fmt.Errorf("invalid METRICS_INTERVAL %q: %w", interval, err)
		}
		config.MetricsInterval = parsed
	}

	config.Probability, err = LoadProbabilityConfig(os.Getenv("PROBABILITY_CONFIG"))
	if err != nil {
		return nil, err
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.PayoutMultiplier < 1 {
		return fmt.Errorf("PAYOUT_MULTIPLIER must be at least 1, got %d", c.PayoutMultiplier)
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("HISTORY_LIMIT must be positive, got %d", c.HistoryLimit)
	}
	if c.MaxBet < 0 {
		return fmt.Errorf("MAX_BET cannot be negative, got %d", c.MaxBet)
	}
	if c.StartingBalance < 0 {
		return fmt.Errorf("STARTING_BALANCE cannot be negative, got %d", c.StartingBalance)
	}
	if c.SpinDuration < 0 {
		return fmt.Errorf("SPIN_DURATION cannot be negative, got %s", c.SpinDuration)
	}
	switch c.MetricsExporter {
	case "none", "console", "otlp":
	default:
		return fmt.Errorf("METRICS_EXPORTER must be none, console or otlp, got %q", c.MetricsExporter)
	}
	if c.MetricsExporter != "none" && c.MetricsInterval <= 0 {
		return fmt.Errorf("METRICS_INTERVAL must be positive, got %s", c.MetricsInterval)
	}

	if c.Environment != "test" {
		if c.DiscordToken == "" && c.HTTPAddr == "" {
			return fmt.Errorf("DISCORD_TOKEN or HTTP_ADDR is required")
		}
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required")
		}
		if c.DatabaseName != "" && strings.TrimSpace(c.DatabaseName) == "" {
			return fmt.Errorf("DATABASE_NAME cannot be empty when provided")
		}
	}
	return nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return parsed, nil
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:      "test",
		PayoutMultiplier: 2,
		HistoryLimit:     50,
		SpinDuration:     0,
		Probability:      engine.DefaultProbabilityConfig(),
		LogLevel:         "debug",
		LogFormat:        "text",
		MetricsExporter:  "none",
		MetricsInterval:  60 * time.Second,
	}
}
