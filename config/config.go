package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all configuration for the front desk service
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	Pricing  PricingConfig
	Review   ReviewConfig
	Events   EventsConfig
	CORS     CORSConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port        string
	Environment string // development, staging, production
	LogLevel    string // debug, info, warn, error
}

// StoreConfig selects where rooms, bookings and payments live
type StoreConfig struct {
	Driver       string // memory, mysql, postgres
	SeedFixtures bool
}

// DatabaseConfig is only used by the mysql and postgres drivers
type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type PricingConfig struct {
	NightlyRate      decimal.Decimal
	SettlementPolicy string // lenient, strict
}

// ReviewConfig configures the advisory AI form reviewer; empty Endpoint disables it
type ReviewConfig struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// EventsConfig configures RabbitMQ publishing; empty AMQPURL disables it
type EventsConfig struct {
	AMQPURL string
	Queue   string
}

type CORSConfig struct {
	AllowedOrigins []string
}

const (
	DriverMemory   = "memory"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the configuration from environment variables only.
func FromEnv() (*Config, error) {
	seed, err := getEnvAsBool("SEED_FIXTURES", true)
	if err != nil {
		return nil, err
	}
	rate, err := decimal.NewFromString(getEnv("NIGHTLY_RATE", "800"))
	if err != nil || !rate.IsPositive() {
		return nil, fmt.Errorf("invalid NIGHTLY_RATE %q", os.Getenv("NIGHTLY_RATE"))
	}
	timeout, err := getEnvAsDuration("AI_REVIEW_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Store: StoreConfig{
			Driver:       strings.ToLower(getEnv("STORE_DRIVER", DriverMemory)),
			SeedFixtures: seed,
		},
		Database: DatabaseConfig{
			URL:      firstNonEmpty(os.Getenv("MYSQL_URL"), os.Getenv("DATABASE_URL")),
			Host:     getEnv("DB_HOST", "127.0.0.1"),
			Port:     os.Getenv("DB_PORT"),
			User:     getEnv("DB_USER", "root"),
			Password: os.Getenv("DB_PASS"),
			Name:     getEnv("DB_NAME", "hotel_frontdesk"),
		},
		Pricing: PricingConfig{
			NightlyRate:      rate,
			SettlementPolicy: strings.ToLower(getEnv("SETTLEMENT_POLICY", "lenient")),
		},
		Review: ReviewConfig{
			Endpoint: os.Getenv("AI_REVIEW_ENDPOINT"),
			APIKey:   os.Getenv("AI_REVIEW_API_KEY"),
			Timeout:  timeout,
		},
		Events: EventsConfig{
			AMQPURL: firstNonEmpty(os.Getenv("AMQP_URL"), os.Getenv("RABBITMQ_URL")),
			Queue:   getEnv("EVENTS_QUEUE", "frontdesk.events"),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseList(os.Getenv("CORS_ORIGINS")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverMySQL, DriverPostgres:
	default:
		return fmt.Errorf("invalid STORE_DRIVER %q: must be memory, mysql or postgres", c.Store.Driver)
	}
	switch c.Pricing.SettlementPolicy {
	case "lenient", "strict":
	default:
		return fmt.Errorf("invalid SETTLEMENT_POLICY %q: must be lenient or strict", c.Pricing.SettlementPolicy)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// parseList splits a comma separated value, dropping blank entries.
func parseList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
