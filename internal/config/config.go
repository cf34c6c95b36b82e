package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port       string
	Env        string
	AppURL     string
	JWTSecret  string
	CronSecret string

	DB       DatabaseConfig
	Redis    RedisConfig
	Midtrans MidtransConfig
	Kafka    KafkaConfig
	Worker   WorkerConfig
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// MidtransConfig contains credentials for the Midtrans gateway.
type MidtransConfig struct {
	ServerKey    string
	ClientKey    string
	IsProduction bool
}

// KafkaConfig contains broker configuration for the status event stream.
// Publishing is disabled when Brokers is empty.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// WorkerConfig contains tuning for the reconcile sweep.
type WorkerConfig struct {
	SweepInterval time.Duration
	PendingAge    time.Duration
	BatchSize     int
	StatusTimeout time.Duration
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.AppURL = getEnv("APP_URL", "http://localhost:3000")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")
	cfg.CronSecret = getEnv("CRON_SECRET", "")

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// Midtrans
	cfg.Midtrans = MidtransConfig{
		ServerKey:    strings.TrimSpace(getEnv("MIDTRANS_SERVER_KEY", "")),
		ClientKey:    strings.TrimSpace(getEnv("MIDTRANS_CLIENT_KEY", "")),
		IsProduction: getEnv("MIDTRANS_IS_PRODUCTION", "false") == "true",
	}

	// Kafka (optional)
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.Kafka.Brokers = strings.Split(brokers, ",")
	}
	cfg.Kafka.Topic = getEnv("KAFKA_TOPIC", "transaction.status")

	// Worker (durations + batch cap)
	var err error
	if cfg.Worker.SweepInterval, err = parseDurationEnv("SWEEP_INTERVAL", "5m"); err != nil {
		return nil, fmt.Errorf("invalid SWEEP_INTERVAL: %w", err)
	}
	if cfg.Worker.PendingAge, err = parseDurationEnv("SWEEP_PENDING_AGE", "30m"); err != nil {
		return nil, fmt.Errorf("invalid SWEEP_PENDING_AGE: %w", err)
	}
	if cfg.Worker.StatusTimeout, err = parseDurationEnv("SWEEP_STATUS_TIMEOUT", "10s"); err != nil {
		return nil, fmt.Errorf("invalid SWEEP_STATUS_TIMEOUT: %w", err)
	}
	cfg.Worker.BatchSize = getEnvInt("SWEEP_BATCH_SIZE", 50)
	if cfg.Worker.BatchSize < 1 {
		return nil, errors.New("SWEEP_BATCH_SIZE must be >= 1")
	}

	// Basic validation for DB parameters.
	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
		return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set for authentication")
	}

	// The engine still starts without a server key so forensics and the admin
	// surface keep working; signature checks then reject every webhook.
	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
