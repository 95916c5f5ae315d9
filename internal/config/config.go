package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Review   ReviewConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	AuditLogFilePath   string
	FeedLogFilePath    string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	AuditTopic         string
}

type DatabaseConfig struct {
	Connection string
	// silent, error, warn or info
	LogLevel string
}

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
)

type StorageConfig struct {
	Driver string
}

type CacheConfig struct {
	Driver          string
	ProposalTTL     time.Duration
	NudgeSessionTTL time.Duration
}

type AuthConfig struct {
	JwtSecret string
}

type TracingConfig struct {
	Enabled bool
	// OTLP HTTP collector, host:port.
	Endpoint    string
	ServiceName string
}

type ReviewConfig struct {
	DefaultPageSize int
	MaxPageSize     int
	// Required profile keys an extraction is nudged for when missing.
	RequiredFields []string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			AuditLogFilePath:   getEnv("AUDIT_LOG_FILE_PATH", "logs/review_audit.log"),
			FeedLogFilePath:    getEnv("FEED_LOG_FILE_PATH", "logs/review_feed.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			AuditTopic:         getEnv("REVIEW_AUDIT_TOPIC_NAME", "REVIEW_AUDIT"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			LogLevel:   getEnv("DB_LOG_LEVEL", "warn"),
		},
		Storage: StorageConfig{
			Driver: getEnv("STORAGE_DRIVER", StorageDriverPostgres),
		},
		Cache: CacheConfig{
			Driver:          getEnv("CACHE_DRIVER", CacheDriverMemory),
			ProposalTTL:     getEnvAsDuration("PROPOSAL_TTL", 24*time.Hour),
			NudgeSessionTTL: getEnvAsDuration("NUDGE_SESSION_TTL", 2*time.Hour),
		},
		Auth: AuthConfig{
			JwtSecret: getEnv("JWT_SECRET", ""),
		},
		Review: ReviewConfig{
			DefaultPageSize: getEnvAsInt("REVIEW_DEFAULT_PAGE_SIZE", 50),
			MaxPageSize:     getEnvAsInt("REVIEW_MAX_PAGE_SIZE", 200),
			RequiredFields:  getEnvAsList("REVIEW_REQUIRED_FIELDS", []string{"fullName", "primaryMobile"}),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "customer-insight-be"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	strValue, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(strValue, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
