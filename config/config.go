package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Record store backends
const (
	StoreMongo  = "mongo"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	JWTSecret            string
	JWTAccessExpiration  time.Duration
	JWTRefreshExpiration time.Duration
	FrontendURL          string

	MongoDBURI      string
	MongoDBDatabase string
	RecordStore     string
	SQLitePath      string

	RedisURL      string
	StatsCacheTTL time.Duration

	Groq     GroqConfig
	Analysis AnalysisConfig

	DraftTTL      time.Duration
	SweepInterval time.Duration

	OTel OTelConfig
}

type GroqConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type AnalysisConfig struct {
	Timeout     time.Duration
	MaxRetries  int
	Concurrency int
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
}

func Load() *Config {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", ""),

		JWTSecret:            getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTAccessExpiration:  getEnvDuration("JWT_ACCESS_EXPIRATION", 15*time.Minute),
		JWTRefreshExpiration: getEnvDuration("JWT_REFRESH_EXPIRATION", 168*time.Hour),
		FrontendURL:          getEnv("FRONTEND_URL", "http://localhost:3000"),

		MongoDBURI:      getEnv("MONGODB_URI", ""),
		MongoDBDatabase: getEnv("MONGODB_DATABASE", "essaycoach"),
		RecordStore:     getEnv("RECORD_STORE", StoreMongo),
		SQLitePath:      getEnv("SQLITE_PATH", "data/records.db"),

		RedisURL:      getEnv("REDIS_URL", ""),
		StatsCacheTTL: getEnvDuration("STATS_CACHE_TTL", 24*time.Hour),

		Groq: GroqConfig{
			APIKey:  getEnv("GROQ_API_KEY", ""),
			BaseURL: getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
			Model:   getEnv("GROQ_MODEL", "llama3-70b-8192"),
		},
		Analysis: AnalysisConfig{
			Timeout:     getEnvDuration("ANALYSIS_TIMEOUT", 30*time.Second),
			MaxRetries:  getEnvInt("ANALYSIS_MAX_RETRIES", 3),
			Concurrency: max(getEnvInt("ANALYSIS_CONCURRENCY", 4), 1),
		},

		DraftTTL:      getEnvDuration("DRAFT_TTL", 30*24*time.Hour),
		SweepInterval: getEnvDuration("SWEEP_INTERVAL", time.Hour),

		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "essaycoach-be"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", value)
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", value)
		return defaultValue
	}
	return d
}
