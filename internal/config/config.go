package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

const (
	DriverPostgres = "postgres"
	DriverSupabase = "supabase"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	Port            string
	Environment     string
	LogLevel        string
	StoreDriver     string
	DatabaseURL     string
	SupabaseURL     string
	SupabaseAnonKey string
	MongoDBURI      string
	MongoDBPassword string
	MongoDBDatabase string
	AMQPURL         string
	AllowedOrigins  []string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:            getEnvWithDefault("PORT", "8080"),
		Environment:     getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:        getEnvWithDefault("LOG_LEVEL", "info"),
		StoreDriver:     strings.ToLower(getEnvWithDefault("STORE_DRIVER", DriverPostgres)),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		SupabaseURL:     os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey: os.Getenv("SUPABASE_URL_ANON_KEY"),
		MongoDBURI:      os.Getenv("MONGODB_URI"),
		MongoDBPassword: os.Getenv("MONGODB_PASSWORD"),
		MongoDBDatabase: getEnvWithDefault("MONGODB_DATABASE", "calendar"),
		AMQPURL:         os.Getenv("AMQP_URL"),
		AllowedOrigins:  splitList(getEnvWithDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")),
	}

	// Validate required fields for the selected store
	switch cfg.StoreDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	case DriverSupabase:
		if cfg.SupabaseURL == "" {
			return nil, fmt.Errorf("SUPABASE_URL is required")
		}
		if cfg.SupabaseAnonKey == "" {
			return nil, fmt.Errorf("SUPABASE_URL_ANON_KEY is required")
		}
	case DriverMongo:
		if cfg.MongoDBURI == "" {
			return nil, fmt.Errorf("MONGODB_URI is required")
		}
	case DriverMemory:
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q (expected postgres, supabase, mongo or memory)", cfg.StoreDriver)
	}

	if _, err := cfg.SlogLevel(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}
