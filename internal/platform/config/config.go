package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr                string
	Environment         string
	FrontendDir         string
	DatabaseURL         string
	RunMigrations       bool
	ReportServiceURL    string
	ReportTimeout       time.Duration
	MaxBodyBytes        int64
	ExportRatePerMinute int
	MetricsEnabled      bool
	SeedDemo            bool
	SeedFile            string
	LogLevel            string
	CORSAllowedOrigins  []string
	ShutdownTimeout     time.Duration
	TrustProxyHeaders   bool
}

func Load() Config {
	return Config{
		Addr:                getEnv("APP_ADDR", ":8080"),
		Environment:         getEnv("APP_ENV", "development"),
		FrontendDir:         getEnv("FRONTEND_DIR", "frontend/dist"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		RunMigrations:       getEnvBool("RUN_MIGRATIONS", true),
		ReportServiceURL:    getEnv("REPORT_SERVICE_URL", ""),
		ReportTimeout:       getEnvDuration("REPORT_TIMEOUT", 30*time.Second),
		MaxBodyBytes:        int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		ExportRatePerMinute: getEnvInt("EXPORT_RATE_PER_MINUTE", 6),
		MetricsEnabled:      getEnvBool("METRICS_ENABLED", true),
		SeedDemo:            getEnvBool("SEED_DEMO", true),
		SeedFile:            getEnv("SEED_FILE", ""),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins:  getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:8080"}),
		ShutdownTimeout:     getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		TrustProxyHeaders:   getEnvBool("TRUST_PROXY_HEADERS", false),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("APP_ADDR is required")
	}
	if c.ReportServiceURL != "" {
		parsed, err := url.Parse(c.ReportServiceURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("REPORT_SERVICE_URL must be an absolute URL")
		}
	}
	if c.Environment == "production" && strings.TrimSpace(c.ReportServiceURL) == "" {
		return fmt.Errorf("REPORT_SERVICE_URL must be set in production")
	}
	if c.ReportTimeout <= 0 {
		return fmt.Errorf("REPORT_TIMEOUT must be positive")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.ExportRatePerMinute <= 0 {
		return fmt.Errorf("EXPORT_RATE_PER_MINUTE must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error")
	}
	return level, nil
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}
