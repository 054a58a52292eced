package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	PaymentStorePostgres = "postgres"
	PaymentStoreSQLite   = "sqlite"
	PaymentStoreUpstream = "upstream"
)

type Config struct {
	Database  DatabaseConfig
	SQLite    SQLiteConfig
	JWT       JWTConfig
	App       AppConfig
	Upstream  UpstreamConfig
	Payment   PaymentConfig
	DateRange DateRangeConfig
	Summary   SummaryConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type SQLiteConfig struct {
	Path string
}

// JWTConfig holds the keys the ponto API signs its tokens with
type JWTConfig struct {
	Secret      string
	AdminSecret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	TimezoneName   string
	Timezone       *time.Location
	Locale         string
	AllowedOrigins []string
}

// UpstreamConfig points at the remote ponto API
type UpstreamConfig struct {
	BaseURL string
	// Zero means no client-side timeout; the request context still applies.
	Timeout time.Duration
}

type PaymentConfig struct {
	Store string
}

type DateRangeConfig struct {
	ResetDelay    time.Duration
	IdleTTL       time.Duration
	MaxPerSession int
}

type SummaryConfig struct {
	MonthlyFetchConcurrency int
}

func Load() (*Config, error) {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "ponto_reports"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
	config.SQLite = SQLiteConfig{
		Path: getEnv("SQLITE_PATH", "ponto-reports.db"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	tzName := getEnv("APP_TIMEZONE", "America/Sao_Paulo")
	tz, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		TimezoneName:   tzName,
		Timezone:       tz,
		Locale:         getEnv("APP_LOCALE", "pt-BR"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
	}

	upstreamTimeout, err := getEnvDuration("UPSTREAM_TIMEOUT", 0)
	if err != nil {
		return nil, err
	}
	config.Upstream = UpstreamConfig{
		BaseURL: strings.TrimRight(getEnv("UPSTREAM_BASE_URL", ""), "/"),
		Timeout: upstreamTimeout,
	}

	config.JWT = JWTConfig{
		Secret:      getEnv("UPSTREAM_JWT_SECRET", ""),
		AdminSecret: getEnv("ADMIN_JWT_SECRET", ""),
	}

	config.Payment = PaymentConfig{
		Store: strings.ToLower(getEnv("PAYMENT_STORE", PaymentStoreUpstream)),
	}

	resetDelay, err := getEnvDuration("DATE_RANGE_RESET_DELAY", 300*time.Millisecond)
	if err != nil {
		return nil, err
	}
	idleTTL, err := getEnvDuration("DATE_RANGE_IDLE_TTL", 30*time.Minute)
	if err != nil {
		return nil, err
	}
	maxPerSession, err := strconv.Atoi(getEnv("DATE_RANGE_MAX_PER_SESSION", "16"))
	if err != nil {
		return nil, fmt.Errorf("invalid DATE_RANGE_MAX_PER_SESSION: %w", err)
	}
	config.DateRange = DateRangeConfig{
		ResetDelay:    resetDelay,
		IdleTTL:       idleTTL,
		MaxPerSession: maxPerSession,
	}

	concurrency, err := strconv.Atoi(getEnv("MONTHLY_FETCH_CONCURRENCY", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid MONTHLY_FETCH_CONCURRENCY: %w", err)
	}
	config.Summary = SummaryConfig{MonthlyFetchConcurrency: concurrency}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("UPSTREAM_BASE_URL is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("UPSTREAM_JWT_SECRET is required")
	}
	if c.JWT.AdminSecret == "" {
		return fmt.Errorf("ADMIN_JWT_SECRET is required")
	}
	switch c.Payment.Store {
	case PaymentStorePostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required when PAYMENT_STORE=postgres")
		}
	case PaymentStoreSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("SQLITE_PATH is required when PAYMENT_STORE=sqlite")
		}
	case PaymentStoreUpstream:
	default:
		return fmt.Errorf("PAYMENT_STORE must be one of postgres, sqlite, upstream (got %q)", c.Payment.Store)
	}
	if c.DateRange.ResetDelay < 0 {
		return fmt.Errorf("DATE_RANGE_RESET_DELAY must not be negative")
	}
	if c.Summary.MonthlyFetchConcurrency < 1 {
		return fmt.Errorf("MONTHLY_FETCH_CONCURRENCY must be at least 1")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback []string) []string {
	value := getEnv(env, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
