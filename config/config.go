package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	HTTP     ServerConfig
	MySQL    MySQLConfig
	Log      LogConfig
	Paystack PaystackConfig
	OpenAI   OpenAIConfig
	Billing  BillingConfig
}

type AppConfig struct {
	ServiceName string
	StaticDir   string
}

type ServerConfig struct {
	Host string
	Port string
}

type MySQLConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LogConfig struct {
	Level string
}

// PaystackConfig carries the webhook shared secret and the deployment's plan
// code table. SecretKey may be empty; signature verification then always fails.
type PaystackConfig struct {
	SecretKey       string
	PlanCodePremium string
	PlanCodePro     string
	Currency        string
	HTTPTimeout     time.Duration
}

type OpenAIConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	HTTPTimeout time.Duration
}

type BillingConfig struct {
	// StoreTimeout bounds each persistence attempt during reconciliation so a
	// slow store cannot hold the webhook response past Paystack's delivery
	// timeout.
	StoreTimeout time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		return nil, errors.New("MYSQL_DSN environment variable is required")
	}

	return &Config{
		App: AppConfig{
			ServiceName: getEnv("APP_SERVICE_NAME", "math-tutor"),
			StaticDir:   getEnv("APP_STATIC_DIR", "public"),
		},
		HTTP: ServerConfig{
			Host: getEnv("HTTP_HOST", "0.0.0.0"),
			Port: getEnv("HTTP_PORT", "8080"),
		},
		MySQL: MySQLConfig{
			DSN:             mysqlDSN,
			MaxOpenConns:    getIntEnv("MYSQL_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getIntEnv("MYSQL_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getMinutesEnv("MYSQL_CONN_MAX_LIFETIME_MINUTES", 30*time.Minute),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Paystack: PaystackConfig{
			SecretKey:       getEnv("PAYSTACK_SECRET_KEY", ""),
			PlanCodePremium: getEnv("PAYSTACK_PLAN_CODE_PREMIUM", ""),
			PlanCodePro:     getEnv("PAYSTACK_PLAN_CODE_PRO", ""),
			Currency:        getEnv("PAYSTACK_CURRENCY", "GHS"),
			HTTPTimeout:     getSecondsEnv("PAYSTACK_HTTP_TIMEOUT_SECONDS", 10*time.Second),
		},
		OpenAI: OpenAIConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
			HTTPTimeout: getSecondsEnv("OPENAI_HTTP_TIMEOUT_SECONDS", 30*time.Second),
		},
		Billing: BillingConfig{
			StoreTimeout: getSecondsEnv("BILLING_STORE_TIMEOUT_SECONDS", 5*time.Second),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getMinutesEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}

func getSecondsEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}
