package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// JWTSecretName is the setting read from Secrets Manager. The secrets client
// resolves it under the storefront/ prefix.
const JWTSecretName = "JWT_SECRET"

type Config struct {
	Port           string
	Env            string
	RequestTimeout time.Duration

	RedisURL        string
	CartTTL         time.Duration
	SessionTTL      time.Duration
	CheckoutIdleTTL time.Duration

	JWTSecret string
	TokenTTL  time.Duration

	PostgresHost     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresPort     string
	PostgresSSLMode  string
	PostgresTimeZone string

	ShippingFlatRate  decimal.Decimal
	TaxRate           decimal.Decimal
	LowStockThreshold int

	OrderSNSTopicARN string
	AWSUseSecrets    bool

	RateLimitRPS   float64
	RateLimitBurst int
	AllowedOrigins []string
}

// SecretGetter resolves named secrets.
type SecretGetter interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("APP_ENV", "development"),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),

		RedisURL:        os.Getenv("REDIS_URL"),
		CartTTL:         getEnvDuration("CART_TTL", 7*24*time.Hour),
		SessionTTL:      getEnvDuration("SESSION_TTL", 24*time.Hour),
		CheckoutIdleTTL: getEnvDuration("CHECKOUT_IDLE_TTL", 30*time.Minute),

		JWTSecret: strings.TrimSpace(os.Getenv("JWT_SECRET")),
		TokenTTL:  getEnvDuration("TOKEN_TTL", 24*time.Hour),

		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresTimeZone: getEnv("POSTGRES_TIMEZONE", "UTC"),

		LowStockThreshold: getEnvInt("LOW_STOCK_THRESHOLD", 5),

		OrderSNSTopicARN: os.Getenv("ORDER_SNS_TOPIC_ARN"),
		AWSUseSecrets:    os.Getenv("AWS_USE_SECRETS") == "true",

		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 50),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:4200")),
	}

	var err error
	if cfg.ShippingFlatRate, err = decimal.NewFromString(getEnv("SHIPPING_FLAT_RATE", "15.00")); err != nil {
		return nil, fmt.Errorf("invalid SHIPPING_FLAT_RATE: %w", err)
	}
	if cfg.TaxRate, err = decimal.NewFromString(getEnv("TAX_RATE", "0.08")); err != nil {
		return nil, fmt.Errorf("invalid TAX_RATE: %w", err)
	}
	if cfg.RateLimitRPS, err = strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "10"), 64); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}

	if cfg.JWTSecret == "" {
		if cfg.Env == "production" {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = "dev-only-secret"
	}
	return cfg, nil
}

// ApplySecrets overrides values from Secrets Manager when AWS_USE_SECRETS is set.
func (c *Config) ApplySecrets(ctx context.Context, sm SecretGetter) error {
	if !c.AWSUseSecrets || sm == nil {
		return nil
	}
	v, err := sm.GetSecret(ctx, JWTSecretName)
	if err != nil {
		return err
	}
	if v = strings.TrimSpace(v); v != "" {
		c.JWTSecret = v
	}
	return nil
}

// PostgresEnabled reports whether order history should go to postgres.
func (c *Config) PostgresEnabled() bool {
	return c.PostgresHost != "" && c.PostgresUser != "" && c.PostgresDB != ""
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort, c.PostgresSSLMode, c.PostgresTimeZone,
	)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(strings.TrimSuffix(part, "/")); p != "" {
			out = append(out, p)
		}
	}
	return out
}
