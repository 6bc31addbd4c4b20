package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	aws_pkg "github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/pkg/aws"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Port   string
	AppEnv string

	MongoURI        string
	MongoDB         string
	RedisURL        string
	CatalogCacheTTL time.Duration

	JWTSecret string
	JWTTTL    time.Duration

	CORSOrigins        []string
	RateLimitPerMinute int

	TelegramBotToken        string
	TelegramChatID          int64
	TelegramPolling         bool
	TelegramConversationTTL time.Duration

	StoreTimezone string

	OrderEventsTopicARN string
	MediaBucket         string
	MediaFolder         string
	MediaPublicBaseURL  string

	CloudWatchEnabled  bool
	CloudWatchLogGroup string
	MetricsNamespace   string

	EnforcePurchaseLimits bool
	RejectUnknownProducts bool

	SeedAdminEmail    string
	SeedAdminPassword string
	SeedSampleData    bool
}

// LoadConfig reads configuration from .env and the environment with optional
// Secrets Manager override.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	chatID, err := getEnvInt64("TELEGRAM_CHAT_ID", 0)
	if err != nil {
		return nil, err
	}
	perMinute, err := getEnvInt("RATE_LIMIT_PER_MINUTE", 100)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:                    getEnv("PORT", "5000"),
		AppEnv:                  getEnv("APP_ENV", "development"),
		MongoURI:                os.Getenv("MONGODB_URI"),
		MongoDB:                 getEnv("MONGODB_DB", "betterbite"),
		RedisURL:                os.Getenv("REDIS_URL"),
		CatalogCacheTTL:         getEnvDuration("CATALOG_CACHE_TTL", 10*time.Minute),
		JWTSecret:               os.Getenv("JWT_SECRET"),
		JWTTTL:                  getEnvDuration("JWT_TTL", 7*24*time.Hour),
		CORSOrigins:             splitList(os.Getenv("CORS_ORIGIN")),
		RateLimitPerMinute:      perMinute,
		TelegramBotToken:        os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:          chatID,
		TelegramPolling:         getEnvBool("TELEGRAM_POLLING", true),
		TelegramConversationTTL: getEnvDuration("TELEGRAM_CONVERSATION_TTL", 15*time.Minute),
		StoreTimezone:           getEnv("STORE_TIMEZONE", "Asia/Kolkata"),
		OrderEventsTopicARN:     os.Getenv("ORDER_EVENTS_SNS_TOPIC_ARN"),
		MediaBucket:             os.Getenv("MEDIA_S3_BUCKET"),
		MediaFolder:             getEnv("MEDIA_FOLDER", "ecomm_products"),
		MediaPublicBaseURL:      os.Getenv("MEDIA_PUBLIC_BASE_URL"),
		CloudWatchEnabled:       getEnvBool("CLOUDWATCH_ENABLED", false),
		CloudWatchLogGroup:      getEnv("CLOUDWATCH_LOG_GROUP", "/betterbite/services"),
		MetricsNamespace:        getEnv("METRICS_NAMESPACE", "BetterBite"),
		EnforcePurchaseLimits:   getEnvBool("ENFORCE_PURCHASE_LIMITS", false),
		RejectUnknownProducts:   getEnvBool("REJECT_UNKNOWN_PRODUCTS", false),
		SeedAdminEmail:          getEnv("SEED_ADMIN_EMAIL", "admin@admin.com"),
		SeedAdminPassword:       getEnv("SEED_ADMIN_PASSWORD", "admin@123"),
		SeedSampleData:          getEnvBool("SEED_SAMPLE_DATA", true),
	}

	// Override credentials from Secrets Manager when running on AWS
	if getEnvBool("AWS_USE_SECRETS", false) {
		if awsCfg, err := aws_pkg.LoadAWSConfig(context.Background()); err == nil {
			sm := aws_pkg.NewSecretsClient(awsCfg)
			if secrets, err := sm.GetSecretMap(context.Background(), getEnv("AWS_SECRET_NAME", "betterbite/storefront")); err == nil {
				cfg.applySecrets(secrets)
			}
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applySecrets overrides credentials with non-empty values from a Secrets
// Manager key/value secret.
func (c *Config) applySecrets(secrets map[string]string) {
	for key, dst := range map[string]*string{
		"MONGODB_URI":        &c.MongoURI,
		"JWT_SECRET":         &c.JWTSecret,
		"TELEGRAM_BOT_TOKEN": &c.TelegramBotToken,
	} {
		if v := secrets[key]; v != "" {
			*dst = v
		}
	}
}

func (c *Config) validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if _, err := time.LoadLocation(c.StoreTimezone); err != nil {
		return fmt.Errorf("invalid STORE_TIMEZONE %q: %w", c.StoreTimezone, err)
	}
	return nil
}

// Location returns the store time zone used for reports and chat timestamps.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.StoreTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvInt64(key string, fallback int64) (int64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
