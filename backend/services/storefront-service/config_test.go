package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("AWS_USE_SECRETS", "false")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequired(t)
	for _, key := range []string{
		"PORT", "TELEGRAM_CHAT_ID", "RATE_LIMIT_PER_MINUTE", "STORE_TIMEZONE",
		"TELEGRAM_CONVERSATION_TTL", "JWT_TTL", "CORS_ORIGIN", "TELEGRAM_POLLING",
		"ENFORCE_PURCHASE_LIMITS", "REJECT_UNKNOWN_PRODUCTS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, 100, cfg.RateLimitPerMinute)
	assert.Equal(t, int64(0), cfg.TelegramChatID)
	assert.True(t, cfg.TelegramPolling)
	assert.Equal(t, 15*time.Minute, cfg.TelegramConversationTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTTTL)
	assert.False(t, cfg.EnforcePurchaseLimits)
	assert.False(t, cfg.RejectUnknownProducts)
	assert.Empty(t, cfg.CORSOrigins)
	assert.Equal(t, "Asia/Kolkata", cfg.Location().String())
}

func TestLoadConfig_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("TELEGRAM_CHAT_ID", "-1001234567890")
	t.Setenv("CORS_ORIGIN", "https://shop.example.com, http://localhost:5173 ,")
	t.Setenv("TELEGRAM_CONVERSATION_TTL", "5m")
	t.Setenv("TELEGRAM_POLLING", "false")
	t.Setenv("ENFORCE_PURCHASE_LIMITS", "true")
	t.Setenv("STORE_TIMEZONE", "UTC")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, int64(-1001234567890), cfg.TelegramChatID)
	assert.Equal(t, []string{"https://shop.example.com", "http://localhost:5173"}, cfg.CORSOrigins)
	assert.Equal(t, 5*time.Minute, cfg.TelegramConversationTTL)
	assert.False(t, cfg.TelegramPolling)
	assert.True(t, cfg.EnforcePurchaseLimits)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing mongo", map[string]string{"MONGODB_URI": ""}, "MONGODB_URI is required"},
		{"missing jwt secret", map[string]string{"JWT_SECRET": ""}, "JWT_SECRET is required"},
		{"bad chat id", map[string]string{"TELEGRAM_CHAT_ID": "chat"}, "invalid TELEGRAM_CHAT_ID"},
		{"bad rate limit", map[string]string{"RATE_LIMIT_PER_MINUTE": "lots"}, "invalid RATE_LIMIT_PER_MINUTE"},
		{"bad timezone", map[string]string{"STORE_TIMEZONE": "Mars/Olympus"}, "invalid STORE_TIMEZONE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestGetEnvDuration_FallsBack(t *testing.T) {
	t.Setenv("SOME_TTL", "-5m")
	assert.Equal(t, time.Minute, getEnvDuration("SOME_TTL", time.Minute))
	t.Setenv("SOME_TTL", "soon")
	assert.Equal(t, time.Minute, getEnvDuration("SOME_TTL", time.Minute))
}

func TestApplySecrets(t *testing.T) {
	cfg := &Config{MongoURI: "mongodb://local", JWTSecret: "env-secret"}

	cfg.applySecrets(map[string]string{"JWT_SECRET": "vault-secret", "MONGODB_URI": "", "UNRELATED": "x"})

	assert.Equal(t, "mongodb://local", cfg.MongoURI)
	assert.Equal(t, "vault-secret", cfg.JWTSecret)
	assert.Empty(t, cfg.TelegramBotToken)
}
