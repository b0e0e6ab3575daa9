package app

import (
	"strconv"
	"testing"

	"github.com/cradoe/peoplepay/internal/exchange"
	"github.com/cradoe/peoplepay/internal/mocks"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfigFromEnv(t *testing.T) {
	want := mocks.MockConfig

	t.Setenv("BASE_URL", want.BaseURL)
	t.Setenv("HTTP_PORT", strconv.Itoa(want.HttpPort))
	t.Setenv("DB_DSN", want.Db.Dsn)
	t.Setenv("DB_SEED", "true")
	t.Setenv("REDIS_ADDR", want.Redis.Addr)
	t.Setenv("NOTIFICATIONS_EMAIL", want.Notifications.Email)
	t.Setenv("HR_NOTIFICATIONS_EMAIL", want.Notifications.HREmail)
	t.Setenv("SMTP_HOST", want.Smtp.Host)
	t.Setenv("SMTP_PORT", strconv.Itoa(want.Smtp.Port))
	t.Setenv("SMTP_FROM", want.Smtp.From)
	t.Setenv("EXCHANGE_RATE_CACHE_TTL", want.ExchangeRates.CacheTTL.String())
	t.Setenv("DEFAULT_LOCALE", want.DefaultLocale)
	t.Setenv("KAFKA_SERVERS", want.KafkaServers)

	cfg := loadConfig()

	assert.Equal(t, want.BaseURL, cfg.BaseURL)
	assert.Equal(t, want.HttpPort, cfg.HttpPort)
	assert.Equal(t, want.Db.Dsn, cfg.Db.Dsn)
	assert.True(t, cfg.Db.Seed)
	assert.Equal(t, want.Redis.Addr, cfg.Redis.Addr)
	assert.Equal(t, want.Notifications, cfg.Notifications)
	assert.Equal(t, want.Smtp.Host, cfg.Smtp.Host)
	assert.Equal(t, want.Smtp.Port, cfg.Smtp.Port)
	assert.Equal(t, want.ExchangeRates.CacheTTL, cfg.ExchangeRates.CacheTTL)
	assert.Equal(t, want.DefaultLocale, cfg.DefaultLocale)
	assert.Equal(t, want.KafkaServers, cfg.KafkaServers)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("EXCHANGE_RATE_CACHE_TTL", "not-a-duration")
	t.Setenv("HR_NOTIFICATIONS_EMAIL", "")

	cfg := loadConfig()

	assert.Equal(t, exchange.DefaultTTL, cfg.ExchangeRates.CacheTTL)
	assert.Empty(t, cfg.Notifications.HREmail)
}
