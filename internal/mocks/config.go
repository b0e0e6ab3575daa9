package mocks

import (
	"time"

	"github.com/cradoe/peoplepay/internal/config"
)

var MockConfig = func() *config.Config {
	cfg := &config.Config{
		BaseURL:       "http://localhost",
		HttpPort:      8080,
		DefaultLocale: "en",
		KafkaServers:  "localhost:9092",
	}
	cfg.Db.Dsn = "mock_dsn"
	cfg.Redis.Addr = "localhost:6379"
	cfg.Notifications.Email = "ops@example.com"
	cfg.Notifications.HREmail = "hr@example.com"
	cfg.Smtp.Host = "smtp.example.com"
	cfg.Smtp.Port = 587
	cfg.Smtp.From = "no-reply@example.com"
	cfg.ExchangeRates.CacheTTL = 5 * time.Minute
	return cfg
}()
