package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cradoe/peoplepay/internal/cache"
	"github.com/cradoe/peoplepay/internal/config"
	"github.com/cradoe/peoplepay/internal/env"
	"github.com/cradoe/peoplepay/internal/errHandler"
	"github.com/cradoe/peoplepay/internal/exchange"
	"github.com/cradoe/peoplepay/internal/helper"
	"github.com/cradoe/peoplepay/internal/repository"
	"github.com/cradoe/peoplepay/internal/smtp"
	"github.com/cradoe/peoplepay/internal/stream"
	"github.com/joho/godotenv"
)

type rateCache interface {
	exchange.Cache
	Close() error
}

// Essential services and resources are exposed to the application
// this makes it possible for methods to have access to these items and when they need them
type Application struct {
	Config       config.Config
	DB           repository.Database
	Logger       *slog.Logger
	Mailer       *smtp.Mailer
	WG           sync.WaitGroup
	Kafka        *stream.KafkaStream
	Converter    *exchange.Converter
	errorHandler *errHandler.ErrorRepository
	helper       *helper.HelperRepository
	cache        rateCache
	redis        *cache.Redis
}

func loadConfig() config.Config {
	var cfg config.Config

	// Default values are for development only; never put production values here.
	cfg.BaseURL = env.GetString("BASE_URL", "http://localhost:4444")
	cfg.HttpPort = env.GetInt("HTTP_PORT", 4444)

	cfg.Db.Dsn = env.GetString("DB_DSN", "user:pass@localhost:5432/db")
	cfg.Db.Automigrate = env.GetBool("DB_AUTOMIGRATE", true)
	cfg.Db.Seed = env.GetBool("DB_SEED", false)

	cfg.Redis.Addr = env.GetString("REDIS_ADDR", "localhost:6379")
	cfg.Redis.DB = env.GetInt("REDIS_DB", 0)

	// server errors won't be sent via email if the NOTIFICATIONS_EMAIL wasn't set in the .env file
	cfg.Notifications.Email = env.GetString("NOTIFICATIONS_EMAIL", "")
	cfg.Notifications.HREmail = env.GetString("HR_NOTIFICATIONS_EMAIL", "")

	cfg.Smtp.Host = env.GetString("SMTP_HOST", "example.smtp.host")
	cfg.Smtp.Port = env.GetInt("SMTP_PORT", 25)
	cfg.Smtp.Username = env.GetString("SMTP_USERNAME", "example_username")
	cfg.Smtp.Password = env.GetString("SMTP_PASSWORD", "pa55word")
	cfg.Smtp.From = env.GetString("SMTP_FROM", "Example Name <no_reply@example.org>")

	cfg.ExchangeRates.CacheTTL = env.GetDuration("EXCHANGE_RATE_CACHE_TTL", exchange.DefaultTTL)
	cfg.DefaultLocale = env.GetString("DEFAULT_LOCALE", "en")

	cfg.KafkaServers = env.GetString("KAFKA_SERVERS", "localhost:9092")

	return cfg
}

func NewApplication(logger *slog.Logger) (*Application, error) {
	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file loaded", "error", err)
	}

	cfg := loadConfig()

	db, err := repository.New(cfg.Db.Dsn, cfg.Db.Automigrate)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	mailer, err := smtp.NewMailer(cfg.Smtp.Host, cfg.Smtp.Port, cfg.Smtp.Username, cfg.Smtp.Password, cfg.Smtp.From)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize mailer: %w", err)
	}

	app := &Application{
		Config: cfg,
		DB:     db,
		Logger: logger,
		Mailer: mailer,
		Kafka:  stream.New(cfg.KafkaServers),
	}

	app.errorHandler = errHandler.New(cfg.Notifications.Email, cfg.BaseURL, mailer, logger)
	app.helper = helper.New(&app.WG, app.errorHandler)

	app.cache = app.newRateCache()
	app.Converter = exchange.NewConverter(db.ExchangeRate(), app.cache, cfg.ExchangeRates.CacheTTL, logger)

	return app, nil
}

// newRateCache prefers redis so instances share cached rates. Without it
// each instance keeps its own in-memory cache.
func (app *Application) newRateCache() rateCache {
	rdb := cache.NewRedis(app.Config.Redis.Addr, app.Config.Redis.DB)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx); err != nil {
		app.Logger.Warn("redis unavailable, using in-memory rate cache", "addr", app.Config.Redis.Addr, "error", err.Error())
		rdb.Close()
		return cache.NewMemory()
	}

	app.redis = rdb
	return rdb
}

// Close releases the backing connections. Call it after ServeHTTP returns.
func (app *Application) Close() {
	app.Kafka.Close()

	if err := app.cache.Close(); err != nil {
		app.Logger.Error("failed to close rate cache", "error", err.Error())
	}

	if err := app.DB.Close(); err != nil {
		app.Logger.Error("failed to close database", "error", err.Error())
	}
}
