package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/cradoe/peoplepay/internal/app"
	seeders "github.com/cradoe/peoplepay/internal/seeder"
	"github.com/cradoe/peoplepay/internal/version"
	"github.com/cradoe/peoplepay/internal/worker"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	err := run(logger)
	if err != nil {
		trace := string(debug.Stack())
		logger.Error(err.Error(), "trace", trace)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	showVersion := flag.Bool("version", false, "display version and exit")
	seedOnly := flag.Bool("seed", false, "seed reference data and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("version: %s\n", version.Get())
		return nil
	}

	application, err := app.NewApplication(logger)
	if err != nil {
		return err
	}
	defer application.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *seedOnly || application.Config.Db.Seed {
		if err := seeders.New(application.DB, logger).Run(ctx); err != nil {
			return err
		}
		if *seedOnly {
			return nil
		}
	}

	wk := worker.New(&worker.Worker{
		KafkaStream: application.Kafka,
		Publisher:   application.Kafka,
		Converter:   application.Converter,
		Mailer:      application.Mailer,
		Logger:      logger,
		Ctx:         ctx,
		HREmail:     application.Config.Notifications.HREmail,
		BaseURL:     application.Config.BaseURL,
	})

	go wk.ProfileUpdatedWorker()
	go wk.ExchangeRateWorker()

	return application.ServeHTTP()
}
