package worker

import (
	"context"
	"fmt"
	"os"

	"github.com/cradoe/peoplepay/internal/stream"
)

func (wk *Worker) ExchangeRateWorker() {
	host, err := os.Hostname()
	if err != nil {
		host = "local"
	}

	wk.consume("exchange-rate", &stream.StreamConsumer{
		GroupId: exchangeRateGroupID + "-" + host,
		Topic:   stream.ExchangeRateUpdatedTopic,
	}, wk.handleExchangeRateUpdated)
}

func (wk *Worker) handleExchangeRateUpdated(ctx context.Context, event *stream.Event) error {
	var payload stream.ExchangeRateUpdated
	if err := event.DecodePayload(&payload); err != nil {
		return err
	}

	if payload.From == "" || payload.To == "" {
		return fmt.Errorf("exchange rate event %s has no currency pair", event.ID)
	}

	if err := wk.Converter.Invalidate(ctx, payload.From, payload.To); err != nil {
		return fmt.Errorf("invalidate %s-%s: %w", payload.From, payload.To, err)
	}

	wk.Logger.Info("exchange rate cache invalidated", "from", payload.From, "to", payload.To)
	return nil
}
