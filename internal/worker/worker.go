package worker

import (
	"context"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/cradoe/peoplepay/internal/exchange"
	"github.com/cradoe/peoplepay/internal/smtp"
	"github.com/cradoe/peoplepay/internal/stream"
)

type Worker struct {
	KafkaStream *stream.KafkaStream
	Publisher   stream.Publisher
	Converter   *exchange.Converter
	Mailer      smtp.MailerInterface
	Logger      *slog.Logger
	Ctx         context.Context

	// HREmail receives onboarding-complete notices; empty disables them.
	HREmail string
	BaseURL string
}

const (
	// profileUpdatedGroupID is used by the worker that checks onboarding completion on every profile save
	profileUpdatedGroupID = "profile-onboarding-group"

	// exchangeRateGroupID is used by the worker that evicts cached rates when a rate changes.
	// Every API instance owns a cache, so the group id is suffixed per instance.
	exchangeRateGroupID = "exchange-rate-cache-group"
)

// Our workers typically needs access to the event stream and the services
// they act on. Worker-specific dependencies are fields on Worker.
func New(wk *Worker) *Worker {
	return &Worker{
		KafkaStream: wk.KafkaStream,
		Publisher:   wk.Publisher,
		Converter:   wk.Converter,
		Mailer:      wk.Mailer,
		Logger:      wk.Logger,
		Ctx:         wk.Ctx,
		HREmail:     wk.HREmail,
		BaseURL:     wk.BaseURL,
	}
}

type eventHandler func(ctx context.Context, event *stream.Event) error

// consume polls topic until the worker context is cancelled, handing each
// decoded event to handle. Handler errors are logged and the loop continues.
func (wk *Worker) consume(name string, consumerCfg *stream.StreamConsumer, handle eventHandler) {
	logger := wk.Logger.With("worker", name, "topic", consumerCfg.Topic)

	consumer, err := wk.KafkaStream.CreateConsumer(consumerCfg)
	if err != nil {
		logger.Error("failed to create consumer", "error", err.Error())
		return
	}
	defer consumer.Close()

	logger.Info("worker started")

	for {
		select {
		case <-wk.Ctx.Done():
			logger.Info("worker received cancellation signal, shutting down")
			return
		default:
			event := consumer.Poll(100)
			switch e := event.(type) {
			case *kafka.Message:
				wk.dispatch(logger, e.Value, handle)
			case kafka.Error:
				logger.Error("consumer error", "error", e.Error(), "code", e.Code().String())
			case kafka.AssignedPartitions:
				consumer.Assign(e.Partitions)
			case kafka.RevokedPartitions:
				consumer.Unassign()
			}
		}
	}
}

func (wk *Worker) dispatch(logger *slog.Logger, value []byte, handle eventHandler) {
	event, err := stream.DecodeEvent(value)
	if err != nil {
		logger.Warn("dropping malformed event", "error", err.Error())
		return
	}

	if err := handle(wk.Ctx, event); err != nil {
		logger.Error("event handling failed", "event_id", event.ID, "type", event.Type, "error", err.Error())
	}
}
