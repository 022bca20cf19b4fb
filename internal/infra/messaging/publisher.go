package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"restaurant-reservation/internal/pkg/config"
)

// Publisher delivers one outbox event to a broker. Topic is the event name
// (reservation.confirmed, ...); key groups events of one reservation.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload []byte) error
	Close() error
}

const (
	DriverNoop  = "noop"
	DriverAMQP  = "amqp"
	DriverKafka = "kafka"
)

func NewPublisher(cfg config.EventsConfig, logger *slog.Logger) (Publisher, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", DriverNoop:
		return NewNoopPublisher(logger), nil
	case DriverAMQP:
		return NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, logger)
	case DriverKafka:
		return NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic), nil
	default:
		return nil, fmt.Errorf("unknown events driver %q", cfg.Driver)
	}
}

// NoopPublisher only logs. Used when no broker is configured.
type NoopPublisher struct {
	logger *slog.Logger
}

func NewNoopPublisher(logger *slog.Logger) *NoopPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoopPublisher{logger: logger}
}

func (p *NoopPublisher) Publish(_ context.Context, topic, key string, payload []byte) error {
	p.logger.Debug("event dropped by noop publisher",
		slog.String("topic", topic),
		slog.String("key", key),
		slog.Int("bytes", len(payload)))
	return nil
}

func (p *NoopPublisher) Close() error { return nil }
