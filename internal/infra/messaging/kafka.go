package messaging

import (
	"context"

	"restaurant-reservation/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisher writes every event to one topic, keyed by reservation so a
// reservation's events stay ordered within a partition. The event name travels
// in the "event" header.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, topic, key string, payload []byte) error {
	err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(topic)},
			{Key: "content-type", Value: []byte("application/json")},
		},
	})
	if err != nil {
		return errs.Wrap(err, "kafka: write failed")
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
