package analytics

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// Publisher forwards accepted events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, events []Event) error
	Close() error
}

// KafkaPublisher writes one message per event, keyed by visitor so a
// visitor's events stay ordered within a partition.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(broker, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(broker),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
			Async:        true,
			Completion: func(messages []kafka.Message, err error) {
				if err != nil {
					log.Printf("[ANALYTICS] kafka delivery failed (%d messages): %v", len(messages), err)
				}
			},
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, events []Event) error {
	msgs, err := toMessages(events)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msgs...)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func toMessages(events []Event) ([]kafka.Message, error) {
	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		data, err := json.Marshal(e)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(e.VisitorID),
			Value: data,
			Time:  e.OccurredAt,
		})
	}
	return msgs, nil
}

// NopPublisher drops events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, events []Event) error { return nil }
func (NopPublisher) Close() error                                      { return nil }
