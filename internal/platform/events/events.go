// Package events publishes record-change notifications to Kafka. Downstream
// consumers at mission HQ use these to keep dashboards current without
// polling the field servers.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// Event describes a change to a clinical record.
type Event struct {
	Type       string    `json:"type"` // e.g. patient.created, treatment.completed
	ResourceID string    `json:"resource_id"`
	PatientID  string    `json:"patient_id,omitempty"`
	DeviceID   string    `json:"device_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher emits record-change events. Implementations must tolerate slow or
// absent brokers without blocking request handling.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
	Close() error
}

// KafkaPublisher writes events to a Kafka topic, keyed by patient so all
// events for one patient land on the same partition.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger zerolog.Logger
}

func NewKafkaPublisher(brokers []string, topic string, logger zerolog.Logger) *KafkaPublisher {
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  brokers,
		Topic:    topic,
		Balancer: &kafka.Hash{},
	})
	return &KafkaPublisher{writer: writer, logger: logger}
}

func (p *KafkaPublisher) Publish(ctx context.Context, evt Event) error {
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	key := evt.PatientID
	if key == "" {
		key = evt.ResourceID
	}

	writeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
	}); err != nil {
		p.logger.Error().Err(err).Str("type", evt.Type).Msg("publish event")
		return err
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher discards events. Used when no brokers are configured, which is
// the normal state for a field server running offline.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, evt Event) error { return nil }
func (NopPublisher) Close() error                                 { return nil }
