package report

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaEmitter publishes delivery reports to a Kafka topic so downstream
// consumers can audit forwarding outcomes.
type KafkaEmitter struct {
	writer *kafka.Writer
}

// NewKafkaEmitter creates an emitter writing to topic on the given brokers.
func NewKafkaEmitter(brokers []string, topic string) *KafkaEmitter {
	return &KafkaEmitter{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
	}
}

// Emit writes one report. Failures are logged, never propagated: report
// emission must not affect delivery handling.
func (e *KafkaEmitter) Emit(d Delivery) {
	payload, err := json.Marshal(d)
	if err != nil {
		slog.Warn("kafka emitter: marshal failed", "error", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = e.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(d.CompanyID),
		Value: payload,
	})
	if err != nil {
		slog.Warn("kafka emitter: write failed", "topic", e.writer.Topic, "error", err)
	}
}

// Close flushes and closes the writer.
func (e *KafkaEmitter) Close() error {
	return e.writer.Close()
}
