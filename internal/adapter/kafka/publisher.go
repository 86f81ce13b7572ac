// Package kafka publishes station status-change alerts to a Kafka topic
// so downstream notifiers (email, SMS, push) can warn floaters when a
// river turns dangerous between refreshes.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/moriverguide/river-conditions-service/internal/aggregator"
)

// messageWriter is the seam over kafka-go's Writer used for testing.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher produces status-change messages to the alert topic. It
// implements aggregator.AlertPublisher.
type Publisher struct {
	writer messageWriter
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured alert topic.
func NewPublisher(brokers []string, topic string, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// PublishStatusChanges serializes and publishes all transitions from one
// refresh in a single WriteMessages call.
func (p *Publisher) PublishStatusChanges(ctx context.Context, changes []aggregator.StatusChange) error {
	if len(changes) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(changes))
	for i := range changes {
		msg, err := serializeChange(changes[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return p.writer.WriteMessages(ctx, msgs...)
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeChange marshals a StatusChange into a Kafka message keyed by
// station id, so per-station ordering is preserved within a partition.
func serializeChange(change aggregator.StatusChange) (kafkago.Message, error) {
	data, err := json.Marshal(change)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize status change: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(change.StationID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "river_id", Value: []byte(change.RiverID)},
			{Key: "severity", Value: []byte(strconv.Itoa(change.Current.Severity()))},
		},
	}, nil
}
