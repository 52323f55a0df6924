// Package events announces finished merge runs to downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// MergeCompleted describes one successful merge run.
type MergeCompleted struct {
	RequestID string    `json:"request_id"`
	UserID    string    `json:"user_id"`
	Output    string    `json:"output"`
	Inputs    []string  `json:"inputs"`
	Summary   string    `json:"summary_file,omitempty"`
	Rows      int       `json:"rows"`
	Overwork  int       `json:"overwork"`
	At        time.Time `json:"at"`
}

// Nop drops every event.
type Nop struct{}

// Publish does nothing.
func (Nop) Publish(context.Context, MergeCompleted) error { return nil }

// Close does nothing.
func (Nop) Close() error { return nil }

// Kafka publishes events as JSON messages keyed by request ID.
type Kafka struct {
	w *kafka.Writer
}

// NewKafka creates a publisher writing to topic on brokers.
func NewKafka(brokers []string, topic string) *Kafka {
	return &Kafka{w: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}}
}

// Publish writes ev synchronously.
func (k *Kafka) Publish(ctx context.Context, ev MergeCompleted) error {
	msg, err := Message(ev)
	if err != nil {
		return err
	}
	if err := k.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write %s: %w", k.w.Topic, err)
	}
	return nil
}

// Close flushes and closes the writer.
func (k *Kafka) Close() error {
	return k.w.Close()
}

// Message encodes ev as a Kafka message.
func Message(ev MergeCompleted) (kafka.Message, error) {
	value, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode event: %w", err)
	}
	return kafka.Message{Key: []byte(ev.RequestID), Value: value, Time: ev.At}, nil
}
