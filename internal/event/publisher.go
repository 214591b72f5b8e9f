package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/iamasit07/connect4-agents/backend/internal/domain"
	"github.com/segmentio/kafka-go"
)

// Publisher sends match events to the analytics pipeline.
type Publisher interface {
	Publish(ctx context.Context, ev domain.MatchEvent) error
	Close() error
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewPublisher returns a Kafka publisher, or a no-op one when no brokers are configured.
func NewPublisher(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		log.Println("[KAFKA] No brokers configured, events are dropped")
		return NoopPublisher{}
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
	}
	log.Printf("[KAFKA] Publishing to topic %s on %v", topic, brokers)
	return &KafkaPublisher{writer: w}
}

// Publish keys every message by game so one game's events stay ordered.
func (p *KafkaPublisher) Publish(ctx context.Context, ev domain.MatchEvent) error {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	msg := kafka.Message{Key: []byte(eventKey(ev)), Value: value}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", ev.Type, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func eventKey(ev domain.MatchEvent) string {
	switch {
	case ev.Match != nil:
		return ev.Match.ID
	case ev.Move != nil:
		return ev.Move.GameID
	}
	return ev.Type
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, domain.MatchEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
