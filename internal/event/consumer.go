package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/iamasit07/connect4-agents/backend/internal/domain"
	"github.com/segmentio/kafka-go"
)

const (
	maxReadFailures = 10
	maxBackoff      = 30 * time.Second
)

// messageReader is the part of kafka.Reader the consumer uses.
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type Consumer struct {
	reader  messageReader
	backoff time.Duration
}

func NewConsumer(brokers []string, topic, groupID string) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: groupID,
	})
	return &Consumer{reader: r, backoff: time.Second}
}

// Run feeds every decodable event to handle until ctx is cancelled.
// Malformed messages are logged and skipped. Read errors are retried with
// exponential backoff; a closed reader or maxReadFailures errors in a row
// end the loop with an error.
func (c *Consumer) Run(ctx context.Context, handle func(domain.MatchEvent)) error {
	failures := 0
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("kafka reader closed: %w", err)
			}
			failures++
			if failures >= maxReadFailures {
				return fmt.Errorf("giving up after %d read errors: %w", failures, err)
			}

			wait := min(c.backoff<<(failures-1), maxBackoff)
			log.Printf("[KAFKA] Error reading message (attempt %d, retry in %v): %v", failures, wait, err)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil
			}
			continue
		}
		failures = 0

		ev, err := Decode(m.Value)
		if err != nil {
			log.Printf("[KAFKA] Skipping malformed message at offset %d: %v", m.Offset, err)
			continue
		}
		handle(ev)
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}

func Decode(value []byte) (domain.MatchEvent, error) {
	var ev domain.MatchEvent
	if err := json.Unmarshal(value, &ev); err != nil {
		return ev, err
	}
	if ev.Type == "" {
		return ev, errors.New("event has no type")
	}
	return ev, nil
}
