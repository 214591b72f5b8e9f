package event

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/iamasit07/connect4-agents/backend/internal/domain"
	"github.com/segmentio/kafka-go"
)

func TestNewPublisherWithoutBrokersIsNoop(t *testing.T) {
	p := NewPublisher(nil, "topic")
	if _, ok := p.(NoopPublisher); !ok {
		t.Fatalf("expected NoopPublisher, got %T", p)
	}
	if err := p.Publish(context.Background(), domain.MatchEvent{Type: domain.EventMatchFinished}); err != nil {
		t.Fatalf("noop publish failed: %v", err)
	}
}

func TestEventKey(t *testing.T) {
	match := domain.MatchEvent{Type: domain.EventMatchFinished, Match: &domain.MatchRecord{ID: "m1"}}
	if got := eventKey(match); got != "m1" {
		t.Fatalf("expected match id key, got %q", got)
	}
	move := domain.MatchEvent{Type: domain.EventMoveMade, Move: &domain.MoveEvent{GameID: "g1"}}
	if got := eventKey(move); got != "g1" {
		t.Fatalf("expected game id key, got %q", got)
	}
}

func TestDecode(t *testing.T) {
	value, err := json.Marshal(domain.MatchEvent{
		Type:  domain.EventMatchFinished,
		Match: &domain.MatchRecord{ID: "m1", Winner: domain.Yellow, RedTier: domain.TierBeginner},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	ev, err := Decode(value)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.Match == nil || ev.Match.Winner != domain.Yellow || ev.Match.RedTier != domain.TierBeginner {
		t.Fatalf("unexpected event %+v", ev)
	}

	if _, err := Decode([]byte(`{"match":null}`)); err == nil {
		t.Fatalf("expected event without type to fail")
	}
	if _, err := Decode([]byte(`not json`)); err == nil {
		t.Fatalf("expected invalid json to fail")
	}
}

// scriptedReader returns its results in order, then keeps returning last.
type scriptedReader struct {
	results []readResult
	last    error
	reads   int
}

type readResult struct {
	msg kafka.Message
	err error
}

func (r *scriptedReader) ReadMessage(context.Context) (kafka.Message, error) {
	r.reads++
	if len(r.results) == 0 {
		return kafka.Message{}, r.last
	}
	next := r.results[0]
	r.results = r.results[1:]
	return next.msg, next.err
}

func (r *scriptedReader) Close() error { return nil }

func encodeEvent(t *testing.T, ev domain.MatchEvent) kafka.Message {
	t.Helper()
	raw, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return kafka.Message{Value: raw}
}

func TestConsumerStopsOnClosedReader(t *testing.T) {
	reader := &scriptedReader{
		results: []readResult{
			{msg: encodeEvent(t, domain.MatchEvent{Type: domain.EventMatchFinished})},
			{msg: kafka.Message{Value: []byte("{")}},
		},
		last: io.EOF,
	}
	c := &Consumer{reader: reader, backoff: time.Millisecond}

	handled := 0
	err := c.Run(context.Background(), func(domain.MatchEvent) { handled++ })
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	if handled != 1 || reader.reads != 3 {
		t.Fatalf("expected 1 handled event over 3 reads, got %d/%d", handled, reader.reads)
	}
}

func TestConsumerGivesUpOnPersistentErrors(t *testing.T) {
	broken := errors.New("broker unavailable")
	reader := &scriptedReader{last: broken}
	c := &Consumer{reader: reader, backoff: time.Microsecond}

	err := c.Run(context.Background(), func(domain.MatchEvent) {})
	if !errors.Is(err, broken) {
		t.Fatalf("expected the read error, got %v", err)
	}
	if reader.reads != maxReadFailures {
		t.Fatalf("expected %d attempts, got %d", maxReadFailures, reader.reads)
	}
}

func TestConsumerRecoversAfterTransientError(t *testing.T) {
	reader := &scriptedReader{
		results: []readResult{
			{err: errors.New("rebalance")},
			{msg: encodeEvent(t, domain.MatchEvent{Type: domain.EventMatchFinished})},
		},
		last: io.EOF,
	}
	c := &Consumer{reader: reader, backoff: time.Millisecond}

	handled := 0
	if err := c.Run(context.Background(), func(domain.MatchEvent) { handled++ }); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	if handled != 1 {
		t.Fatalf("expected the event after the retry, got %d", handled)
	}
}

func TestConsumerReturnsNilOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := &Consumer{reader: &scriptedReader{last: context.Canceled}, backoff: time.Second}
	if err := c.Run(ctx, func(domain.MatchEvent) {}); err != nil {
		t.Fatalf("expected nil on cancel, got %v", err)
	}
}
