// Command analytics consumes match events and logs per-tier statistics.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iamasit07/connect4-agents/backend/internal/config"
	"github.com/iamasit07/connect4-agents/backend/internal/domain"
	"github.com/iamasit07/connect4-agents/backend/internal/event"
	"github.com/iamasit07/connect4-agents/backend/internal/service/analytics"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadConfig()

	if len(cfg.KafkaBrokers) == 0 {
		log.Fatal("[ANALYTICS] KAFKA_BROKERS is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := event.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupID)
	defer consumer.Close()

	stats := analytics.NewAggregates()
	handle := func(ev domain.MatchEvent) {
		stats.Handle(ev)
		stats.PrintEvery(30 * time.Second)
	}

	log.Printf("[ANALYTICS] Consuming %s as %s", cfg.KafkaTopic, cfg.KafkaGroupID)
	if err := consumer.Run(ctx, handle); err != nil && ctx.Err() == nil {
		log.Fatalf("[ANALYTICS] Consumer stopped: %v", err)
	}
	stats.PrintEvery(0)
}
