// The notifier tails the order topic and renders each new order as an admin
// alert: a toast line plus the two-tone chime descriptor, written to the
// structured log for the back-office display to pick up.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Javohirbek070/toliq-shop-reimagined/internal/config"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/logger"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/notify"
)

const consumerGroup = "admin-notifier"

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	if len(cfg.KafkaBrokers) == 0 {
		log.Fatal("KAFKA_BROKERS not set in environment")
	}

	consumer := notify.NewConsumer(cfg.KafkaBrokers, cfg.OrderTopic, consumerGroup)
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("🔔 notifier listening on topic %s", cfg.OrderTopic)

	if err := consumer.Consume(ctx, notify.AlertHandler()); err != nil && ctx.Err() == nil {
		log.Fatalf("consumer stopped: %v", err)
	}
}
