package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/travelwise/config"
	"github.com/Domenick1991/travelwise/internal/email"
	"github.com/Domenick1991/travelwise/internal/kafka"
	"github.com/sirupsen/logrus"
)

// The worker consumes booking notifications and sends the matching emails,
// keeping delivery out of the request path.
func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	sender := email.NewSender("bookings@travelwise.example")

	logrus.Infof("notification worker consuming %s", cfg.Kafka.NotificationsTopic)
	if err := consumer.Consume(ctx, sender.Send); err != nil && ctx.Err() == nil {
		logrus.Fatalf("consumer stopped: %v", err)
	}
}
