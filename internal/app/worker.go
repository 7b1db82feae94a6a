package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/cha0jun/leavey/internal/config"
	"github.com/cha0jun/leavey/internal/messaging/kafka"
	"github.com/cha0jun/leavey/internal/messaging/kafka/producer"

	"go.uber.org/zap"
)

// RunWorker relays the outbox table to kafka until SIGINT or SIGTERM.
func RunWorker(cfg config.Config, logger *zap.Logger) error {
	log := logger.Named("app.worker")

	if cfg.Kafka.Broker == "" {
		return errors.New("KAFKA_BROKER is required")
	}

	in, err := connect(cfg, false, true)
	if err != nil {
		return err
	}
	defer in.Close()

	outboxRepo := kafka.NewOutboxRepository(in.gormDB)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		in.writer,
		log,
		cfg.Outbox.PollInterval,
		cfg.Outbox.BatchSize,
	)

	log.Info("worker shutting down")
	return nil
}
