package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/cha0jun/leavey/internal/audit"
	"github.com/cha0jun/leavey/internal/config"
	"github.com/cha0jun/leavey/internal/events"
	"github.com/cha0jun/leavey/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer retries failed vendor syncs announced on the status changed
// topic until SIGINT or SIGTERM.
func RunConsumer(cfg config.Config, logger *zap.Logger) error {
	log := logger.Named("app.consumer")

	if cfg.Kafka.Broker == "" {
		return errors.New("KAFKA_BROKER is required")
	}

	in, err := connect(cfg, false, true)
	if err != nil {
		return err
	}
	defer in.Close()

	recorder := audit.NewRecorder(audit.NewRepository(in.gormDB))
	leaveService, err := newLeaveService(cfg, in, recorder, logger)
	if err != nil {
		return err
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		Topic:          events.LeaveStatusChangedTopic,
		GroupID:        cfg.Kafka.ConsumerGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer.ConsumeLeaveStatusChanged(ctx, reader, leaveService, log, consumer.Options{
		MaxRetries: cfg.Kafka.MaxRetries,
	})

	log.Info("consumer shutting down")
	return nil
}
