package vendorsync

import (
	"fmt"

	"github.com/cha0jun/leavey/internal/config"
	"github.com/cha0jun/leavey/internal/leave"
	"github.com/cha0jun/leavey/internal/messaging/kafka"

	"go.uber.org/zap"
)

// New picks the adapter for the configured driver. writer is only used by
// the kafka driver and may be nil otherwise.
func New(cfg config.SyncConfig, writer kafka.MessageWriter, logger *zap.Logger) (leave.SyncAdapter, error) {
	switch cfg.Driver {
	case "", "stub":
		return NewStubAdapter(logger), nil
	case "kafka":
		if writer == nil {
			return nil, fmt.Errorf("kafka sync driver needs a writer")
		}
		return NewKafkaAdapter(writer, cfg.Topic, logger), nil
	default:
		return nil, fmt.Errorf("unsupported sync driver %q", cfg.Driver)
	}
}
