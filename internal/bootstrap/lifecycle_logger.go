package bootstrap

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// LifecycleEvent is a process level event such as start or shutdown. It is
// not a leave audit entry and never touches the database.
type LifecycleEvent struct {
	Action  string
	Message string
	Meta    map[string]any
}

type LifecycleLogger interface {
	Log(ctx context.Context, event LifecycleEvent)
}

type ZapLifecycleLogger struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewZapLifecycleLogger(logger *zap.Logger) *ZapLifecycleLogger {
	if logger == nil {
		logger = zap.L()
	}
	return &ZapLifecycleLogger{logger: logger.Named("lifecycle"), now: time.Now}
}

func (l *ZapLifecycleLogger) Log(_ context.Context, event LifecycleEvent) {
	l.logger.Info("lifecycle event",
		zap.String("timestamp", l.now().UTC().Format(time.RFC3339)),
		zap.String("action", event.Action),
		zap.String("message", event.Message),
		zap.Any("meta", event.Meta),
	)
}
