package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/cha0jun/leavey/internal/domain"
	"github.com/cha0jun/leavey/internal/events"
	"github.com/cha0jun/leavey/internal/leave"
	leaveerrors "github.com/cha0jun/leavey/internal/leave/errors"
	"github.com/cha0jun/leavey/internal/messaging/kafka"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const DefaultMaxRetries = 3

// SyncRetrier is the slice of leave.Service the consumer drives.
type SyncRetrier interface {
	RetrySync(ctx context.Context, p domain.Principal, id string) (leave.LeaveResponse, error)
}

// Options tunes the retry loop. Zero values pick the defaults.
type Options struct {
	MaxRetries   int
	Backoff      time.Duration
	// FetchBackoff is the pause after a failed fetch.
	FetchBackoff time.Duration
}

// ConsumeLeaveStatusChanged retries vendor sync for approvals whose first
// attempt failed. Each attempt runs as the approver named in the event.
func ConsumeLeaveStatusChanged(
	ctx context.Context,
	reader kafka.MessageReader,
	retrier SyncRetrier,
	logger *zap.Logger,
	opts Options,
) {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.Backoff <= 0 {
		opts.Backoff = time.Second
	}
	if opts.FetchBackoff <= 0 {
		opts.FetchBackoff = time.Second
	}

	log := logger.Named("kafka.consumer.leave_sync_retry")
	log.Info("leave sync retry consumer started", zap.Int("max_retries", opts.MaxRetries))

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave sync retry consumer stopped")
				return
			}
			log.Error("fetch leave status message failed", zap.Error(err))
			select {
			case <-ctx.Done():
				log.Info("leave sync retry consumer stopped")
				return
			case <-time.After(opts.FetchBackoff):
			}
			continue
		}

		HandleLeaveStatusChanged(ctx, msg, retrier, log, opts)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave status message failed", zap.Error(err))
		}
	}
}

// HandleLeaveStatusChanged processes one message. It never fails the message:
// anything left unsynced stays in ERROR for a manual retry.
func HandleLeaveStatusChanged(
	ctx context.Context,
	msg kafkago.Message,
	retrier SyncRetrier,
	log *zap.Logger,
	opts Options,
) {
	var event events.LeaveStatusChangedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode leave status event failed", zap.Error(err))
		return
	}
	if !needsSyncRetry(event) {
		return
	}

	actor, err := uuid.Parse(event.ActorID)
	if err != nil {
		log.Error("leave status event has no usable actor",
			zap.String("leave_id", event.LeaveID),
			zap.String("actor_id", event.ActorID),
		)
		return
	}
	principal := domain.SystemPrincipal(actor)

	for attempt := 1; attempt <= opts.MaxRetries; attempt++ {
		resp, err := retrier.RetrySync(ctx, principal, event.LeaveID)
		switch {
		case errors.Is(err, leaveerrors.ErrAlreadySynced),
			errors.Is(err, leaveerrors.ErrNotApproved),
			errors.Is(err, leaveerrors.ErrLeaveNotFound):
			log.Info("leave no longer needs sync",
				zap.String("leave_id", event.LeaveID),
				zap.Error(err),
			)
			return
		case err != nil:
			log.Warn("sync retry call failed",
				zap.String("leave_id", event.LeaveID),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		case resp.ExternalSyncStatus == string(leave.SyncSynced):
			log.Info("leave synced on retry",
				zap.String("leave_id", event.LeaveID),
				zap.Int("attempt", attempt),
			)
			return
		default:
			log.Warn("vendor sync still failing",
				zap.String("leave_id", event.LeaveID),
				zap.Int("attempt", attempt),
			)
		}

		if attempt == opts.MaxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Duration(attempt) * opts.Backoff):
		}
	}

	log.Error("leave sync retries exhausted",
		zap.String("leave_id", event.LeaveID),
		zap.String("reference_no", event.ReferenceNo),
		zap.Int("max_retries", opts.MaxRetries),
	)
}

// needsSyncRetry matches only the approval transition itself. Events written
// by RetrySync go from APPROVED to APPROVED and are ignored, so a failing
// vendor cannot make the consumer feed itself.
func needsSyncRetry(e events.LeaveStatusChangedEvent) bool {
	return e.EventType == events.LeaveStatusChangedEventType &&
		e.FromStatus == string(leave.StatusPending) &&
		e.ToStatus == string(leave.StatusApproved) &&
		e.ExternalSyncStatus == string(leave.SyncError)
}
