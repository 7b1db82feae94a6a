package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cha0jun/leavey/internal/observability"

	"go.uber.org/zap"
)

var errEmptySyncReference = errors.New("vendor sync returned an empty reference")

// SyncRequest is what the vendor HR system learns about an approved absence.
type SyncRequest struct {
	LeaveID        string    `json:"leave_id"`
	ReferenceNo    string    `json:"reference_no"`
	UserID         string    `json:"user_id"`
	ExternalUserID string    `json:"external_user_id"`
	Email          string    `json:"email"`
	VendorID       *string   `json:"vendor_id,omitempty"`
	CategoryName   string    `json:"category_name"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	TotalDays      float64   `json:"total_days"`
	Chargeable     bool      `json:"chargeable"`
	ApprovedAt     time.Time `json:"approved_at"`
	ApprovedBy     string    `json:"approved_by"`
}

// SyncAdapter pushes an approved request to the vendor's HR system and
// returns the vendor's reference for it.
type SyncAdapter interface {
	Sync(ctx context.Context, req SyncRequest) (string, error)
}

// callSync runs the adapter once under timeout. Errors, panics, timeouts and
// empty references all come back as a non-nil error; nothing escapes.
func callSync(ctx context.Context, adapter SyncAdapter, req SyncRequest, timeout time.Duration) (ref string, err error) {
	if adapter == nil {
		return "", errors.New("vendor sync adapter not configured")
	}
	if timeout <= 0 {
		timeout = DefaultSyncTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		ref string
		err error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("vendor sync panicked: %v", r)}
			}
		}()
		ref, err := adapter.Sync(ctx, req)
		done <- result{ref: ref, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return "", res.err
		}
		if res.ref == "" {
			return "", errEmptySyncReference
		}
		return res.ref, nil
	case <-ctx.Done():
		return "", fmt.Errorf("vendor sync: %w", ctx.Err())
	}
}

// syncApproved invokes the adapter for l and reports the state to persist.
func (s *service) syncApproved(ctx context.Context, l *LeaveRequest, req SyncRequest, log *zap.Logger) (SyncStatus, *string) {
	ref, err := callSync(ctx, s.adapter, req, s.syncTimeout)
	if err != nil {
		observability.VendorSyncResults.WithLabelValues(observability.SyncResultFailed).Inc()
		log.Warn("vendor sync failed",
			zap.String("leave_id", l.ID.String()),
			zap.String("reference_no", l.ReferenceNo),
			zap.Error(err),
		)
		return SyncError, nil
	}
	observability.VendorSyncResults.WithLabelValues(observability.SyncResultSynced).Inc()
	log.Info("vendor sync succeeded",
		zap.String("leave_id", l.ID.String()),
		zap.String("external_reference_id", ref),
	)
	return SyncSynced, &ref
}
