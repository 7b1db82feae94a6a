// Package vendorsync holds the adapters that tell a vendor's HR system about
// approved leave.
package vendorsync

import (
	"context"
	"strings"

	"github.com/cha0jun/leavey/internal/leave"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StubAdapter accepts every request and invents a vendor reference. It is the
// default driver for environments without a vendor integration.
type StubAdapter struct {
	logger *zap.Logger
}

func NewStubAdapter(logger ...*zap.Logger) *StubAdapter {
	l := zap.L().Named("vendorsync.stub")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("vendorsync.stub")
	}
	return &StubAdapter{logger: l}
}

func (a *StubAdapter) Sync(ctx context.Context, req leave.SyncRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ref := newReference()
	a.logger.Debug("stub vendor sync",
		zap.String("leave_id", req.LeaveID),
		zap.String("external_reference_id", ref),
	)
	return ref, nil
}

// newReference renders VENDOR-XXXXXXXX with eight upper case hex digits.
func newReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "VENDOR-" + strings.ToUpper(id[:8])
}
