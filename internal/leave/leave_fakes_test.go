package leave_test

import (
	"context"
	"database/sql"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cha0jun/leavey/internal/audit"
	"github.com/cha0jun/leavey/internal/leave"
	"github.com/cha0jun/leavey/internal/shared/counter"

	"github.com/google/uuid"
)

type fakeLeaveRepository struct {
	createFn                 func(ctx context.Context, l *leave.LeaveRequest) error
	findByIDFn               func(ctx context.Context, id uuid.UUID) (*leave.LeaveRequest, error)
	findByIDForUpdateFn      func(ctx context.Context, id uuid.UUID) (*leave.LeaveRequest, error)
	findAllFn                func(ctx context.Context, f leave.Filter) ([]leave.LeaveRequest, int64, error)
	updateDetailsIfPendingFn func(ctx context.Context, id uuid.UUID, updates map[string]any) (bool, error)
	transitionStatusFn       func(ctx context.Context, l *leave.LeaveRequest, from leave.Status) (bool, error)
	updateSyncStateFn        func(ctx context.Context, id uuid.UUID, status leave.SyncStatus, ref *string) error
	findCategoryFn           func(ctx context.Context, id uuid.UUID) (*leave.LeaveCategoryRef, error)
	findOwnerFn              func(ctx context.Context, id uuid.UUID) (*leave.LeaveOwner, error)
}

func (f *fakeLeaveRepository) WithTx(*sql.Tx) leave.Repository {
	return f
}

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.LeaveRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id uuid.UUID) (*leave.LeaveRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*leave.LeaveRequest, error) {
	if f.findByIDForUpdateFn != nil {
		return f.findByIDForUpdateFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindAll(ctx context.Context, filter leave.Filter) ([]leave.LeaveRequest, int64, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, filter)
	}
	return nil, 0, nil
}

func (f *fakeLeaveRepository) UpdateDetailsIfPending(ctx context.Context, id uuid.UUID, updates map[string]any) (bool, error) {
	if f.updateDetailsIfPendingFn != nil {
		return f.updateDetailsIfPendingFn(ctx, id, updates)
	}
	return true, nil
}

func (f *fakeLeaveRepository) TransitionStatus(ctx context.Context, l *leave.LeaveRequest, from leave.Status) (bool, error) {
	if f.transitionStatusFn != nil {
		return f.transitionStatusFn(ctx, l, from)
	}
	return true, nil
}

func (f *fakeLeaveRepository) UpdateSyncState(ctx context.Context, id uuid.UUID, status leave.SyncStatus, ref *string) error {
	if f.updateSyncStateFn != nil {
		return f.updateSyncStateFn(ctx, id, status, ref)
	}
	return nil
}

func (f *fakeLeaveRepository) FindCategory(ctx context.Context, id uuid.UUID) (*leave.LeaveCategoryRef, error) {
	if f.findCategoryFn != nil {
		return f.findCategoryFn(ctx, id)
	}
	return &leave.LeaveCategoryRef{ID: id, Name: "Annual", IsChargeable: true}, nil
}

func (f *fakeLeaveRepository) FindOwner(ctx context.Context, id uuid.UUID) (*leave.LeaveOwner, error) {
	if f.findOwnerFn != nil {
		return f.findOwnerFn(ctx, id)
	}
	return &leave.LeaveOwner{ID: id, ExternalID: "idp|" + id.String(), Email: "owner@example.com"}, nil
}

type fakeRecorder struct {
	mu      sync.Mutex
	entries []audit.Entry
	err     error
}

func (f *fakeRecorder) WithTx(*sql.Tx) audit.Recorder {
	return f
}

func (f *fakeRecorder) Record(_ context.Context, e audit.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeRecorder) Entries() []audit.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]audit.Entry(nil), f.entries...)
}

type fakeCounter struct {
	next int64
	err  error
}

func (f *fakeCounter) WithTx(*sql.Tx) counter.Repository {
	return f
}

func (f *fakeCounter) GetNextValue(context.Context, string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.next++
	return f.next, nil
}

type fakeAdapter struct {
	calls atomic.Int32
	fn    func(ctx context.Context, req leave.SyncRequest) (string, error)
}

func (f *fakeAdapter) Sync(ctx context.Context, req leave.SyncRequest) (string, error) {
	f.calls.Add(1)
	if f.fn != nil {
		return f.fn(ctx, req)
	}
	return "VENDOR-0001", nil
}

// memoryStore backs a fake repository with one guarded row so concurrent
// callers observe each other's writes.
type memoryStore struct {
	mu  sync.Mutex
	row leave.LeaveRequest
}

func (m *memoryStore) repository() *fakeLeaveRepository {
	return &fakeLeaveRepository{
		findByIDForUpdateFn: func(_ context.Context, _ uuid.UUID) (*leave.LeaveRequest, error) {
			m.mu.Lock()
			cp := m.row
			m.mu.Unlock()
			// widen the window between read and guarded write
			time.Sleep(5 * time.Millisecond)
			return &cp, nil
		},
		transitionStatusFn: func(_ context.Context, l *leave.LeaveRequest, from leave.Status) (bool, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			if m.row.Status != from {
				return false, nil
			}
			m.row.Status = l.Status
			m.row.ProcessedBy = l.ProcessedBy
			m.row.ApprovedAt = l.ApprovedAt
			return true, nil
		},
		updateSyncStateFn: func(_ context.Context, _ uuid.UUID, status leave.SyncStatus, ref *string) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.row.ExternalSyncStatus = status
			m.row.ExternalReferenceID = ref
			return nil
		},
	}
}
