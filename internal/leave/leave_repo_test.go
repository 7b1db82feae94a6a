package leave_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/cha0jun/leavey/internal/audit"
	"github.com/cha0jun/leavey/internal/domain"
	"github.com/cha0jun/leavey/internal/leave"
	leaveerrors "github.com/cha0jun/leavey/internal/leave/errors"
	"github.com/cha0jun/leavey/internal/messaging/kafka"
	"github.com/cha0jun/leavey/internal/shared/counter"
	"github.com/cha0jun/leavey/internal/shared/testdb"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type integration struct {
	db       *gorm.DB
	sqlDB    *sql.DB
	repo     leave.Repository
	counter  counter.Repository
	recorder audit.Recorder
	outbox   kafka.OutboxRepository
	owner    leave.LeaveOwner
	category leave.LeaveCategoryRef
}

func setupIntegration(t *testing.T) *integration {
	t.Helper()
	db := testdb.Open(t,
		&leave.LeaveOwner{},
		&leave.LeaveCategoryRef{},
		&leave.LeaveRequest{},
		&audit.AuditLog{},
		&counter.Counter{},
		&kafka.OutboxEvent{},
	)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	manager := uuid.New()
	dept := "Engineering"
	vendor := "VEN-9"
	it := &integration{
		db:       db,
		sqlDB:    sqlDB,
		repo:     leave.NewRepository(db),
		counter:  counter.NewRepository(db),
		recorder: audit.NewRecorder(audit.NewRepository(db)),
		outbox:   kafka.NewOutboxRepository(db),
		owner: leave.LeaveOwner{
			ID: uuid.New(), ExternalID: "idp|c1", FullName: "Casey Contractor", Email: "casey@vendor.test",
			VendorID: &vendor, Department: &dept, ManagerID: &manager, IsActive: true,
		},
		category: leave.LeaveCategoryRef{ID: uuid.New(), Name: "Annual", IsChargeable: true},
	}
	require.NoError(t, db.Create(&it.owner).Error)
	require.NoError(t, db.Create(&it.category).Error)
	return it
}

func (it *integration) service(recorder audit.Recorder, adapter leave.SyncAdapter) leave.Service {
	return leave.NewServiceWithOutbox(it.sqlDB, it.repo, it.counter, recorder, adapter, it.outbox, time.Second)
}

func (it *integration) ownerPrincipal() domain.Principal {
	return domain.Principal{UserID: it.owner.ID, Role: domain.RoleContractor}
}

func (it *integration) create(t *testing.T, svc leave.Service) leave.LeaveResponse {
	t.Helper()
	resp, err := svc.Create(context.Background(), it.ownerPrincipal(), leave.CreateLeaveRequest{
		CategoryID: it.category.ID.String(),
		StartDate:  "2026-03-02",
		EndDate:    "2026-03-03",
		TotalDays:  2,
		Reason:     "Trip",
	})
	require.NoError(t, err)
	return resp
}

type failingRecorder struct{ err error }

func (f failingRecorder) WithTx(*sql.Tx) audit.Recorder            { return f }
func (f failingRecorder) Record(context.Context, audit.Entry) error { return f.err }

func TestLeaveWorkflow_SnapshotSurvivesCategoryChanges(t *testing.T) {
	ctx := context.Background()
	it := setupIntegration(t)
	svc := it.service(it.recorder, &fakeAdapter{})

	created := it.create(t, svc)
	assert.Equal(t, "LV-000001", created.ReferenceNo)
	assert.True(t, created.CachedChargeableStatus)

	// flipping the category later must not reach existing requests
	require.NoError(t, it.db.Model(&leave.LeaveCategoryRef{}).
		Where("id = ?", it.category.ID).
		Update("is_chargeable", false).Error)

	unpaid := leave.LeaveCategoryRef{ID: uuid.New(), Name: "Unpaid", IsChargeable: false}
	require.NoError(t, it.db.Create(&unpaid).Error)
	cat := unpaid.ID.String()
	_, err := svc.SelfEdit(ctx, it.ownerPrincipal(), created.ID, leave.UpdateLeaveRequest{CategoryID: &cat})
	require.NoError(t, err)

	approver := domain.Principal{UserID: uuid.New(), Role: domain.RoleManager}
	processed, err := svc.Process(ctx, approver, created.ID, "APPROVED")
	require.NoError(t, err)
	assert.Equal(t, "SYNCED", processed.ExternalSyncStatus)

	var stored leave.LeaveRequest
	require.NoError(t, it.db.First(&stored, "id = ?", created.ID).Error)
	assert.True(t, stored.CachedChargeableStatus)
	assert.Equal(t, unpaid.ID, stored.CategoryID)
	assert.Equal(t, leave.StatusApproved, stored.Status)
	require.NotNil(t, stored.ExternalReferenceID)
	assert.Equal(t, "VENDOR-0001", *stored.ExternalReferenceID)
	require.NotNil(t, stored.ProcessedBy)
	assert.Equal(t, approver.UserID, *stored.ProcessedBy)

	var logs []audit.AuditLog
	require.NoError(t, it.db.Order("created_at ASC").Find(&logs, "leave_request_id = ?", created.ID).Error)
	require.Len(t, logs, 3)
	assert.Equal(t, audit.ActionCreate, logs[0].Action)
	assert.Equal(t, "details", *logs[1].FieldChanged)
	assert.Equal(t, "status", *logs[2].FieldChanged)
	assert.Equal(t, "PENDING", *logs[2].OldValue)
	assert.Equal(t, "APPROVED", *logs[2].NewValue)

	var events int64
	require.NoError(t, it.db.Model(&kafka.OutboxEvent{}).Where("aggregate_id = ?", created.ID).Count(&events).Error)
	assert.EqualValues(t, 1, events)
}

func TestLeaveWorkflow_AuditFailureRollsBackMutation(t *testing.T) {
	ctx := context.Background()
	it := setupIntegration(t)
	auditErr := errors.New("audit store unavailable")
	broken := it.service(failingRecorder{err: auditErr}, &fakeAdapter{})

	t.Run("create leaves nothing behind", func(t *testing.T) {
		_, err := broken.Create(ctx, it.ownerPrincipal(), leave.CreateLeaveRequest{
			CategoryID: it.category.ID.String(),
			StartDate:  "2026-04-01",
			EndDate:    "2026-04-01",
			TotalDays:  1,
		})
		require.ErrorIs(t, err, auditErr)

		var count int64
		require.NoError(t, it.db.Model(&leave.LeaveRequest{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("process keeps request pending", func(t *testing.T) {
		created := it.create(t, it.service(it.recorder, &fakeAdapter{}))

		_, err := broken.Process(ctx, domain.Principal{UserID: uuid.New(), Role: domain.RoleAdmin}, created.ID, "APPROVED")
		require.ErrorIs(t, err, auditErr)

		var stored leave.LeaveRequest
		require.NoError(t, it.db.First(&stored, "id = ?", created.ID).Error)
		assert.Equal(t, leave.StatusPending, stored.Status)
		assert.Equal(t, leave.SyncNotSynced, stored.ExternalSyncStatus)
		assert.Nil(t, stored.ProcessedBy)

		var pending int64
		require.NoError(t, it.db.Model(&kafka.OutboxEvent{}).Count(&pending).Error)
		assert.Zero(t, pending)
	})
}

func TestLeaveWorkflow_SecondDecisionIsInvalidState(t *testing.T) {
	ctx := context.Background()
	it := setupIntegration(t)
	svc := it.service(it.recorder, &fakeAdapter{})
	created := it.create(t, svc)
	mgr := domain.Principal{UserID: uuid.New(), Role: domain.RoleManager}

	_, err := svc.Process(ctx, mgr, created.ID, "REJECTED")
	require.NoError(t, err)

	_, err = svc.Process(ctx, mgr, created.ID, "APPROVED")
	assert.ErrorIs(t, err, leaveerrors.ErrNotPending)

	_, err = svc.Cancel(ctx, it.ownerPrincipal(), created.ID)
	assert.ErrorIs(t, err, leaveerrors.ErrNotPending)
}

func TestLeaveRepository_FindAll(t *testing.T) {
	ctx := context.Background()
	it := setupIntegration(t)

	other := leave.LeaveOwner{ID: uuid.New(), ExternalID: "idp|c2", FullName: "Other", Email: "o@vendor.test", IsActive: true}
	require.NoError(t, it.db.Create(&other).Error)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	seed := func(owner uuid.UUID, ref string, status leave.Status, offset time.Duration) leave.LeaveRequest {
		l := leave.LeaveRequest{
			ReferenceNo:        ref,
			UserID:             owner,
			CategoryID:         it.category.ID,
			StartDate:          time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			EndDate:            time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			TotalDays:          1,
			Status:             status,
			ExternalSyncStatus: leave.SyncNotSynced,
			CreatedAt:          base.Add(offset),
			UpdatedAt:          base.Add(offset),
		}
		require.NoError(t, it.repo.Create(ctx, &l))
		return l
	}
	oldest := seed(it.owner.ID, "LV-000010", leave.StatusPending, 0)
	newest := seed(it.owner.ID, "LV-000011", leave.StatusApproved, 2*time.Hour)
	seed(other.ID, "LV-000012", leave.StatusPending, time.Hour)

	t.Run("newest first with associations", func(t *testing.T) {
		leaves, total, err := it.repo.FindAll(ctx, leave.Filter{})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		require.Len(t, leaves, 3)
		assert.Equal(t, newest.ID, leaves[0].ID)
		assert.Equal(t, oldest.ID, leaves[2].ID)
		require.NotNil(t, leaves[0].User)
		assert.Equal(t, "Casey Contractor", leaves[0].User.FullName)
		require.NotNil(t, leaves[0].Category)
		assert.Equal(t, "Annual", leaves[0].Category.Name)
	})

	t.Run("department and manager join users", func(t *testing.T) {
		dept := "Engineering"
		leaves, total, err := it.repo.FindAll(ctx, leave.Filter{Department: &dept, ManagerID: it.owner.ManagerID})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		for _, l := range leaves {
			assert.Equal(t, it.owner.ID, l.UserID)
		}
	})

	t.Run("status and paging", func(t *testing.T) {
		status := leave.StatusPending
		leaves, total, err := it.repo.FindAll(ctx, leave.Filter{Status: &status, Limit: 1})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		require.Len(t, leaves, 1)
	})

	t.Run("guarded writes", func(t *testing.T) {
		ok, err := it.repo.UpdateDetailsIfPending(ctx, newest.ID, map[string]any{"reason": "nope"})
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = it.repo.UpdateDetailsIfPending(ctx, oldest.ID, map[string]any{"reason": "ok"})
		require.NoError(t, err)
		assert.True(t, ok)

		l := oldest
		l.Status = leave.StatusCancelled
		ok, err = it.repo.TransitionStatus(ctx, &l, leave.StatusApproved)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
