package reconciliation_test

import (
	"context"
	"testing"
	"time"

	"github.com/cha0jun/leavey/internal/domain"
	"github.com/cha0jun/leavey/internal/leave"
	"github.com/cha0jun/leavey/internal/reconciliation"
	"github.com/cha0jun/leavey/internal/shared/testdb"
	"github.com/cha0jun/leavey/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func seedUser(t *testing.T, db *gorm.DB, name string, role domain.Role, vendor *string, active bool) user.User {
	t.Helper()
	u := user.User{
		ExternalID: "idp|" + name,
		Email:      name + "@example.com",
		FullName:   name,
		Role:       role,
		VendorID:   vendor,
		IsActive:   active,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func seedLeave(t *testing.T, db *gorm.DB, ref string, owner uuid.UUID, start string, days float64, status leave.Status, chargeable bool) {
	t.Helper()
	l := leave.LeaveRequest{
		ReferenceNo:            ref,
		UserID:                 owner,
		CategoryID:             uuid.New(),
		StartDate:              day(start),
		EndDate:                day(start).AddDate(0, 0, int(days)),
		TotalDays:              days,
		Status:                 status,
		CachedChargeableStatus: chargeable,
		ExternalSyncStatus:     leave.SyncNotSynced,
		CreatedAt:              time.Now().UTC(),
	}
	require.NoError(t, db.Create(&l).Error)
}

func TestRepository_Snapshot(t *testing.T) {
	db := testdb.Open(t, &user.User{}, &leave.LeaveRequest{})
	// sqlite has no repeatable read; the query shape is what is under test.
	repo := reconciliation.NewRepositoryWithTxOptions(db, nil)
	ctx := context.Background()

	zoe := seedUser(t, db, "Zoe", domain.RoleContractor, strPtr("VEN-1"), true)
	adam := seedUser(t, db, "Adam", domain.RoleContractor, strPtr("VEN-2"), false)
	seedUser(t, db, "Mia", domain.RoleManager, nil, true)

	seedLeave(t, db, "LV-000001", zoe.ID, "2026-03-01", 2, leave.StatusApproved, true)
	seedLeave(t, db, "LV-000002", zoe.ID, "2026-03-31", 3, leave.StatusApproved, false)
	seedLeave(t, db, "LV-000003", zoe.ID, "2026-02-27", 5, leave.StatusApproved, false)
	seedLeave(t, db, "LV-000004", zoe.ID, "2026-04-01", 1, leave.StatusApproved, false)
	seedLeave(t, db, "LV-000005", zoe.ID, "2026-03-10", 1, leave.StatusPending, false)
	seedLeave(t, db, "LV-000006", adam.ID, "2026-03-15", 1, leave.StatusApproved, false)

	period := reconciliation.StartsWithinMonth.Window(2026, time.March)

	t.Run("whole pool ordered by name with inactive contractors", func(t *testing.T) {
		contractors, leaves, err := repo.Snapshot(ctx, period, nil)

		require.NoError(t, err)
		require.Len(t, contractors, 2)
		assert.Equal(t, "Adam", contractors[0].FullName)
		assert.False(t, contractors[0].IsActive)
		assert.Equal(t, "Zoe", contractors[1].FullName)
		assert.Len(t, leaves, 3)

		rows := reconciliation.Compute(contractors, leaves, 22)
		assert.Equal(t, 21.0, rows[0].TotalBillableDays)
		assert.Equal(t, 2.0, rows[1].ChargeableLeave)
		assert.Equal(t, 3.0, rows[1].NonChargeableLeave)
		assert.Equal(t, 19.0, rows[1].TotalBillableDays)
	})

	t.Run("vendor filter", func(t *testing.T) {
		contractors, leaves, err := repo.Snapshot(ctx, period, strPtr("VEN-1"))

		require.NoError(t, err)
		require.Len(t, contractors, 1)
		assert.Equal(t, zoe.ID, contractors[0].ID)
		assert.Len(t, leaves, 2)
	})
}
