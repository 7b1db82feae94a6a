package audit_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/cha0jun/leavey/internal/audit"
	mock_audit "github.com/cha0jun/leavey/internal/audit/mock"
	"github.com/cha0jun/leavey/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func strPtr(s string) *string { return &s }

func TestRecorder_Record(t *testing.T) {
	ctx := context.Background()
	leaveID := uuid.New()
	actorID := uuid.New()

	t.Run("stringifies values at the boundary", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_audit.NewMockRepository(ctrl)
		rec := audit.NewRecorder(repo)

		managerID := uuid.New()
		tests := []struct {
			name    string
			old     any
			new     any
			wantOld *string
			wantNew *string
		}{
			{"strings", "PENDING", "APPROVED", strPtr("PENDING"), strPtr("APPROVED")},
			{"absent old value", nil, "PENDING", nil, strPtr("PENDING")},
			{"booleans", true, false, strPtr("true"), strPtr("false")},
			{"floats", 2.5, 3.0, strPtr("2.5"), strPtr("3")},
			{"typed nil pointer", (*string)(nil), strPtr("VENDOR-A"), nil, strPtr("VENDOR-A")},
			{"uuid pointer", (*uuid.UUID)(nil), &managerID, nil, strPtr(managerID.String())},
			{"named string type", domain.RoleContractor, domain.RoleManager, strPtr("CONTRACTOR"), strPtr("MANAGER")},
			{"time", time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), nil, strPtr("2026-03-01T09:00:00Z"), nil},
		}

		for _, tt := range tests {
			repo.EXPECT().
				Create(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, l *audit.AuditLog) error {
					assert.Equal(t, tt.wantOld, l.OldValue, tt.name)
					assert.Equal(t, tt.wantNew, l.NewValue, tt.name)
					return nil
				})

			err := rec.Record(ctx, audit.Entry{
				LeaveRequestID: &leaveID,
				ActorID:        actorID,
				Action:         audit.ActionUpdate,
				FieldChanged:   "status",
				OldValue:       tt.old,
				NewValue:       tt.new,
			})
			assert.NoError(t, err, tt.name)
		}
	})

	t.Run("maps entry fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_audit.NewMockRepository(ctrl)
		rec := audit.NewRecorder(repo)

		repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, l *audit.AuditLog) error {
				assert.NotEqual(t, uuid.Nil, l.ID)
				assert.Nil(t, l.LeaveRequestID)
				assert.Equal(t, actorID, l.ActorUserID)
				assert.Equal(t, audit.ActionUpdateUser, l.Action)
				assert.Equal(t, "role", *l.FieldChanged)
				assert.False(t, l.CreatedAt.IsZero())
				return nil
			})

		err := rec.Record(ctx, audit.Entry{
			ActorID:      actorID,
			Action:       audit.ActionUpdateUser,
			FieldChanged: "role",
			OldValue:     domain.RoleContractor,
			NewValue:     domain.RoleManager,
		})
		assert.NoError(t, err)
	})

	t.Run("empty field name is stored as absent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_audit.NewMockRepository(ctrl)
		rec := audit.NewRecorder(repo)

		repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, l *audit.AuditLog) error {
				assert.Nil(t, l.FieldChanged)
				return nil
			})

		assert.NoError(t, rec.Record(ctx, audit.Entry{
			LeaveRequestID: &leaveID,
			ActorID:        actorID,
			Action:         audit.ActionCreate,
			NewValue:       "PENDING",
		}))
	})

	t.Run("persist error is returned unchanged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_audit.NewMockRepository(ctrl)
		rec := audit.NewRecorder(repo)
		dbErr := errors.New("disk full")

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dbErr)

		err := rec.Record(ctx, audit.Entry{ActorID: actorID, Action: audit.ActionCreate})
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("WithTx binds the repository to the transaction", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_audit.NewMockRepository(ctrl)
		txRepo := mock_audit.NewMockRepository(ctrl)
		tx := &sql.Tx{}

		repo.EXPECT().WithTx(tx).Return(txRepo)
		txRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		err := audit.NewRecorder(repo).WithTx(tx).Record(ctx, audit.Entry{ActorID: actorID, Action: audit.ActionCreate})
		assert.NoError(t, err)
	})
}
