package audit

import (
	"context"
	"database/sql"

	"github.com/cha0jun/leavey/internal/scope"
	"github.com/cha0jun/leavey/internal/shared/dbtx"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Filter struct {
	ActorID        *uuid.UUID
	LeaveRequestID *uuid.UUID
	Offset         int
	Limit          int
}

//go:generate mockgen -source=audit_repo.go -destination=mock/audit_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *AuditLog) error
	FindAll(ctx context.Context, f Filter) ([]AuditLog, int64, error)
	FindByLeaveRequest(ctx context.Context, leaveRequestID uuid.UUID) ([]AuditLog, error)
	FindLeaveOwner(ctx context.Context, leaveRequestID uuid.UUID) (uuid.UUID, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbtx.Conn(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, l *AuditLog) error {
	return r.conn(ctx).Omit("Actor").Create(l).Error
}

// FindAll returns matching entries newest first together with the unpaginated total.
func (r *repository) FindAll(ctx context.Context, f Filter) ([]AuditLog, int64, error) {
	q := r.conn(ctx).Model(&AuditLog{})
	if f.ActorID != nil {
		q = q.Where("actor_user_id = ?", *f.ActorID)
	}
	if f.LeaveRequestID != nil {
		q = q.Where("leave_request_id = ?", *f.LeaveRequestID)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []AuditLog
	err := q.Preload("Actor").
		Scopes(scope.Paginate(f.Offset, f.Limit)).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, total, err
}

// FindByLeaveRequest returns the trail of one request oldest first.
func (r *repository) FindByLeaveRequest(ctx context.Context, leaveRequestID uuid.UUID) ([]AuditLog, error) {
	var logs []AuditLog
	err := r.conn(ctx).
		Preload("Actor").
		Where("leave_request_id = ?", leaveRequestID).
		Order("created_at ASC").
		Find(&logs).Error
	return logs, err
}

func (r *repository) FindLeaveOwner(ctx context.Context, leaveRequestID uuid.UUID) (uuid.UUID, error) {
	var row struct {
		UserID uuid.UUID
	}
	err := r.conn(ctx).
		Table("leave_requests").
		Select("user_id").
		Where("id = ?", leaveRequestID).
		Take(&row).Error
	return row.UserID, err
}
