package leave

import (
	"context"
	"database/sql"
	"time"

	"github.com/cha0jun/leavey/internal/scope"
	"github.com/cha0jun/leavey/internal/shared/dbtx"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Filter struct {
	Status     *Status
	UserID     *uuid.UUID
	Department *string
	ManagerID  *uuid.UUID
	Offset     int
	Limit      int
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error)
	// FindByIDForUpdate loads the row with a write lock held until the
	// surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*LeaveRequest, error)
	FindAll(ctx context.Context, f Filter) ([]LeaveRequest, int64, error)
	// UpdateDetailsIfPending applies updates only while the row is still
	// PENDING and reports whether it did.
	UpdateDetailsIfPending(ctx context.Context, id uuid.UUID, updates map[string]any) (bool, error)
	// TransitionStatus writes l's status and processing fields only if the
	// stored status still equals from.
	TransitionStatus(ctx context.Context, l *LeaveRequest, from Status) (bool, error)
	UpdateSyncState(ctx context.Context, id uuid.UUID, status SyncStatus, externalRef *string) error
	FindCategory(ctx context.Context, id uuid.UUID) (*LeaveCategoryRef, error)
	FindOwner(ctx context.Context, id uuid.UUID) (*LeaveOwner, error)
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

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.conn(ctx).Omit(clause.Associations).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.conn(ctx).
		Preload("User").
		Preload("Category").
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindAll(ctx context.Context, f Filter) ([]LeaveRequest, int64, error) {
	q := r.conn(ctx).Model(&LeaveRequest{})
	if f.Status != nil {
		q = q.Where("leave_requests.status = ?", *f.Status)
	}
	if f.UserID != nil {
		q = q.Where("leave_requests.user_id = ?", *f.UserID)
	}
	if f.Department != nil || f.ManagerID != nil {
		q = q.Joins("JOIN users ON users.id = leave_requests.user_id")
		if f.Department != nil {
			q = q.Where("users.department = ?", *f.Department)
		}
		if f.ManagerID != nil {
			q = q.Where("users.manager_id = ?", *f.ManagerID)
		}
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var leaves []LeaveRequest
	err := q.Select("leave_requests.*").
		Preload("User").
		Preload("Category").
		Scopes(scope.Paginate(f.Offset, f.Limit)).
		Order("leave_requests.created_at DESC").
		Order("leave_requests.id").
		Find(&leaves).Error
	if err != nil {
		return nil, 0, err
	}
	return leaves, total, nil
}

func (r *repository) UpdateDetailsIfPending(ctx context.Context, id uuid.UUID, updates map[string]any) (bool, error) {
	updates["updated_at"] = time.Now().UTC()
	res := r.conn(ctx).
		Model(&LeaveRequest{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) TransitionStatus(ctx context.Context, l *LeaveRequest, from Status) (bool, error) {
	res := r.conn(ctx).
		Model(&LeaveRequest{}).
		Where("id = ? AND status = ?", l.ID, from).
		Updates(map[string]any{
			"status":       l.Status,
			"processed_by": l.ProcessedBy,
			"approved_at":  l.ApprovedAt,
			"updated_at":   l.UpdatedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) UpdateSyncState(ctx context.Context, id uuid.UUID, status SyncStatus, externalRef *string) error {
	updates := map[string]any{
		"external_sync_status": status,
		"updated_at":           time.Now().UTC(),
	}
	if externalRef != nil {
		updates["external_reference_id"] = *externalRef
	}
	return r.conn(ctx).
		Model(&LeaveRequest{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) FindCategory(ctx context.Context, id uuid.UUID) (*LeaveCategoryRef, error) {
	var c LeaveCategoryRef
	if err := r.conn(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) FindOwner(ctx context.Context, id uuid.UUID) (*LeaveOwner, error) {
	var o LeaveOwner
	if err := r.conn(ctx).First(&o, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}
